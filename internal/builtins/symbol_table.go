package builtins

import "github.com/karupanerura/keypad-calculator/internal/types"

var DefaultSymbolTable = &types.SymbolTable{
	Symbols: mergeMaps(Math, map[string]any{
		"pi": Pi,
		"e":  Euler,
	}),
	ReadOnly: true,
}
