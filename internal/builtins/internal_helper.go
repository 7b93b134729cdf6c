package builtins

import (
	"fmt"

	"github.com/karupanerura/keypad-calculator/internal/types"
)

func aggregateFunctionsToSymbols(funcs ...types.Function) map[string]any {
	m := make(map[string]any, len(funcs))
	for _, f := range funcs {
		name := f.Name()
		if _, duplicated := m[name]; duplicated {
			panic(fmt.Sprintf("duplicated function name: %s", name))
		}
		m[name] = f
	}
	return m
}

func mergeMaps(maps ...map[string]any) map[string]any {
	m := map[string]any{}
	for _, mm := range maps {
		for k, v := range mm {
			if _, duplicated := m[k]; duplicated {
				panic(fmt.Sprintf("duplicated symbol: %s", k))
			}
			m[k] = v
		}
	}
	return m
}
