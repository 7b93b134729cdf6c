package types

import "fmt"

type SymbolTable struct {
	Symbols  map[string]any
	ReadOnly bool
	Parent   *SymbolTable
}

func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{
		Symbols: map[string]any{},
		Parent:  parent,
	}
}

func (st *SymbolTable) Get(key string) (any, bool) {
	if st == nil {
		return nil, false
	}
	v, ok := st.Symbols[key]
	if ok {
		return v, true
	}
	if st.Parent != nil {
		return st.Parent.Get(key)
	}
	return nil, false
}

// Set assigns to the nearest writable table that already holds key, or
// defines key in st.
func (st *SymbolTable) Set(key string, value any) {
	if updated := st.set(key, value); updated {
		return
	}
	if st.ReadOnly {
		panic(fmt.Sprintf("Cannot assign %q=%+v to read only symbol table", key, value))
	}
	st.Symbols[key] = value
}

func (st *SymbolTable) set(key string, value any) bool {
	if !st.ReadOnly {
		_, ok := st.Symbols[key]
		if ok {
			st.Symbols[key] = value
			return true
		}
	}
	if st.Parent != nil {
		return st.Parent.set(key, value)
	}
	return false
}
