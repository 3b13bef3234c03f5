package compiler

import "fmt"

// maxSlots is the number of addressable global slots: a single byte operand
// can only index 0..255, so the 257th distinct name overflows the table.
const maxSlots = 256

// symbol is one append-only entry in the SymbolTable.
type symbol struct {
	name       string
	isFunction bool
}

// SymbolTable is the compiler's name-to-slot directory. It backs the single
// flat global-slot array the VM addresses with one-byte LOAD_VAR/STORE_VAR
// operands: every declared name, whether a variable or a function, gets a
// dense slot the first time it is seen and keeps it for the rest of the
// compilation unit.
type SymbolTable struct {
	symbols []symbol
	index   map[string]int
}

// NewSymbolTable creates an empty, ready-to-use symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		symbols: []symbol{},
		index:   make(map[string]int),
	}
}

// GetOrAdd returns name's slot, assigning the next dense slot index if name
// has not been seen before. It panics with a DeveloperError if the table is
// already full (see maxSlots), since the single-byte operand cannot address
// a 257th name.
func (st *SymbolTable) GetOrAdd(name string, isFunction bool) int {
	if slot, ok := st.index[name]; ok {
		return slot
	}
	if len(st.symbols) >= maxSlots {
		panic(DeveloperError{
			Message: fmt.Sprintf("symbol table exhausted: cannot add '%s', all %d global slots are in use", name, maxSlots),
		})
	}
	slot := len(st.symbols)
	st.symbols = append(st.symbols, symbol{name: name, isFunction: isFunction})
	st.index[name] = slot
	return slot
}

// Resolve looks up an already-declared name and reports whether it exists.
func (st *SymbolTable) Resolve(name string) (int, bool) {
	slot, ok := st.index[name]
	return slot, ok
}

// IsFunction reports whether the symbol stored at slot was declared via a
// function definition rather than a variable declaration.
func (st *SymbolTable) IsFunction(slot int) bool {
	if slot < 0 || slot >= len(st.symbols) {
		return false
	}
	return st.symbols[slot].isFunction
}

// Free discards all entries, returning the table to its initial state.
func (st *SymbolTable) Free() {
	st.symbols = st.symbols[:0]
	st.index = make(map[string]int)
}
