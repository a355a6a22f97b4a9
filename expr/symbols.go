package expr

import (
	"strings"
)

// NamespaceSeparator separates namespace parts of qualified symbol names.
const NamespaceSeparator = "."

type symbolEntry struct {
	name string
	expr Expr
}

// SymbolTable is an ordered association of qualified symbol names and expressions.
// Definition order is significant: the last symbol defined in a namespace is the namespace default.
type SymbolTable struct {
	entries []symbolEntry
	index   map[string]int
}

// NewSymbolTable creates an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{index: make(map[string]int)}
}

// Define adds a symbol to the end of the table. Redefinition replaces the expression keeping symbol position.
func (st *SymbolTable) Define(name string, e Expr) {
	if i, has := st.index[name]; has {
		st.entries[i].expr = e
		return
	}

	st.index[name] = len(st.entries)
	st.entries = append(st.entries, symbolEntry{name, e})
}

// Len returns the number of symbols.
func (st *SymbolTable) Len() int {
	return len(st.entries)
}

// Names returns symbol names in definition order.
func (st *SymbolTable) Names() []string {
	result := make([]string, len(st.entries))
	for i, e := range st.entries {
		result[i] = e.name
	}
	return result
}

// Lookup returns the expression of exactly named symbol.
func (st *SymbolTable) Lookup(name string) (Expr, bool) {
	i, has := st.index[name]
	if !has {
		return nil, false
	}
	return st.entries[i].expr, true
}

// Resolve returns the expression for a qualified name.
// If no symbol has this exact name but name denotes a namespace, the namespace default is returned.
func (st *SymbolTable) Resolve(name string) (Expr, bool) {
	if e, has := st.Lookup(name); has {
		return e, true
	}

	_, e, has := st.Default(name)
	return e, has
}

// Default returns the last symbol defined in namespace, empty namespace denotes the whole table.
func (st *SymbolTable) Default(namespace string) (string, Expr, bool) {
	prefix := ""
	if namespace != "" {
		prefix = namespace + NamespaceSeparator
	}
	for i := len(st.entries) - 1; i >= 0; i-- {
		e := st.entries[i]
		if strings.HasPrefix(e.name, prefix) {
			return e.name, e.expr, true
		}
	}
	return "", nil, false
}
