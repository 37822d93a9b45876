package symbols

import (
	"sync"

	"github.com/funvibe/quandary/internal/config"
)

// Singleton prelude table containing all built-in symbols
var (
	preludeTable *SymbolTable
	preludeOnce  sync.Once
)

// GetPrelude returns the singleton prelude SymbolTable containing all built-in symbols.
// It is never written to after initialization.
func GetPrelude() *SymbolTable {
	preludeOnce.Do(func() {
		preludeTable = NewEmptySymbolTable()
		preludeTable.scopeType = ScopePrelude
		preludeTable.InitBuiltins()
	})
	return preludeTable
}

// NewSymbolTable creates a global table that inherits from the prelude.
func NewSymbolTable() *SymbolTable {
	st := NewEmptySymbolTable()
	st.outer = GetPrelude()
	st.scopeType = ScopeGlobal
	return st
}

func (st *SymbolTable) InitBuiltins() {
	for name, arity := range config.BuiltinArity {
		st.DefineBuiltin(name, arity)
	}
}
