package symbols

import "github.com/funvibe/quandary/internal/ast"

// SymbolTable is one lexical scope. Lookups fall through to outer scopes.
type SymbolTable struct {
	store     map[string]Symbol
	outer     *SymbolTable
	scopeType ScopeType
}

func NewEmptySymbolTable() *SymbolTable {
	return &SymbolTable{
		store:     make(map[string]Symbol),
		scopeType: ScopeGlobal,
	}
}

func NewEnclosedSymbolTable(outer *SymbolTable, scopeType ScopeType) *SymbolTable {
	st := NewEmptySymbolTable()
	st.outer = outer
	st.scopeType = scopeType
	return st
}

// Outer returns the outer scope symbol table
func (s *SymbolTable) Outer() *SymbolTable {
	return s.outer
}

// IsFunctionScope returns true if this symbol table corresponds to a function scope.
func (s *SymbolTable) IsFunctionScope() bool {
	return s.scopeType == ScopeFunction
}

// IsGlobalScope returns true if this symbol table holds the user function definitions.
func (s *SymbolTable) IsGlobalScope() bool {
	return s.scopeType == ScopeGlobal
}

func (s *SymbolTable) Define(name string, t *ast.TypeName, node ast.Node) {
	s.store[name] = Symbol{Name: name, Kind: VariableSymbol, Type: t, DefinitionNode: node}
}

func (s *SymbolTable) DefineConstant(name string, t *ast.TypeName, node ast.Node) {
	s.store[name] = Symbol{Name: name, Kind: VariableSymbol, Type: t, IsConstant: true, DefinitionNode: node}
}

// DefineFunction registers a user function by its declaration.
func (s *SymbolTable) DefineFunction(fn *ast.FunctionDecl) {
	s.store[fn.Name.Value] = Symbol{
		Name:           fn.Name.Value,
		Kind:           FunctionSymbol,
		Type:           fn.ReturnType,
		IsConstant:     !fn.Mutable,
		Arity:          len(fn.Parameters),
		DefinitionNode: fn,
	}
}

func (s *SymbolTable) DefineBuiltin(name string, arity int) {
	s.store[name] = Symbol{Name: name, Kind: BuiltinSymbol, IsConstant: true, Arity: arity}
}

// FindWithScope returns the symbol and the scope where it was defined
func (s *SymbolTable) FindWithScope(name string) (Symbol, *SymbolTable, bool) {
	sym, ok := s.store[name]
	if ok {
		return sym, s, true
	}
	if s.outer != nil {
		return s.outer.FindWithScope(name)
	}
	return Symbol{}, nil, false
}

// FindVariable skips function and built-in symbols, which live in a separate namespace.
func (s *SymbolTable) FindVariable(name string) (Symbol, bool) {
	for scope := s; scope != nil; scope = scope.outer {
		if sym, ok := scope.store[name]; ok && sym.Kind == VariableSymbol {
			return sym, true
		}
	}
	return Symbol{}, false
}

// FindFunction resolves a call target. Built-ins win over user functions.
func (s *SymbolTable) FindFunction(name string) (Symbol, bool) {
	var found Symbol
	ok := false
	for scope := s; scope != nil; scope = scope.outer {
		sym, exists := scope.store[name]
		if !exists || sym.Kind == VariableSymbol {
			continue
		}
		found, ok = sym, true
		if sym.Kind == BuiltinSymbol {
			return sym, true
		}
	}
	return found, ok
}

// All returns all symbols in the current scope (not including outer scopes).
func (s *SymbolTable) All() map[string]Symbol {
	return s.store
}

func (s *SymbolTable) IsDefined(name string) bool {
	_, ok := s.store[name]
	if !ok && s.outer != nil {
		return s.outer.IsDefined(name)
	}
	return ok
}

// IsDefinedLocally checks if a symbol is defined in the current scope (shallow check)
func (s *SymbolTable) IsDefinedLocally(name string) bool {
	_, ok := s.store[name]
	return ok
}
