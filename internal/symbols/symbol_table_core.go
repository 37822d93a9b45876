package symbols

import "github.com/funvibe/quandary/internal/ast"

type SymbolKind int

type ScopeType int

const (
	ScopePrelude ScopeType = iota // Built-in functions
	ScopeGlobal                   // User function definitions
	ScopeFunction
	ScopeBlock
)

const (
	VariableSymbol SymbolKind = iota
	FunctionSymbol
	BuiltinSymbol
)

func (k SymbolKind) String() string {
	switch k {
	case VariableSymbol:
		return "variable"
	case FunctionSymbol:
		return "function"
	case BuiltinSymbol:
		return "built-in"
	}
	return "unknown"
}

type Symbol struct {
	Name           string
	Kind           SymbolKind
	Type           *ast.TypeName // Declared type; nil for built-ins
	IsConstant     bool          // True for bindings without mut
	Arity          int           // Parameter count for functions and built-ins
	DefinitionNode ast.Node      // The AST node where this symbol was defined
}

// Line returns the line of the defining node, or 0 for built-ins.
func (s Symbol) Line() int {
	if tp, ok := s.DefinitionNode.(ast.TokenProvider); ok {
		return tp.GetToken().Line
	}
	return 0
}
