package evaluator

import (
	"fmt"

	"github.com/funvibe/quandary/internal/ast"
)

// FunctionTable maps names to definitions. It is built once and only read
// afterwards, so workers share it without locking.
type FunctionTable struct {
	funcs map[string]*ast.FunctionDecl
}

func NewFunctionTable(decls []*ast.FunctionDecl) (*FunctionTable, error) {
	t := &FunctionTable{funcs: make(map[string]*ast.FunctionDecl, len(decls))}
	for _, fd := range decls {
		name := fd.Name.Value
		if prev, ok := t.funcs[name]; ok {
			return nil, fmt.Errorf("function %s defined twice (lines %d and %d)",
				name, prev.Token.Line, fd.Token.Line)
		}
		t.funcs[name] = fd
	}
	return t, nil
}

func (t *FunctionTable) Lookup(name string) (*ast.FunctionDecl, bool) {
	fd, ok := t.funcs[name]
	return fd, ok
}

func (t *FunctionTable) Len() int {
	return len(t.funcs)
}
