package analyzer

import (
	"github.com/funvibe/quandary/internal/ast"
	"github.com/funvibe/quandary/internal/config"
	"github.com/funvibe/quandary/internal/diagnostics"
	"github.com/funvibe/quandary/internal/symbols"
	"github.com/funvibe/quandary/internal/token"
)

// VisitProgram registers every function before checking bodies, so calls
// may refer to functions defined later in the file.
func (w *walker) VisitProgram(program *ast.Program) {
	if program.File != "" && w.currentFile == "" {
		w.currentFile = program.File
	}

	for _, fn := range program.Functions {
		w.declareFunction(fn)
	}
	w.checkEntryPoint(program)

	for _, fn := range program.Functions {
		fn.Accept(w)
	}
}

func (w *walker) declareFunction(fn *ast.FunctionDecl) {
	name := fn.Name.Value
	if config.IsBuiltin(name) {
		w.addError(diagnostics.NewError(diagnostics.ErrA006, fn.Name.Token,
			"function %s has the name of a built-in", name))
		return
	}
	if prev, ok := w.global.All()[name]; ok {
		w.addError(diagnostics.NewError(diagnostics.ErrA001, fn.Name.Token,
			"function %s already defined on line %d", name, prev.Line()))
		return
	}
	w.global.DefineFunction(fn)
}

func (w *walker) checkEntryPoint(program *ast.Program) {
	sym, ok := w.global.All()[config.EntryFuncName]
	if !ok {
		w.addError(diagnostics.NewError(diagnostics.ErrA002, token.Token{},
			"function %s not found", config.EntryFuncName))
		return
	}
	fn := sym.DefinitionNode.(*ast.FunctionDecl)
	if len(fn.Parameters) != 1 || fn.Parameters[0].Type.String() != config.IntTypeName {
		w.addError(diagnostics.NewError(diagnostics.ErrA002, fn.Name.Token,
			"function %s must take exactly one %s parameter", config.EntryFuncName, config.IntTypeName))
	}
}

// VisitFunctionDecl checks one body. Parameters and top-level locals share
// the function scope, like the frame a call pushes at run time.
func (w *walker) VisitFunctionDecl(fn *ast.FunctionDecl) {
	w.enterScope(symbols.ScopeFunction)
	defer w.leaveScope()

	for _, p := range fn.Parameters {
		if p.Mutable {
			w.symbolTable.Define(p.Name.Value, p.Type, p)
		} else {
			w.symbolTable.DefineConstant(p.Name.Value, p.Type, p)
		}
	}
	if fn.Body == nil {
		return
	}
	for _, stmt := range fn.Body.Statements {
		stmt.Accept(w)
	}
}
