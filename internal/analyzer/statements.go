package analyzer

import (
	"github.com/funvibe/quandary/internal/ast"
	"github.com/funvibe/quandary/internal/diagnostics"
	"github.com/funvibe/quandary/internal/symbols"
)

func (w *walker) VisitVarDeclaration(vd *ast.VarDeclaration) {
	// The initializer is resolved before the new name is in scope.
	if vd.Value != nil {
		vd.Value.Accept(w)
	}
	if vd.Mutable {
		w.symbolTable.Define(vd.Name.Value, vd.Type, vd)
	} else {
		w.symbolTable.DefineConstant(vd.Name.Value, vd.Type, vd)
	}
}

func (w *walker) VisitAssignStatement(as *ast.AssignStatement) {
	if as.Value != nil {
		as.Value.Accept(w)
	}
	sym, ok := w.symbolTable.FindVariable(as.Name.Value)
	if !ok {
		w.addError(diagnostics.NewError(diagnostics.ErrA004, as.Name.Token,
			"undefined variable %s", as.Name.Value))
		return
	}
	if sym.IsConstant {
		w.addError(diagnostics.NewError(diagnostics.ErrA005, as.Name.Token,
			"cannot assign to immutable variable %s", as.Name.Value))
	}
}

func (w *walker) VisitPrintStatement(ps *ast.PrintStatement) {
	if ps.Value != nil {
		ps.Value.Accept(w)
	}
}

func (w *walker) VisitIfStatement(is *ast.IfStatement) {
	is.Condition.Accept(w)
	if is.Consequence != nil {
		is.Consequence.Accept(w)
	}
	if is.Alternative != nil {
		is.Alternative.Accept(w)
	}
}

func (w *walker) VisitWhileStatement(ws *ast.WhileStatement) {
	ws.Condition.Accept(w)
	if ws.Body != nil {
		ws.Body.Accept(w)
	}
}

// VisitBlockStatement opens a scope. A branch or loop body without braces
// is visited directly and declares into the enclosing scope.
func (w *walker) VisitBlockStatement(block *ast.BlockStatement) {
	w.enterScope(symbols.ScopeBlock)
	defer w.leaveScope()
	for _, stmt := range block.Statements {
		stmt.Accept(w)
	}
}

func (w *walker) VisitReturnStatement(rs *ast.ReturnStatement) {
	if rs.ReturnValue != nil {
		rs.ReturnValue.Accept(w)
	}
}

func (w *walker) VisitCallStatement(cs *ast.CallStatement) {
	cs.Call.Accept(w)
}
