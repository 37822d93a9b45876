package analyzer

import (
	"github.com/funvibe/quandary/internal/ast"
	"github.com/funvibe/quandary/internal/diagnostics"
)

func (w *walker) VisitIdentifier(i *ast.Identifier) {
	if _, ok := w.symbolTable.FindVariable(i.Value); !ok {
		w.addError(diagnostics.NewError(diagnostics.ErrA004, i.Token, "undefined variable %s", i.Value))
	}
}

func (w *walker) VisitIntegerLiteral(il *ast.IntegerLiteral) {}
func (w *walker) VisitBooleanLiteral(b *ast.BooleanLiteral)  {}
func (w *walker) VisitNilLiteral(n *ast.NilLiteral)          {}

func (w *walker) VisitPrefixExpression(pe *ast.PrefixExpression) {
	pe.Right.Accept(w)
}

func (w *walker) VisitInfixExpression(ie *ast.InfixExpression) {
	ie.Left.Accept(w)
	ie.Right.Accept(w)
}

func (w *walker) VisitCastExpression(ce *ast.CastExpression) {
	ce.Right.Accept(w)
}

// VisitCallExpression only checks that the target exists. Arity is checked
// when the call runs.
func (w *walker) VisitCallExpression(ce *ast.CallExpression) {
	if _, ok := w.symbolTable.FindFunction(ce.Function.Value); !ok {
		w.addError(diagnostics.NewError(diagnostics.ErrA003, ce.Function.Token,
			"undefined function %s", ce.Function.Value))
	}
	for _, arg := range ce.Arguments {
		arg.Accept(w)
	}
}

func (w *walker) VisitConcurrentExpression(ce *ast.ConcurrentExpression) {
	ce.Left.Accept(w)
	ce.Right.Accept(w)
}
