package ast

// Visitor is implemented by passes that walk the tree (analyzer, printer).
type Visitor interface {
	VisitProgram(p *Program)
	VisitFunctionDecl(fd *FunctionDecl)

	VisitVarDeclaration(vd *VarDeclaration)
	VisitAssignStatement(as *AssignStatement)
	VisitPrintStatement(ps *PrintStatement)
	VisitIfStatement(is *IfStatement)
	VisitWhileStatement(ws *WhileStatement)
	VisitBlockStatement(bs *BlockStatement)
	VisitReturnStatement(rs *ReturnStatement)
	VisitCallStatement(cs *CallStatement)

	VisitIdentifier(i *Identifier)
	VisitIntegerLiteral(il *IntegerLiteral)
	VisitBooleanLiteral(b *BooleanLiteral)
	VisitNilLiteral(n *NilLiteral)
	VisitPrefixExpression(pe *PrefixExpression)
	VisitInfixExpression(ie *InfixExpression)
	VisitCastExpression(ce *CastExpression)
	VisitCallExpression(ce *CallExpression)
	VisitConcurrentExpression(ce *ConcurrentExpression)
}
