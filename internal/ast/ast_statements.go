package ast

import "github.com/funvibe/quandary/internal/token"

// VarDeclaration binds a new name in the current scope.
// mut x: Int := 0;
type VarDeclaration struct {
	Token   token.Token // The identifier token
	Name    *Identifier
	Type    *TypeName
	Mutable bool
	Value   Expression
}

func (vd *VarDeclaration) Accept(v Visitor)     { v.VisitVarDeclaration(vd) }
func (vd *VarDeclaration) statementNode()       {}
func (vd *VarDeclaration) TokenLiteral() string { return vd.Token.Lexeme }
func (vd *VarDeclaration) GetToken() token.Token {
	if vd == nil {
		return token.Token{}
	}
	return vd.Token
}

// AssignStatement updates an existing binding.
// x := e;
type AssignStatement struct {
	Token token.Token // The identifier token
	Name  *Identifier
	Value Expression
}

func (as *AssignStatement) Accept(v Visitor)     { v.VisitAssignStatement(as) }
func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Lexeme }
func (as *AssignStatement) GetToken() token.Token {
	if as == nil {
		return token.Token{}
	}
	return as.Token
}

type PrintStatement struct {
	Token token.Token // The 'print' token
	Value Expression
}

func (ps *PrintStatement) Accept(v Visitor)     { v.VisitPrintStatement(ps) }
func (ps *PrintStatement) statementNode()       {}
func (ps *PrintStatement) TokenLiteral() string { return ps.Token.Lexeme }
func (ps *PrintStatement) GetToken() token.Token {
	if ps == nil {
		return token.Token{}
	}
	return ps.Token
}

type IfStatement struct {
	Token       token.Token // The 'if' token
	Condition   Expression
	Consequence Statement
	Alternative Statement // nil when there is no else branch
}

func (is *IfStatement) Accept(v Visitor)     { v.VisitIfStatement(is) }
func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Lexeme }
func (is *IfStatement) GetToken() token.Token {
	if is == nil {
		return token.Token{}
	}
	return is.Token
}

type WhileStatement struct {
	Token     token.Token // The 'while' token
	Condition Expression
	Body      Statement
}

func (ws *WhileStatement) Accept(v Visitor)     { v.VisitWhileStatement(ws) }
func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Lexeme }
func (ws *WhileStatement) GetToken() token.Token {
	if ws == nil {
		return token.Token{}
	}
	return ws.Token
}

type BlockStatement struct {
	Token      token.Token // The '{' token
	Statements []Statement
}

func (bs *BlockStatement) Accept(v Visitor)     { v.VisitBlockStatement(bs) }
func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token {
	if bs == nil {
		return token.Token{}
	}
	return bs.Token
}

type ReturnStatement struct {
	Token       token.Token // The 'return' token
	ReturnValue Expression
}

func (rs *ReturnStatement) Accept(v Visitor)     { v.VisitReturnStatement(rs) }
func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token {
	if rs == nil {
		return token.Token{}
	}
	return rs.Token
}

// CallStatement invokes a function and discards its result.
type CallStatement struct {
	Token token.Token
	Call  *CallExpression
}

func (cs *CallStatement) Accept(v Visitor)     { v.VisitCallStatement(cs) }
func (cs *CallStatement) statementNode()       {}
func (cs *CallStatement) TokenLiteral() string { return cs.Token.Lexeme }
func (cs *CallStatement) GetToken() token.Token {
	if cs == nil {
		return token.Token{}
	}
	return cs.Token
}
