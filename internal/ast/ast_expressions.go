package ast

import "github.com/funvibe/quandary/internal/token"

type Identifier struct {
	Token token.Token // the token.IDENT token
	Value string
}

func (i *Identifier) Accept(v Visitor)     { v.VisitIdentifier(i) }
func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) Accept(v Visitor)     { v.VisitIntegerLiteral(il) }
func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token {
	if il == nil {
		return token.Token{}
	}
	return il.Token
}

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) Accept(v Visitor)     { v.VisitBooleanLiteral(b) }
func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Lexeme }
func (b *BooleanLiteral) GetToken() token.Token {
	if b == nil {
		return token.Token{}
	}
	return b.Token
}

type NilLiteral struct {
	Token token.Token
}

func (n *NilLiteral) Accept(v Visitor)     { v.VisitNilLiteral(n) }
func (n *NilLiteral) expressionNode()      {}
func (n *NilLiteral) TokenLiteral() string { return n.Token.Lexeme }
func (n *NilLiteral) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Token
}

// PrefixExpression is unary - or !.
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) Accept(v Visitor)     { v.VisitPrefixExpression(pe) }
func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token {
	if pe == nil {
		return token.Token{}
	}
	return pe.Token
}

// InfixExpression covers arithmetic, comparison, equality, logical and dot.
type InfixExpression struct {
	Token    token.Token // The operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) Accept(v Visitor)     { v.VisitInfixExpression(ie) }
func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token {
	if ie == nil {
		return token.Token{}
	}
	return ie.Token
}

// CastExpression is (T) e.
type CastExpression struct {
	Token  token.Token // The '(' token
	Target *TypeName
	Right  Expression
}

func (ce *CastExpression) Accept(v Visitor)     { v.VisitCastExpression(ce) }
func (ce *CastExpression) expressionNode()      {}
func (ce *CastExpression) TokenLiteral() string { return ce.Token.Lexeme }
func (ce *CastExpression) GetToken() token.Token {
	if ce == nil {
		return token.Token{}
	}
	return ce.Token
}

type CallExpression struct {
	Token     token.Token // The function name token
	Function  *Identifier
	Arguments []Expression
}

func (ce *CallExpression) Accept(v Visitor)     { v.VisitCallExpression(ce) }
func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token {
	if ce == nil {
		return token.Token{}
	}
	return ce.Token
}

// ConcurrentExpression evaluates both operands in parallel and combines them.
// [e1 OP e2]
type ConcurrentExpression struct {
	Token    token.Token // The '[' token
	Left     Expression
	Operator string
	Right    Expression
}

func (ce *ConcurrentExpression) Accept(v Visitor)     { v.VisitConcurrentExpression(ce) }
func (ce *ConcurrentExpression) expressionNode()      {}
func (ce *ConcurrentExpression) TokenLiteral() string { return ce.Token.Lexeme }
func (ce *ConcurrentExpression) GetToken() token.Token {
	if ce == nil {
		return token.Token{}
	}
	return ce.Token
}
