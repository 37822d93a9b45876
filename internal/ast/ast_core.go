package ast

import "github.com/funvibe/quandary/internal/token"

// TokenProvider is an interface for any AST node that can provide its primary token.
// This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Program is the root node: the ordered function definitions of one source file.
type Program struct {
	File      string
	Functions []*FunctionDecl
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
func (p *Program) TokenLiteral() string {
	if len(p.Functions) > 0 {
		return p.Functions[0].TokenLiteral()
	}
	return ""
}

// TypeName is one of Int, Bool, Ref or Q.
type TypeName struct {
	Token token.Token
	Name  string
}

func (t *TypeName) GetToken() token.Token {
	if t == nil {
		return token.Token{}
	}
	return t.Token
}

func (t *TypeName) String() string {
	if t == nil {
		return ""
	}
	return t.Name
}

// Parameter is a typed function parameter.
// mut n: Int
type Parameter struct {
	Token   token.Token // The parameter name token
	Name    *Identifier
	Type    *TypeName
	Mutable bool
}

func (p *Parameter) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

// FunctionDecl is a top level function definition.
// fn name(p: T, ...): R { ... }
type FunctionDecl struct {
	Token      token.Token // The 'fn' token
	Name       *Identifier
	Mutable    bool
	Parameters []*Parameter
	ReturnType *TypeName
	Body       *BlockStatement
}

func (fd *FunctionDecl) Accept(v Visitor)     { v.VisitFunctionDecl(fd) }
func (fd *FunctionDecl) TokenLiteral() string { return fd.Token.Lexeme }
func (fd *FunctionDecl) GetToken() token.Token {
	if fd == nil {
		return token.Token{}
	}
	return fd.Token
}
