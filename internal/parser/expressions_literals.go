package parser

import (
	"github.com/funvibe/quandary/internal/ast"
	"github.com/funvibe/quandary/internal/token"
)

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, ok := p.curToken.Literal.(int64)
	if !ok {
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseBoolean() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNil() ast.Expression {
	return &ast.NilLiteral{Token: p.curToken}
}
