package parser

import (
	"github.com/funvibe/quandary/internal/ast"
	"github.com/funvibe/quandary/internal/token"
)

// parseIdentifierOrCall parses a variable reference or name(args...).
func (p *Parser) parseIdentifierOrCall() ast.Expression {
	ident := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.peekTokenIs(token.LPAREN) {
		return ident
	}
	call := &ast.CallExpression{Token: p.curToken, Function: ident}
	p.nextToken()
	args, ok := p.parseCallArguments()
	if !ok {
		return nil
	}
	call.Arguments = args
	return call
}

// parseCallArguments starts at '(' and ends at ')'.
func (p *Parser) parseCallArguments() ([]ast.Expression, bool) {
	var args []ast.Expression
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return args, true
	}

	p.nextToken()
	arg := p.parseExpression(LOWEST)
	if arg == nil {
		return nil, false
	}
	args = append(args, arg)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil, false
		}
		args = append(args, arg)
	}

	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}
	return args, true
}
