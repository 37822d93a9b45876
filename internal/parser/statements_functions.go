package parser

import (
	"github.com/funvibe/quandary/internal/ast"
	"github.com/funvibe/quandary/internal/diagnostics"
	"github.com/funvibe/quandary/internal/token"
)

// ParseProgram parses a sequence of function definitions.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{File: p.ctx.FilePath}

	for !p.curTokenIs(token.EOF) {
		fn := p.parseFunctionDecl()
		if fn == nil {
			p.inRecursionRecovery = false
			p.nextToken()
			p.skipToFunction()
			continue
		}
		program.Functions = append(program.Functions, fn)
		p.nextToken()
	}
	return program
}

// parseFunctionDecl parses
// ('mut')? 'fn' IDENT '(' params? ')' ':' type block
func (p *Parser) parseFunctionDecl() *ast.FunctionDecl {
	fn := &ast.FunctionDecl{}
	if p.curTokenIs(token.MUT) {
		fn.Mutable = true
		if !p.expectPeek(token.FN) {
			return nil
		}
	}
	if !p.curTokenIs(token.FN) {
		p.addError(diagnostics.ErrP001, p.curToken, "expected function definition, got %s", describeToken(p.curToken))
		return nil
	}
	fn.Token = p.curToken

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	fn.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params, ok := p.parseParameters()
	if !ok {
		return nil
	}
	fn.Parameters = params

	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	fn.ReturnType = p.parseType()
	if fn.ReturnType == nil {
		return nil
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	fn.Body = p.parseBlockStatement()
	if fn.Body == nil {
		return nil
	}
	return fn
}

// parseParameters starts at '(' and ends at ')'.
func (p *Parser) parseParameters() ([]*ast.Parameter, bool) {
	var params []*ast.Parameter
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params, true
	}

	for {
		p.nextToken()
		param := p.parseParameter()
		if param == nil {
			return nil, false
		}
		params = append(params, param)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}
	return params, true
}

// parseParameter parses ('mut' | 'const')? IDENT ':' type.
// Parameters are mutable unless marked const.
func (p *Parser) parseParameter() *ast.Parameter {
	param := &ast.Parameter{Mutable: true}
	switch p.curToken.Type {
	case token.MUT:
		p.nextToken()
	case token.CONST:
		param.Mutable = false
		p.nextToken()
	}
	if !p.curTokenIs(token.IDENT) {
		p.addError(diagnostics.ErrP001, p.curToken, "expected parameter name, got %s", describeToken(p.curToken))
		return nil
	}
	param.Token = p.curToken
	param.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	param.Type = p.parseType()
	if param.Type == nil {
		return nil
	}
	return param
}

func (p *Parser) parseType() *ast.TypeName {
	if !token.IsType(p.curToken.Type) {
		p.addError(diagnostics.ErrP004, p.curToken, "expected type (Int, Bool, Ref or Q), got %s", describeToken(p.curToken))
		return nil
	}
	return &ast.TypeName{Token: p.curToken, Name: p.curToken.Lexeme}
}
