package parser

import (
	"github.com/funvibe/quandary/internal/ast"
	"github.com/funvibe/quandary/internal/diagnostics"
	"github.com/funvibe/quandary/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxRecursionDepth {
		p.addError(diagnostics.ErrP006, p.curToken, "statement nesting too deep")
		return nil
	}

	switch p.curToken.Type {
	case token.MUT, token.CONST:
		return p.parseVarDeclaration()
	case token.IDENT:
		switch p.peekToken.Type {
		case token.COLON:
			return p.parseVarDeclaration()
		case token.ASSIGN:
			return p.parseAssignStatement()
		case token.LPAREN:
			return p.parseCallStatement()
		}
		p.addError(diagnostics.ErrP001, p.peekToken, "expected ':', ':=' or '(' after %s, got %s",
			describeToken(p.curToken), describeToken(p.peekToken))
		return nil
	case token.PRINT:
		return p.parsePrintStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.LBRACE:
		if block := p.parseBlockStatement(); block != nil {
			return block
		}
		return nil
	case token.RETURN:
		return p.parseReturnStatement()
	}
	p.addError(diagnostics.ErrP001, p.curToken, "unexpected %s at start of statement", describeToken(p.curToken))
	return nil
}

// parseVarDeclaration parses ('mut' | 'const')? IDENT ':' type ':=' expr ';'.
// Locals are immutable unless marked mut.
func (p *Parser) parseVarDeclaration() ast.Statement {
	decl := &ast.VarDeclaration{}
	switch p.curToken.Type {
	case token.MUT:
		decl.Mutable = true
		if !p.expectPeek(token.IDENT) {
			return nil
		}
	case token.CONST:
		if !p.expectPeek(token.IDENT) {
			return nil
		}
	}
	decl.Token = p.curToken
	decl.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	decl.Type = p.parseType()
	if decl.Type == nil {
		return nil
	}
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	decl.Value = p.parseExpression(LOWEST)
	if decl.Value == nil || !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return decl
}

func (p *Parser) parseAssignStatement() ast.Statement {
	stmt := &ast.AssignStatement{
		Token: p.curToken,
		Name:  &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme},
	}
	p.nextToken() // ':='
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil || !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return stmt
}

func (p *Parser) parseCallStatement() ast.Statement {
	stmt := &ast.CallStatement{Token: p.curToken}
	call := p.parseIdentifierOrCall()
	if call == nil {
		return nil
	}
	stmt.Call = call.(*ast.CallExpression)
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return stmt
}

func (p *Parser) parsePrintStatement() ast.Statement {
	stmt := &ast.PrintStatement{Token: p.curToken}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil || !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	p.nextToken()
	stmt.ReturnValue = p.parseExpression(LOWEST)
	if stmt.ReturnValue == nil || !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return stmt
}

// parseCondition parses '(' expr ')' following 'if' or 'while'.
func (p *Parser) parseCondition() ast.Expression {
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if cond == nil || !p.expectPeek(token.RPAREN) {
		return nil
	}
	return cond
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}
	stmt.Condition = p.parseCondition()
	if stmt.Condition == nil {
		return nil
	}
	p.nextToken()
	stmt.Consequence = p.parseStatement()
	if stmt.Consequence == nil {
		return nil
	}
	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		p.nextToken()
		stmt.Alternative = p.parseStatement()
		if stmt.Alternative == nil {
			return nil
		}
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}
	stmt.Condition = p.parseCondition()
	if stmt.Condition == nil {
		return nil
	}
	p.nextToken()
	stmt.Body = p.parseStatement()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

// parseBlockStatement starts at '{' and ends at the matching '}'.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	p.nextToken()

	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.addError(diagnostics.ErrP001, p.curToken, "expected '}', got end of file")
			return nil
		}
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		block.Statements = append(block.Statements, stmt)
		p.nextToken()
	}
	return block
}
