package parser

import (
	"github.com/funvibe/quandary/internal/ast"
	"github.com/funvibe/quandary/internal/diagnostics"
	"github.com/funvibe/quandary/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > MaxRecursionDepth {
		if !p.inRecursionRecovery {
			p.addError(diagnostics.ErrP006, p.curToken, "expression too complex: recursion depth limit exceeded")
			p.inRecursionRecovery = true
		}
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	leftExp := prefix()
	if leftExp == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
		if leftExp == nil {
			return nil
		}
	}
	return leftExp
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expression := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
	}
	p.nextToken()
	expression.Right = p.parseExpression(PREFIX)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
		Left:     left,
	}
	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}
	return expression
}

// parseRightAssocInfixExpression parses the pair constructor:
// 1 . 2 . nil parses as 1 . (2 . nil)
func (p *Parser) parseRightAssocInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
		Left:     left,
	}
	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence - 1)
	if expression.Right == nil {
		return nil
	}
	return expression
}

// parseGroupedOrCast handles '(' expr ')' and the cast form '(' type ')' expr.
func (p *Parser) parseGroupedOrCast() ast.Expression {
	if token.IsType(p.peekToken.Type) {
		cast := &ast.CastExpression{Token: p.curToken}
		p.nextToken()
		cast.Target = &ast.TypeName{Token: p.curToken, Name: p.curToken.Lexeme}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		p.nextToken()
		cast.Right = p.parseExpression(PREFIX)
		if cast.Right == nil {
			return nil
		}
		return cast
	}

	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if exp == nil || !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

// concurrentOperators are the operators allowed at the top of [e1 OP e2].
var concurrentOperators = map[string]bool{"+": true, "-": true, "*": true, ".": true}

// parseConcurrentExpression parses '[' e1 OP e2 ']'. The bracketed expression
// is parsed normally and its outermost operator becomes the combine step.
func (p *Parser) parseConcurrentExpression() ast.Expression {
	open := p.curToken
	p.nextToken()
	inner := p.parseExpression(LOWEST)
	if inner == nil || !p.expectPeek(token.RBRACKET) {
		return nil
	}

	infix, ok := inner.(*ast.InfixExpression)
	if !ok || !concurrentOperators[infix.Operator] {
		p.addError(diagnostics.ErrP005, open, "concurrent expression must have the form [e1 OP e2] with OP one of + - * .")
		return nil
	}
	return &ast.ConcurrentExpression{
		Token:    open,
		Left:     infix.Left,
		Operator: infix.Operator,
		Right:    infix.Right,
	}
}
