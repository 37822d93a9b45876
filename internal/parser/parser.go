package parser

import (
	"fmt"

	"github.com/funvibe/quandary/internal/ast"
	"github.com/funvibe/quandary/internal/diagnostics"
	"github.com/funvibe/quandary/internal/pipeline"
	"github.com/funvibe/quandary/internal/token"
)

// MaxRecursionDepth bounds expression and statement nesting.
const MaxRecursionDepth = 1000

const (
	_ int = iota
	LOWEST
	LOGIC_OR    // ||
	LOGIC_AND   // &&
	EQUALS      // == !=
	LESSGREATER // < <= > >=
	CONS        // . (right associative)
	SUM         // + -
	PRODUCT     // *
	PREFIX      // -x !x (T)x
)

var precedences = map[token.TokenType]int{
	token.OR:       LOGIC_OR,
	token.AND:      LOGIC_AND,
	token.EQ:       EQUALS,
	token.NOT_EQ:   EQUALS,
	token.LT:       LESSGREATER,
	token.LTE:      LESSGREATER,
	token.GT:       LESSGREATER,
	token.GTE:      LESSGREATER,
	token.DOT:      CONS,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	stream pipeline.TokenStream
	ctx    *pipeline.PipelineContext

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn

	depth               int
	inRecursionRecovery bool
}

func New(stream pipeline.TokenStream, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{stream: stream, ctx: ctx}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifierOrCall)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.TRUE, p.parseBoolean)
	p.registerPrefix(token.FALSE, p.parseBoolean)
	p.registerPrefix(token.NIL, p.parseNil)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.BANG, p.parsePrefixExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedOrCast)
	p.registerPrefix(token.LBRACKET, p.parseConcurrentExpression)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	for _, tt := range []token.TokenType{
		token.OR, token.AND, token.EQ, token.NOT_EQ,
		token.LT, token.LTE, token.GT, token.GTE,
		token.PLUS, token.MINUS, token.ASTERISK,
	} {
		p.registerInfix(tt, p.parseInfixExpression)
	}
	p.registerInfix(token.DOT, p.parseRightAssocInfixExpression)

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.stream.Next()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek advances when the next token has type t and reports P001 otherwise.
func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	p.addError(diagnostics.ErrP001, p.peekToken, "expected %s, got %s", describe(t), describeToken(p.peekToken))
}

func (p *Parser) noPrefixParseFnError(tok token.Token) {
	p.addError(diagnostics.ErrP001, tok, "unexpected %s in expression", describeToken(tok))
}

func (p *Parser) addError(code diagnostics.ErrorCode, tok token.Token, format string, args ...interface{}) {
	// Lexer diagnostics already cover illegal tokens.
	if tok.Type == token.ILLEGAL {
		return
	}
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(code, tok, format, args...))
}

func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}
	return LOWEST
}

// skipToFunction advances to the next top level 'fn' (or 'mut fn') after an error.
func (p *Parser) skipToFunction() {
	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.FN) {
			return
		}
		if p.curTokenIs(token.MUT) && p.peekTokenIs(token.FN) {
			return
		}
		p.nextToken()
	}
}

func describe(t token.TokenType) string {
	switch t {
	case token.EOF:
		return "end of file"
	case token.IDENT:
		return "identifier"
	case token.INT:
		return "integer"
	}
	return fmt.Sprintf("'%s'", string(t))
}

func describeToken(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of file"
	case token.IDENT, token.INT:
		return fmt.Sprintf("%s '%s'", describe(tok.Type), tok.Lexeme)
	}
	return fmt.Sprintf("'%s'", tok.Lexeme)
}
