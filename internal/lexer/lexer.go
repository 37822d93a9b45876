package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/quandary/internal/token"
)

// Lexer scans source text rune by rune. Lines and columns start at 1;
// columns count runes, not bytes.
type Lexer struct {
	src  string
	off  int  // byte offset of ch
	next int  // byte offset just after ch
	ch   rune // 0 once the input is exhausted
	line int
	col  int
}

// pairs holds operators spelled with two characters, keyed by the first.
var pairs = map[rune]map[rune]token.TokenType{
	':': {'=': token.ASSIGN},
	'=': {'=': token.EQ},
	'!': {'=': token.NOT_EQ},
	'<': {'=': token.LTE},
	'>': {'=': token.GTE},
	'&': {'&': token.AND},
	'|': {'|': token.OR},
}

// singles holds one-character tokens. '=', '&' and '|' only appear as the
// start of a pair and are illegal alone.
var singles = map[rune]token.TokenType{
	':': token.COLON,
	'!': token.BANG,
	'<': token.LT,
	'>': token.GT,
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.ASTERISK,
	'.': token.DOT,
	',': token.COMMA,
	';': token.SEMICOLON,
	'(': token.LPAREN,
	')': token.RPAREN,
	'{': token.LBRACE,
	'}': token.RBRACE,
	'[': token.LBRACKET,
	']': token.RBRACKET,
}

func New(input string) *Lexer {
	l := &Lexer{src: input, line: 1}
	l.advance()
	return l
}

func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	l.col++
	if l.next >= len(l.src) {
		l.off = len(l.src)
		l.ch = 0
		return
	}
	r, w := utf8.DecodeRuneInString(l.src[l.next:])
	l.off = l.next
	l.next += w
	l.ch = r
}

func (l *Lexer) peek() rune {
	if l.next >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.next:])
	return r
}

// NextToken returns the next token. After the end of input it keeps
// returning EOF.
func (l *Lexer) NextToken() token.Token {
	l.skipTrivia()
	line, col := l.line, l.col

	switch {
	case l.ch == 0:
		return token.Token{Type: token.EOF, Lexeme: "", Literal: "", Line: line, Column: col}
	case isLetter(l.ch):
		word := l.scan(func(r rune) bool { return isLetter(r) || isDigit(r) })
		return token.Token{Type: token.LookupIdent(word), Lexeme: word, Literal: word, Line: line, Column: col}
	case isDigit(l.ch):
		return l.number(line, col)
	}

	first := l.ch
	if typ, ok := pairs[first][l.peek()]; ok {
		lexeme := string(first) + string(l.peek())
		l.advance()
		l.advance()
		return token.Token{Type: typ, Lexeme: lexeme, Literal: lexeme, Line: line, Column: col}
	}
	typ, ok := singles[first]
	if !ok {
		typ = token.ILLEGAL
	}
	l.advance()
	return token.Token{Type: typ, Lexeme: string(first), Literal: string(first), Line: line, Column: col}
}

// scan consumes runes while keep holds and returns them.
func (l *Lexer) scan(keep func(rune) bool) string {
	start := l.off
	for l.ch != 0 && keep(l.ch) {
		l.advance()
	}
	return l.src[start:l.off]
}

// number scans a decimal literal. A literal outside the int64 range comes
// back as an ILLEGAL token carrying its text.
func (l *Lexer) number(line, col int) token.Token {
	digits := l.scan(isDigit)
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return token.Token{Type: token.ILLEGAL, Lexeme: digits, Literal: digits, Line: line, Column: col}
	}
	return token.Token{Type: token.INT, Lexeme: digits, Literal: n, Line: line, Column: col}
}

// skipTrivia drops whitespace, line comments and block comments. An
// unterminated block comment runs to the end of input.
func (l *Lexer) skipTrivia() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.advance()
		case l.ch == '/' && l.peek() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.advance()
			}
		case l.ch == '/' && l.peek() == '*':
			l.advance()
			l.advance()
			for l.ch != 0 && !(l.ch == '*' && l.peek() == '/') {
				l.advance()
			}
			if l.ch != 0 {
				l.advance()
				l.advance()
			}
		default:
			return
		}
	}
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
