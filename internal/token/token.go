package token

import "fmt"

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	IDENT TokenType = "IDENT"
	INT   TokenType = "INT"

	// Operators
	ASSIGN   TokenType = ":="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	BANG     TokenType = "!"
	DOT      TokenType = "."
	LT       TokenType = "<"
	LTE      TokenType = "<="
	GT       TokenType = ">"
	GTE      TokenType = ">="
	EQ       TokenType = "=="
	NOT_EQ   TokenType = "!="
	AND      TokenType = "&&"
	OR       TokenType = "||"

	// Delimiters
	COMMA     TokenType = ","
	COLON     TokenType = ":"
	SEMICOLON TokenType = ";"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"

	// Keywords
	FN     TokenType = "FN"
	MUT    TokenType = "MUT"
	CONST  TokenType = "CONST"
	IF     TokenType = "IF"
	ELSE   TokenType = "ELSE"
	WHILE  TokenType = "WHILE"
	RETURN TokenType = "RETURN"
	PRINT  TokenType = "PRINT"
	TRUE   TokenType = "TRUE"
	FALSE  TokenType = "FALSE"
	NIL    TokenType = "NIL"

	// Type names
	TYPE_INT  TokenType = "Int"
	TYPE_BOOL TokenType = "Bool"
	TYPE_REF  TokenType = "Ref"
	TYPE_Q    TokenType = "Q"
)

var keywords = map[string]TokenType{
	"fn":     FN,
	"mut":    MUT,
	"const":  CONST,
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"return": RETURN,
	"print":  PRINT,
	"true":   TRUE,
	"false":  FALSE,
	"nil":    NIL,
	"Int":    TYPE_INT,
	"Bool":   TYPE_BOOL,
	"Ref":    TYPE_REF,
	"Q":      TYPE_Q,
}

// LookupIdent returns the keyword type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsType reports whether t names one of the value types.
func IsType(t TokenType) bool {
	switch t {
	case TYPE_INT, TYPE_BOOL, TYPE_REF, TYPE_Q:
		return true
	}
	return false
}

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{} // int64 for INT, string otherwise
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q at %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}
