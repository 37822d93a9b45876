// Package diagnostics defines coded compile-time errors produced by the
// lexer, parser and analyzer.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/funvibe/quandary/internal/token"
)

type ErrorCode string

// Parse errors
const (
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // illegal character
	ErrP003 ErrorCode = "P003" // malformed integer literal
	ErrP004 ErrorCode = "P004" // expected type name
	ErrP005 ErrorCode = "P005" // malformed concurrent expression
	ErrP006 ErrorCode = "P006" // expression too complex
)

// Static checking errors
const (
	ErrA001 ErrorCode = "A001" // duplicate function
	ErrA002 ErrorCode = "A002" // missing or malformed entry point
	ErrA003 ErrorCode = "A003" // unknown function
	ErrA004 ErrorCode = "A004" // undeclared variable
	ErrA005 ErrorCode = "A005" // assignment to immutable binding
	ErrA006 ErrorCode = "A006" // function shadows a built-in
)

type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
}

func NewError(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &DiagnosticError{Code: code, Token: tok, Message: msg}
}

func (e *DiagnosticError) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(":")
	}
	if e.Token.Line > 0 {
		fmt.Fprintf(&b, "%d:%d: ", e.Token.Line, e.Token.Column)
	} else if e.File != "" {
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	return b.String()
}

// IsParse reports whether the error comes from lexing or parsing.
func (e *DiagnosticError) IsParse() bool {
	return strings.HasPrefix(string(e.Code), "P")
}
