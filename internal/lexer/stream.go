package lexer

import "github.com/funvibe/quandary/internal/token"

// TokenStream buffers the whole token sequence so the parser can look ahead.
type TokenStream struct {
	tokens []token.Token
	pos    int
}

// NewTokenStream drains l. The final token is always EOF.
func NewTokenStream(l *Lexer) *TokenStream {
	s := &TokenStream{}
	for {
		tok := l.NextToken()
		s.tokens = append(s.tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return s
}

// Next returns the next token, repeating EOF at the end.
func (s *TokenStream) Next() token.Token {
	tok := s.tokens[s.pos]
	if s.pos < len(s.tokens)-1 {
		s.pos++
	}
	return tok
}

// Peek returns up to n upcoming tokens without consuming them.
func (s *TokenStream) Peek(n int) []token.Token {
	end := s.pos + n
	if end > len(s.tokens) {
		end = len(s.tokens)
	}
	return s.tokens[s.pos:end]
}

// Tokens returns every scanned token.
func (s *TokenStream) Tokens() []token.Token {
	return s.tokens
}
