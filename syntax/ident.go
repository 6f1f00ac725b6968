package syntax

import (
	"go/token"

	"github.com/alecthomas/structmeta/lexer"
)

// IsKeyword reports whether name is a reserved word.
//
// Reserved words are rejected by Ident.Parse and accepted by Ident.ParseAny.
func IsKeyword(name string) bool {
	return token.IsKeyword(name)
}

// Ident is an identifier.
type Ident struct {
	Pos  lexer.Position
	Name string
}

func (i Ident) String() string { return i.Name }

// Parse an identifier that is not a reserved word.
func (i *Ident) Parse(c *lexer.Cursor) error {
	t := c.Peek(0)
	if t.Type != lexer.Ident {
		return c.Errorf("expected identifier")
	}
	if IsKeyword(t.Value) {
		return c.Errorf("expected identifier, found keyword `%s`", t.Value)
	}
	c.Next()
	*i = Ident{Pos: t.Pos, Name: t.Value}
	return nil
}

// ParseAny parses any identifier, including reserved words.
func (i *Ident) ParseAny(c *lexer.Cursor) error {
	t := c.Peek(0)
	if t.Type != lexer.Ident {
		return c.Errorf("expected identifier")
	}
	c.Next()
	*i = Ident{Pos: t.Pos, Name: t.Value}
	return nil
}

func (Ident) Peek(c *lexer.Cursor, n int) bool {
	t := c.Peek(n)
	return t.Type == lexer.Ident && !IsKeyword(t.Value)
}

func (Ident) PeekAny(c *lexer.Cursor, n int) bool {
	return c.Peek(n).Type == lexer.Ident
}

func (i Ident) ToTokens(s *lexer.Stream) {
	s.Append(lexer.Token{Type: lexer.Ident, Value: i.Name, Pos: i.Pos})
}
