package syntax

import (
	"strconv"

	"github.com/alecthomas/structmeta/lexer"
)

// LitStr is a string literal.
type LitStr struct {
	Pos   lexer.Position
	Value string
}

func (l *LitStr) Parse(c *lexer.Cursor) error {
	t := c.Peek(0)
	if t.Type != lexer.String {
		return c.Errorf("expected string literal")
	}
	c.Next()
	*l = LitStr{Pos: t.Pos, Value: t.Value}
	return nil
}

func (LitStr) Peek(c *lexer.Cursor, n int) bool {
	return c.Peek(n).Type == lexer.String
}

func (l LitStr) ToTokens(s *lexer.Stream) {
	s.Append(lexer.Token{Type: lexer.String, Value: l.Value, Pos: l.Pos})
}

// LitInt is an integer literal, optionally negated.
type LitInt struct {
	Pos   lexer.Position
	Value int64
}

func (l *LitInt) Parse(c *lexer.Cursor) error {
	t := c.Peek(0)
	neg := false
	if t.Is("-") && c.Peek(1).Type == lexer.Int {
		neg = true
		t = c.Peek(1)
	}
	if t.Type != lexer.Int {
		return c.Errorf("expected integer literal")
	}
	text := t.Value
	if neg {
		text = "-" + text
	}
	value, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		return lexer.Errorf(t.Pos, "invalid integer literal %q: %s", text, err)
	}
	pos := c.Next().Pos
	if neg {
		c.Next()
	}
	*l = LitInt{Pos: pos, Value: value}
	return nil
}

func (LitInt) Peek(c *lexer.Cursor, n int) bool {
	t := c.Peek(n)
	return t.Type == lexer.Int || (t.Is("-") && c.Peek(n+1).Type == lexer.Int)
}

func (l LitInt) ToTokens(s *lexer.Stream) {
	if l.Value < 0 {
		s.Append(lexer.Token{Type: lexer.Punct, Value: "-", Pos: l.Pos})
		s.Append(lexer.Token{Type: lexer.Int, Value: strconv.FormatUint(uint64(-l.Value), 10)})
		return
	}
	s.Append(lexer.Token{Type: lexer.Int, Value: strconv.FormatInt(l.Value, 10), Pos: l.Pos})
}

// LitFloat is a floating point literal.
type LitFloat struct {
	Pos   lexer.Position
	Value float64
}

func (l *LitFloat) Parse(c *lexer.Cursor) error {
	t := c.Peek(0)
	if t.Type != lexer.Float && t.Type != lexer.Int {
		return c.Errorf("expected float literal")
	}
	value, err := strconv.ParseFloat(t.Value, 64)
	if err != nil {
		return lexer.Errorf(t.Pos, "invalid float literal %q: %s", t.Value, err)
	}
	c.Next()
	*l = LitFloat{Pos: t.Pos, Value: value}
	return nil
}

func (LitFloat) Peek(c *lexer.Cursor, n int) bool {
	t := c.Peek(n)
	return t.Type == lexer.Float
}

func (l LitFloat) ToTokens(s *lexer.Stream) {
	s.Append(lexer.Token{Type: lexer.Float, Value: strconv.FormatFloat(l.Value, 'g', -1, 64), Pos: l.Pos})
}

// LitBool is the identifier true or false.
type LitBool struct {
	Pos   lexer.Position
	Value bool
}

func (l *LitBool) Parse(c *lexer.Cursor) error {
	t := c.Peek(0)
	if t.Type != lexer.Ident || (t.Value != "true" && t.Value != "false") {
		return c.Errorf("expected `true` or `false`")
	}
	c.Next()
	*l = LitBool{Pos: t.Pos, Value: t.Value == "true"}
	return nil
}

func (LitBool) Peek(c *lexer.Cursor, n int) bool {
	t := c.Peek(n)
	return t.Type == lexer.Ident && (t.Value == "true" || t.Value == "false")
}

func (l LitBool) ToTokens(s *lexer.Stream) {
	s.Append(lexer.Token{Type: lexer.Ident, Value: strconv.FormatBool(l.Value), Pos: l.Pos})
}
