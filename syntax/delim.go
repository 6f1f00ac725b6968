package syntax

import "github.com/alecthomas/structmeta/lexer"

// Paren is a pair of `(` `)` delimiters.
type Paren struct{ Open, Close lexer.Position }

// ParseDelimited consumes a parenthesised group and returns a cursor over its contents.
func (p *Paren) ParseDelimited(c *lexer.Cursor) (*lexer.Cursor, error) {
	return parseGroup(c, "(", &p.Open, &p.Close)
}

func (Paren) Peek(c *lexer.Cursor, n int) bool { return c.Peek(n).Is("(") }

// Surround emits body enclosed in parentheses.
func (p Paren) Surround(s *lexer.Stream, body func(s *lexer.Stream)) {
	surround(s, "(", p.Open, p.Close, body)
}

// Bracket is a pair of `[` `]` delimiters.
type Bracket struct{ Open, Close lexer.Position }

func (b *Bracket) ParseDelimited(c *lexer.Cursor) (*lexer.Cursor, error) {
	return parseGroup(c, "[", &b.Open, &b.Close)
}

func (Bracket) Peek(c *lexer.Cursor, n int) bool { return c.Peek(n).Is("[") }

func (b Bracket) Surround(s *lexer.Stream, body func(s *lexer.Stream)) {
	surround(s, "[", b.Open, b.Close, body)
}

// Brace is a pair of `{` `}` delimiters.
type Brace struct{ Open, Close lexer.Position }

func (b *Brace) ParseDelimited(c *lexer.Cursor) (*lexer.Cursor, error) {
	return parseGroup(c, "{", &b.Open, &b.Close)
}

func (Brace) Peek(c *lexer.Cursor, n int) bool { return c.Peek(n).Is("{") }

func (b Brace) Surround(s *lexer.Stream, body func(s *lexer.Stream)) {
	surround(s, "{", b.Open, b.Close, body)
}

// Delimiter is any one of `()`, `[]` or `{}`. Kind holds the opening
// delimiter that was parsed, and defaults to "(" when serializing.
type Delimiter struct {
	Kind        string
	Open, Close lexer.Position
}

func (d *Delimiter) ParseDelimited(c *lexer.Cursor) (*lexer.Cursor, error) {
	t := c.Peek(0)
	if !t.IsOpen() {
		return nil, c.Errorf("expected '(', '[' or '{', found `%s`", t)
	}
	d.Kind = t.Value
	return parseGroup(c, t.Value, &d.Open, &d.Close)
}

func (Delimiter) Peek(c *lexer.Cursor, n int) bool { return c.Peek(n).IsOpen() }

func (d Delimiter) Surround(s *lexer.Stream, body func(s *lexer.Stream)) {
	kind := d.Kind
	if kind == "" {
		kind = "("
	}
	surround(s, kind, d.Open, d.Close, body)
}

func parseGroup(c *lexer.Cursor, open string, openPos, closePos *lexer.Position) (*lexer.Cursor, error) {
	group, start, end, err := c.Group(open)
	if err != nil {
		return nil, err
	}
	*openPos, *closePos = start.Pos, end.Pos
	return group, nil
}

func surround(s *lexer.Stream, open string, openPos, closePos lexer.Position, body func(s *lexer.Stream)) {
	s.Append(punctToken(open, openPos))
	body(s)
	s.Append(punctToken(lexer.Closing(open), closePos))
}
