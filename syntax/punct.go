package syntax

import "github.com/alecthomas/structmeta/lexer"

func parsePunct(c *lexer.Cursor, punct string) (lexer.Position, error) {
	t := c.Peek(0)
	if !t.Is(punct) {
		return t.Pos, c.Errorf("expected `%s`", punct)
	}
	c.Next()
	return t.Pos, nil
}

func punctToken(punct string, pos lexer.Position) lexer.Token {
	return lexer.Token{Type: lexer.Punct, Value: punct, Pos: pos}
}

// Eq is the `=` token.
type Eq struct{ Pos lexer.Position }

func (Eq) String() string { return "=" }

func (p *Eq) Parse(c *lexer.Cursor) (err error) {
	p.Pos, err = parsePunct(c, "=")
	return
}

func (Eq) Peek(c *lexer.Cursor, n int) bool { return c.Peek(n).Is("=") }

func (p Eq) ToTokens(s *lexer.Stream) { s.Append(punctToken("=", p.Pos)) }

// Comma is the `,` token.
type Comma struct{ Pos lexer.Position }

func (Comma) String() string { return "," }

func (p *Comma) Parse(c *lexer.Cursor) (err error) {
	p.Pos, err = parsePunct(c, ",")
	return
}

func (Comma) Peek(c *lexer.Cursor, n int) bool { return c.Peek(n).Is(",") }

func (p Comma) ToTokens(s *lexer.Stream) { s.Append(punctToken(",", p.Pos)) }

// Semi is the `;` token.
type Semi struct{ Pos lexer.Position }

func (Semi) String() string { return ";" }

func (p *Semi) Parse(c *lexer.Cursor) (err error) {
	p.Pos, err = parsePunct(c, ";")
	return
}

func (Semi) Peek(c *lexer.Cursor, n int) bool { return c.Peek(n).Is(";") }

func (p Semi) ToTokens(s *lexer.Stream) { s.Append(punctToken(";", p.Pos)) }

// Colon is the `:` token.
type Colon struct{ Pos lexer.Position }

func (Colon) String() string { return ":" }

func (p *Colon) Parse(c *lexer.Cursor) (err error) {
	p.Pos, err = parsePunct(c, ":")
	return
}

func (Colon) Peek(c *lexer.Cursor, n int) bool { return c.Peek(n).Is(":") }

func (p Colon) ToTokens(s *lexer.Stream) { s.Append(punctToken(":", p.Pos)) }

// Dot is the `.` token.
type Dot struct{ Pos lexer.Position }

func (Dot) String() string { return "." }

func (p *Dot) Parse(c *lexer.Cursor) (err error) {
	p.Pos, err = parsePunct(c, ".")
	return
}

func (Dot) Peek(c *lexer.Cursor, n int) bool { return c.Peek(n).Is(".") }

func (p Dot) ToTokens(s *lexer.Stream) { s.Append(punctToken(".", p.Pos)) }

// Plus is the `+` token.
type Plus struct{ Pos lexer.Position }

func (Plus) String() string { return "+" }

func (p *Plus) Parse(c *lexer.Cursor) (err error) {
	p.Pos, err = parsePunct(c, "+")
	return
}

func (Plus) Peek(c *lexer.Cursor, n int) bool { return c.Peek(n).Is("+") }

func (p Plus) ToTokens(s *lexer.Stream) { s.Append(punctToken("+", p.Pos)) }

// Minus is the `-` token.
type Minus struct{ Pos lexer.Position }

func (Minus) String() string { return "-" }

func (p *Minus) Parse(c *lexer.Cursor) (err error) {
	p.Pos, err = parsePunct(c, "-")
	return
}

func (Minus) Peek(c *lexer.Cursor, n int) bool { return c.Peek(n).Is("-") }

func (p Minus) ToTokens(s *lexer.Stream) { s.Append(punctToken("-", p.Pos)) }

// Star is the `*` token.
type Star struct{ Pos lexer.Position }

func (Star) String() string { return "*" }

func (p *Star) Parse(c *lexer.Cursor) (err error) {
	p.Pos, err = parsePunct(c, "*")
	return
}

func (Star) Peek(c *lexer.Cursor, n int) bool { return c.Peek(n).Is("*") }

func (p Star) ToTokens(s *lexer.Stream) { s.Append(punctToken("*", p.Pos)) }

// Slash is the `/` token.
type Slash struct{ Pos lexer.Position }

func (Slash) String() string { return "/" }

func (p *Slash) Parse(c *lexer.Cursor) (err error) {
	p.Pos, err = parsePunct(c, "/")
	return
}

func (Slash) Peek(c *lexer.Cursor, n int) bool { return c.Peek(n).Is("/") }

func (p Slash) ToTokens(s *lexer.Stream) { s.Append(punctToken("/", p.Pos)) }

// At is the `@` token.
type At struct{ Pos lexer.Position }

func (At) String() string { return "@" }

func (p *At) Parse(c *lexer.Cursor) (err error) {
	p.Pos, err = parsePunct(c, "@")
	return
}

func (At) Peek(c *lexer.Cursor, n int) bool { return c.Peek(n).Is("@") }

func (p At) ToTokens(s *lexer.Stream) { s.Append(punctToken("@", p.Pos)) }

// Pound is the `#` token.
type Pound struct{ Pos lexer.Position }

func (Pound) String() string { return "#" }

func (p *Pound) Parse(c *lexer.Cursor) (err error) {
	p.Pos, err = parsePunct(c, "#")
	return
}

func (Pound) Peek(c *lexer.Cursor, n int) bool { return c.Peek(n).Is("#") }

func (p Pound) ToTokens(s *lexer.Stream) { s.Append(punctToken("#", p.Pos)) }

// Bang is the `!` token.
type Bang struct{ Pos lexer.Position }

func (Bang) String() string { return "!" }

func (p *Bang) Parse(c *lexer.Cursor) (err error) {
	p.Pos, err = parsePunct(c, "!")
	return
}

func (Bang) Peek(c *lexer.Cursor, n int) bool { return c.Peek(n).Is("!") }

func (p Bang) ToTokens(s *lexer.Stream) { s.Append(punctToken("!", p.Pos)) }

// FatArrow is the `=>` token.
type FatArrow struct{ Pos lexer.Position }

func (FatArrow) String() string { return "=>" }

func (p *FatArrow) Parse(c *lexer.Cursor) (err error) {
	p.Pos, err = parsePunct(c, "=>")
	return
}

func (FatArrow) Peek(c *lexer.Cursor, n int) bool { return c.Peek(n).Is("=>") }

func (p FatArrow) ToTokens(s *lexer.Stream) { s.Append(punctToken("=>", p.Pos)) }

// RArrow is the `->` token.
type RArrow struct{ Pos lexer.Position }

func (RArrow) String() string { return "->" }

func (p *RArrow) Parse(c *lexer.Cursor) (err error) {
	p.Pos, err = parsePunct(c, "->")
	return
}

func (RArrow) Peek(c *lexer.Cursor, n int) bool { return c.Peek(n).Is("->") }

func (p RArrow) ToTokens(s *lexer.Stream) { s.Append(punctToken("->", p.Pos)) }

// PathSep is the `::` token.
type PathSep struct{ Pos lexer.Position }

func (PathSep) String() string { return "::" }

func (p *PathSep) Parse(c *lexer.Cursor) (err error) {
	p.Pos, err = parsePunct(c, "::")
	return
}

func (PathSep) Peek(c *lexer.Cursor, n int) bool { return c.Peek(n).Is("::") }

func (p PathSep) ToTokens(s *lexer.Stream) { s.Append(punctToken("::", p.Pos)) }
