package lexer

import (
	"fmt"
	"strconv"
)

// Token types produced by Lex.
const (
	// EOF represents an end of file.
	EOF rune = -(iota + 1)
	Ident
	Int
	Float
	String
	Punct
)

var symbols = map[string]rune{
	"EOF":    EOF,
	"Ident":  Ident,
	"Int":    Int,
	"Float":  Float,
	"String": String,
	"Punct":  Punct,
}

// Symbols returns a map of symbolic names to the corresponding token types.
func Symbols() map[string]rune {
	out := make(map[string]rune, len(symbols))
	for k, v := range symbols {
		out[k] = v
	}
	return out
}

// SymbolsByRune returns a map of symbolic names keyed by token type.
func SymbolsByRune() map[rune]string {
	out := map[rune]string{}
	for s, r := range symbols {
		out[r] = s
	}
	return out
}

// EOFToken creates a new EOF token at the given position.
func EOFToken(pos Position) Token {
	return Token{Type: EOF, Pos: pos}
}

// Position of a token.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) GoString() string {
	return fmt.Sprintf("Position{Filename: %q, Offset: %d, Line: %d, Column: %d}",
		p.Filename, p.Offset, p.Line, p.Column)
}

func (p Position) String() string {
	filename := p.Filename
	if filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", filename, p.Line, p.Column)
}

// A Token returned by a Lexer.
//
// String tokens hold their unquoted value.
type Token struct {
	Type  rune
	Value string
	Pos   Position
}

// IdentToken creates an identifier token.
func IdentToken(name string) Token { return Token{Type: Ident, Value: name} }

// PunctToken creates a punctuation token, including delimiters.
func PunctToken(value string) Token { return Token{Type: Punct, Value: value} }

// StringToken creates a string literal token from its unquoted value.
func StringToken(value string) Token { return Token{Type: String, Value: value} }

// IntToken creates an integer literal token.
func IntToken(value int64) Token {
	return Token{Type: Int, Value: strconv.FormatInt(value, 10)}
}

// EOF returns true if this Token is an EOF token.
func (t Token) EOF() bool {
	return t.Type == EOF
}

// Is returns true if the token is the given punctuation.
func (t Token) Is(punct string) bool {
	return t.Type == Punct && t.Value == punct
}

func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "<EOF>"
	case String:
		return strconv.Quote(t.Value)
	}
	return t.Value
}

func (t Token) GoString() string {
	if t.Pos == (Position{}) {
		return fmt.Sprintf("Token{%d, %q}", t.Type, t.Value)
	}
	return fmt.Sprintf("Token@%s{%d, %q}", t.Pos.String(), t.Type, t.Value)
}

var delimiters = map[string]string{
	"(": ")",
	"[": "]",
	"{": "}",
}

// Closing returns the closing delimiter for an opening one, or "" if open is not a delimiter.
func Closing(open string) string {
	return delimiters[open]
}

// IsOpen returns true if the token opens a delimited group.
func (t Token) IsOpen() bool {
	return t.Type == Punct && delimiters[t.Value] != ""
}

// IsClose returns true if the token closes a delimited group.
func (t Token) IsClose() bool {
	return t.Is(")") || t.Is("]") || t.Is("}")
}
