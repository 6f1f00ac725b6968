package syntax

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alecthomas/structmeta/lexer"
)

func lex(t *testing.T, source string) *lexer.Cursor {
	t.Helper()
	c, err := lexer.LexString("", source)
	require.NoError(t, err)
	return c
}

func TestIdent(t *testing.T) {
	c := lex(t, "abc func")
	ident := Ident{}
	require.True(t, ident.Peek(c, 0))
	require.False(t, ident.Peek(c, 1))
	require.True(t, ident.PeekAny(c, 1))
	require.NoError(t, ident.Parse(c))
	require.Equal(t, "abc", ident.Name)
	err := ident.Parse(c)
	require.EqualError(t, err, "1:5: expected identifier, found keyword `func`")
	require.NoError(t, ident.ParseAny(c))
	require.Equal(t, "func", ident.Name)
	require.True(t, c.Empty())
}

func TestLitInt(t *testing.T) {
	c := lex(t, "12 -3 0x10 x")
	lit := LitInt{}
	require.NoError(t, lit.Parse(c))
	require.Equal(t, int64(12), lit.Value)
	require.True(t, lit.Peek(c, 0))
	require.NoError(t, lit.Parse(c))
	require.Equal(t, int64(-3), lit.Value)
	require.NoError(t, lit.Parse(c))
	require.Equal(t, int64(16), lit.Value)
	require.EqualError(t, lit.Parse(c), "1:12: expected integer literal")

	s := &lexer.Stream{}
	LitInt{Value: -42}.ToTokens(s)
	require.Equal(t, "- 42", s.String())
}

func TestLitStrAndBool(t *testing.T) {
	c := lex(t, `"hello" true 'x'`)
	str := LitStr{}
	require.NoError(t, str.Parse(c))
	require.Equal(t, "hello", str.Value)
	b := LitBool{}
	require.NoError(t, b.Parse(c))
	require.True(t, b.Value)
	require.NoError(t, str.Parse(c))
	require.Equal(t, "x", str.Value)

	s := &lexer.Stream{}
	LitStr{Value: "a\"b"}.ToTokens(s)
	LitBool{Value: false}.ToTokens(s)
	require.Equal(t, `"a\"b" false`, s.String())
}

func TestPunct(t *testing.T) {
	c := lex(t, "= => ::")
	eq := Eq{}
	require.True(t, eq.Peek(c, 0))
	require.NoError(t, eq.Parse(c))
	require.Equal(t, 1, eq.Pos.Column)
	require.EqualError(t, eq.Parse(c), "1:3: expected `=`")
	arrow := FatArrow{}
	require.NoError(t, arrow.Parse(c))
	sep := PathSep{}
	require.NoError(t, sep.Parse(c))
	require.True(t, c.Empty())
}

func TestDelimiters(t *testing.T) {
	c := lex(t, "(a) [b] {c}")
	paren := Paren{}
	inner, err := paren.ParseDelimited(c)
	require.NoError(t, err)
	require.Equal(t, "a", inner.Next().Value)
	require.True(t, inner.Empty())
	require.Equal(t, 3, paren.Close.Column)

	d := Delimiter{}
	inner, err = d.ParseDelimited(c)
	require.NoError(t, err)
	require.Equal(t, "[", d.Kind)
	require.Equal(t, "b", inner.Next().Value)

	_, err = (&Bracket{}).ParseDelimited(c)
	require.EqualError(t, err, "1:9: expected `[`")

	s := &lexer.Stream{}
	Delimiter{}.Surround(s, func(s *lexer.Stream) { Ident{Name: "x"}.ToTokens(s) })
	Brace{}.Surround(s, func(s *lexer.Stream) {})
	require.Equal(t, "( x ) { }", s.String())
}

func TestPunctuated(t *testing.T) {
	list := Punctuated[LitInt, Comma]{}
	require.NoError(t, list.ParseTerminated(lex(t, "1, 2, 3,")))
	require.Equal(t, 3, list.Len())
	require.Equal(t, 3, len(list.Puncts))
	s := &lexer.Stream{}
	list.ToTokens(s)
	require.Equal(t, "1 , 2 , 3 ,", s.String())

	err := list.ParseTerminated(lex(t, "1 2"))
	require.EqualError(t, err, "1:3: expected `,`")

	idents := Punctuated[Ident, Comma]{}
	require.NoError(t, idents.ParseTerminatedAny(lex(t, "type, x")))
	require.Equal(t, "type", idents.Items[0].Name)

	built := Punctuated[Ident, Comma]{}
	built.Push(Ident{Name: "a"})
	built.Push(Ident{Name: "b"})
	s = &lexer.Stream{}
	built.ToTokens(s)
	require.Equal(t, "a , b", s.String())
}
