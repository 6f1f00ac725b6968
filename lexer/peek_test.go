package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alecthomas/structmeta/lexer"
)

func mustCursor(t *testing.T, source string) *lexer.Cursor {
	t.Helper()
	c, err := lexer.LexString("", source)
	require.NoError(t, err)
	return c
}

func TestCursorPeekNext(t *testing.T) {
	c := mustCursor(t, "a b c")
	require.Equal(t, "a", c.Peek(0).Value)
	require.Equal(t, "c", c.Peek(2).Value)
	require.True(t, c.Peek(3).EOF())
	require.Equal(t, "a", c.Next().Value)
	require.Equal(t, 1, c.Cursor())
	c.Next()
	c.Next()
	require.True(t, c.Empty())
	require.True(t, c.Next().EOF())
	require.Equal(t, lexer.Position{Offset: 5, Line: 1, Column: 6}, c.Pos())
}

func TestCursorForkAdvance(t *testing.T) {
	c := mustCursor(t, "a b c")
	fork := c.Fork()
	fork.Next()
	fork.Next()
	require.Equal(t, "a", c.Peek(0).Value, "fork must not move the parent")
	c.AdvanceTo(fork)
	require.Equal(t, "c", c.Peek(0).Value)
}

func TestCursorAdvanceToForeignForkPanics(t *testing.T) {
	c := mustCursor(t, "a b c")
	other := mustCursor(t, "x")
	require.Panics(t, func() { c.AdvanceTo(other) })
}

func TestCursorGroup(t *testing.T) {
	c := mustCursor(t, "( a [ b ] ) c")
	group, open, closing, err := c.Group("(")
	require.NoError(t, err)
	require.Equal(t, "(", open.Value)
	require.Equal(t, ")", closing.Value)
	require.Equal(t, "c", c.Peek(0).Value)
	require.Equal(t, "a", group.Next().Value)
	inner, _, _, err := group.Group("[")
	require.NoError(t, err)
	require.Equal(t, "b", inner.Next().Value)
	require.True(t, inner.Empty())
	require.True(t, group.Empty())
	require.Equal(t, ")", group.Peek(0).Value, "an exhausted group reports its closing delimiter")
}

func TestCursorGroupErrors(t *testing.T) {
	c := mustCursor(t, "a")
	_, _, _, err := c.Group("(")
	require.EqualError(t, err, "1:1: expected `(`")

	c = mustCursor(t, "( a ]")
	_, _, _, err = c.Group("(")
	require.EqualError(t, err, "1:5: mismatched closing delimiter `]`")

	c = mustCursor(t, "( a")
	_, _, _, err = c.Group("(")
	require.EqualError(t, err, "1:1: unclosed delimiter `(`")
}

func TestCursorRemaining(t *testing.T) {
	c := mustCursor(t, "a b")
	c.Next()
	require.Len(t, c.Remaining(), 1)
}

func TestStreamSurround(t *testing.T) {
	s := &lexer.Stream{}
	s.Append(lexer.IdentToken("x"))
	s.Surround("{", func(s *lexer.Stream) {
		s.Append(lexer.StringToken("k"), lexer.PunctToken("="), lexer.IntToken(1))
	})
	require.Equal(t, `x { "k" = 1 }`, s.String())
	c := s.Cursor()
	c.Next()
	group, _, _, err := c.Group("{")
	require.NoError(t, err)
	require.Len(t, group.Remaining(), 3)
	require.True(t, c.Empty())
}
