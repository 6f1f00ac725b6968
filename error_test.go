package structmeta

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alecthomas/structmeta/lexer"
)

func TestErrorReporting(t *testing.T) {
	type grammar struct {
		Name  ident
		Value ident
	}

	parser := mustTestParser[grammar](t)
	_, err := parser.ParseString("test.txt", "a\n  1")
	require.EqualError(t, err, "test.txt:2:3: expected identifier")
	perr := err.(Error)
	require.Equal(t, "expected identifier", perr.Message())
	require.Equal(t, lexer.Position{Filename: "test.txt", Line: 2, Column: 3, Offset: 4}, perr.Position())
}

func TestAnnotateError(t *testing.T) {
	pos := lexer.Position{Filename: "f", Line: 1, Column: 2}
	err := AnnotateError(pos, errors.New("boom"))
	require.EqualError(t, err, "f:1:2: boom")

	existing := Errorf(lexer.Position{Line: 3, Column: 4}, "inner %d", 1)
	require.Equal(t, existing, AnnotateError(pos, existing))
	require.EqualError(t, existing, "3:4: inner 1")
}

func TestDumpError(t *testing.T) {
	err := &DumpError{Type: "pkg.T", Code: "func (*T) Parse() {}"}
	require.EqualError(t, err, "pkg.T: dump requested\nfunc (*T) Parse() {}")
}
