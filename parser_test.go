package structmeta

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/alecthomas/structmeta/lexer"
	"github.com/alecthomas/structmeta/syntax"
)

var ignorePositions = cmpopts.IgnoreTypes(lexer.Position{})

func mustTestParser[T any](t *testing.T, options ...Option) *Parser[T] {
	t.Helper()
	parser, err := Build[T](options...)
	require.NoError(t, err)
	return parser
}

func requireSame(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if diff := cmp.Diff(expected, actual, ignorePositions); diff != "" {
		t.Fatalf("mismatch (-expected +actual):\n%s\nactual: %s", diff, repr.String(actual, repr.Indent("  ")))
	}
}

// Parses source and checks that re-emitting and re-parsing gives the same value.
func requireRoundTrip[T any](t *testing.T, parser *Parser[T], source string) *T {
	t.Helper()
	actual, err := parser.ParseString("", source)
	require.NoError(t, err)
	stream := &lexer.Stream{}
	parser.ToTokens(stream, actual)
	again, err := parser.Parse(stream.Cursor())
	require.NoError(t, err, stream.String())
	requireSame(t, actual, again)
	return actual
}

type ident = syntax.Ident

func TestParseStruct(t *testing.T) {
	type grammar struct {
		Keyword ident
		Name    ident
		Eq      syntax.Eq
		Value   syntax.LitInt
	}

	parser := mustTestParser[grammar](t)
	actual, err := parser.ParseString("", "let x = 10")
	require.NoError(t, err)
	requireSame(t, &grammar{
		Keyword: ident{Name: "let"},
		Name:    ident{Name: "x"},
		Value:   syntax.LitInt{Value: 10},
	}, actual)
	require.Equal(t, lexer.Position{Line: 1, Column: 9, Offset: 8}, actual.Value.Pos)
	require.Equal(t, "let x = 10", parser.String(actual))
}

func TestParseTrailingTokens(t *testing.T) {
	type grammar struct {
		Name ident
	}

	parser := mustTestParser[grammar](t)
	_, err := parser.ParseString("", "a b")
	require.EqualError(t, err, "1:3: unexpected token `b`")

	parser = mustTestParser[grammar](t, AllowTrailing(true))
	c, err := lexer.LexString("", "a b")
	require.NoError(t, err)
	actual, err := parser.Parse(c)
	require.NoError(t, err)
	require.Equal(t, "a", actual.Name.Name)
	require.Equal(t, "b", c.Peek(0).Value)
}

func TestParseGroup(t *testing.T) {
	type grammar struct {
		Keyword ident
		Name    ident
		Paren   syntax.Paren                           `tokens:"'('"`
		Args    syntax.Punctuated[ident, syntax.Comma] `parse:"terminated"`
	}

	parser := mustTestParser[grammar](t)
	actual := requireRoundTrip(t, parser, "fn add(a, b)")
	requireSame(t, &grammar{
		Keyword: ident{Name: "fn"},
		Name:    ident{Name: "add"},
		Args: syntax.Punctuated[ident, syntax.Comma]{
			Items:  []ident{{Name: "a"}, {Name: "b"}},
			Puncts: []syntax.Comma{{}},
		},
	}, actual)
	require.Equal(t, "fn add ( a , b )", parser.String(actual))

	_, err := parser.ParseString("", "fn add(a b)")
	require.EqualError(t, err, "1:10: expected `,`")

	_, err = parser.ParseString("", "fn add a")
	require.EqualError(t, err, "1:8: expected `(`")
}

func TestParseGroupLeftovers(t *testing.T) {
	type grammar struct {
		Paren syntax.Paren `tokens:"'('"`
		Name  ident
	}

	parser := mustTestParser[grammar](t)
	_, err := parser.ParseString("", "(a b)")
	require.EqualError(t, err, "1:4: unexpected token `b`")
}

func TestParseNestedGroups(t *testing.T) {
	type grammar struct {
		Paren   syntax.Paren `tokens:"'('"`
		A       ident
		Bracket syntax.Bracket `tokens:"'['"`
		B       ident
		C       ident `tokens:"']'"`
		D       ident `tokens:"')'"`
	}

	parser := mustTestParser[grammar](t)
	actual := requireRoundTrip(t, parser, "(a [b] c) d")
	requireSame(t, &grammar{A: ident{Name: "a"}, B: ident{Name: "b"}, C: ident{Name: "c"}, D: ident{Name: "d"}}, actual)
	require.Equal(t, "( a [ b ] c ) d", parser.String(actual))
}

func TestParseMultipleCloses(t *testing.T) {
	type grammar struct {
		Outer syntax.Paren `tokens:"'('"`
		Inner syntax.Brace `tokens:"'{'"`
		A     ident
		B     ident `tokens:"'})'"`
	}

	parser := mustTestParser[grammar](t)
	actual := requireRoundTrip(t, parser, "({a}) b")
	require.Equal(t, "b", actual.B.Name)
}

func TestParseMacroDelimiter(t *testing.T) {
	type grammar struct {
		Name  ident
		Delim syntax.Delimiter `tokens:"'('"`
		Args  []syntax.LitInt  `parse:"terminated"`
	}

	parser := mustTestParser[grammar](t)
	for _, source := range []string{"m(1, 2)", "m[1, 2]", "m{1, 2}"} {
		actual := requireRoundTrip(t, parser, source)
		require.Equal(t, source[1:2], actual.Delim.Kind)
		require.Len(t, actual.Args, 2)
	}
	actual, err := parser.ParseString("", "m[1, 2,]")
	require.NoError(t, err)
	require.Equal(t, "m [ 1 , 2 ]", parser.String(actual))
}

func TestParseOptionalAndSlice(t *testing.T) {
	type grammar struct {
		Bang  *syntax.Bang
		Name  ident
		Value *syntax.LitStr
		Rest  []syntax.LitInt
	}

	parser := mustTestParser[grammar](t)
	actual := requireRoundTrip(t, parser, `a`)
	require.Nil(t, actual.Bang)
	require.Nil(t, actual.Value)
	require.Empty(t, actual.Rest)

	actual = requireRoundTrip(t, parser, `! a "s" 1 2 3`)
	require.NotNil(t, actual.Bang)
	require.Equal(t, "s", actual.Value.Value)
	require.Len(t, actual.Rest, 3)
	require.Equal(t, `! a "s" 1 2 3`, parser.String(actual))
}

func TestParseAnyIdent(t *testing.T) {
	type grammar struct {
		Name ident `parse:"any"`
	}

	parser := mustTestParser[grammar](t)
	actual, err := parser.ParseString("", "func")
	require.NoError(t, err)
	require.Equal(t, "func", actual.Name.Name)

	type strict struct {
		Name ident
	}
	_, err = mustTestParser[strict](t).ParseString("", "func")
	require.EqualError(t, err, "1:1: expected identifier, found keyword `func`")
}

func TestParseTerminatedAny(t *testing.T) {
	type grammar struct {
		Names syntax.Punctuated[ident, syntax.Comma] `parse:"terminated, any"`
	}

	parser := mustTestParser[grammar](t)
	actual := requireRoundTrip(t, parser, "type, func, x")
	require.Equal(t, 3, actual.Names.Len())
}

type litVariant struct {
	Value syntax.LitInt `parse:"peek"`
}

type callVariant struct {
	Name  ident           `parse:"peek"`
	Paren syntax.Paren    `tokens:"'('" parse:"peek"`
	Args  []syntax.LitInt `parse:"terminated"`
}

type nameVariant struct {
	Name ident
}

type peekedExpr struct {
	_    Enum
	Call *callVariant
	Lit  *litVariant
	Name *nameVariant
}

func TestParseEnumPeek(t *testing.T) {
	parser := mustTestParser[peekedExpr](t)

	actual := requireRoundTrip(t, parser, "f(1, 2)")
	require.NotNil(t, actual.Call)
	require.Nil(t, actual.Lit)
	require.Nil(t, actual.Name)
	require.Equal(t, "f ( 1 , 2 )", parser.String(actual))

	actual = requireRoundTrip(t, parser, "12")
	requireSame(t, &peekedExpr{Lit: &litVariant{Value: syntax.LitInt{Value: 12}}}, actual)

	actual = requireRoundTrip(t, parser, "x")
	requireSame(t, &peekedExpr{Name: &nameVariant{Name: ident{Name: "x"}}}, actual)

	// The last variant is parsed directly, so its error is reported.
	_, err := parser.ParseString("", "+")
	require.EqualError(t, err, "1:1: expected identifier")

	// A committed variant reports its own error.
	_, err = parser.ParseString("", "f(x)")
	require.EqualError(t, err, "1:3: expected integer literal")
}

func TestParseEnumFork(t *testing.T) {
	type grammar struct {
		_   Enum
		Int *struct{ Value syntax.LitInt }
		Str *struct{ Value syntax.LitStr }
	}

	parser := mustTestParser[grammar](t)
	actual := requireRoundTrip(t, parser, "1")
	require.NotNil(t, actual.Int)
	require.Nil(t, actual.Str)

	actual = requireRoundTrip(t, parser, `"a"`)
	require.Nil(t, actual.Int)
	require.Equal(t, "a", actual.Str.Value.Value)

	_, err := parser.ParseString("", "true")
	require.EqualError(t, err, "1:1: parse failed.")
}

func TestParseEnumDeclarationOrder(t *testing.T) {
	type grammar struct {
		_     Enum
		Short *struct{ Name ident }
		Long  *struct {
			Name  ident
			Value syntax.LitInt
		}
	}

	parser := mustTestParser[grammar](t, AllowTrailing(true))
	actual, err := parser.ParseString("", "a 1")
	require.NoError(t, err)
	require.NotNil(t, actual.Short)
	require.Nil(t, actual.Long)
}

func TestParsePeekCommits(t *testing.T) {
	type grammar struct {
		_   Enum
		Str *struct {
			Eq    syntax.Eq `parse:"peek"`
			Value syntax.LitStr
		}
		Int *struct {
			Eq    syntax.Eq
			Value syntax.LitInt
		}
	}

	parser := mustTestParser[grammar](t)
	_, err := parser.ParseString("", "= 1")
	require.EqualError(t, err, "1:3: expected string literal")
	actual, err := parser.ParseString("", `= "a"`)
	require.NoError(t, err)
	require.Equal(t, "a", actual.Str.Value.Value)
}

func TestParseUnitVariant(t *testing.T) {
	type grammar struct {
		_     Enum
		Semi  *struct{ Semi syntax.Semi `parse:"peek"` }
		Empty *struct{}
	}

	parser := mustTestParser[grammar](t)
	actual, err := parser.ParseString("", "")
	require.NoError(t, err)
	require.NotNil(t, actual.Empty)
	require.Equal(t, "", parser.String(actual))

	actual, err = parser.ParseString("", ";")
	require.NoError(t, err)
	require.NotNil(t, actual.Semi)
}

type recursiveExpr struct {
	Name  ident
	Paren *syntax.Paren `tokens:"'('"`
	Inner *recursiveExpr
}

func TestParseRecursiveType(t *testing.T) {
	parser := mustTestParser[recursiveExpr](t)
	actual := requireRoundTrip(t, parser, "a(b(c()))")
	require.Equal(t, "b", actual.Inner.Name.Name)
	require.Equal(t, "c", actual.Inner.Inner.Name.Name)
	require.Nil(t, actual.Inner.Inner.Inner)
	require.Equal(t, "a ( b ( c ( ) ) )", parser.String(actual))
}

func TestParseEmbeddedFields(t *testing.T) {
	type Header struct {
		Keyword ident
	}
	type grammar struct {
		Header
		Name ident
	}

	parser := mustTestParser[grammar](t)
	actual := requireRoundTrip(t, parser, "struct_ x")
	require.Equal(t, "struct_", actual.Keyword.Name)
	require.Equal(t, "x", actual.Name.Name)
}

func TestBuildErrors(t *testing.T) {
	type missingParse struct {
		Value int
	}
	_, err := Build[missingParse]()
	require.EqualError(t, err, "missingParse.Value: int does not implement Parse")

	_, err = Build[int]()
	require.EqualError(t, err, "int: not supported for int")

	type badVariant struct {
		_ Enum
		A syntax.LitInt
	}
	_, err = Build[badVariant]()
	require.EqualError(t, err, "badVariant.A: variant `A` must be a pointer to a struct")

	type badPeek struct {
		_ Enum
		A *struct {
			Value syntax.Punctuated[ident, syntax.Comma] `parse:"peek"`
		}
	}
	_, err = Build[badPeek]()
	require.Error(t, err)
	require.Contains(t, err.Error(), "does not implement Peek")

	type badGroup struct {
		Open ident `tokens:"'('"`
	}
	_, err = Build[badGroup]()
	require.Error(t, err)
	require.Contains(t, err.Error(), "does not implement ParseDelimited and Surround")
}

func TestBuildDump(t *testing.T) {
	type grammar struct {
		_     struct{}        `parse:"dump"`
		Name  ident           `parse:"peek"`
		Paren syntax.Paren    `tokens:"'('"`
		Args  []syntax.LitInt `parse:"terminated"`
	}

	_, err := Build[grammar]()
	dump := &DumpError{}
	require.True(t, errors.As(err, &dump), "%v", err)
	require.Contains(t, dump.Code, "Paren syntax.Paren group(\"(\") root")
	require.Contains(t, dump.Code, "Args []syntax.LitInt terminated")
	require.True(t, strings.HasPrefix(err.Error(), dump.Type+": dump requested\n"))
}

func TestPlan(t *testing.T) {
	parser := mustTestParser[peekedExpr](t)
	require.Equal(t, `enum peekedExpr
  variant Call peek(Name, Paren)
    Name syntax.Ident parse root
    Paren syntax.Paren group("(") root
      Args []syntax.LitInt terminated
  variant Lit peek(Value)
    Value syntax.LitInt parse root
  variant Name direct
    Name syntax.Ident parse root
`, parser.Plan())
}

func TestTrace(t *testing.T) {
	type grammar struct {
		Name ident
	}

	w := &strings.Builder{}
	parser := mustTestParser[grammar](t, Trace(w))
	_, err := parser.ParseString("", "a")
	require.NoError(t, err)
	require.Contains(t, w.String(), "Name (parse)")
}
