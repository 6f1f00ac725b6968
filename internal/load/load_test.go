package load

import (
	"reflect"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/alecthomas/structmeta"
	"github.com/alecthomas/structmeta/codegen"
	"github.com/alecthomas/structmeta/syntax"
)

const header = `package ast

import (
	"github.com/alecthomas/structmeta"
	"github.com/alecthomas/structmeta/syntax"
)
`

func mustLoad(t *testing.T, src string) *File {
	t.Helper()
	file, err := Source("test.go", []byte(header+src))
	require.NoError(t, err)
	return file
}

type loadCall struct {
	_     struct{}        `meta:"unnamed"`
	Name  syntax.Ident    `parse:"peek, any"`
	Paren syntax.Paren    `tokens:"'('"`
	Args  []syntax.LitInt `parse:"terminated"`
	Level structmeta.NameValue[*syntax.LitInt]
}

func TestSourceMatchesReflection(t *testing.T) {
	file := mustLoad(t, "//structmeta:derive parse, to_tokens\ntype loadCall struct {\n"+
		"\t_     struct{}        `meta:\"unnamed\"`\n"+
		"\tName  syntax.Ident    `parse:\"peek, any\"`\n"+
		"\tParen syntax.Paren    `tokens:\"'('\"`\n"+
		"\tArgs  []syntax.LitInt `parse:\"terminated\"`\n"+
		"\tLevel structmeta.NameValue[*syntax.LitInt]\n"+
		"}\n")
	require.Len(t, file.Types, 1)
	require.Equal(t, codegen.DeriveParse|codegen.DeriveToTokens, file.Types[0].Derives)

	expected, err := structmeta.SchemaOf(reflect.TypeOf(loadCall{}))
	require.NoError(t, err)
	actual := file.Types[0].Schema
	diff := cmp.Diff(expected, actual,
		cmpopts.IgnoreUnexported(structmeta.TypeRef{}),
		cmpopts.IgnoreFields(structmeta.TypeRef{}, "Expr"))
	require.Empty(t, diff, repr.String(actual, repr.Indent("  ")))
}

func TestSourceTypeExprs(t *testing.T) {
	file := mustLoad(t, `
//structmeta:derive struct_meta
type Attr struct {
	Level structmeta.NameValue[*syntax.LitInt]
	Tags  map[string]structmeta.NameArgs[[]syntax.Ident]
	Value *struct{ A syntax.Ident }
}
`)
	fields := file.Types[0].Schema.Variants[0].Fields
	require.Equal(t, "structmeta.NameValue[*syntax.LitInt]", fields[0].Type.String())
	require.Equal(t, "syntax.LitInt", fields[0].Type.NameValueElem().PointerElem().String())
	require.Equal(t, "map[string]structmeta.NameArgs[[]syntax.Ident]", fields[1].Type.String())
	require.Equal(t, "[]syntax.Ident", fields[1].Type.StringMapElem().NameArgsElem().String())
	require.Equal(t, "struct{ A syntax.Ident }", fields[2].Type.PointerElem().String())
	require.Equal(t, structmeta.StructType, fields[2].Type.PointerElem().Kind)
}

func TestSourceImports(t *testing.T) {
	file, err := Source("test.go", []byte(`package ast

import (
	"github.com/alecthomas/structmeta"
	sm "github.com/alecthomas/structmeta"
	"github.com/alecthomas/structmeta/lexer"
	"github.com/alecthomas/structmeta/syntax"
)

//structmeta:derive parse
type Value struct {
	_ sm.Enum
	A *struct{ V syntax.LitInt }
}
`))
	require.NoError(t, err)
	require.Equal(t, "ast", file.Package)
	require.Equal(t, []codegen.Import{
		{Name: "sm", Path: "github.com/alecthomas/structmeta"},
		{Path: "github.com/alecthomas/structmeta/syntax"},
	}, file.Imports)
	require.Equal(t, structmeta.EnumKind, file.Types[0].Schema.Kind)
	require.Equal(t, "ast", file.Options().Package)
}

func TestSourceEnum(t *testing.T) {
	file := mustLoad(t, `
//structmeta:derive parse, to_tokens
type Expr struct {
	_    structmeta.Enum
	Call *Call
	Lit  *struct {
		Value syntax.LitInt `+"`parse:\"peek\"`"+`
	}
}

type Call struct {
	Name syntax.Ident
	Args []Expr
}
`)
	require.Len(t, file.Types, 1)
	schema := file.Types[0].Schema
	require.Equal(t, structmeta.EnumKind, schema.Kind)
	require.Len(t, schema.Variants, 2)
	call, lit := schema.Variants[0], schema.Variants[1]
	require.Equal(t, "Call", call.Name)
	require.Equal(t, "*Call", call.Type.String())
	require.Equal(t, []string{"Name", "Args"}, fieldNames(call.Fields))
	require.Equal(t, "Lit", lit.Name)
	require.Equal(t, 1, lit.Index)
	require.True(t, lit.Fields[0].Peek)
	require.Equal(t, "Expr.Lit.Value:1:1", lit.Fields[0].PeekPos.String())
}

func TestSourceEmbedded(t *testing.T) {
	file := mustLoad(t, `
//structmeta:derive parse
type Outer struct {
	Inner
	B      syntax.Ident
	hidden syntax.Ident
}

type Inner struct {
	A, C syntax.LitInt
}
`)
	require.Equal(t, []string{"A", "C", "B"}, fieldNames(file.Types[0].Schema.Variants[0].Fields))
}

func TestSourceErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		err    string
	}{
		{"UnknownDerive", "\n//structmeta:derive serde\ntype Foo struct{}\n",
			`test.go:9:6: Foo: unknown derive "serde"`},
		{"Variant", "\n//structmeta:derive parse\ntype Bad struct {\n\t_ structmeta.Enum\n\tV syntax.Ident\n}\n",
			"Bad.V: variant `V` must be a pointer to a struct declared in this file"},
		{"ForeignVariant", "\n//structmeta:derive parse\ntype Bad struct {\n\t_ structmeta.Enum\n\tV *syntax.Ident\n}\n",
			"Bad.V: variant `V` must be a pointer to a struct declared in this file"},
		{"Embedded", "\n//structmeta:derive parse\ntype Bad struct {\n\tsyntax.Ident\n}\n",
			"test.go:10:2: embedded field syntax.Ident must be a struct declared in this file"},
		{"FieldTag", "\n//structmeta:derive parse\ntype Bad struct {\n\tA syntax.Ident `parse:\"dump\"`\n}\n",
			"Bad.A:1:1: `dump` can only be specified on the type."},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Source("test.go", []byte(header+test.source))
			require.EqualError(t, err, test.err)
		})
	}
}

func TestSourceSyntaxError(t *testing.T) {
	_, err := Source("test.go", []byte(header+"\ntype Bad struct {\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "test.go: test.go:")
}

func TestUntaggedTypesAreSkipped(t *testing.T) {
	file := mustLoad(t, `
// Plain is documented but not derived.
type Plain struct {
	A syntax.Ident
}

type (
	//structmeta:derive to_tokens
	Grouped struct {
		A syntax.Ident
	}
	Other struct{}
)
`)
	require.Len(t, file.Types, 1)
	require.Equal(t, "Grouped", file.Types[0].Schema.Name)
	require.Equal(t, codegen.DeriveToTokens, file.Types[0].Derives)
}

func fieldNames(fields []*structmeta.Field) []string {
	out := []string{}
	for _, field := range fields {
		out = append(out, field.Name)
	}
	return out
}
