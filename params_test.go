package structmeta

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alecthomas/structmeta/syntax"
)

func classifyTest(t *testing.T, v interface{}) (*Params, error) {
	t.Helper()
	schema, err := SchemaOf(reflect.TypeOf(v))
	require.NoError(t, err)
	return ClassifyParams(schema)
}

func classes(params *Params) map[string]Class {
	out := map[string]Class{}
	for _, p := range params.All {
		out[p.Field.Name] = p.Class
	}
	return out
}

func TestClassifyParams(t *testing.T) {
	type grammar struct {
		Path    syntax.LitStr   `meta:"unnamed"`
		Mode    *syntax.Ident   `meta:"unnamed"`
		Extra   []syntax.LitInt `meta:"unnamed"`
		Debug   bool
		Trace   Flag
		Limit   syntax.LitInt
		Timeout *syntax.LitInt
		Level   NameValue[*syntax.LitInt]
		Tags    []syntax.LitStr
		Include NameArgs[[]syntax.LitStr]
		Exclude *NameArgs[syntax.LitStr]
		Renamed syntax.LitStr `meta:"name='type'"`
		Attrs   map[string]NameValue[syntax.LitStr]
	}
	params, err := classifyTest(t, grammar{})
	require.NoError(t, err)
	require.Equal(t, map[string]Class{
		"Path":    PositionalRequired,
		"Mode":    PositionalOptional,
		"Extra":   PositionalVariadic,
		"Debug":   NamedFlag,
		"Trace":   NamedFlag,
		"Limit":   NamedValue,
		"Timeout": NamedValue,
		"Level":   NamedValue,
		"Tags":    NamedArgs,
		"Include": NamedArgs,
		"Exclude": NamedArgs,
		"Renamed": NamedValue,
		"Attrs":   RestMap,
	}, classes(params))

	names := []string{}
	for _, p := range params.Named {
		names = append(names, p.Name)
	}
	require.Equal(t, []string{"debug", "exclude", "include", "level", "limit", "tags", "timeout", "trace", "type"}, names)

	spec := params.NameSpec()
	require.Equal(t, []string{"debug", "level", "trace"}, spec.Flags)
	require.Equal(t, []string{"level", "limit", "timeout", "type"}, spec.NameValues)
	require.Equal(t, []string{"exclude", "include", "tags"}, spec.NameArgs)
	require.False(t, spec.FlagRest)
	require.True(t, spec.NameValueRest)
	require.False(t, spec.NameArgsRest)
	require.True(t, spec.AnyIdent)
	require.False(t, spec.NoUnnamed)

	require.Equal(t, "missing argument `tags(...)`", params.Named[5].Missing())
	require.Equal(t, "missing argument `limit = ...`", params.Named[4].Missing())
}

func TestClassifyParamsTuple(t *testing.T) {
	type grammar struct {
		_ struct{} `meta:"unnamed"`
		A syntax.LitInt
		B *syntax.LitInt
		C syntax.LitStr `meta:"name='c'"`
	}
	params, err := classifyTest(t, grammar{})
	require.NoError(t, err)
	require.Equal(t, map[string]Class{"A": PositionalRequired, "B": PositionalOptional, "C": NamedValue}, classes(params))
}

func TestClassifyParamsErrors(t *testing.T) {
	type afterVariadic struct {
		A []syntax.LitInt `meta:"unnamed"`
		B syntax.LitInt   `meta:"unnamed"`
	}
	_, err := classifyTest(t, afterVariadic{})
	require.EqualError(t, err, "afterVariadic.B: cannot use unnamed parameter after variadic parameter.")

	type requiredAfterOptional struct {
		A *syntax.LitInt `meta:"unnamed"`
		B syntax.LitInt  `meta:"unnamed"`
	}
	_, err = classifyTest(t, requiredAfterOptional{})
	require.EqualError(t, err, "requiredAfterOptional.B: cannot use non optional parameter after optional parameter.")

	type twoRests struct {
		A map[string]Flag
		B map[string]Flag
	}
	_, err = classifyTest(t, twoRests{})
	require.EqualError(t, err, "twoRests.B: cannot use rest parameter twice.")

	type duplicate struct {
		A syntax.LitInt `meta:"name='x'"`
		B syntax.LitInt `meta:"name='x'"`
	}
	_, err = classifyTest(t, duplicate{})
	require.EqualError(t, err, "duplicate.B:1:6: `x` is already exists (previous definition at duplicate.A:1:6).")

	type unusable struct {
		A bool `meta:"unnamed"`
	}
	_, err = classifyTest(t, unusable{})
	require.EqualError(t, err, "unusable.A: this field type cannot be used as unnamed parameter.")

	type enum struct {
		_ Enum
		A *struct{}
	}
	_, err = classifyTest(t, enum{})
	require.EqualError(t, err, "structmeta.enum: attribute arguments are supported only for structs.")
}
