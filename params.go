package structmeta

import (
	"strings"

	"github.com/stoewer/go-strcase"
	"golang.org/x/exp/slices"

	"github.com/alecthomas/structmeta/lexer"
)

// ParamKind is the backing type shape of an attribute argument.
type ParamKind int

// Parameter type shapes.
const (
	// BoolParam is a bool flag.
	BoolParam ParamKind = iota
	// FlagParam is a structmeta.Flag.
	FlagParam
	// ValueParam is a plain value, T or []T.
	ValueParam
	// NameValueParam is a structmeta.NameValue[T].
	NameValueParam
	// NameArgsParam is a structmeta.NameArgs[T].
	NameArgsParam
)

// ParamType describes the backing type of an attribute argument.
type ParamType struct {
	Kind ParamKind
	// Value type, after unwrapping NameValue/NameArgs and any inner *T or []T.
	Elem *TypeRef
	// ValueParam backed by []T, or NameArgsParam backed by NameArgs[[]T].
	Vec bool
	// NameValue[*T] or NameArgs[*T]: the value may be omitted.
	Option bool
}

func paramTypeOf(t *TypeRef, mayFlag bool) ParamType {
	switch {
	case mayFlag && t.isBool():
		return ParamType{Kind: BoolParam}
	case mayFlag && t.isFlag():
		return ParamType{Kind: FlagParam}
	case t.NameValueElem() != nil:
		pt := ParamType{Kind: NameValueParam, Elem: t.NameValueElem()}
		if e := pt.Elem.PointerElem(); e != nil {
			pt.Elem, pt.Option = e, true
		}
		return pt
	case t.NameArgsElem() != nil:
		pt := ParamType{Kind: NameArgsParam, Elem: t.NameArgsElem()}
		if e := pt.Elem.PointerElem(); e != nil {
			pt.Elem, pt.Option = e, true
		}
		if e := pt.Elem.SliceElem(); e != nil {
			pt.Elem, pt.Vec = e, true
		}
		return pt
	case t.SliceElem() != nil:
		return ParamType{Kind: ValueParam, Elem: t.SliceElem(), Vec: true}
	}
	return ParamType{Kind: ValueParam, Elem: t}
}

// IsFlag reports whether the parameter can be written as `name`.
func (p ParamType) IsFlag() bool {
	switch p.Kind {
	case BoolParam, FlagParam:
		return true
	case NameValueParam, NameArgsParam:
		return p.Option
	}
	return false
}

// IsNameValue reports whether the parameter can be written as `name = value`.
func (p ParamType) IsNameValue() bool {
	return p.Kind == NameValueParam || (p.Kind == ValueParam && !p.Vec)
}

// IsNameArgs reports whether the parameter can be written as `name(args)`.
func (p ParamType) IsNameArgs() bool {
	return p.Kind == NameArgsParam || (p.Kind == ValueParam && p.Vec)
}

// Class of an attribute argument parameter.
type Class int

// Parameter classes.
const (
	PositionalRequired Class = iota
	PositionalOptional
	PositionalVariadic
	NamedFlag
	NamedValue
	NamedArgs
	RestMap
)

func (c Class) String() string {
	return [...]string{
		"positional_required", "positional_optional", "positional_variadic",
		"named_flag", "named_value", "named_args", "rest_map",
	}[c]
}

// A Param is a field classified as an attribute argument.
type Param struct {
	Field *Field
	Class Class
	// Name of a named parameter.
	Name    string
	NamePos lexer.Position
	Type    ParamType
	// The field is a pointer and is left nil when the argument is omitted.
	Option bool
}

// Missing is the error message for an omitted required named parameter.
func (p *Param) Missing() string {
	if p.Type.IsNameArgs() {
		return "missing argument `" + p.Name + "(...)`"
	}
	return "missing argument `" + p.Name + " = ...`"
}

// Params is the classified attribute argument schema of a struct.
type Params struct {
	Schema *Schema
	// Every parameter, in field declaration order.
	All      []*Param
	Required []*Param
	Optional []*Param
	Variadic *Param
	// Named parameters, ordered by name.
	Named      []*Param
	Rest       *Param
	NameFilter string
}

// ClassifyParams classifies the fields of a struct schema as attribute argument parameters.
func ClassifyParams(schema *Schema) (*Params, error) {
	if schema.Kind != StructKind {
		return nil, lexer.Errorf(schema.Pos, "attribute arguments are supported only for structs.")
	}
	params := &Params{Schema: schema, NameFilter: schema.Options.NameFilter}
	named := map[string]*Param{}
	for _, field := range schema.Variants[0].Fields {
		param, err := classifyParam(schema, field)
		if err != nil {
			return nil, err
		}
		params.All = append(params.All, param)
		switch param.Class {
		case PositionalRequired, PositionalOptional, PositionalVariadic:
			if params.Variadic != nil {
				return nil, lexer.Errorf(field.Pos, "cannot use unnamed parameter after variadic parameter.")
			}
			switch param.Class {
			case PositionalVariadic:
				params.Variadic = param
			case PositionalOptional:
				params.Optional = append(params.Optional, param)
			default:
				if len(params.Optional) > 0 {
					return nil, lexer.Errorf(field.Pos, "cannot use non optional parameter after optional parameter.")
				}
				params.Required = append(params.Required, param)
			}

		case RestMap:
			if params.Rest != nil {
				return nil, lexer.Errorf(field.Pos, "cannot use rest parameter twice.")
			}
			params.Rest = param

		default:
			if prev, ok := named[param.Name]; ok {
				return nil, lexer.Errorf(param.NamePos, "`%s` is already exists (previous definition at %s).", param.Name, prev.NamePos)
			}
			named[param.Name] = param
			params.Named = append(params.Named, param)
		}
	}
	slices.SortFunc(params.Named, func(a, b *Param) int { return strings.Compare(a.Name, b.Name) })
	return params, nil
}

func classifyParam(schema *Schema, field *Field) (*Param, error) {
	param := &Param{Field: field}
	switch {
	case field.HasMetaName:
		param.Name, param.NamePos = field.MetaName, field.MetaNamePos
	case !schema.Options.Unnamed:
		param.Name, param.NamePos = strcase.SnakeCase(field.Name), field.Pos
	}
	if field.MetaUnnamed {
		param.Name = ""
	}
	t := field.Type
	isMap := false
	if e := t.StringMapElem(); e != nil && !field.HasMetaName {
		t, isMap = e, true
	} else if e := t.PointerElem(); e != nil {
		t, param.Option = e, true
	}
	param.Type = paramTypeOf(t, !param.Option)
	switch {
	case isMap:
		param.Class = RestMap
	case param.Name != "":
		switch {
		case param.Type.Kind == BoolParam || param.Type.Kind == FlagParam:
			param.Class = NamedFlag
		case param.Type.IsNameValue():
			param.Class = NamedValue
		default:
			param.Class = NamedArgs
		}
	case param.Type.Kind == ValueParam && param.Type.Vec && !param.Option:
		param.Class = PositionalVariadic
	case param.Type.Kind == ValueParam && !param.Type.Vec:
		param.Class = PositionalRequired
		if param.Option {
			param.Class = PositionalOptional
		}
	default:
		return nil, lexer.Errorf(field.Pos, "this field type cannot be used as unnamed parameter.")
	}
	return param, nil
}

func (p *Params) namedWhere(pred func(ParamType) bool) (out []*Param, rest bool) {
	for _, param := range p.Named {
		if pred(param.Type) {
			out = append(out, param)
		}
	}
	return out, p.Rest != nil && pred(p.Rest.Type)
}

// Flags returns the named parameters that can be written as `name`, and whether the rest map accepts flags.
func (p *Params) Flags() ([]*Param, bool) { return p.namedWhere(ParamType.IsFlag) }

// NameValues returns the named parameters that can be written as `name = value`.
func (p *Params) NameValues() ([]*Param, bool) { return p.namedWhere(ParamType.IsNameValue) }

// NameArgs returns the named parameters that can be written as `name(args)`.
func (p *Params) NameArgs() ([]*Param, bool) { return p.namedWhere(ParamType.IsNameArgs) }

// NoUnnamed reports whether positional arguments are rejected after the required ones.
func (p *Params) NoUnnamed() bool {
	return len(p.Optional) == 0 && p.Variadic == nil
}

// NameSpec returns the lookup table used by TryParseName.
func (p *Params) NameSpec() *NameSpec {
	flags, flagRest := p.Flags()
	values, valueRest := p.NameValues()
	args, argsRest := p.NameArgs()
	spec := &NameSpec{
		Flags:         paramNames(flags),
		FlagRest:      flagRest,
		NameValues:    paramNames(values),
		NameValueRest: valueRest,
		NameArgs:      paramNames(args),
		NameArgsRest:  argsRest,
		NoUnnamed:     p.NoUnnamed(),
		NameFilter:    p.NameFilter,
	}
	spec.AnyIdent = p.Rest != nil
	for _, param := range p.Named {
		if isKeyword(param.Name) {
			spec.AnyIdent = true
		}
	}
	return spec
}

func paramNames(params []*Param) []string {
	out := make([]string, 0, len(params))
	for _, param := range params {
		out = append(out, param.Name)
	}
	return out
}
