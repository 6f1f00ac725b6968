package codegen

import (
	"fmt"
	"strings"

	"github.com/stoewer/go-strcase"

	"github.com/alecthomas/structmeta"
)

var nameKinds = []struct {
	kind   structmeta.NameKind
	ident  string
	params func(*structmeta.Params) ([]*structmeta.Param, bool)
}{
	{structmeta.FlagName, "structmeta.FlagName", (*structmeta.Params).Flags},
	{structmeta.NameValueName, "structmeta.NameValueName", (*structmeta.Params).NameValues},
	{structmeta.NameArgsName, "structmeta.NameArgsName", (*structmeta.Params).NameArgs},
}

// Name of the package level NameSpec variable for a type.
func namesVar(typeName string) string {
	return strcase.LowerCamelCase(typeName) + "Names"
}

func generateStructMeta(params *structmeta.Params) string {
	e := &emitter{}
	name := params.Schema.Name
	names := namesVar(name)
	emitNameSpec(e, names, params.NameSpec())

	e.printf("func (v *%s) Parse(c *lexer.Cursor) error {\n", name)
	for i, param := range params.Required {
		if i > 0 {
			e.printf("if c.Empty() {\nreturn c.Errorf(%q)\n}\n",
				fmt.Sprintf("expected at least %d arguments but %d argument was supplied", len(params.Required), i))
			e.returnIfErr("structmeta.Expect(c, \",\")")
		}
		e.returnIfErr("structmeta.ParseValue(c, &v.%s)", param.Field.Name)
	}
	e.printf("isNext := %v\n", len(params.Required) > 0)
	unnamed := !params.NoUnnamed()
	if len(params.Named) > 0 {
		e.printf("var seen [%d]bool\n", len(params.Named))
	}
	if unnamed {
		e.printf("unnamedIndex := 0\nnamedUsed := false\n")
	}
	e.printf("for !c.Empty() {\n")
	e.printf("if isNext {\n")
	e.returnIfErr("structmeta.Expect(c, \",\")")
	e.printf("if c.Empty() {\nbreak\n}\n}\n")
	e.printf("isNext = true\n")
	e.printf("name, err := structmeta.TryParseName(c, %s)\nif err != nil {\nreturn err\n}\n", names)
	e.printf("if name != nil {\n")
	if unnamed {
		e.printf("namedUsed = true\n")
	}
	emitNamed(e, params)
	e.printf("continue\n}\n")
	if !unnamed {
		e.printf("return c.Errorf(\"cannot use unnamed parameter\")\n")
	} else {
		emitUnnamed(e, params)
	}
	e.printf("}\n")

	for _, param := range params.All {
		field := "v." + param.Field.Name
		switch param.Class {
		case structmeta.PositionalVariadic:
			e.printf("if %s == nil {\n%[1]s = %s{}\n}\n", field, param.Field.Type)
		case structmeta.RestMap:
			e.printf("if %s == nil {\n%[1]s = %s{}\n}\n", field, param.Field.Type)
		case structmeta.NamedValue, structmeta.NamedArgs:
			if !param.Option {
				e.printf("if !seen[%d] {\nreturn c.Errorf(%q)\n}\n", namedIndex(params, param), param.Missing())
			}
		}
	}
	e.printf("return nil\n}\n\n")
	return e.String()
}

func emitNameSpec(e *emitter, names string, spec *structmeta.NameSpec) {
	list := func(names []string) string {
		if len(names) == 0 {
			return "nil"
		}
		quoted := make([]string, 0, len(names))
		for _, name := range names {
			quoted = append(quoted, fmt.Sprintf("%q", name))
		}
		return "[]string{" + strings.Join(quoted, ", ") + "}"
	}
	e.printf("var %s = &structmeta.NameSpec{\n", names)
	e.printf("Flags: %s,\nFlagRest: %v,\n", list(spec.Flags), spec.FlagRest)
	e.printf("NameValues: %s,\nNameValueRest: %v,\n", list(spec.NameValues), spec.NameValueRest)
	e.printf("NameArgs: %s,\nNameArgsRest: %v,\n", list(spec.NameArgs), spec.NameArgsRest)
	e.printf("NoUnnamed: %v,\nNameFilter: %q,\nAnyIdent: %v,\n}\n\n", spec.NoUnnamed, spec.NameFilter, spec.AnyIdent)
}

func namedIndex(params *structmeta.Params, param *structmeta.Param) int {
	for i, p := range params.Named {
		if p == param {
			return i
		}
	}
	panic("codegen: parameter is not named")
}

func emitNamed(e *emitter, params *structmeta.Params) {
	e.printf("switch {\n")
	for _, nk := range nameKinds {
		candidates, rest := nk.params(params)
		for i, param := range candidates {
			e.printf("case name.Is(%s, %d):\n", nk.ident, i)
			seen := namedIndex(params, param)
			e.printf("if seen[%d] {\n", seen)
			e.printf("return lexer.Errorf(name.Pos, \"parameter `%%s` specified more than once\", name.Name)\n}\n")
			e.printf("seen[%d] = true\n", seen)
			field := "v." + param.Field.Name
			if !param.Option {
				emitNamedValue(e, field, param.Type, nk.kind)
				continue
			}
			e.printf("{\nvar value %s\n", param.Field.Type.PointerElem())
			emitNamedValue(e, "value", param.Type, nk.kind)
			e.printf("%s = &value\n}\n", field)
		}
		if rest {
			field := "v." + params.Rest.Field.Name
			e.printf("case name.IsRest(%s):\n", nk.ident)
			e.printf("if %s == nil {\n%[1]s = %s{}\n}\n", field, params.Rest.Field.Type)
			e.printf("if _, ok := %s[name.Name]; ok {\n", field)
			e.printf("return lexer.Errorf(name.Pos, \"parameter `%%s` specified more than once\", name.Name)\n}\n")
			e.printf("var value %s\n", params.Rest.Field.Type.StringMapElem())
			emitNamedValue(e, "value", params.Rest.Type, nk.kind)
			e.printf("%s[name.Name] = value\n", field)
		}
	}
	e.printf("}\n")
}

// Reads the value of a named argument into dst.
func emitNamedValue(e *emitter, dst string, pt structmeta.ParamType, kind structmeta.NameKind) {
	switch pt.Kind {
	case structmeta.BoolParam:
		e.printf("%s = true\n", dst)

	case structmeta.FlagParam:
		e.printf("%s = structmeta.Flag{Set: true, Pos: name.Pos}\n", dst)

	case structmeta.ValueParam:
		if pt.Vec {
			e.returnIfErr("structmeta.ParseParenthesizedList(c, &%s)", dst)
		} else {
			e.returnIfErr("structmeta.ParseValue(c, &%s)", dst)
		}

	case structmeta.NameValueParam:
		e.printf("%s.NamePos = name.Pos\n", dst)
		switch {
		case !pt.Option:
			e.returnIfErr("structmeta.ParseValue(c, &%s.Value)", dst)
		case kind != structmeta.FlagName:
			e.printf("{\nvar arg %s\n", pt.Elem)
			e.returnIfErr("structmeta.ParseValue(c, &arg)")
			e.printf("%s.Value = &arg\n}\n", dst)
		}

	case structmeta.NameArgsParam:
		e.printf("%s.NamePos = name.Pos\n", dst)
		parse := "structmeta.ParseParenthesized"
		if pt.Vec {
			parse = "structmeta.ParseParenthesizedList"
		}
		switch {
		case !pt.Option:
			e.returnIfErr("%s(c, &%s.Args)", parse, dst)
		case kind != structmeta.FlagName:
			elem := pt.Elem.String()
			if pt.Vec {
				elem = "[]" + elem
			}
			e.printf("{\nvar args %s\n", elem)
			e.returnIfErr("%s(c, &args)", parse)
			e.printf("%s.Args = &args\n}\n", dst)
		}
	}
}

func emitUnnamed(e *emitter, params *structmeta.Params) {
	e.printf("if namedUsed {\nreturn c.Errorf(\"cannot use unnamed parameter after named parameter\")\n}\n")
	e.printf("switch unnamedIndex {\n")
	for i, param := range params.Optional {
		e.printf("case %d:\n", i)
		e.printf("var value %s\n", param.Field.Type.PointerElem())
		e.returnIfErr("structmeta.ParseValue(c, &value)")
		e.printf("v.%s = &value\n", param.Field.Name)
	}
	e.printf("default:\n")
	if params.Variadic != nil {
		e.printf("var value %s\n", params.Variadic.Field.Type.SliceElem())
		e.returnIfErr("structmeta.ParseValue(c, &value)")
		e.printf("v.%s = append(v.%[1]s, value)\n", params.Variadic.Field.Name)
	} else {
		e.printf("return c.Errorf(\"too many unnamed parameter\")\n")
	}
	e.printf("}\nunnamedIndex++\n")
}
