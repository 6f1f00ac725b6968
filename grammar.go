package structmeta

import (
	"reflect"

	"github.com/alecthomas/structmeta/lexer"
)

type generatorContext struct {
	// Parse/ToTokens nodes, also used for nested struct values.
	typeNodes map[reflect.Type]*typeNode
	// Attribute argument nodes.
	argNodes map[reflect.Type]*typeNode
}

func newGeneratorContext() *generatorContext {
	return &generatorContext{
		typeNodes: map[reflect.Type]*typeNode{},
		argNodes:  map[reflect.Type]*typeNode{},
	}
}

// A typeNode is a planned type, executed by reflection.
type typeNode struct {
	typ    reflect.Type
	plan   *Plan
	params *Params
	names  *NameSpec
}

// Takes a struct type and plans its parser and serializer.
//
// Field types without their own Parse and ToTokens methods are planned
// recursively.
func (g *generatorContext) parseType(t reflect.Type) (*typeNode, error) {
	if n, ok := g.typeNodes[t]; ok {
		return n, nil
	}
	schema, err := SchemaOf(t)
	if err != nil {
		return nil, err
	}
	plan, err := PlanParse(schema)
	if err != nil {
		return nil, err
	}
	if schema.Options.DumpParse || schema.Options.DumpTokens {
		return nil, &DumpError{Type: t.String(), Code: dumpPlan(plan)}
	}
	out := &typeNode{typ: t, plan: plan}
	g.typeNodes[t] = out
	for _, vp := range plan.Variants {
		for _, peek := range vp.Peeks {
			if !implementsPeek(peek.Field.Type.Reflect(), peek.Any) {
				delete(g.typeNodes, t)
				method := "Peek"
				if peek.Any {
					method = "PeekAny"
				}
				return nil, lexer.Errorf(peek.Field.PeekPos, "%s does not implement %s", peek.Field.Type, method)
			}
		}
		vp.Body.Walk(func(n *Node) {
			if err == nil {
				err = g.checkNode(n)
			}
		})
		if err != nil {
			delete(g.typeNodes, t)
			return nil, err
		}
	}
	return out, nil
}

// Takes a struct type and classifies its fields as attribute arguments.
func (g *generatorContext) argsType(t reflect.Type) (*typeNode, error) {
	if n, ok := g.argNodes[t]; ok {
		return n, nil
	}
	schema, err := SchemaOf(t)
	if err != nil {
		return nil, err
	}
	params, err := ClassifyParams(schema)
	if err != nil {
		return nil, err
	}
	if schema.Options.DumpMeta {
		return nil, &DumpError{Type: t.String(), Code: dumpParams(params)}
	}
	for _, param := range params.All {
		var value reflect.Type
		switch {
		case param.Class == PositionalRequired || param.Class == PositionalOptional || param.Class == PositionalVariadic:
			value = param.Type.Elem.Reflect()
		case param.Type.Kind != BoolParam && param.Type.Kind != FlagParam:
			value = param.Type.Elem.Reflect()
		default:
			continue
		}
		if err := g.checkType(param.Field, value, parseableType, "Parse"); err != nil {
			return nil, err
		}
	}
	out := &typeNode{typ: t, params: params, names: params.NameSpec()}
	g.argNodes[t] = out
	return out, nil
}

func (g *generatorContext) checkNode(n *Node) error {
	f := n.Field
	t := f.Type.Reflect()
	switch StrategyOf(n) {
	case GroupStrategy:
		for t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		if !reflect.PtrTo(t).Implements(delimiterType) {
			return lexer.Errorf(f.Pos, "%s does not implement ParseDelimited and Surround, required to open `%s`", f.Type, n.Open)
		}
		return nil
	case ParseAnyStrategy:
		if err := g.checkType(f, t, anyParseableType, "ParseAny"); err != nil {
			return err
		}
	case TerminatedStrategy, TerminatedAnyStrategy:
		iface, method := terminatedParseableType, "ParseTerminated"
		if f.Any {
			iface, method = terminatedAnyParseableType, "ParseTerminatedAny"
		}
		if reflect.PtrTo(t).Implements(iface) {
			break
		}
		if t.Kind() != reflect.Slice {
			return lexer.Errorf(f.Pos, "%s does not implement %s", f.Type, method)
		}
		item, method := parseableType, "Parse"
		if f.Any {
			item, method = anyParseableType, "ParseAny"
		}
		if err := g.checkType(f, t.Elem(), item, method); err != nil {
			return err
		}
	default:
		if err := g.checkType(f, t, parseableType, "Parse"); err != nil {
			return err
		}
	}
	return g.checkType(f, t, tokenizerType, "ToTokens")
}

// Checks that t implements iface, possibly through pointers and slices, or
// that it is a struct whose parser can be derived.
func (g *generatorContext) checkType(f *Field, t reflect.Type, iface reflect.Type, method string) error {
	for {
		if t.Implements(iface) || reflect.PtrTo(t).Implements(iface) {
			return nil
		}
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice:
			t = t.Elem()
			continue
		case reflect.Struct:
			if iface == parseableType || iface == tokenizerType {
				if _, err := g.parseType(t); err != nil {
					return err
				}
				return nil
			}
		}
		return lexer.Errorf(f.Pos, "%s does not implement %s", t, method)
	}
}
