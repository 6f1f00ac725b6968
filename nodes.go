package structmeta

import (
	"reflect"

	"github.com/alecthomas/structmeta/lexer"
)

func recoverToError(err *error) {
	if msg := recover(); msg != nil {
		switch msg := msg.(type) {
		case Error:
			*err = msg
		default:
			panic(msg)
		}
	}
}

func (n *typeNode) parse(ctx *parseContext, c *lexer.Cursor, v reflect.Value) error {
	plan := n.plan
	ctx.tracef(c, "%s", n.typ)
	if plan.Schema.Kind == StructKind {
		return parseBlock(ctx, c, v, plan.Variants[0].Body)
	}
	for _, vp := range plan.Variants {
		switch vp.Dispatch {
		case ForkDispatch:
			ctx.tracef(c, "fork %s", vp.Variant.Name)
			fork := c.Fork()
			variant, err := parseVariant(ctx, fork, vp)
			if err != nil {
				continue
			}
			c.AdvanceTo(fork)
			setVariant(v, vp, variant)
			return nil

		case PeekDispatch:
			if !peekVariant(c, vp) {
				continue
			}
			ctx.tracef(c, "peeked %s", vp.Variant.Name)
			variant, err := parseVariant(ctx, c, vp)
			if err != nil {
				return err
			}
			setVariant(v, vp, variant)
			return nil

		case DirectDispatch:
			ctx.tracef(c, "direct %s", vp.Variant.Name)
			variant, err := parseVariant(ctx, c, vp)
			if err != nil {
				return err
			}
			setVariant(v, vp, variant)
			return nil
		}
	}
	return c.Errorf("parse failed.")
}

func peekVariant(c *lexer.Cursor, vp *VariantPlan) bool {
	for i, peek := range vp.Peeks {
		if !peekValue(peek.Field.Type.Reflect(), c, i, peek.Any) {
			return false
		}
	}
	return true
}

func parseVariant(ctx *parseContext, c *lexer.Cursor, vp *VariantPlan) (reflect.Value, error) {
	variant := reflect.New(vp.Variant.Type.Reflect().Elem())
	return variant, parseBlock(ctx.nested(), c, variant.Elem(), vp.Body)
}

// Exactly one variant is non-nil.
func setVariant(v reflect.Value, vp *VariantPlan, variant reflect.Value) {
	v.Set(reflect.Zero(v.Type()))
	v.FieldByIndex(vp.Variant.FieldIndex).Set(variant)
}

func parseBlock(ctx *parseContext, c *lexer.Cursor, v reflect.Value, block *Block) error {
	for _, node := range block.Nodes {
		field := v.FieldByIndex(node.Field.Index)
		strategy := StrategyOf(node)
		ctx.tracef(c, "%s (%s)", node.Field.Name, strategy)
		if strategy != GroupStrategy {
			if err := parseValue(ctx, c, field, strategy); err != nil {
				return err
			}
			continue
		}
		inner, err := parseDelimited(c, field)
		if err != nil {
			return err
		}
		if err := parseBlock(ctx.nested(), inner, v, node.Body); err != nil {
			return err
		}
		if err := Finish(inner); err != nil {
			return err
		}
	}
	return nil
}

func (n *typeNode) tokens(ctx *parseContext, s *lexer.Stream, v reflect.Value) {
	if n.plan.Schema.Kind == StructKind {
		writeBlock(ctx, s, v, n.plan.Variants[0].Body)
		return
	}
	for _, vp := range n.plan.Variants {
		variant := v.FieldByIndex(vp.Variant.FieldIndex)
		if !variant.IsNil() {
			writeBlock(ctx, s, variant.Elem(), vp.Body)
			return
		}
	}
}

func writeBlock(ctx *parseContext, s *lexer.Stream, v reflect.Value, block *Block) {
	for _, node := range block.Nodes {
		field := v.FieldByIndex(node.Field.Index)
		switch StrategyOf(node) {
		case GroupStrategy:
			body := node.Body
			surround(s, field, func(s *lexer.Stream) { writeBlock(ctx, s, v, body) })
		case TerminatedStrategy, TerminatedAnyStrategy:
			writeTerminated(ctx, s, field)
		default:
			writeValue(ctx, s, field)
		}
	}
}

// Attribute arguments.

func (n *typeNode) parseArgs(ctx *parseContext, c *lexer.Cursor, v reflect.Value) error {
	params := n.params
	ctx.tracef(c, "%s arguments", n.typ)
	isNext := false
	for i, param := range params.Required {
		if isNext {
			if c.Empty() {
				return c.Errorf("expected at least %d arguments but %d argument was supplied", len(params.Required), i)
			}
			if err := Expect(c, ","); err != nil {
				return err
			}
		}
		isNext = true
		if err := parseValue(ctx, c, v.FieldByIndex(param.Field.Index), ParseStrategy); err != nil {
			return err
		}
	}
	seen := map[*Param]bool{}
	unnamedIndex := 0
	namedUsed := false
	for !c.Empty() {
		if isNext {
			if err := Expect(c, ","); err != nil {
				return err
			}
			if c.Empty() {
				break
			}
		}
		isNext = true
		name, err := TryParseName(c, n.names)
		if err != nil {
			return err
		}
		if name != nil {
			namedUsed = true
			ctx.tracef(c, "%s", name.Name)
			if err := n.parseNamed(ctx, c, v, name, seen); err != nil {
				return err
			}
			continue
		}
		if params.NoUnnamed() {
			return c.Errorf("cannot use unnamed parameter")
		}
		if namedUsed {
			return c.Errorf("cannot use unnamed parameter after named parameter")
		}
		switch {
		case unnamedIndex < len(params.Optional):
			field := v.FieldByIndex(params.Optional[unnamedIndex].Field.Index)
			target := reflect.New(field.Type().Elem())
			if err := parseValue(ctx, c, target.Elem(), ParseStrategy); err != nil {
				return err
			}
			field.Set(target)
		case params.Variadic != nil:
			field := v.FieldByIndex(params.Variadic.Field.Index)
			elem := reflect.New(field.Type().Elem()).Elem()
			if err := parseValue(ctx, c, elem, ParseStrategy); err != nil {
				return err
			}
			field.Set(reflect.Append(field, elem))
		default:
			return c.Errorf("too many unnamed parameter")
		}
		unnamedIndex++
	}
	for _, param := range params.All {
		switch param.Class {
		case PositionalVariadic:
			if field := v.FieldByIndex(param.Field.Index); field.IsNil() {
				field.Set(reflect.MakeSlice(field.Type(), 0, 0))
			}
		case RestMap:
			if field := v.FieldByIndex(param.Field.Index); field.IsNil() {
				field.Set(reflect.MakeMap(field.Type()))
			}
		case NamedValue, NamedArgs:
			if !seen[param] && !param.Option {
				return c.Errorf("%s", param.Missing())
			}
		}
	}
	return nil
}

func (n *typeNode) parseNamed(ctx *parseContext, c *lexer.Cursor, v reflect.Value, name *Name, seen map[*Param]bool) error {
	params := n.params
	if name.Index < 0 {
		field := v.FieldByIndex(params.Rest.Field.Index)
		if field.IsNil() {
			field.Set(reflect.MakeMap(field.Type()))
		}
		key := reflect.ValueOf(name.Name)
		if field.MapIndex(key).IsValid() {
			return lexer.Errorf(name.Pos, "parameter `%s` specified more than once", name.Name)
		}
		value := reflect.New(field.Type().Elem()).Elem()
		if err := parseNamedValue(ctx, c, value, params.Rest.Type, name); err != nil {
			return err
		}
		field.SetMapIndex(key, value)
		return nil
	}
	var candidates []*Param
	switch name.Kind {
	case FlagName:
		candidates, _ = params.Flags()
	case NameValueName:
		candidates, _ = params.NameValues()
	case NameArgsName:
		candidates, _ = params.NameArgs()
	}
	param := candidates[name.Index]
	if seen[param] {
		return lexer.Errorf(name.Pos, "parameter `%s` specified more than once", param.Name)
	}
	seen[param] = true
	field := v.FieldByIndex(param.Field.Index)
	if !param.Option {
		return parseNamedValue(ctx, c, field, param.Type, name)
	}
	target := reflect.New(field.Type().Elem())
	if err := parseNamedValue(ctx, c, target.Elem(), param.Type, name); err != nil {
		return err
	}
	field.Set(target)
	return nil
}

func parseNamedValue(ctx *parseContext, c *lexer.Cursor, v reflect.Value, pt ParamType, name *Name) error {
	switch pt.Kind {
	case BoolParam:
		v.SetBool(true)
		return nil

	case FlagParam:
		v.Set(reflect.ValueOf(Flag{Set: true, Pos: name.Pos}))
		return nil

	case ValueParam:
		if pt.Vec {
			return parseParenthesized(ctx, c, v, true)
		}
		return parseValue(ctx, c, v, ParseStrategy)

	case NameValueParam:
		v.FieldByName("NamePos").Set(reflect.ValueOf(name.Pos))
		value := v.FieldByName("Value")
		if !pt.Option {
			return parseValue(ctx, c, value, ParseStrategy)
		}
		if name.Kind == FlagName {
			return nil
		}
		target := reflect.New(value.Type().Elem())
		if err := parseValue(ctx, c, target.Elem(), ParseStrategy); err != nil {
			return err
		}
		value.Set(target)
		return nil

	case NameArgsParam:
		v.FieldByName("NamePos").Set(reflect.ValueOf(name.Pos))
		args := v.FieldByName("Args")
		if !pt.Option {
			return parseParenthesized(ctx, c, args, pt.Vec)
		}
		if name.Kind == FlagName {
			return nil
		}
		target := reflect.New(args.Type().Elem())
		if err := parseParenthesized(ctx, c, target.Elem(), pt.Vec); err != nil {
			return err
		}
		args.Set(target)
		return nil
	}
	panic("unreachable")
}
