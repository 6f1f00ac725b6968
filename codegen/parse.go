package codegen

import (
	"fmt"
	"strings"

	"github.com/alecthomas/structmeta"
)

func generateParse(plan *structmeta.Plan) string {
	e := &emitter{}
	name := plan.Schema.Name
	e.printf("func (v *%s) Parse(c *lexer.Cursor) error {\n", name)
	if plan.Schema.Kind == structmeta.StructKind {
		emitParseBlock(e, "c", plan.Variants[0].Body)
		e.printf("return nil\n}\n\n")
		return e.String()
	}
	for _, vp := range plan.Variants {
		variant := vp.Variant.Type.PointerElem().String()
		switch vp.Dispatch {
		case structmeta.PeekDispatch:
			e.printf("if %s {\n", peekCondition(vp))
			e.printf("variant := new(%s)\n", variant)
			emitVariantCall(e, "c", vp)
			e.returnIfErr("parse(variant)")
			e.printf("*v = %s{%s: variant}\nreturn nil\n}\n", name, vp.Variant.Name)

		case structmeta.ForkDispatch:
			e.printf("{\nfork := c.Fork()\n")
			e.printf("variant := new(%s)\n", variant)
			emitVariantCall(e, "c", vp)
			e.printf("if err := parse(fork, variant); err == nil {\n")
			e.printf("c.AdvanceTo(fork)\n*v = %s{%s: variant}\nreturn nil\n}\n}\n", name, vp.Variant.Name)

		case structmeta.DirectDispatch:
			e.printf("variant := new(%s)\n", variant)
			emitVariantCall(e, "c", vp)
			e.returnIfErr("parse(variant)")
			e.printf("*v = %s{%s: variant}\nreturn nil\n", name, vp.Variant.Name)
		}
	}
	if plan.Fallback {
		e.printf("return c.Errorf(\"parse failed.\")\n")
	}
	e.printf("}\n\n")
	return e.String()
}

// Declares "parse", a function literal reading the variant body.
//
// Forked variants take the fork as a parameter, others close over c.
func emitVariantCall(e *emitter, cursor string, vp *structmeta.VariantPlan) {
	variant := vp.Variant.Type.PointerElem().String()
	if vp.Dispatch == structmeta.ForkDispatch {
		e.printf("parse := func(%s *lexer.Cursor, v *%s) error {\n", cursor, variant)
	} else {
		e.printf("parse := func(v *%s) error {\n", variant)
	}
	emitParseBlock(e, cursor, vp.Body)
	e.printf("return nil\n}\n")
}

func peekCondition(vp *structmeta.VariantPlan) string {
	conds := make([]string, 0, len(vp.Peeks))
	for i, peek := range vp.Peeks {
		fn := "Peek"
		if peek.Any {
			fn = "PeekAny"
		}
		conds = append(conds, fmt.Sprintf("structmeta.%s[%s](c, %d)", fn, peek.Field.Type, i))
	}
	return strings.Join(conds, " && ")
}

func emitParseBlock(e *emitter, cursor string, block *structmeta.Block) {
	for _, node := range block.Nodes {
		field := "v." + node.Field.Name
		switch structmeta.StrategyOf(node) {
		case structmeta.GroupStrategy:
			e.cursors++
			inner := fmt.Sprintf("c%d", e.cursors)
			e.printf("{\n%s, err := structmeta.ParseDelimited(%s, &%s)\n", inner, cursor, field)
			e.printf("if err != nil {\nreturn err\n}\n")
			emitParseBlock(e, inner, node.Body)
			e.returnIfErr("structmeta.Finish(%s)", inner)
			e.printf("}\n")
		case structmeta.ParseAnyStrategy:
			e.returnIfErr("structmeta.ParseAnyValue(%s, &%s)", cursor, field)
		case structmeta.TerminatedStrategy:
			e.returnIfErr("structmeta.ParseTerminated(%s, &%s)", cursor, field)
		case structmeta.TerminatedAnyStrategy:
			e.returnIfErr("structmeta.ParseTerminatedAny(%s, &%s)", cursor, field)
		default:
			e.returnIfErr("structmeta.ParseValue(%s, &%s)", cursor, field)
		}
	}
}

func generateToTokens(plan *structmeta.Plan) string {
	e := &emitter{}
	e.printf("func (v %s) ToTokens(s *lexer.Stream) {\n", plan.Schema.Name)
	if plan.Schema.Kind == structmeta.StructKind {
		emitWriteBlock(e, plan.Variants[0].Body)
	} else {
		e.printf("switch {\n")
		for _, vp := range plan.Variants {
			e.printf("case v.%s != nil:\nv := v.%[1]s\n", vp.Variant.Name)
			if len(vp.Body.Nodes) == 0 {
				e.printf("_ = v\n")
			}
			emitWriteBlock(e, vp.Body)
		}
		e.printf("}\n")
	}
	e.printf("}\n\n")
	return e.String()
}

func emitWriteBlock(e *emitter, block *structmeta.Block) {
	for _, node := range block.Nodes {
		field := "v." + node.Field.Name
		switch structmeta.StrategyOf(node) {
		case structmeta.GroupStrategy:
			e.printf("structmeta.Surround(s, %s, func(s *lexer.Stream) {\n", field)
			emitWriteBlock(e, node.Body)
			e.printf("})\n")
		case structmeta.TerminatedStrategy, structmeta.TerminatedAnyStrategy:
			e.printf("structmeta.WriteTerminated(s, %s)\n", field)
		default:
			e.printf("structmeta.WriteTokens(s, %s)\n", field)
		}
	}
}
