package structmeta

import (
	"io"
	"reflect"
)

// Context for a single parse.
type parseContext struct {
	g      *generatorContext
	trace  io.Writer
	indent int
}

func newParseContext(g *generatorContext, o options) *parseContext {
	return &parseContext{g: g, trace: o.trace}
}

// Derived parse node for a struct type without its own Parse method.
func (p *parseContext) derived(t reflect.Type) *typeNode {
	if p == nil || p.g == nil {
		return nil
	}
	return p.g.typeNodes[t]
}

// Nested returns a context for a nested value, indented for tracing.
func (p *parseContext) nested() *parseContext {
	if p == nil {
		return nil
	}
	out := *p
	out.indent += 2
	return &out
}
