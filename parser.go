package structmeta

import (
	"reflect"

	"github.com/alecthomas/structmeta/lexer"
)

// A Parser for a particular type, executing its plan by reflection.
//
// A Parser behaves identically to the Parse and ToTokens methods generated
// for the same type, and is safe for concurrent use once built.
type Parser[T any] struct {
	root *typeNode
	g    *generatorContext
	options
}

// Build constructs a parser and serializer for the struct type T.
//
// Nested struct types that do not implement Parse and ToTokens are derived
// recursively from their fields.
func Build[T any](opts ...Option) (parser *Parser[T], err error) {
	defer recoverToError(&err)
	p := &Parser[T]{g: newGeneratorContext()}
	if err := applyOptions(&p.options, opts); err != nil {
		return nil, err
	}
	t := reflect.TypeOf((*T)(nil)).Elem()
	p.root, err = p.g.parseType(t)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// MustBuild calls Build[T](options...) and panics if an error occurs.
func MustBuild[T any](opts ...Option) *Parser[T] {
	parser, err := Build[T](opts...)
	if err != nil {
		panic(err)
	}
	return parser
}

// Parse a T from the cursor.
//
// Unless AllowTrailing(true) is given, every token must be consumed.
func (p *Parser[T]) Parse(c *lexer.Cursor) (out *T, err error) {
	defer recoverToError(&err)
	out = new(T)
	ctx := newParseContext(p.g, p.options)
	if err := p.root.parse(ctx, c, reflect.ValueOf(out).Elem()); err != nil {
		return nil, err
	}
	if !p.allowTrailing {
		if err := Finish(c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ParseString lexes and parses source.
func (p *Parser[T]) ParseString(filename, source string) (*T, error) {
	c, err := lexer.LexString(filename, source)
	if err != nil {
		return nil, err
	}
	return p.Parse(c)
}

// ToTokens emits the tokens of v.
func (p *Parser[T]) ToTokens(s *lexer.Stream, v *T) {
	ctx := newParseContext(p.g, p.options)
	p.root.tokens(ctx, s, reflect.ValueOf(v).Elem())
}

// String renders v as space separated tokens.
func (p *Parser[T]) String(v *T) string {
	s := &lexer.Stream{}
	p.ToTokens(s, v)
	return s.String()
}

// Plan returns a rendering of the parse plan.
func (p *Parser[T]) Plan() string {
	return dumpPlan(p.root.plan)
}
