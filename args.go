package structmeta

import (
	"reflect"

	"github.com/alecthomas/structmeta/lexer"
)

// An ArgsParser parses a comma separated list of attribute arguments into a struct.
//
// Each field is a positional argument or a named argument, written `name`,
// `name = value` or `name(args)` depending on its type. Named arguments may
// appear in any order after the positional ones.
//
//	type Attr struct {
//		Path  syntax.LitStr                           `meta:"unnamed"`
//		Limit *syntax.LitInt
//		Debug structmeta.Flag
//		Tags  structmeta.NameArgs[[]syntax.LitStr]
//		Rest  map[string]structmeta.NameValue[syntax.LitStr]
//	}
type ArgsParser[T any] struct {
	root *typeNode
	g    *generatorContext
	options
}

// BuildArgs constructs an attribute argument parser for the struct type T.
func BuildArgs[T any](opts ...Option) (parser *ArgsParser[T], err error) {
	defer recoverToError(&err)
	p := &ArgsParser[T]{g: newGeneratorContext()}
	if err := applyOptions(&p.options, opts); err != nil {
		return nil, err
	}
	t := reflect.TypeOf((*T)(nil)).Elem()
	p.root, err = p.g.argsType(t)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// MustBuildArgs calls BuildArgs[T](options...) and panics if an error occurs.
func MustBuildArgs[T any](opts ...Option) *ArgsParser[T] {
	parser, err := BuildArgs[T](opts...)
	if err != nil {
		panic(err)
	}
	return parser
}

// Parse every remaining token of the cursor as arguments.
func (p *ArgsParser[T]) Parse(c *lexer.Cursor) (out *T, err error) {
	defer recoverToError(&err)
	out = new(T)
	ctx := newParseContext(p.g, p.options)
	if err := p.root.parseArgs(ctx, c, reflect.ValueOf(out).Elem()); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseString lexes and parses source as arguments.
func (p *ArgsParser[T]) ParseString(filename, source string) (*T, error) {
	c, err := lexer.LexString(filename, source)
	if err != nil {
		return nil, err
	}
	return p.Parse(c)
}

// Params returns the classified parameters.
func (p *ArgsParser[T]) Params() *Params {
	return p.root.params
}
