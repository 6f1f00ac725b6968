package structmeta

import (
	"fmt"
	"reflect"

	"github.com/alecthomas/structmeta/lexer"
)

// Runtime helpers called by generated code. The reflective backend shares the
// reflect.Value implementations below.

var (
	parseableType              = reflect.TypeOf((*Parseable)(nil)).Elem()
	anyParseableType           = reflect.TypeOf((*AnyParseable)(nil)).Elem()
	terminatedParseableType    = reflect.TypeOf((*TerminatedParseable)(nil)).Elem()
	terminatedAnyParseableType = reflect.TypeOf((*TerminatedAnyParseable)(nil)).Elem()
	peekableType               = reflect.TypeOf((*Peekable)(nil)).Elem()
	anyPeekableType            = reflect.TypeOf((*AnyPeekable)(nil)).Elem()
	tokenizerType              = reflect.TypeOf((*Tokenizer)(nil)).Elem()
	delimiterType              = reflect.TypeOf((*Delimiter)(nil)).Elem()
)

type surrounder interface {
	Surround(s *lexer.Stream, body func(s *lexer.Stream))
}

// ParseValue parses a value into dst.
//
// Types implementing Parseable are parsed with Parse. A pointer is optional: it
// is left nil at the end of the scope, or when the pointed-to type implements
// Peekable and does not match the next token. A slice is parsed repeatedly to
// the end of the scope.
func ParseValue[T any](c *lexer.Cursor, dst *T) error {
	return parseValue(nil, c, reflect.ValueOf(dst).Elem(), ParseStrategy)
}

// ParseAnyValue parses a value into dst with ParseAny.
func ParseAnyValue[T any](c *lexer.Cursor, dst *T) error {
	return parseValue(nil, c, reflect.ValueOf(dst).Elem(), ParseAnyStrategy)
}

// ParseTerminated parses a separated list into dst.
//
// Types implementing TerminatedParseable are parsed with ParseTerminated, and
// slices are parsed as a comma separated list with an optional trailing comma.
func ParseTerminated[T any](c *lexer.Cursor, dst *T) error {
	return parseValue(nil, c, reflect.ValueOf(dst).Elem(), TerminatedStrategy)
}

// ParseTerminatedAny is ParseTerminated with reserved words accepted for each item.
func ParseTerminatedAny[T any](c *lexer.Cursor, dst *T) error {
	return parseValue(nil, c, reflect.ValueOf(dst).Elem(), TerminatedAnyStrategy)
}

// ParseDelimited parses the opening delimiter dst and returns a cursor over the group's contents.
func ParseDelimited[T any](c *lexer.Cursor, dst *T) (*lexer.Cursor, error) {
	return parseDelimited(c, reflect.ValueOf(dst).Elem())
}

// ParseParenthesized parses `( value )` into dst.
func ParseParenthesized[T any](c *lexer.Cursor, dst *T) error {
	return parseParenthesized(nil, c, reflect.ValueOf(dst).Elem(), false)
}

// ParseParenthesizedList parses `( item, ... )` into dst.
func ParseParenthesizedList[T any](c *lexer.Cursor, dst *[]T) error {
	return parseParenthesized(nil, c, reflect.ValueOf(dst).Elem(), true)
}

// Peek reports whether the token n ahead starts a T.
func Peek[T any](c *lexer.Cursor, n int) bool {
	return peekValue(reflect.TypeOf((*T)(nil)).Elem(), c, n, false)
}

// PeekAny reports whether the token n ahead starts a T, accepting reserved words.
func PeekAny[T any](c *lexer.Cursor, n int) bool {
	return peekValue(reflect.TypeOf((*T)(nil)).Elem(), c, n, true)
}

// WriteTokens emits the tokens of v.
//
// Nil pointers emit nothing and slices emit each element.
func WriteTokens[T any](s *lexer.Stream, v T) {
	writeValue(nil, s, reflect.ValueOf(&v).Elem())
}

// WriteTerminated emits the tokens of a separated list.
//
// Slices are written comma separated, anything else as by WriteTokens.
func WriteTerminated[T any](s *lexer.Stream, v T) {
	writeTerminated(nil, s, reflect.ValueOf(&v).Elem())
}

// Surround emits the delimiter v around the tokens emitted by body.
func Surround[T any](s *lexer.Stream, v T, body func(s *lexer.Stream)) {
	surround(s, reflect.ValueOf(&v).Elem(), body)
}

// Expect consumes the punctuation punct.
func Expect(c *lexer.Cursor, punct string) error {
	if !c.Peek(0).Is(punct) {
		return c.Errorf("expected `%s`", punct)
	}
	c.Next()
	return nil
}

// Finish returns an error if any tokens remain in c.
func Finish(c *lexer.Cursor) error {
	if !c.Empty() {
		return c.Errorf("unexpected token %s", quoteToken(c.Peek(0)))
	}
	return nil
}

func quoteToken(t lexer.Token) string {
	return "`" + t.String() + "`"
}

func parseValue(ctx *parseContext, c *lexer.Cursor, v reflect.Value, strategy Strategy) error {
	ptr := v.Addr().Interface()
	switch strategy {
	case ParseAnyStrategy:
		if p, ok := ptr.(AnyParseable); ok {
			return p.ParseAny(c)
		}
	case TerminatedStrategy:
		if p, ok := ptr.(TerminatedParseable); ok {
			return p.ParseTerminated(c)
		}
	case TerminatedAnyStrategy:
		if p, ok := ptr.(TerminatedAnyParseable); ok {
			return p.ParseTerminatedAny(c)
		}
	case GroupStrategy:
		panic("structmeta: groups are parsed with parseDelimited")
	}
	if strategy == ParseStrategy {
		if p, ok := ptr.(Parseable); ok {
			return p.Parse(c)
		}
	}
	switch v.Kind() {
	case reflect.Ptr:
		return parseOptional(ctx, c, v, strategy)

	case reflect.Slice:
		if strategy == TerminatedStrategy || strategy == TerminatedAnyStrategy {
			item := ParseStrategy
			if strategy == TerminatedAnyStrategy {
				item = ParseAnyStrategy
			}
			return parseList(ctx, c, v, item)
		}
		v.Set(reflect.MakeSlice(v.Type(), 0, 0))
		for !c.Empty() {
			elem := reflect.New(v.Type().Elem()).Elem()
			if err := parseValue(ctx, c, elem, strategy); err != nil {
				return err
			}
			v.Set(reflect.Append(v, elem))
		}
		return nil

	case reflect.Struct:
		if node := ctx.derived(v.Type()); node != nil && strategy == ParseStrategy {
			return node.parse(ctx.nested(), c, v)
		}
	}
	return c.Errorf("%s does not implement %s", v.Type(), strategyMethod(strategy))
}

func strategyMethod(strategy Strategy) string {
	switch strategy {
	case ParseAnyStrategy:
		return "ParseAny"
	case TerminatedStrategy:
		return "ParseTerminated"
	case TerminatedAnyStrategy:
		return "ParseTerminatedAny"
	case GroupStrategy:
		return "ParseDelimited"
	}
	return "Parse"
}

func parseOptional(ctx *parseContext, c *lexer.Cursor, v reflect.Value, strategy Strategy) error {
	if c.Empty() {
		return nil
	}
	elem := v.Type().Elem()
	target := reflect.New(elem)
	if implementsPeek(elem, strategy == ParseAnyStrategy) {
		if !peekValue(elem, c, 0, strategy == ParseAnyStrategy) {
			return nil
		}
		if err := parseValue(ctx, c, target.Elem(), strategy); err != nil {
			return err
		}
		v.Set(target)
		return nil
	}
	fork := c.Fork()
	if err := parseValue(ctx, fork, target.Elem(), strategy); err != nil {
		return nil // nolint: nilerr
	}
	c.AdvanceTo(fork)
	v.Set(target)
	return nil
}

// Comma separated list with an optional trailing comma, to the end of c.
func parseList(ctx *parseContext, c *lexer.Cursor, v reflect.Value, item Strategy) error {
	v.Set(reflect.MakeSlice(v.Type(), 0, 0))
	for !c.Empty() {
		elem := reflect.New(v.Type().Elem()).Elem()
		if err := parseValue(ctx, c, elem, item); err != nil {
			return err
		}
		v.Set(reflect.Append(v, elem))
		if c.Empty() {
			break
		}
		if err := Expect(c, ","); err != nil {
			return err
		}
	}
	return nil
}

func parseDelimited(c *lexer.Cursor, v reflect.Value) (*lexer.Cursor, error) {
	if v.Kind() == reflect.Ptr {
		target := reflect.New(v.Type().Elem())
		inner, err := parseDelimited(c, target.Elem())
		if err != nil {
			return nil, err
		}
		v.Set(target)
		return inner, nil
	}
	d, ok := v.Addr().Interface().(Delimiter)
	if !ok {
		return nil, c.Errorf("%s does not implement ParseDelimited", v.Type())
	}
	return d.ParseDelimited(c)
}

func parseParenthesized(ctx *parseContext, c *lexer.Cursor, v reflect.Value, list bool) error {
	inner, _, _, err := c.Group("(")
	if err != nil {
		return err
	}
	if list {
		err = parseList(ctx, inner, v, ParseStrategy)
	} else {
		err = parseValue(ctx, inner, v, ParseStrategy)
	}
	if err != nil {
		return err
	}
	return Finish(inner)
}

func implementsPeek(t reflect.Type, anyIdent bool) bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if anyIdent {
		return reflect.PtrTo(t).Implements(anyPeekableType)
	}
	return reflect.PtrTo(t).Implements(peekableType)
}

func peekValue(t reflect.Type, c *lexer.Cursor, n int, anyIdent bool) bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	v := reflect.New(t).Interface()
	if anyIdent {
		if p, ok := v.(AnyPeekable); ok {
			return p.PeekAny(c, n)
		}
		return false
	}
	if p, ok := v.(Peekable); ok {
		return p.Peek(c, n)
	}
	return false
}

func writeValue(ctx *parseContext, s *lexer.Stream, v reflect.Value) {
	if v.Kind() == reflect.Ptr {
		if !v.IsNil() {
			writeValue(ctx, s, v.Elem())
		}
		return
	}
	if t, ok := v.Interface().(Tokenizer); ok {
		t.ToTokens(s)
		return
	}
	if v.CanAddr() {
		if t, ok := v.Addr().Interface().(Tokenizer); ok {
			t.ToTokens(s)
			return
		}
	}
	switch v.Kind() {
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			writeValue(ctx, s, v.Index(i))
		}
		return
	case reflect.Struct:
		if node := ctx.derived(v.Type()); node != nil {
			node.tokens(ctx, s, v)
			return
		}
	}
	panic(fmt.Sprintf("structmeta: %s does not implement ToTokens", v.Type()))
}

func writeTerminated(ctx *parseContext, s *lexer.Stream, v reflect.Value) {
	if _, ok := v.Interface().(Tokenizer); ok || v.Kind() != reflect.Slice {
		writeValue(ctx, s, v)
		return
	}
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			s.Append(lexer.PunctToken(","))
		}
		writeValue(ctx, s, v.Index(i))
	}
}

func surround(s *lexer.Stream, v reflect.Value, body func(s *lexer.Stream)) {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			v = reflect.New(v.Type().Elem())
		}
		v = v.Elem()
	}
	d, ok := v.Interface().(surrounder)
	if !ok {
		panic(fmt.Sprintf("structmeta: %s does not implement Surround", v.Type()))
	}
	d.Surround(s, body)
}
