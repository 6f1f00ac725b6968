package structmeta

import (
	"reflect"

	"github.com/alecthomas/structmeta/lexer"
	"github.com/alecthomas/structmeta/syntax"
)

// Struct tag keys.
const (
	TokensTag = "tokens"
	ParseTag  = "parse"
	MetaTag   = "meta"
)

// Each directive family is a comma separated list lexed with the same lexer
// used for input. Positions point into the tag: the filename is the
// "<Type>.<Field>" the tag is attached to.
type tagLexer struct {
	*lexer.Cursor
}

func lexTag(where, tag string) (*tagLexer, error) {
	c, err := lexer.LexString(where, tag)
	if err != nil {
		return nil, err
	}
	return &tagLexer{c}, nil
}

// Calls item for each entry, consuming the separating commas.
func (t *tagLexer) each(item func() error) error {
	comma := syntax.Comma{}
	for !t.Empty() {
		if err := item(); err != nil {
			return err
		}
		if t.Empty() {
			break
		}
		if err := comma.Parse(t.Cursor); err != nil {
			return err
		}
	}
	return nil
}

func (t *tagLexer) keyword() string {
	if tok := t.Peek(0); tok.Type == lexer.Ident {
		return tok.Value
	}
	return ""
}

func (t *tagLexer) str() (syntax.LitStr, error) {
	eq := syntax.Eq{}
	if err := eq.Parse(t.Cursor); err != nil {
		return syntax.LitStr{}, err
	}
	lit := syntax.LitStr{}
	return lit, lit.Parse(t.Cursor)
}

// ParseFieldTags parses the directives of a field from its struct tag.
func ParseFieldTags(where string, tag reflect.StructTag, d *Directives) error {
	if value, ok := tag.Lookup(TokensTag); ok {
		lex, err := lexTag(where, value)
		if err != nil {
			return err
		}
		err = lex.each(func() error {
			lit := syntax.LitStr{}
			if !lit.Peek(lex.Cursor, 0) {
				return lex.Errorf("expected string literal.")
			}
			_ = lit.Parse(lex.Cursor)
			d.Tokens = append(d.Tokens, Delim{Value: lit.Value, Pos: lit.Pos})
			return nil
		})
		if err != nil {
			return err
		}
	}
	if value, ok := tag.Lookup(ParseTag); ok {
		lex, err := lexTag(where, value)
		if err != nil {
			return err
		}
		err = lex.each(func() error {
			pos := lex.Pos()
			switch lex.keyword() {
			case "peek":
				if !d.Peek {
					d.Peek, d.PeekPos = true, pos
				}
			case "any":
				d.Any = true
			case "terminated":
				d.Terminated = true
			case "dump":
				return lex.Errorf("`dump` can only be specified on the type.")
			default:
				return lex.Errorf("expected `any`, `peek`, `terminated` or `dump`.")
			}
			lex.Next()
			return nil
		})
		if err != nil {
			return err
		}
	}
	if value, ok := tag.Lookup(MetaTag); ok {
		lex, err := lexTag(where, value)
		if err != nil {
			return err
		}
		err = lex.each(func() error {
			switch {
			case lex.keyword() == "name" && lex.Peek(1).Is("="):
				lex.Next()
				lit, err := lex.str()
				if err != nil {
					return err
				}
				d.MetaName, d.MetaNamePos, d.HasMetaName = lit.Value, lit.Pos, true
			case lex.keyword() == "unnamed":
				lex.Next()
				d.MetaUnnamed = true
			default:
				return lex.Errorf("expected `name = \"...\"` or `unnamed`.")
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// ParseTypeTags parses type-level directives from the tag of a blank field.
func ParseTypeTags(where string, tag reflect.StructTag, o *TypeOptions) error {
	dumpOnly := func(key string, set *bool) error {
		value, ok := tag.Lookup(key)
		if !ok {
			return nil
		}
		lex, err := lexTag(where, value)
		if err != nil {
			return err
		}
		return lex.each(func() error {
			if lex.keyword() != "dump" {
				return lex.Errorf("expected `dump`.")
			}
			lex.Next()
			*set = true
			return nil
		})
	}
	if err := dumpOnly(TokensTag, &o.DumpTokens); err != nil {
		return err
	}
	if err := dumpOnly(ParseTag, &o.DumpParse); err != nil {
		return err
	}
	value, ok := tag.Lookup(MetaTag)
	if !ok {
		return nil
	}
	lex, err := lexTag(where, value)
	if err != nil {
		return err
	}
	return lex.each(func() error {
		pos := lex.Pos()
		switch lex.keyword() {
		case "dump":
			lex.Next()
			o.DumpMeta = true
		case "unnamed":
			lex.Next()
			o.Unnamed = true
		case "name_filter":
			if o.NameFilterPos != (lexer.Position{}) {
				return lex.Errorf("`name_filter` cannot be specified twice")
			}
			lex.Next()
			lit, err := lex.str()
			if err != nil {
				return err
			}
			if lit.Value != "snake_case" {
				return lexer.Errorf(lit.Pos, "expected \"snake_case\"")
			}
			o.NameFilter, o.NameFilterPos = lit.Value, pos
		default:
			return lex.Errorf("expected `dump`, `unnamed` or `name_filter = \"...\"`.")
		}
		return nil
	})
}
