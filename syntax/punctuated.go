package syntax

import (
	"fmt"

	"github.com/alecthomas/structmeta/lexer"
)

// Punctuated is a sequence of T separated by P, with an optional trailing P.
type Punctuated[T, P any] struct {
	Items  []T
	Puncts []P
}

// Len returns the number of items.
func (p *Punctuated[T, P]) Len() int { return len(p.Items) }

// Push appends an item, inserting a zero separator if required.
func (p *Punctuated[T, P]) Push(item T) {
	if len(p.Puncts) < len(p.Items) {
		var punct P
		p.Puncts = append(p.Puncts, punct)
	}
	p.Items = append(p.Items, item)
}

// ParseTerminated parses items and separators until the cursor is exhausted.
func (p *Punctuated[T, P]) ParseTerminated(c *lexer.Cursor) error {
	return p.parseTerminated(c, false)
}

// ParseTerminatedAny is ParseTerminated, but items are parsed with ParseAny.
func (p *Punctuated[T, P]) ParseTerminatedAny(c *lexer.Cursor) error {
	return p.parseTerminated(c, true)
}

func (p *Punctuated[T, P]) parseTerminated(c *lexer.Cursor, anyItem bool) error {
	*p = Punctuated[T, P]{}
	for !c.Empty() {
		var item T
		if err := parseItem(c, &item, anyItem); err != nil {
			return err
		}
		p.Items = append(p.Items, item)
		if c.Empty() {
			break
		}
		var punct P
		if err := parseItem(c, &punct, false); err != nil {
			return err
		}
		p.Puncts = append(p.Puncts, punct)
	}
	return nil
}

func (p Punctuated[T, P]) ToTokens(s *lexer.Stream) {
	for i, item := range p.Items {
		emitItem(s, item)
		if i < len(p.Puncts) {
			emitItem(s, p.Puncts[i])
		}
	}
}

func parseItem(c *lexer.Cursor, v any, anyItem bool) error {
	if anyItem {
		if p, ok := v.(interface{ ParseAny(*lexer.Cursor) error }); ok {
			return p.ParseAny(c)
		}
	}
	p, ok := v.(interface{ Parse(*lexer.Cursor) error })
	if !ok {
		panic(fmt.Sprintf("syntax: %T does not implement Parse", v))
	}
	return p.Parse(c)
}

func emitItem(s *lexer.Stream, v any) {
	t, ok := v.(interface{ ToTokens(*lexer.Stream) })
	if !ok {
		panic(fmt.Sprintf("syntax: %T does not implement ToTokens", v))
	}
	t.ToTokens(s)
}
