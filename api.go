package structmeta

import (
	"github.com/alecthomas/structmeta/lexer"
)

// The Parseable interface is implemented by every value type that can appear as a field.
type Parseable interface {
	// Parse into the receiver, consuming tokens from the cursor.
	Parse(c *lexer.Cursor) error
}

// AnyParseable values can be parsed in a mode that also accepts reserved words.
//
// Fields tagged `parse:"any"` use ParseAny.
type AnyParseable interface {
	ParseAny(c *lexer.Cursor) error
}

// TerminatedParseable values parse a separated list until the end of the enclosing scope.
//
// Fields tagged `parse:"terminated"` use ParseTerminated.
type TerminatedParseable interface {
	ParseTerminated(c *lexer.Cursor) error
}

// TerminatedAnyParseable is TerminatedParseable with reserved words accepted for each item.
type TerminatedAnyParseable interface {
	ParseTerminatedAny(c *lexer.Cursor) error
}

// Peekable values can report whether the n'th token ahead starts a value, without consuming it.
type Peekable interface {
	Peek(c *lexer.Cursor, n int) bool
}

// AnyPeekable is Peekable with reserved words accepted.
type AnyPeekable interface {
	PeekAny(c *lexer.Cursor, n int) bool
}

// Tokenizer values can re-emit themselves as tokens.
type Tokenizer interface {
	ToTokens(s *lexer.Stream)
}

// Delimiter values open a delimited group.
//
// A field tagged with an opening delimiter, eg. `tokens:"'('"`, must implement
// Delimiter. The fields that follow it, up to the matching close, are read from
// the cursor returned by ParseDelimited and written inside Surround.
type Delimiter interface {
	ParseDelimited(c *lexer.Cursor) (*lexer.Cursor, error)
	Surround(s *lexer.Stream, body func(s *lexer.Stream))
}

// Enum marks a struct as a sum type.
//
// A struct with a blank field of type Enum is an enum: each of its remaining
// fields is a variant and must be a pointer to a struct. Exactly one variant is
// non-nil after parsing.
//
//	type Expr struct {
//		_      structmeta.Enum
//		Number *struct{ Value syntax.LitInt }
//		Call   *Call
//	}
type Enum struct{}
