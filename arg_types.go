package structmeta

import (
	"github.com/alecthomas/structmeta/lexer"
)

// Flag is a `name` style attribute argument.
type Flag struct {
	Set bool
	// Position of the flag name, if Set.
	Pos lexer.Position
}

// FlagOf creates a Flag with no position.
func FlagOf(set bool) Flag { return Flag{Set: set} }

// Value returns true if the flag was specified.
func (f Flag) Value() bool { return f.Set }

// NameValue is a `name = value` style attribute argument.
type NameValue[T any] struct {
	NamePos lexer.Position
	Value   T
}

// NameArgs is a `name(args)` style attribute argument.
type NameArgs[T any] struct {
	NamePos lexer.Position
	Args    T
}
