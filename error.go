package structmeta

import (
	"fmt"

	"github.com/alecthomas/structmeta/lexer"
)

// Error represents an error while building a schema or parsing.
//
// The error will contain positional information if available.
type Error interface {
	error
	// Unadorned message.
	Message() string
	// Position error occurred.
	Position() lexer.Position
}

var _ Error = &lexer.Error{}

// Errorf creates a new Error at the given position.
func Errorf(pos lexer.Position, format string, args ...interface{}) error {
	return lexer.Errorf(pos, format, args...)
}

// AnnotateError wraps an existing error with a position.
//
// If the existing error is already an Error it will be returned unmodified.
func AnnotateError(pos lexer.Position, err error) error {
	if perr, ok := err.(Error); ok {
		return perr
	}
	return lexer.Errorf(pos, "%s", err.Error())
}

// DumpError is returned when a type carries a `dump` directive.
//
// Code holds the generated source, or a rendering of the parse plan for the
// reflective backend.
type DumpError struct {
	Type string
	Code string
}

func (d *DumpError) Error() string {
	return fmt.Sprintf("%s: dump requested\n%s", d.Type, d.Code)
}
