package structmeta

import (
	"io"
)

// An Option to modify the behaviour of the Parser.
type Option func(o *options) error

type options struct {
	trace         io.Writer
	allowTrailing bool
}

// Trace the parse to "w".
func Trace(w io.Writer) Option {
	return func(o *options) error {
		o.trace = w
		return nil
	}
}

// AllowTrailing tokens without erroring.
//
// That is, do not error if a full parse completes but additional tokens remain.
func AllowTrailing(ok bool) Option {
	return func(o *options) error {
		o.allowTrailing = ok
		return nil
	}
}

func applyOptions(o *options, opts []Option) error {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return err
		}
	}
	return nil
}
