// Package syntax provides the value types that structmeta schemas are built
// from: identifiers, literals, punctuation, delimiters and punctuated lists.
//
// Every type implements Parse(*lexer.Cursor) error on its pointer and
// ToTokens(*lexer.Stream) on its value, so that it can be used as a field of a
// type whose parser and serializer are generated by structmeta. Most types
// also implement Peek(*lexer.Cursor, int) bool for enum variant lookahead.
package syntax
