// Package lexer defines the tokens, cursor and stream used by structmeta.
//
// Lex tokenises source with text/scanner. A Cursor reads a slice of tokens and
// can be forked for backtracking or narrowed to the contents of a delimited
// group. A Stream collects the tokens emitted by ToTokens.
package lexer
