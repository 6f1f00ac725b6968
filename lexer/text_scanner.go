package lexer

import (
	"strconv"
	"strings"
	"text/scanner"
)

// Multi-character punctuation recognised by Lex. Anything else is a single rune.
var compoundPuncts = map[string]bool{
	"==": true, "!=": true, "<=": true, ">=": true,
	"=>": true, "->": true, "::": true, "..": true,
	"&&": true, "||": true, "+=": true, "-=": true,
}

// Lex tokenises source with text/scanner.Scanner.
//
// Identifiers, integers, floats, double-quoted, back-quoted and single-quoted
// strings are recognised. Comments and whitespace are dropped. String tokens are
// unquoted. The returned slice is always terminated by an EOF token.
func Lex(filename, source string) ([]Token, error) {
	s := &scanner.Scanner{}
	s.Init(strings.NewReader(source))
	s.Filename = filename
	s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats | scanner.ScanStrings |
		scanner.ScanRawStrings | scanner.ScanComments | scanner.SkipComments
	var err error
	s.Error = func(s *scanner.Scanner, msg string) {
		if err == nil {
			pos := Position(s.Pos())
			pos.Filename = filename
			err = Errorf(pos, "%s", msg)
		}
	}
	tokens := []Token{}
	for {
		typ := s.Scan()
		if err != nil {
			return nil, err
		}
		pos := Position(s.Position)
		pos.Filename = filename
		text := s.TokenText()
		switch typ {
		case scanner.EOF:
			pos = Position(s.Pos())
			pos.Filename = filename
			return append(tokens, EOFToken(pos)), nil

		case scanner.Ident:
			tokens = append(tokens, Token{Type: Ident, Value: text, Pos: pos})

		case scanner.Int:
			tokens = append(tokens, Token{Type: Int, Value: text, Pos: pos})

		case scanner.Float:
			tokens = append(tokens, Token{Type: Float, Value: text, Pos: pos})

		case scanner.String, scanner.RawString:
			value, uerr := strconv.Unquote(text)
			if uerr != nil {
				return nil, Errorf(pos, "invalid quoted string %s: %s", text, uerr)
			}
			tokens = append(tokens, Token{Type: String, Value: value, Pos: pos})

		case '\'':
			value, serr := scanSingleQuoted(s, pos)
			if serr != nil {
				return nil, serr
			}
			tokens = append(tokens, Token{Type: String, Value: value, Pos: pos})

		default:
			if compoundPuncts[text+string(s.Peek())] {
				text += string(s.Next())
			}
			tokens = append(tokens, Token{Type: Punct, Value: text, Pos: pos})
		}
	}
}

// LexString lexes source and wraps the tokens in a Cursor.
func LexString(filename, source string) (*Cursor, error) {
	tokens, err := Lex(filename, source)
	if err != nil {
		return nil, err
	}
	return Upgrade(tokens), nil
}

// Single-quoted strings of any length are accepted so that string literals can
// be written inside Go struct tags.
func scanSingleQuoted(s *scanner.Scanner, pos Position) (string, error) {
	body := &strings.Builder{}
	for {
		r := s.Next()
		switch r {
		case scanner.EOF, '\n':
			return "", Errorf(pos, "literal not terminated")
		case '\'':
			value, err := strconv.Unquote(`"` + body.String() + `"`)
			if err != nil {
				return "", Errorf(pos, "invalid quoted string: %s", err)
			}
			return value, nil
		case '"':
			body.WriteString(`\"`)
		case '\\':
			next := s.Next()
			if next == '\'' {
				body.WriteRune('\'')
			} else {
				body.WriteRune('\\')
				body.WriteRune(next)
			}
		default:
			body.WriteRune(r)
		}
	}
}
