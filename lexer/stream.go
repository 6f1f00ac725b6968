package lexer

import "strings"

// Stream accumulates the tokens emitted by serializers.
type Stream struct {
	tokens []Token
}

// Append tokens to the stream.
func (s *Stream) Append(tokens ...Token) {
	s.tokens = append(s.tokens, tokens...)
}

// Surround emits "open", the tokens emitted by body, and the matching closing delimiter.
func (s *Stream) Surround(open string, body func(s *Stream)) {
	closing := Closing(open)
	if closing == "" {
		panic("lexer: not an opening delimiter: " + open)
	}
	s.Append(PunctToken(open))
	body(s)
	s.Append(PunctToken(closing))
}

// Tokens returns the emitted tokens.
func (s *Stream) Tokens() []Token {
	return s.tokens
}

// Len returns the number of emitted tokens.
func (s *Stream) Len() int {
	return len(s.tokens)
}

// Cursor returns a Cursor over the emitted tokens.
func (s *Stream) Cursor() *Cursor {
	tokens := make([]Token, len(s.tokens))
	copy(tokens, s.tokens)
	return Upgrade(tokens)
}

// String renders the tokens separated by single spaces.
func (s *Stream) String() string {
	parts := make([]string, 0, len(s.tokens))
	for _, t := range s.tokens {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, " ")
}
