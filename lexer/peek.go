package lexer

// Cursor supports arbitrary lookahead, forking and narrowing over a token buffer.
//
// A Cursor is a pair of indices into a shared, immutable token slice. Forking
// copies the indices, committing a fork copies them back, and a delimited group
// is a Cursor whose end index stops at the group's closing delimiter.
type Cursor struct {
	tokens []Token
	cursor int
	end    int
	// Reported by Peek and Next once the cursor is exhausted. This is the EOF token
	// for a root cursor and the closing delimiter for a group.
	eof Token
}

// Upgrade a token slice to a Cursor.
//
// A trailing EOF token, as produced by Lex, is used for end-of-input positions.
func Upgrade(tokens []Token) *Cursor {
	c := &Cursor{tokens: tokens, end: len(tokens), eof: EOFToken(Position{})}
	if n := len(tokens); n > 0 && tokens[n-1].EOF() {
		c.eof = tokens[n-1]
		c.end--
	} else if n > 0 {
		c.eof = EOFToken(tokens[n-1].Pos)
	}
	return c
}

// Cursor position in tokens.
func (c *Cursor) Cursor() int {
	return c.cursor
}

// Empty returns true if there are no more tokens in this cursor's range.
func (c *Cursor) Empty() bool {
	return c.cursor >= c.end
}

// Remaining tokens in this cursor's range.
func (c *Cursor) Remaining() []Token {
	return c.tokens[c.cursor:c.end]
}

// Next consumes and returns the next token.
func (c *Cursor) Next() Token {
	if c.cursor >= c.end {
		return c.eof
	}
	c.cursor++
	return c.tokens[c.cursor-1]
}

// Peek ahead at the n+1 token. eg. Peek(0) will peek at the next token.
func (c *Cursor) Peek(n int) Token {
	if c.cursor+n >= c.end || n < 0 {
		return c.eof
	}
	return c.tokens[c.cursor+n]
}

// Pos returns the position of the next token, or of the end of input.
func (c *Cursor) Pos() Position {
	return c.Peek(0).Pos
}

// Fork creates an independent copy of this Cursor at its current token.
func (c *Cursor) Fork() *Cursor {
	clone := *c
	return &clone
}

// AdvanceTo commits a fork, moving this cursor to the fork's position.
//
// The fork must have been created from this cursor, directly or transitively.
func (c *Cursor) AdvanceTo(fork *Cursor) {
	if fork.end != c.end || fork.cursor < c.cursor || len(fork.tokens) != len(c.tokens) {
		panic("lexer: fork was not derived from the advancing cursor")
	}
	c.cursor = fork.cursor
}

// Errorf creates an Error positioned at the next token.
func (c *Cursor) Errorf(format string, args ...interface{}) error {
	return Errorf(c.Pos(), format, args...)
}

// Group consumes a delimited group opened by "open" and returns a Cursor
// restricted to the tokens between the delimiters.
//
// The returned tokens are the opening and closing delimiters.
func (c *Cursor) Group(open string) (*Cursor, Token, Token, error) {
	start := c.Peek(0)
	if !start.Is(open) || Closing(open) == "" {
		return nil, start, start, c.Errorf("expected `%s`", open)
	}
	stack := []string{}
	for i := c.cursor; i < c.end; i++ {
		t := c.tokens[i]
		switch {
		case t.IsOpen():
			stack = append(stack, Closing(t.Value))
		case t.IsClose():
			if stack[len(stack)-1] != t.Value {
				return nil, start, t, Errorf(t.Pos, "mismatched closing delimiter `%s`", t.Value)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				group := &Cursor{tokens: c.tokens, cursor: c.cursor + 1, end: i, eof: t}
				c.cursor = i + 1
				return group, start, t, nil
			}
		}
	}
	return nil, start, c.eof, Errorf(start.Pos, "unclosed delimiter `%s`", open)
}
