package structmeta

import (
	"fmt"
	"strings"

	"github.com/alecthomas/structmeta/lexer"
)

// Writes "<indent><next token> <what>" to the trace writer, if any.
func (p *parseContext) tracef(c *lexer.Cursor, format string, args ...interface{}) {
	if p == nil || p.trace == nil {
		return
	}
	fmt.Fprintf(p.trace, "%s%q %s\n", strings.Repeat(" ", p.indent), c.Peek(0), fmt.Sprintf(format, args...))
}
