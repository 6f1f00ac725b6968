package structmeta

import (
	"fmt"
	"strings"

	"github.com/alecthomas/structmeta/lexer"
	"github.com/alecthomas/structmeta/syntax"
)

// NameKind is the shape a named attribute argument was written in.
type NameKind int

// Named argument shapes.
const (
	// FlagName is `name`.
	FlagName NameKind = iota
	// NameValueName is `name = value`.
	NameValueName
	// NameArgsName is `name(args)`.
	NameArgsName
)

// NameSpec is the set of names an attribute argument parser accepts.
type NameSpec struct {
	Flags         []string
	FlagRest      bool
	NameValues    []string
	NameValueRest bool
	NameArgs      []string
	NameArgsRest  bool
	// Positional arguments are not accepted at this point.
	NoUnnamed bool
	// "" or "snake_case". Identifiers rejected by the filter are positional.
	NameFilter string
	// Accept reserved words as names.
	AnyIdent bool
}

// Name is a parsed argument name.
type Name struct {
	Kind NameKind
	// Index into the declared names of Kind, or -1 for a rest map entry.
	Index int
	Name  string
	Pos   lexer.Position
}

// Is returns true if the name is the declared name at index of the given kind.
func (n *Name) Is(kind NameKind, index int) bool {
	return n.Kind == kind && n.Index == index
}

// IsRest returns true if the name is absorbed by the rest map as kind.
func (n *Name) IsRest(kind NameKind) bool {
	return n.Kind == kind && n.Index < 0
}

func (s *NameSpec) accepts(name string) bool {
	if s.NameFilter == "snake_case" {
		return IsSnakeCase(name)
	}
	return true
}

// TryParseName attempts to read the name of a named argument.
//
// The identifier's shape is decided by the following token: a comma or the end
// of input for a flag, `=` for a name-value and `(` for name-args. On a match
// the cursor is advanced past the name, and past the `=` of a name-value. Nil
// is returned without consuming anything if the tokens are a positional
// argument.
func TryParseName(c *lexer.Cursor, spec *NameSpec) (*Name, error) {
	mayFlag := len(spec.Flags) > 0 || spec.FlagRest
	mayNameValue := len(spec.NameValues) > 0 || spec.NameValueRest
	mayNameArgs := len(spec.NameArgs) > 0 || spec.NameArgsRest
	fork := c.Fork()
	ident := syntax.Ident{}
	var err error
	if spec.AnyIdent {
		err = ident.ParseAny(fork)
	} else {
		err = ident.Parse(fork)
	}
	if err == nil && spec.accepts(ident.Name) {
		var found *NameKind
		next := fork.Peek(0)
		switch {
		case (spec.NoUnnamed || mayFlag) && (fork.Empty() || next.Is(",")):
			if i, ok := nameIndex(spec.Flags, spec.FlagRest, ident.Name); ok {
				c.AdvanceTo(fork)
				return &Name{Kind: FlagName, Index: i, Name: ident.Name, Pos: ident.Pos}, nil
			}
			found = kindOf(FlagName)
		case (spec.NoUnnamed || mayNameValue) && next.Is("="):
			if i, ok := nameIndex(spec.NameValues, spec.NameValueRest, ident.Name); ok {
				fork.Next()
				c.AdvanceTo(fork)
				return &Name{Kind: NameValueName, Index: i, Name: ident.Name, Pos: ident.Pos}, nil
			}
			found = kindOf(NameValueName)
		case (spec.NoUnnamed || mayNameArgs) && next.Is("("):
			if i, ok := nameIndex(spec.NameArgs, spec.NameArgsRest, ident.Name); ok {
				c.AdvanceTo(fork)
				return &Name{Kind: NameArgsName, Index: i, Name: ident.Name, Pos: ident.Pos}, nil
			}
			found = kindOf(NameArgsName)
		}
		if found != nil || spec.NoUnnamed {
			expected := []string{}
			if name, ok := nameOf(spec.Flags, spec.FlagRest, ident.Name); ok {
				expected = append(expected, fmt.Sprintf("flag `%s`", name))
			}
			if name, ok := nameOf(spec.NameValues, spec.NameValueRest, ident.Name); ok {
				expected = append(expected, fmt.Sprintf("`%s = ...`", name))
			}
			if name, ok := nameOf(spec.NameArgs, spec.NameArgsRest, ident.Name); ok {
				expected = append(expected, fmt.Sprintf("`%s(...)`", name))
			}
			if len(expected) > 0 {
				return nil, c.Errorf("%s", expectedMessage(expected, found, ident.Name))
			}
			help := ""
			if similar := findSimilarName(ident.Name, spec.Flags, spec.NameValues, spec.NameArgs); similar != "" {
				help = fmt.Sprintf(" (help: a parameter with a similar name exists: `%s`)", similar)
			}
			return nil, c.Errorf("cannot find parameter `%s` in this scope%s", ident.Name, help)
		}
	}
	if spec.NoUnnamed {
		if mayFlag || mayNameValue || mayNameArgs {
			return nil, c.Errorf("too many unnamed arguments.")
		}
		return nil, c.Errorf("too many arguments.")
	}
	return nil, nil
}

func kindOf(kind NameKind) *NameKind { return &kind }

func nameIndex(names []string, rest bool, name string) (int, bool) {
	for i, n := range names {
		if n == name {
			return i, true
		}
	}
	if rest {
		return -1, true
	}
	return 0, false
}

func nameOf(names []string, rest bool, name string) (string, bool) {
	if rest {
		return name, true
	}
	for _, n := range names {
		if n == name {
			return n, true
		}
	}
	return "", false
}

func expectedMessage(expected []string, found *NameKind, name string) string {
	w := &strings.Builder{}
	w.WriteString("expected ")
	for i, e := range expected {
		switch {
		case i == 0:
		case i == len(expected)-1:
			w.WriteString(" or ")
		default:
			w.WriteString(", ")
		}
		w.WriteString(e)
	}
	if found != nil {
		switch *found {
		case FlagName:
			fmt.Fprintf(w, ", found `%s`", name)
		case NameValueName:
			fmt.Fprintf(w, ", found `%s = ...`", name)
		case NameArgsName:
			fmt.Fprintf(w, ", found `%s(...)`", name)
		}
	}
	return w.String()
}

// Returns the single declared name nearest to name, or "" if there is none or
// the nearest distance is shared by different names.
func findSimilarName(name string, names ...[]string) string {
	c0 := []rune(name)
	best := ""
	bestDistance := -1
	for _, list := range names {
		for _, candidate := range list {
			d, ok := distance(c0, []rune(candidate))
			if !ok {
				continue
			}
			if bestDistance < 0 || d < bestDistance {
				bestDistance = d
				best = candidate
			}
			if d == bestDistance && candidate != best {
				return ""
			}
		}
	}
	return best
}

// An edit distance limited to 2: 0 for equal strings, 1 for one substitution,
// insertion or deletion, and 2 for one transposition of adjacent characters.
func distance(s0, s1 []rune) (int, bool) {
	if len(s0) > len(s1) {
		return distance(s1, s0)
	}
	if len(s0)+1 < len(s1) {
		return 0, false
	}
	start := 0
	for start < len(s0) && start < len(s1) && s0[start] == s1[start] {
		start++
	}
	end := 0
	for start+end < len(s0) && start+end < len(s1) && s0[len(s0)-end-1] == s1[len(s1)-end-1] {
		end++
	}
	if len(s0) == len(s1) {
		switch {
		case start+end == len(s0):
			return 0, true
		case start+end+1 == len(s0):
			return 1, true
		case start+end+2 == len(s0) && s0[start] == s1[start+1] && s0[start+1] == s1[start]:
			return 2, true
		}
	} else if start+end == len(s0) {
		return 1, true
	}
	return 0, false
}

// IsSnakeCase returns true if s contains only lower case ASCII letters, digits and underscores.
func IsSnakeCase(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '_' {
			return false
		}
	}
	return true
}

func isKeyword(name string) bool { return syntax.IsKeyword(name) }
