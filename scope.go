package structmeta

import (
	"github.com/alecthomas/structmeta/lexer"
)

// A Block is the sequence of nodes in one delimiter scope.
type Block struct {
	Nodes []*Node
}

// A Node is a field placed in a scope.
//
// A node with an Open delimiter is a group: the field is the delimiter token
// and Body holds the fields enclosed by it.
type Node struct {
	Field *Field
	// The field is read from the root cursor.
	Root bool
	// Opening delimiter, or "".
	Open string
	Body *Block
}

// Walk visits nodes in field declaration order.
func (b *Block) Walk(visit func(n *Node)) {
	for _, n := range b.Nodes {
		visit(n)
		if n.Body != nil {
			n.Body.Walk(visit)
		}
	}
}

type scopeFrame struct {
	block *Block
	close string
}

// BuildScopes arranges fields into a tree of delimiter scopes.
//
// Each delimiter string is processed one character at a time. A closing
// character pops the innermost scope, so a field annotated with a close
// belongs to the enclosing scope. An opening character makes the field the
// delimiter of a new scope. Scopes still open after the last field are closed
// implicitly.
func BuildScopes(fields []*Field) (*Block, error) {
	root := &Block{}
	stack := []scopeFrame{{block: root}}
	for _, field := range fields {
		var opened *Node
		for _, delim := range field.Tokens {
			for i, ch := range delim.Value {
				pos := delim.Pos
				pos.Column += i + 1
				pos.Offset += i + 1
				top := stack[len(stack)-1]
				switch ch {
				case '(', '[', '{':
					if opened != nil {
						return nil, lexer.Errorf(pos, "a field can open only one delimiter.")
					}
					opened = &Node{Field: field, Root: len(stack) == 1, Open: string(ch), Body: &Block{}}
					top.block.Nodes = append(top.block.Nodes, opened)
					stack = append(stack, scopeFrame{block: opened.Body, close: lexer.Closing(string(ch))})

				case ')', ']', '}':
					if len(stack) == 1 {
						return nil, lexer.Errorf(pos, "mismatched closing delimiter `%c`.", ch)
					}
					if top.close != string(ch) {
						return nil, lexer.Errorf(pos, "mismatched closing delimiter expected `%s`, found `%c`.", top.close, ch)
					}
					stack = stack[:len(stack)-1]

				default:
					return nil, lexer.Errorf(pos, "expected '(', ')', '[', ']', '{' or '}', found `%c`.", ch)
				}
			}
		}
		if opened == nil {
			top := stack[len(stack)-1]
			top.block.Nodes = append(top.block.Nodes, &Node{Field: field, Root: len(stack) == 1})
		}
	}
	return root, nil
}
