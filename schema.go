package structmeta

import (
	"github.com/alecthomas/structmeta/lexer"
)

// Kind of a Schema.
type Kind int

// Schema kinds.
const (
	StructKind Kind = iota
	EnumKind
)

func (k Kind) String() string {
	if k == EnumKind {
		return "enum"
	}
	return "struct"
}

// A Schema describes the shape of one type.
//
// Schemas are built from reflect.Type values (SchemaOf), from Go source or
// from YAML, and are immutable once built.
type Schema struct {
	Name string
	Kind Kind
	Pos  lexer.Position
	// Ordered variants. A struct has a single implicit variant with no name.
	Variants []*Variant
	Options  TypeOptions
}

// TypeOptions are the type-level directives.
type TypeOptions struct {
	DumpParse  bool
	DumpTokens bool
	DumpMeta   bool
	// "" or "snake_case".
	NameFilter    string
	NameFilterPos lexer.Position
	// All fields are positional attribute arguments unless they are given a name.
	Unnamed bool
}

// Variant of a Schema.
type Variant struct {
	// Name of the variant, "" for the implicit variant of a struct.
	Name  string
	Index int
	// Pointer-to-struct type of an enum variant, nil for a struct.
	Type *TypeRef
	// Index of the variant's field in the enum struct.
	FieldIndex []int
	Fields     []*Field
}

// Field of a Variant.
type Field struct {
	// Index of the field in its Go struct, as for reflect.Value.FieldByIndex.
	Index []int
	// Go field name.
	Name string
	Type *TypeRef
	Pos  lexer.Position
	Directives
}

// Directives attached to a field.
type Directives struct {
	// Delimiter strings, in order, eg. "(", ")" or "))".
	Tokens []Delim

	Peek       bool
	PeekPos    lexer.Position
	Any        bool
	Terminated bool

	// Attribute argument directives.
	MetaName    string
	MetaNamePos lexer.Position
	HasMetaName bool
	MetaUnnamed bool
}

// Delim is one delimiter string from a `tokens` directive.
type Delim struct {
	Value string
	Pos   lexer.Position
}
