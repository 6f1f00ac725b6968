package ast

import (
	"github.com/alecthomas/structmeta"
	"github.com/alecthomas/structmeta/syntax"
)

//structmeta:derive parse, to_tokens
type Call struct {
	Name  syntax.Ident
	Paren syntax.Paren    `tokens:"'('"`
	Args  []syntax.LitInt `parse:"terminated"`
}

//structmeta:derive parse, to_tokens
type Expr struct {
	_    structmeta.Enum
	Call *CallVariant
	Lit  *struct{ Value syntax.LitInt }
	Name *struct {
		Name syntax.Ident `parse:"any"`
	}
}

type CallVariant struct {
	Name  syntax.Ident `parse:"peek"`
	Paren syntax.Paren `parse:"peek" tokens:"'('"`
	Args  []Expr       `parse:"terminated"`
}

//structmeta:derive parse, to_tokens
type Value struct {
	_   structmeta.Enum
	Int *struct {
		Value syntax.LitInt `parse:"peek"`
	}
	Str *struct{ Value syntax.LitStr }
}

//structmeta:derive struct_meta
type Attr struct {
	_       struct{}       `meta:"name_filter='snake_case'"`
	Target  syntax.Ident   `meta:"unnamed"`
	Label   *syntax.LitStr `meta:"unnamed"`
	Debug   bool
	Level   structmeta.NameValue[syntax.LitInt]
	Timeout *syntax.LitInt
	Tags    structmeta.NameArgs[[]syntax.Ident]
	Trace   structmeta.NameValue[*syntax.LitStr]
	Rest    map[string]structmeta.NameValue[syntax.LitStr]
}

//structmeta:derive struct_meta
type Pair struct {
	_      struct{} `meta:"unnamed"`
	Left   syntax.LitInt
	Right  syntax.LitInt
	Values []syntax.LitInt
}
