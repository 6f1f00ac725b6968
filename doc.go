// Package structmeta derives token serializers, parsers and attribute
// argument parsers from struct definitions and their tags.
//
// A struct's fields are read and written in declaration order. Each field
// type supplies its own Parse, Peek and ToTokens methods (see the syntax
// package for the common ones), and the tags describe the structure around
// them:
//
//   - `tokens:"'('"` The field is an opening delimiter. Following fields are
//     read from inside the delimited group until a field tagged with the
//     matching close, eg. `tokens:"')'"`.
//   - `parse:"peek"` The field can be used to select an enum variant.
//   - `parse:"any"` Reserved words are accepted.
//   - `parse:"terminated"` The field is a separated list running to the end
//     of the group.
//   - `meta:"name='x'"` and `meta:"unnamed"` Name or position of an
//     attribute argument.
//
// Type-level directives are attached to a blank field:
//
//	type Args struct {
//	    _ struct{} `meta:"unnamed, name_filter='snake_case'"`
//	    ...
//	}
//
// An enum is a struct with a blank structmeta.Enum field whose remaining
// fields are pointers to the variant structs:
//
//	type Item struct {
//	    _     structmeta.Enum
//	    Fn    *FnItem
//	    Const *ConstItem
//	}
//
// Here's an example of a struct read from `fn name(a, b)`:
//
//	type Fn struct {
//	    Keyword syntax.Ident
//	    Name    syntax.Ident
//	    Paren   syntax.Paren                                   `tokens:"'('"`
//	    Args    syntax.Punctuated[syntax.Ident, syntax.Comma] `parse:"terminated"`
//	}
//
// The same definitions drive both the reflective parser returned by Build and
// the Go source emitted by the codegen package.
package structmeta
