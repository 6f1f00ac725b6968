package structmeta

import (
	"reflect"
	"strings"
)

// ImportPath of this package, used to recognise the wrapper types in schemas.
const ImportPath = "github.com/alecthomas/structmeta"

// TypeKind is the shape of a TypeRef.
type TypeKind int

// Type shapes.
const (
	NamedType TypeKind = iota
	PointerType
	SliceType
	MapType
	StructType
)

// TypeRef is a structural reference to a Go type.
//
// Wrapper types are recognised by shape: *T (optional), []T (repeated),
// map[string]T (rest map), NameValue[T], NameArgs[T], Flag and bool.
type TypeRef struct {
	Kind TypeKind
	// Import path of a named type, "" for predeclared and local types.
	Pkg string
	// Name of a named type, without type arguments.
	Name string
	Args []*TypeRef
	Elem *TypeRef
	Key  *TypeRef
	// Go source for the type, as written in the declaring package.
	Expr string

	reflect reflect.Type
}

// Reflect returns the reflect.Type this TypeRef was built from, if any.
func (t *TypeRef) Reflect() reflect.Type { return t.reflect }

func (t *TypeRef) String() string {
	if t.Expr != "" {
		return t.Expr
	}
	switch t.Kind {
	case PointerType:
		return "*" + t.Elem.String()
	case SliceType:
		return "[]" + t.Elem.String()
	case MapType:
		return "map[" + t.Key.String() + "]" + t.Elem.String()
	case StructType:
		return "struct{}"
	}
	name := t.Name
	if len(t.Args) > 0 {
		args := make([]string, 0, len(t.Args))
		for _, arg := range t.Args {
			args = append(args, arg.String())
		}
		name += "[" + strings.Join(args, ", ") + "]"
	}
	return name
}

// Is returns true if this is the named type pkg.name.
func (t *TypeRef) Is(pkg, name string) bool {
	return t != nil && t.Kind == NamedType && t.Pkg == pkg && t.Name == name
}

func (t *TypeRef) isBool() bool { return t.Is("", "bool") }
func (t *TypeRef) isFlag() bool { return t.Is(ImportPath, "Flag") }

// PointerElem returns T for *T.
func (t *TypeRef) PointerElem() *TypeRef {
	if t.Kind == PointerType {
		return t.Elem
	}
	return nil
}

// SliceElem returns T for []T.
func (t *TypeRef) SliceElem() *TypeRef {
	if t.Kind == SliceType {
		return t.Elem
	}
	return nil
}

// NameValueElem returns T for structmeta.NameValue[T].
func (t *TypeRef) NameValueElem() *TypeRef {
	if t.Is(ImportPath, "NameValue") && len(t.Args) == 1 {
		return t.Args[0]
	}
	return nil
}

// NameArgsElem returns T for structmeta.NameArgs[T].
func (t *TypeRef) NameArgsElem() *TypeRef {
	if t.Is(ImportPath, "NameArgs") && len(t.Args) == 1 {
		return t.Args[0]
	}
	return nil
}

// StringMapElem returns T for map[string]T.
func (t *TypeRef) StringMapElem() *TypeRef {
	if t.Kind == MapType && t.Key.Is("", "string") {
		return t.Elem
	}
	return nil
}

// TypeRefOf builds a TypeRef from a reflect.Type.
func TypeRefOf(t reflect.Type) *TypeRef {
	ref := &TypeRef{reflect: t}
	switch t.Kind() {
	case reflect.Ptr:
		ref.Kind = PointerType
		ref.Elem = TypeRefOf(t.Elem())
		return ref
	case reflect.Slice:
		ref.Kind = SliceType
		ref.Elem = TypeRefOf(t.Elem())
		return ref
	case reflect.Map:
		ref.Kind = MapType
		ref.Key = TypeRefOf(t.Key())
		ref.Elem = TypeRefOf(t.Elem())
		return ref
	}
	ref.Expr = t.String()
	if t.Name() == "" {
		ref.Kind = StructType
		return ref
	}
	ref.Kind = NamedType
	ref.Pkg = t.PkgPath()
	ref.Name = t.Name()
	// Type arguments are not exposed by reflect, so the wrappers are unpacked
	// through their fields.
	if i := strings.IndexByte(ref.Name, '['); i >= 0 {
		ref.Name = ref.Name[:i]
		if ref.Pkg == ImportPath && t.Kind() == reflect.Struct {
			switch ref.Name {
			case "NameValue":
				f, _ := t.FieldByName("Value")
				ref.Args = []*TypeRef{TypeRefOf(f.Type)}
			case "NameArgs":
				f, _ := t.FieldByName("Args")
				ref.Args = []*TypeRef{TypeRefOf(f.Type)}
			}
		}
		if len(ref.Args) == 1 {
			ref.Expr = "structmeta." + ref.Name + "[" + ref.Args[0].String() + "]"
		}
	}
	return ref
}
