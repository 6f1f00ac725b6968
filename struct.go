package structmeta

import (
	"reflect"

	"github.com/alecthomas/structmeta/lexer"
)

var enumType = reflect.TypeOf(Enum{})

// SchemaOf builds a Schema from a Go struct type.
//
// Blank fields carry type-level directives, and a blank field of type Enum
// makes the struct an enum whose remaining fields are its variants.
func SchemaOf(t reflect.Type) (*Schema, error) {
	pos := lexer.Position{Filename: t.String()}
	if t.Kind() != reflect.Struct {
		return nil, lexer.Errorf(pos, "not supported for %s", t.Kind())
	}
	schema := &Schema{Name: t.Name(), Pos: pos}
	fields := []reflect.StructField{}
	for _, index := range collectFieldIndexes(t) {
		f := t.FieldByIndex(index)
		f.Index = index
		if f.Name != "_" {
			fields = append(fields, f)
			continue
		}
		if f.Type == enumType {
			schema.Kind = EnumKind
		}
		if err := ParseTypeTags(t.Name(), f.Tag, &schema.Options); err != nil {
			return nil, err
		}
	}
	if schema.Kind == StructKind {
		variant, err := variantOf(t, t.Name())
		if err != nil {
			return nil, err
		}
		schema.Variants = []*Variant{variant}
		return schema, nil
	}
	for i, f := range fields {
		where := t.Name() + "." + f.Name
		if f.Type.Kind() != reflect.Ptr || f.Type.Elem().Kind() != reflect.Struct {
			return nil, lexer.Errorf(lexer.Position{Filename: where}, "variant `%s` must be a pointer to a struct", f.Name)
		}
		variant, err := variantOf(f.Type.Elem(), where)
		if err != nil {
			return nil, err
		}
		variant.Name = f.Name
		variant.Index = i
		variant.Type = TypeRefOf(f.Type)
		variant.FieldIndex = f.Index
		schema.Variants = append(schema.Variants, variant)
	}
	return schema, nil
}

func variantOf(t reflect.Type, where string) (*Variant, error) {
	variant := &Variant{}
	for _, index := range collectFieldIndexes(t) {
		f := t.FieldByIndex(index)
		if f.Name == "_" {
			continue
		}
		field := &Field{
			Index: index,
			Name:  f.Name,
			Type:  TypeRefOf(f.Type),
			Pos:   lexer.Position{Filename: where + "." + f.Name},
		}
		if err := ParseFieldTags(where+"."+f.Name, f.Tag, &field.Directives); err != nil {
			return nil, err
		}
		variant.Fields = append(variant.Fields, field)
	}
	return variant, nil
}

// Recursively collect flattened indices for top-level fields and embedded fields.
func collectFieldIndexes(s reflect.Type) (out [][]int) {
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		switch {
		case f.Anonymous && f.Type.Kind() == reflect.Struct:
			for _, idx := range collectFieldIndexes(f.Type) {
				out = append(out, append([]int{i}, idx...))
			}
		case f.Name == "_" || f.IsExported():
			out = append(out, f.Index)
		}
	}
	return
}
