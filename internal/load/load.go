// Package load builds schemas from Go source files and YAML schema files.
package load

import (
	"bytes"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path"
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/alecthomas/structmeta"
	"github.com/alecthomas/structmeta/codegen"
	"github.com/alecthomas/structmeta/lexer"
)

// DeriveDirective is the comment prefix selecting the derives of a type.
//
//	//structmeta:derive parse, to_tokens
//	type Call struct { ... }
const DeriveDirective = "//structmeta:derive"

// File is the result of loading a source file.
type File struct {
	Package string
	Imports []codegen.Import
	// Types with a derive directive, in declaration order.
	Types []codegen.Type
}

// Options for codegen.Generate, generating into the loaded file's package.
func (f *File) Options() codegen.Options {
	return codegen.Options{Package: f.Package, Imports: f.Imports}
}

// Path loads a Go source file.
func Path(filename string) (*File, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return Source(filename, src)
}

type loader struct {
	fset *token.FileSet
	src  []byte
	// Local import name to import path.
	imports map[string]string
	structs map[string]*ast.StructType
}

// Source loads Go source.
func Source(filename string, src []byte) (*File, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", filename)
	}
	l := &loader{fset: fset, src: src, imports: map[string]string{}, structs: map[string]*ast.StructType{}}
	out := &File{Package: file.Name.Name}
	for _, spec := range file.Imports {
		importPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		imp := codegen.Import{Path: importPath}
		name := path.Base(importPath)
		if spec.Name != nil {
			imp.Name = spec.Name.Name
			name = spec.Name.Name
		}
		l.imports[name] = importPath
		// The generated file always imports these unaliased.
		if spec.Name == nil && (importPath == structmeta.ImportPath || importPath == structmeta.ImportPath+"/lexer") {
			continue
		}
		out.Imports = append(out.Imports, imp)
	}

	type declared struct {
		spec    *ast.TypeSpec
		derives codegen.Derive
	}
	decls := []declared{}
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				continue
			}
			l.structs[ts.Name.Name] = st
			doc := ts.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}
			derives, err := parseDerives(doc)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: %s", fset.Position(ts.Pos()), ts.Name.Name)
			}
			if derives != 0 {
				decls = append(decls, declared{ts, derives})
			}
		}
	}
	for _, decl := range decls {
		logrus.WithField("type", decl.spec.Name.Name).WithField("derive", decl.derives.String()).Debug("Loading schema")
		schema, err := l.schema(decl.spec.Name.Name)
		if err != nil {
			return nil, err
		}
		out.Types = append(out.Types, codegen.Type{Schema: schema, Derives: decl.derives})
	}
	return out, nil
}

func parseDerives(doc *ast.CommentGroup) (codegen.Derive, error) {
	if doc == nil {
		return 0, nil
	}
	var derives codegen.Derive
	for _, comment := range doc.List {
		if !strings.HasPrefix(comment.Text, DeriveDirective) {
			continue
		}
		for _, name := range strings.Split(strings.TrimPrefix(comment.Text, DeriveDirective), ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			derive, err := codegen.ParseDerive(name)
			if err != nil {
				return 0, err
			}
			derives |= derive
		}
	}
	return derives, nil
}

// Mirrors structmeta.SchemaOf for a struct declared in the file.
func (l *loader) schema(name string) (*structmeta.Schema, error) {
	st := l.structs[name]
	pos := lexer.Position{Filename: name}
	schema := &structmeta.Schema{Name: name, Pos: pos}
	fields, err := l.flatten(st, nil)
	if err != nil {
		return nil, err
	}
	variants := []*ast.Field{}
	for _, f := range fields {
		if fieldName(f) != "_" {
			variants = append(variants, f)
			continue
		}
		if l.typeRef(f.Type).Is(structmeta.ImportPath, "Enum") {
			schema.Kind = structmeta.EnumKind
		}
		if err := structmeta.ParseTypeTags(name, fieldTag(f), &schema.Options); err != nil {
			return nil, err
		}
	}
	if schema.Kind == structmeta.StructKind {
		variant, err := l.variant(st, name)
		if err != nil {
			return nil, err
		}
		schema.Variants = []*structmeta.Variant{variant}
		return schema, nil
	}
	for i, f := range variants {
		fname := fieldName(f)
		where := name + "." + fname
		st := l.pointerToStruct(f.Type)
		if st == nil {
			return nil, lexer.Errorf(lexer.Position{Filename: where}, "variant `%s` must be a pointer to a struct declared in this file", fname)
		}
		variant, err := l.variant(st, where)
		if err != nil {
			return nil, err
		}
		variant.Name = fname
		variant.Index = i
		variant.Type = l.typeRef(f.Type)
		variant.FieldIndex = []int{i}
		schema.Variants = append(schema.Variants, variant)
	}
	return schema, nil
}

func (l *loader) pointerToStruct(expr ast.Expr) *ast.StructType {
	star, ok := expr.(*ast.StarExpr)
	if !ok {
		return nil
	}
	switch x := star.X.(type) {
	case *ast.StructType:
		return x
	case *ast.Ident:
		return l.structs[x.Name]
	}
	return nil
}

func (l *loader) variant(st *ast.StructType, where string) (*structmeta.Variant, error) {
	variant := &structmeta.Variant{}
	fields, err := l.flatten(st, nil)
	if err != nil {
		return nil, err
	}
	for i, f := range fields {
		name := fieldName(f)
		if name == "_" {
			continue
		}
		field := &structmeta.Field{
			Index: []int{i},
			Name:  name,
			Type:  l.typeRef(f.Type),
			Pos:   lexer.Position{Filename: where + "." + name},
		}
		if err := structmeta.ParseFieldTags(where+"."+name, fieldTag(f), &field.Directives); err != nil {
			return nil, err
		}
		variant.Fields = append(variant.Fields, field)
	}
	return variant, nil
}

// Expands embedded structs declared in the file, and splits multi-name fields.
func (l *loader) flatten(st *ast.StructType, seen map[*ast.StructType]bool) ([]*ast.Field, error) {
	if seen == nil {
		seen = map[*ast.StructType]bool{}
	}
	if seen[st] {
		return nil, errors.New("recursive embedded struct")
	}
	seen[st] = true
	defer delete(seen, st)
	out := []*ast.Field{}
	for _, f := range st.Fields.List {
		if len(f.Names) == 0 {
			ident, ok := f.Type.(*ast.Ident)
			if !ok || l.structs[ident.Name] == nil {
				return nil, errors.Errorf("%s: embedded field %s must be a struct declared in this file", l.fset.Position(f.Pos()), l.source(f.Type))
			}
			embedded, err := l.flatten(l.structs[ident.Name], seen)
			if err != nil {
				return nil, err
			}
			out = append(out, embedded...)
			continue
		}
		for _, name := range f.Names {
			if name.Name != "_" && !name.IsExported() {
				continue
			}
			out = append(out, &ast.Field{Names: []*ast.Ident{name}, Type: f.Type, Tag: f.Tag})
		}
	}
	return out, nil
}

func fieldName(f *ast.Field) string { return f.Names[0].Name }

func fieldTag(f *ast.Field) reflect.StructTag {
	if f.Tag == nil {
		return ""
	}
	tag, err := strconv.Unquote(f.Tag.Value)
	if err != nil {
		return ""
	}
	return reflect.StructTag(tag)
}

// Go source of an expression, as written.
func (l *loader) source(expr ast.Expr) string {
	w := &bytes.Buffer{}
	if err := format.Node(w, l.fset, expr); err != nil {
		return string(l.src[l.fset.Position(expr.Pos()).Offset:l.fset.Position(expr.End()).Offset])
	}
	return w.String()
}

func (l *loader) typeRef(expr ast.Expr) *structmeta.TypeRef {
	ref := &structmeta.TypeRef{Expr: l.source(expr)}
	switch x := expr.(type) {
	case *ast.ParenExpr:
		return l.typeRef(x.X)
	case *ast.StarExpr:
		ref.Kind = structmeta.PointerType
		ref.Elem = l.typeRef(x.X)
	case *ast.ArrayType:
		ref.Kind = structmeta.SliceType
		ref.Elem = l.typeRef(x.Elt)
	case *ast.MapType:
		ref.Kind = structmeta.MapType
		ref.Key = l.typeRef(x.Key)
		ref.Elem = l.typeRef(x.Value)
	case *ast.StructType:
		ref.Kind = structmeta.StructType
	case *ast.Ident:
		ref.Kind = structmeta.NamedType
		ref.Name = x.Name
	case *ast.SelectorExpr:
		ref.Kind = structmeta.NamedType
		ref.Name = x.Sel.Name
		if pkg, ok := x.X.(*ast.Ident); ok {
			ref.Pkg = l.imports[pkg.Name]
		}
	case *ast.IndexExpr:
		ref = l.typeRef(x.X)
		ref.Expr = l.source(expr)
		ref.Args = []*structmeta.TypeRef{l.typeRef(x.Index)}
	case *ast.IndexListExpr:
		ref = l.typeRef(x.X)
		ref.Expr = l.source(expr)
		for _, index := range x.Indices {
			ref.Args = append(ref.Args, l.typeRef(index))
		}
	}
	return ref
}
