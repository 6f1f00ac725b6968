// Package codegen emits Go source implementing Parse and ToTokens for schemas.
//
// The emitted code calls the generic runtime helpers of the structmeta
// package and behaves identically to the reflective parser built by
// structmeta.Build.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/alecthomas/structmeta"
)

// Derive is a set of methods to generate for a type.
type Derive int

// Derives.
const (
	// DeriveParse generates Parse(*lexer.Cursor) error.
	DeriveParse Derive = 1 << iota
	// DeriveToTokens generates ToTokens(*lexer.Stream).
	DeriveToTokens
	// DeriveStructMeta generates an attribute argument Parse(*lexer.Cursor) error.
	DeriveStructMeta
)

// Has returns true if d includes all of other.
func (d Derive) Has(other Derive) bool { return d&other == other }

func (d Derive) String() string {
	out := []string{}
	if d.Has(DeriveParse) {
		out = append(out, "parse")
	}
	if d.Has(DeriveToTokens) {
		out = append(out, "to_tokens")
	}
	if d.Has(DeriveStructMeta) {
		out = append(out, "struct_meta")
	}
	return strings.Join(out, ", ")
}

// ParseDerive parses a derive name.
func ParseDerive(name string) (Derive, error) {
	switch strings.TrimSpace(name) {
	case "parse", "Parse":
		return DeriveParse, nil
	case "to_tokens", "ToTokens":
		return DeriveToTokens, nil
	case "struct_meta", "StructMeta":
		return DeriveStructMeta, nil
	}
	return 0, fmt.Errorf("unknown derive %q", name)
}

// Type to generate methods for.
type Type struct {
	Schema  *structmeta.Schema
	Derives Derive
}

// Import is an import of the generated file.
type Import struct {
	// Name is the import alias, or "".
	Name string
	Path string
}

// Options for Generate.
type Options struct {
	Package string
	// Build constraint expression, eg. "!structmeta_reflect".
	BuildTags string
	// Comment lines placed before the package clause, without the leading "//".
	Header  string
	Imports []Import
}

var headerTemplate = template.Must(template.New("header").Parse(`// Code generated by structmeta. DO NOT EDIT.
{{- range .HeaderLines}}
//{{if .}} {{.}}{{end}}
{{- end}}
{{- if .BuildTags}}

//go:build {{.BuildTags}}
{{- end}}

package {{.Package}}

import (
	"github.com/alecthomas/structmeta"
	"github.com/alecthomas/structmeta/lexer"
{{- range .Imports}}
	{{if .Name}}{{.Name}} {{end}}{{printf "%q" .Path}}
{{- end}}
)
`))

// Generate writes a formatted Go file implementing the derives of types to w.
//
// A type-level dump directive aborts generation with a *structmeta.DumpError
// carrying the code generated for that type.
func Generate(w io.Writer, types []Type, options Options) error {
	if options.Package == "" {
		return fmt.Errorf("package name is required")
	}
	src := &bytes.Buffer{}
	err := headerTemplate.Execute(src, struct {
		Options
		HeaderLines []string
	}{options, headerLines(options.Header)})
	if err != nil {
		return err
	}
	for _, typ := range types {
		code, err := GenerateType(typ)
		if err != nil {
			return err
		}
		src.WriteString("\n")
		src.WriteString(code)
	}
	formatted, err := imports.Process("generated.go", src.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return fmt.Errorf("formatting generated code: %w\n%s", err, src.String())
	}
	_, err = w.Write(formatted)
	return err
}

func headerLines(header string) []string {
	header = strings.TrimRight(header, "\n")
	if header == "" {
		return nil
	}
	return strings.Split(header, "\n")
}

// GenerateType returns the declarations implementing the derives of one type.
func GenerateType(typ Type) (string, error) {
	schema := typ.Schema
	if typ.Derives.Has(DeriveParse) && typ.Derives.Has(DeriveStructMeta) {
		return "", fmt.Errorf("%s: parse and struct_meta derives both define Parse", schema.Name)
	}
	out := &strings.Builder{}
	if typ.Derives.Has(DeriveParse) {
		plan, err := structmeta.PlanParse(schema)
		if err != nil {
			return "", err
		}
		code := generateParse(plan)
		if schema.Options.DumpParse {
			return "", dump(schema, code)
		}
		out.WriteString(code)
	}
	if typ.Derives.Has(DeriveToTokens) {
		plan, err := structmeta.PlanTokens(schema)
		if err != nil {
			return "", err
		}
		code := generateToTokens(plan)
		if schema.Options.DumpTokens {
			return "", dump(schema, code)
		}
		out.WriteString(code)
	}
	if typ.Derives.Has(DeriveStructMeta) {
		params, err := structmeta.ClassifyParams(schema)
		if err != nil {
			return "", err
		}
		code := generateStructMeta(params)
		if schema.Options.DumpMeta {
			return "", dump(schema, code)
		}
		out.WriteString(code)
	}
	return out.String(), nil
}

func dump(schema *structmeta.Schema, code string) error {
	if formatted, err := format.Source([]byte(code)); err == nil {
		code = string(formatted)
	}
	return &structmeta.DumpError{Type: schema.Name, Code: code}
}

type emitter struct {
	strings.Builder
	// Counter for unique cursor names.
	cursors int
}

func (e *emitter) printf(format string, args ...interface{}) {
	fmt.Fprintf(&e.Builder, format, args...)
}

func (e *emitter) returnIfErr(format string, args ...interface{}) {
	e.printf("if err := "+format+"; err != nil {\nreturn err\n}\n", args...)
}
