package load

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// SchemaFile is a YAML or TOML description of the types to generate.
//
//	package: ast
//	imports:
//	  - path: github.com/alecthomas/structmeta/syntax
//	types:
//	  - name: Call
//	    derive: [parse, to_tokens]
//	    fields:
//	      - {name: Name, type: syntax.Ident}
//	      - {name: Paren, type: syntax.Paren, tags: {tokens: "'('"}}
//	      - {name: Args, type: "[]syntax.LitInt", tags: {parse: terminated}}
type SchemaFile struct {
	Package string       `yaml:"package" toml:"package"`
	Imports []YAMLImport `yaml:"imports" toml:"imports"`
	Types   []YAMLType   `yaml:"types" toml:"types"`
}

// YAMLImport is an import of a SchemaFile.
type YAMLImport struct {
	Name string `yaml:"name,omitempty" toml:"name"`
	Path string `yaml:"path" toml:"path"`
}

// YAMLType is a struct or enum of a SchemaFile.
type YAMLType struct {
	Name   string   `yaml:"name" toml:"name"`
	Derive []string `yaml:"derive,omitempty" toml:"derive"`
	Enum   bool     `yaml:"enum,omitempty" toml:"enum"`
	// Type-level directives, eg. {meta: "unnamed"}.
	Tags   map[string]string `yaml:"tags,omitempty" toml:"tags"`
	Fields []YAMLField       `yaml:"fields" toml:"fields"`
}

// YAMLField is a field of a YAMLType.
type YAMLField struct {
	Name string            `yaml:"name" toml:"name"`
	Type string            `yaml:"type" toml:"type"`
	Tags map[string]string `yaml:"tags,omitempty" toml:"tags"`
}

// YAMLPath loads a YAML schema file.
func YAMLPath(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return YAML(filename, data)
}

// YAML loads a YAML schema.
//
// The schema is rendered as Go source and loaded with Source, so both inputs
// produce identical schemas.
func YAML(filename string, data []byte) (*File, error) {
	schema := SchemaFile{}
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, errors.Wrapf(err, "%s", filename)
	}
	src, err := schema.GoSource()
	if err != nil {
		return nil, errors.Wrapf(err, "%s", filename)
	}
	return Source(filename+".go", src)
}

// GoSource renders the schema as Go type declarations.
func (s *SchemaFile) GoSource() ([]byte, error) {
	if s.Package == "" {
		return nil, errors.New("package is required")
	}
	w := &bytes.Buffer{}
	fmt.Fprintf(w, "package %s\n\nimport (\n", s.Package)
	fmt.Fprintf(w, "\t%q\n", "github.com/alecthomas/structmeta")
	for _, imp := range s.Imports {
		fmt.Fprintf(w, "\t%s %q\n", imp.Name, imp.Path)
	}
	fmt.Fprintf(w, ")\n")
	for _, typ := range s.Types {
		if typ.Name == "" {
			return nil, errors.New("type name is required")
		}
		if len(typ.Derive) > 0 {
			fmt.Fprintf(w, "\n%s %s\n", DeriveDirective, strings.Join(typ.Derive, ", "))
		} else {
			fmt.Fprintf(w, "\n")
		}
		fmt.Fprintf(w, "type %s struct {\n", typ.Name)
		if typ.Enum {
			fmt.Fprintf(w, "\t_ structmeta.Enum\n")
		}
		if len(typ.Tags) > 0 {
			tags, err := renderTags(typ.Tags)
			if err != nil {
				return nil, errors.Wrap(err, typ.Name)
			}
			fmt.Fprintf(w, "\t_ struct{} %s\n", tags)
		}
		for _, field := range typ.Fields {
			if field.Name == "" || field.Type == "" {
				return nil, errors.Errorf("%s: fields need a name and a type", typ.Name)
			}
			fmt.Fprintf(w, "\t%s %s", field.Name, field.Type)
			if len(field.Tags) > 0 {
				tags, err := renderTags(field.Tags)
				if err != nil {
					return nil, errors.Wrap(err, typ.Name+"."+field.Name)
				}
				fmt.Fprintf(w, " %s", tags)
			}
			fmt.Fprintf(w, "\n")
		}
		fmt.Fprintf(w, "}\n")
	}
	return w.Bytes(), nil
}

var tagKeys = []string{"tokens", "parse", "meta"}

// Renders a struct tag literal with keys in directive order.
func renderTags(tags map[string]string) (string, error) {
	keys := maps.Keys(tags)
	slices.Sort(keys)
	for _, key := range keys {
		if !slices.Contains(tagKeys, key) {
			return "", errors.Errorf("unknown tag %q, expected one of %s", key, strings.Join(tagKeys, ", "))
		}
	}
	parts := []string{}
	for _, key := range tagKeys {
		if value, ok := tags[key]; ok {
			parts = append(parts, key+":"+strconv.Quote(value))
		}
	}
	return "`" + strings.Join(parts, " ") + "`", nil
}
