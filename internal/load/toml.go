package load

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// TOMLPath loads a TOML schema file.
func TOMLPath(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return TOML(filename, data)
}

// TOML loads a TOML schema, with the same layout as a YAML schema.
//
//	package = "ast"
//
//	[[types]]
//	name = "Call"
//	derive = ["parse", "to_tokens"]
//	fields = [
//	  {name = "Name", type = "syntax.Ident"},
//	  {name = "Paren", type = "syntax.Paren", tags = {tokens = "'('"}},
//	]
func TOML(filename string, data []byte) (*File, error) {
	schema := SchemaFile{}
	if err := toml.Unmarshal(data, &schema); err != nil {
		return nil, errors.Wrapf(err, "%s", filename)
	}
	src, err := schema.GoSource()
	if err != nil {
		return nil, errors.Wrapf(err, "%s", filename)
	}
	return Source(filename+".go", src)
}
