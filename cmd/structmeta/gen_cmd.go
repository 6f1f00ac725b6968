package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/alecthomas/structmeta/codegen"
	"github.com/alecthomas/structmeta/internal/load"
)

type genCmd struct {
	Output  string `short:"o" help:"Output file, - for stdout (default: <input>_structmeta.go)."`
	Tags    string `help:"Build constraint to include in the generated file."`
	Package string `help:"Go package for generated code (default: the package of the input)."`
	YAML    bool   `name:"yaml" help:"Read the input as a YAML schema file (default for .yaml and .yml)."`
	Input   string `arg:"" type:"existingfile" help:"Go source file, or YAML or TOML schema file."`
}

func (c *genCmd) Help() string {
	return `
Generates Parse and ToTokens methods for the types of the input annotated with
a "//structmeta:derive parse, to_tokens" or "//structmeta:derive struct_meta"
comment. The generated code behaves identically to structmeta.Build but uses
no reflection.
`
}

func (c *genCmd) Run() error {
	file, err := loadInput(c.Input, c.YAML)
	if err != nil {
		return err
	}
	options := file.Options()
	if c.Package != "" {
		options.Package = c.Package
	}
	options.BuildTags = c.Tags
	options.Header = "Source: " + filepath.Base(c.Input)
	w := &bytes.Buffer{}
	if err := codegen.Generate(w, file.Types, options); err != nil {
		return err
	}
	output := c.Output
	if output == "" {
		output = strings.TrimSuffix(c.Input, filepath.Ext(c.Input)) + "_structmeta.go"
	}
	if output == "-" {
		_, err = os.Stdout.Write(w.Bytes())
		return errors.WithStack(err)
	}
	if err := os.WriteFile(output, w.Bytes(), 0600); err != nil {
		return errors.Wrapf(err, "writing %s", output)
	}
	logrus.WithField("output", output).WithField("types", len(file.Types)).Info("Generated")
	return nil
}

func loadInput(input string, yaml bool) (*load.File, error) {
	ext := filepath.Ext(input)
	logrus.WithField("input", input).Debug("Loading")
	switch {
	case yaml || ext == ".yaml" || ext == ".yml":
		return load.YAMLPath(input)
	case ext == ".toml":
		return load.TOMLPath(input)
	}
	return load.Path(input)
}
