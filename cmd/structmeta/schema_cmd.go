package main

import (
	"fmt"

	"github.com/alecthomas/repr"

	"github.com/alecthomas/structmeta"
	"github.com/alecthomas/structmeta/codegen"
)

type schemaCmd struct {
	Raw   bool   `help:"Print the raw schemas instead of the plans."`
	YAML  bool   `name:"yaml" help:"Read the input as a YAML schema file (default for .yaml and .yml)."`
	Input string `arg:"" type:"existingfile" help:"Go source file, or YAML or TOML schema file."`
}

func (c *schemaCmd) Run() error {
	file, err := loadInput(c.Input, c.YAML)
	if err != nil {
		return err
	}
	for _, typ := range file.Types {
		if c.Raw {
			repr.Println(typ.Schema, repr.Indent("  "), repr.OmitEmpty(true))
			continue
		}
		if typ.Derives.Has(codegen.DeriveParse) || typ.Derives.Has(codegen.DeriveToTokens) {
			plan, err := structmeta.PlanParse(typ.Schema)
			if err != nil {
				return err
			}
			fmt.Print(plan)
		}
		if typ.Derives.Has(codegen.DeriveStructMeta) {
			params, err := structmeta.ClassifyParams(typ.Schema)
			if err != nil {
				return err
			}
			fmt.Print(params)
		}
	}
	return nil
}
