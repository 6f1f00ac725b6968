package structmeta

import (
	"fmt"
	"strings"
)

// String renders the plan, one field per line.
func (p *Plan) String() string { return dumpPlan(p) }

// String renders the parameter classification.
func (p *Params) String() string { return dumpParams(p) }

func dumpPlan(plan *Plan) string {
	w := &strings.Builder{}
	fmt.Fprintf(w, "%s %s", plan.Schema.Kind, plan.Schema.Name)
	if plan.Fallback {
		w.WriteString(" fallback")
	}
	w.WriteString("\n")
	for _, vp := range plan.Variants {
		indent := "  "
		if plan.Schema.Kind == EnumKind {
			fmt.Fprintf(w, "  variant %s %s", vp.Variant.Name, vp.Dispatch)
			if len(vp.Peeks) > 0 {
				peeks := []string{}
				for _, peek := range vp.Peeks {
					peeks = append(peeks, peek.Field.Name)
				}
				fmt.Fprintf(w, "(%s)", strings.Join(peeks, ", "))
			}
			w.WriteString("\n")
			indent = "    "
		}
		blockPrinter(w, indent, vp.Body)
	}
	return w.String()
}

func blockPrinter(w *strings.Builder, indent string, block *Block) {
	for _, n := range block.Nodes {
		root := ""
		if n.Root {
			root = " root"
		}
		if n.Open != "" {
			fmt.Fprintf(w, "%s%s %s group(%q)%s\n", indent, n.Field.Name, n.Field.Type, n.Open, root)
			blockPrinter(w, indent+"  ", n.Body)
			continue
		}
		fmt.Fprintf(w, "%s%s %s %s%s\n", indent, n.Field.Name, n.Field.Type, StrategyOf(n), root)
	}
}

func dumpParams(params *Params) string {
	w := &strings.Builder{}
	fmt.Fprintf(w, "args %s\n", params.Schema.Name)
	for _, p := range params.All {
		fmt.Fprintf(w, "  %s %s %s", p.Field.Name, p.Field.Type, p.Class)
		if p.Name != "" {
			fmt.Fprintf(w, " name=%q", p.Name)
		}
		w.WriteString("\n")
	}
	spec := params.NameSpec()
	fmt.Fprintf(w, "  flags=%v rest=%v\n", spec.Flags, spec.FlagRest)
	fmt.Fprintf(w, "  name_values=%v rest=%v\n", spec.NameValues, spec.NameValueRest)
	fmt.Fprintf(w, "  name_args=%v rest=%v\n", spec.NameArgs, spec.NameArgsRest)
	return w.String()
}
