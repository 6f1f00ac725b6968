package structmeta

import (
	"github.com/alecthomas/structmeta/lexer"
)

// Strategy used to read a field.
type Strategy int

// Read strategies, decided once per field when planning.
const (
	// ParseStrategy reads the field with Parse.
	ParseStrategy Strategy = iota
	// ParseAnyStrategy reads the field with ParseAny.
	ParseAnyStrategy
	// TerminatedStrategy reads a separated list to the end of the scope.
	TerminatedStrategy
	// TerminatedAnyStrategy is TerminatedStrategy with reserved words accepted.
	TerminatedAnyStrategy
	// GroupStrategy reads an opening delimiter and narrows the cursor to its contents.
	GroupStrategy
)

func (s Strategy) String() string {
	switch s {
	case ParseStrategy:
		return "parse"
	case ParseAnyStrategy:
		return "parse_any"
	case TerminatedStrategy:
		return "terminated"
	case TerminatedAnyStrategy:
		return "terminated_any"
	case GroupStrategy:
		return "group"
	}
	return "?"
}

// StrategyOf returns the read strategy for a node.
func StrategyOf(n *Node) Strategy {
	switch {
	case n.Open != "":
		return GroupStrategy
	case n.Field.Terminated && n.Field.Any:
		return TerminatedAnyStrategy
	case n.Field.Terminated:
		return TerminatedStrategy
	case n.Field.Any:
		return ParseAnyStrategy
	}
	return ParseStrategy
}

// Dispatch is how an enum variant is selected.
type Dispatch int

const (
	// DirectDispatch parses the variant from the live cursor.
	DirectDispatch Dispatch = iota
	// ForkDispatch parses the variant from a fork and commits it on success.
	ForkDispatch
	// PeekDispatch commits to the variant when its peek predicates hold.
	PeekDispatch
)

func (d Dispatch) String() string {
	switch d {
	case DirectDispatch:
		return "direct"
	case ForkDispatch:
		return "fork"
	}
	return "peek"
}

// MaxPeek is the number of tokens of lookahead available to peek predicates.
const MaxPeek = 3

// PeekPlan is the lookahead predicate for the token at its position.
type PeekPlan struct {
	Field *Field
	Any   bool
}

// VariantPlan is the plan for one variant.
type VariantPlan struct {
	Variant  *Variant
	Body     *Block
	Dispatch Dispatch
	Peeks    []PeekPlan
}

// Plan shared by the serializer and parser backends.
type Plan struct {
	Schema   *Schema
	Variants []*VariantPlan
	// When no variant matches, "parse failed." is reported.
	Fallback bool
}

// PlanTokens builds the scopes of every variant.
func PlanTokens(schema *Schema) (*Plan, error) {
	plan := &Plan{Schema: schema}
	for _, variant := range schema.Variants {
		body, err := BuildScopes(variant.Fields)
		if err != nil {
			return nil, err
		}
		plan.Variants = append(plan.Variants, &VariantPlan{Variant: variant, Body: body})
	}
	return plan, nil
}

// PlanParse builds the scopes of every variant and, for enums, the variant dispatch.
//
// Variants without peek fields are forked, except that the last one is parsed
// directly if no variant before it was forked. Variants with peek fields are
// committed to when their predicates hold.
func PlanParse(schema *Schema) (*Plan, error) {
	plan, err := PlanTokens(schema)
	if err != nil {
		return nil, err
	}
	if schema.Kind == StructKind {
		return plan, nil
	}
	plan.Fallback = true
	forked := false
	for i, vp := range plan.Variants {
		peeks, err := planPeeks(vp.Body)
		if err != nil {
			return nil, err
		}
		vp.Peeks = peeks
		switch {
		case len(peeks) > 0:
			vp.Dispatch = PeekDispatch
		case i == len(plan.Variants)-1 && !forked:
			vp.Dispatch = DirectDispatch
			plan.Fallback = false
		default:
			vp.Dispatch = ForkDispatch
			forked = true
		}
	}
	return plan, nil
}

// Peeks must be a prefix of the root-scope fields.
func planPeeks(body *Block) ([]PeekPlan, error) {
	var (
		peeks   []PeekPlan
		nonPeek *Field
		err     error
	)
	body.Walk(func(n *Node) {
		if err != nil {
			return
		}
		f := n.Field
		if f.Peek {
			switch {
			case !n.Root:
				err = lexer.Errorf(f.PeekPos, "`peek` cannot be specified with a field enclosed by `[]`, `()` or `{}`.")
			case nonPeek != nil:
				err = lexer.Errorf(f.PeekPos, "you need to peek all previous tokens. consider specifying `peek` for field `%s`.", nonPeek.Name)
			case len(peeks) == MaxPeek:
				err = lexer.Errorf(f.PeekPos, "more than three `peek` were specified.")
			default:
				peeks = append(peeks, PeekPlan{Field: f, Any: f.Any})
			}
		}
		if n.Root && !f.Peek && nonPeek == nil {
			nonPeek = f
		}
	})
	return peeks, err
}
