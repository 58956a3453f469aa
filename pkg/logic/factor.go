package logic

import (
	"fmt"
	"strings"
)

// =============================================================================
// OR-Group Factoring
// =============================================================================

// maxFactorDepth bounds how deep the factoring scan recurses into the tree.
// Clauses below this depth pass through unfactored.
const maxFactorDepth = 4

// FactorGroup maps a synthetic identifier introduced by OR-group factoring
// back to the member identifiers it stands in for (an OR over Members).
//
// Groups are consumed only by the diagram renderer, which expands the
// virtual node into a two-level sub-decision. The DAG renderer treats the
// virtual identifier as an ordinary leaf.
type FactorGroup struct {
	VirtualID string
	Members   []string
}

// Factor collapses and-joined OR-clauses of identifiers into synthetic
// identifiers, bounding the DNF term blow-up the clause would otherwise
// cause. Only clauses of the exact shape "(a or b or ...)" or
// "(not a or not b or ...)" are recognized, scanning and-joined clauses to a
// recursion depth of 4.
//
// For each recognized clause a fresh virtual identifier (V1, V2, ... in
// allocation order) replaces the clause text, a [FactorGroup] records the
// member names, and a composite question synthesized from the members'
// question strings is added to the returned question map.
//
// Factoring is strictly best-effort: any parse failure, pattern mismatch or
// internal panic returns the original text and question map unchanged with
// no groups. It never blocks compilation.
func Factor(logicText string, questions map[string]string) (text string, qs map[string]string, groups []FactorGroup) {
	text, qs, groups = logicText, questions, nil

	defer func() {
		if recover() != nil {
			text, qs, groups = logicText, questions, nil
		}
	}()

	expr, err := Parse(logicText)
	if err != nil {
		return logicText, questions, nil
	}

	candidates := collectOrGroups(expr, 1)
	if len(candidates) == 0 {
		return logicText, questions, nil
	}

	out := text
	outQuestions := make(map[string]string, len(questions)+len(candidates))
	for k, v := range questions {
		outQuestions[k] = v
	}

	var result []FactorGroup
	for i, clause := range candidates {
		virtualID := fmt.Sprintf("V%d", i+1)
		if _, taken := outQuestions[virtualID]; taken {
			return logicText, questions, nil
		}

		clauseText := "(" + clause.String() + ")"
		if !strings.Contains(out, clauseText) {
			return logicText, questions, nil
		}
		out = strings.Replace(out, clauseText, virtualID, 1)

		members := make([]string, len(clause.Operands))
		for j, op := range clause.Operands {
			members[j] = memberName(op)
		}
		outQuestions[virtualID] = compositeQuestion(members, questions)
		result = append(result, FactorGroup{VirtualID: virtualID, Members: members})
	}

	return out, outQuestions, result
}

// collectOrGroups walks the tree looking for and-joined OR-clauses of plain
// or uniformly negated identifiers, in left-to-right encounter order.
func collectOrGroups(expr Expr, depth int) []Or {
	if depth > maxFactorDepth {
		return nil
	}
	switch e := expr.(type) {
	case And:
		var found []Or
		for _, op := range e.Operands {
			if clause, ok := orGroup(op); ok {
				found = append(found, clause)
				continue
			}
			found = append(found, collectOrGroups(op, depth+1)...)
		}
		return found
	case Or:
		var found []Or
		for _, op := range e.Operands {
			found = append(found, collectOrGroups(op, depth+1)...)
		}
		return found
	case Not:
		return collectOrGroups(e.Operand, depth+1)
	default:
		return nil
	}
}

// orGroup reports whether expr is an OR of at least two operands that are
// all bare identifiers, or all negated identifiers. Mixed shapes are not
// factored.
func orGroup(expr Expr) (Or, bool) {
	or, ok := expr.(Or)
	if !ok || len(or.Operands) < 2 {
		return Or{}, false
	}
	plain, negated := 0, 0
	for _, op := range or.Operands {
		switch n := op.(type) {
		case Ident:
			plain++
		case Not:
			if _, ok := n.Operand.(Ident); !ok {
				return Or{}, false
			}
			negated++
		default:
			return Or{}, false
		}
	}
	if plain == len(or.Operands) || negated == len(or.Operands) {
		return or, true
	}
	return Or{}, false
}

// memberName extracts the identifier name from an OR-group operand.
func memberName(op Expr) string {
	switch n := op.(type) {
	case Ident:
		return n.Name
	case Not:
		return n.Operand.(Ident).Name
	default:
		panic(fmt.Sprintf("logic: non-literal OR-group operand %T", op))
	}
}

// compositeQuestion builds the human-readable question for a virtual node
// from its members' question strings. Members without a known question are
// skipped.
func compositeQuestion(members []string, questions map[string]string) string {
	var texts []string
	for _, m := range members {
		if q, ok := questions[m]; ok {
			texts = append(texts, q)
		}
	}
	return fmt.Sprintf("Does patient meet either:\n%s?", strings.Join(texts, " OR "))
}
