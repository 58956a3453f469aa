// Package logic implements the boolean decision-logic core: the expression
// tree, its parser, negation normalization, OR-group factoring and conversion
// to disjunctive normal form (DNF).
//
// The package is the front half of the compilation pipeline. A logic string
// such as
//
//	(Q1 and not (Q5 and Q4)) or (Q2 and Q3)
//
// is parsed into an [Expr] tree, normalized so that negation only survives as
// a side table of identifier names, and flattened into a [DNF]: a disjunction
// of conjunctive [Term]s. The back half of the pipeline
// (ruleflow/pkg/decision) turns the DNF into a decision graph.
//
// All transformations are pure and deterministic: term and literal order is
// derived solely from left-to-right, depth-first input order, because that
// order becomes the visible question chain in the rendered flowchart.
package logic

import "strings"

// =============================================================================
// Expression Tree
// =============================================================================

// Expr is a node in a boolean decision expression.
//
// The variant is closed: the only implementations are [Ident], [Not], [And]
// and [Or]. Every pass in this package switches exhaustively over these four
// shapes; adding a fifth requires touching each switch.
type Expr interface {
	// String renders the canonical textual form of the expression, with
	// parentheses inserted only where precedence requires them.
	String() string

	isExpr()
}

// Ident is a reference to a named yes/no question.
type Ident struct {
	Name string
}

// Not negates its operand.
type Not struct {
	Operand Expr
}

// And is a conjunction of two or more operands.
// Operands parsed at the same syntactic level are kept flat, so
// "a and b and c" is a single three-operand node.
type And struct {
	Operands []Expr
}

// Or is a disjunction of two or more operands, flat like [And].
type Or struct {
	Operands []Expr
}

func (Ident) isExpr() {}
func (Not) isExpr()   {}
func (And) isExpr()   {}
func (Or) isExpr()    {}

func (e Ident) String() string { return e.Name }

func (e Not) String() string {
	switch e.Operand.(type) {
	case And, Or:
		return "not (" + e.Operand.String() + ")"
	default:
		return "not " + e.Operand.String()
	}
}

func (e And) String() string {
	parts := make([]string, len(e.Operands))
	for i, op := range e.Operands {
		if _, ok := op.(Or); ok {
			parts[i] = "(" + op.String() + ")"
		} else {
			parts[i] = op.String()
		}
	}
	return strings.Join(parts, " and ")
}

func (e Or) String() string {
	parts := make([]string, len(e.Operands))
	for i, op := range e.Operands {
		parts[i] = op.String()
	}
	return strings.Join(parts, " or ")
}

// Eval evaluates expr against a complete truth assignment.
// Identifiers missing from the model evaluate to false.
func Eval(expr Expr, model map[string]bool) bool {
	switch e := expr.(type) {
	case Ident:
		return model[e.Name]
	case Not:
		return !Eval(e.Operand, model)
	case And:
		for _, op := range e.Operands {
			if !Eval(op, model) {
				return false
			}
		}
		return true
	case Or:
		for _, op := range e.Operands {
			if Eval(op, model) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Idents returns the distinct identifier names referenced by expr,
// in first-appearance order.
func Idents(expr Expr) []string {
	var names []string
	seen := make(map[string]bool)
	var walk func(Expr)
	walk = func(e Expr) {
		switch n := e.(type) {
		case Ident:
			if !seen[n.Name] {
				seen[n.Name] = true
				names = append(names, n.Name)
			}
		case Not:
			walk(n.Operand)
		case And:
			for _, op := range n.Operands {
				walk(op)
			}
		case Or:
			for _, op := range n.Operands {
				walk(op)
			}
		}
	}
	walk(expr)
	return names
}
