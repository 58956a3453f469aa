package logic

// =============================================================================
// Disjunctive Normal Form
// =============================================================================

// Literal is an identifier reference tagged with the truth value it must
// take: "name evaluates to Positive".
type Literal struct {
	Name     string
	Positive bool
}

// Term is one conjunctive clause of a DNF. Literal order is significant: it
// becomes the linear chain of questions in the rendered decision graph.
type Term []Literal

// DNF is a disjunction of conjunctive terms. Term order carries no logical
// meaning but is stable across runs, derived from input order.
type DNF []Term

// ToDNF converts an expression tree into disjunctive normal form.
//
// Bare identifiers become positive literals, so negation must already have
// been resolved by [Normalize] into its side table. Negations that survive
// are still handled: "not ident" yields a negative literal directly, and a
// negated compound subtree is converted by negating its own DNF (De Morgan
// followed by re-distribution into DNF shape).
//
// An expression shape outside the Ident/Not/And/Or grammar yields an empty
// DNF: no satisfying assignment is modeled. That is a silent degenerate
// result, not an error.
func ToDNF(expr Expr) DNF {
	switch e := expr.(type) {
	case Ident:
		return DNF{Term{{Name: e.Name, Positive: true}}}

	case Not:
		if ident, ok := e.Operand.(Ident); ok {
			return DNF{Term{{Name: ident.Name, Positive: false}}}
		}
		return negateDNF(ToDNF(e.Operand))

	case And:
		// Fold left starting from the single empty term (logical true),
		// distributing each operand's terms over the accumulated result:
		// (a or b) and (c or d) = ac or ad or bc or bd.
		result := DNF{Term{}}
		for _, op := range e.Operands {
			result = distributeAnd(result, ToDNF(op))
		}
		return result

	case Or:
		var result DNF
		for _, op := range e.Operands {
			result = append(result, ToDNF(op)...)
		}
		return result

	default:
		return DNF{}
	}
}

// negateDNF negates a whole DNF formula. Negating a disjunction of
// conjunctions gives a conjunction of disjunctions of negated literals,
// which is re-distributed into DNF via the cartesian product across all
// terms' negated literals.
func negateDNF(terms DNF) DNF {
	if len(terms) == 0 {
		return DNF{}
	}
	result := DNF{Term{}}
	for _, term := range terms {
		negated := make(DNF, len(term))
		for i, lit := range term {
			negated[i] = Term{{Name: lit.Name, Positive: !lit.Positive}}
		}
		result = distributeAnd(result, negated)
	}
	return result
}

// distributeAnd computes the conjunction of two DNFs as the cartesian
// product of their terms, concatenating literal lists pairwise.
func distributeAnd(left, right DNF) DNF {
	result := make(DNF, 0, len(left)*len(right))
	for _, l := range left {
		for _, r := range right {
			term := make(Term, 0, len(l)+len(r))
			term = append(term, l...)
			term = append(term, r...)
			result = append(result, term)
		}
	}
	return result
}

// Satisfies reports whether every literal of the term holds under the given
// truth assignment.
func (t Term) Satisfies(model map[string]bool) bool {
	for _, lit := range t {
		if model[lit.Name] != lit.Positive {
			return false
		}
	}
	return true
}

// Satisfies reports whether at least one term of the DNF holds under the
// given truth assignment.
func (d DNF) Satisfies(model map[string]bool) bool {
	for _, term := range d {
		if term.Satisfies(model) {
			return true
		}
	}
	return false
}
