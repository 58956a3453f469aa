package logic

// =============================================================================
// Negation Normalization
// =============================================================================

// NegatedSet records identifier names whose negation was folded away during
// normalization. A name in the set means "not <name>" was rewritten to the
// bare identifier; the decision-graph builder flips the Yes/No branches of
// any node whose identifier is in the set.
type NegatedSet map[string]bool

// Normalize pushes negation inward using De Morgan's laws until no "not"
// remains in the tree. Negations of compound operands become the dual
// connective over negated operands; negations of single identifiers are
// dropped and the identifier name is recorded in the returned [NegatedSet].
//
// The returned tree therefore contains only [Ident], [And] and [Or] nodes,
// which is the shape [ToDNF] expects when polarity is carried out of band.
// Normalizing an already-normalized tree is a no-op.
func Normalize(expr Expr) (Expr, NegatedSet) {
	negated := make(NegatedSet)
	return normalize(expr, negated), negated
}

func normalize(expr Expr, negated NegatedSet) Expr {
	switch e := expr.(type) {
	case Ident:
		return e

	case Not:
		switch inner := e.Operand.(type) {
		case Ident:
			negated[inner.Name] = true
			return inner
		case Not:
			// Double negation cancels.
			return normalize(inner.Operand, negated)
		case And:
			operands := make([]Expr, len(inner.Operands))
			for i, op := range inner.Operands {
				operands[i] = Not{Operand: op}
			}
			return normalize(Or{Operands: operands}, negated)
		case Or:
			operands := make([]Expr, len(inner.Operands))
			for i, op := range inner.Operands {
				operands[i] = Not{Operand: op}
			}
			return normalize(And{Operands: operands}, negated)
		default:
			return e
		}

	case And:
		for i, op := range e.Operands {
			e.Operands[i] = normalize(op, negated)
		}
		return e

	case Or:
		for i, op := range e.Operands {
			e.Operands[i] = normalize(op, negated)
		}
		return e

	default:
		return expr
	}
}
