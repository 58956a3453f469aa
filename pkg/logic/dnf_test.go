package logic

import (
	"reflect"
	"testing"
)

func lit(name string, positive bool) Literal {
	return Literal{Name: name, Positive: positive}
}

func TestToDNF(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  DNF
	}{
		{
			name:  "SingleIdent",
			input: "Q1",
			want:  DNF{Term{lit("Q1", true)}},
		},
		{
			name:  "NegatedIdent",
			input: "not Q1",
			want:  DNF{Term{lit("Q1", false)}},
		},
		{
			name:  "SimpleAnd",
			input: "Q1 and Q2",
			want:  DNF{Term{lit("Q1", true), lit("Q2", true)}},
		},
		{
			name:  "SimpleOr",
			input: "Q1 or Q2",
			want:  DNF{Term{lit("Q1", true)}, Term{lit("Q2", true)}},
		},
		{
			name:  "AndDistributesOverOr",
			input: "(a or b) and (c or d)",
			want: DNF{
				Term{lit("a", true), lit("c", true)},
				Term{lit("a", true), lit("d", true)},
				Term{lit("b", true), lit("c", true)},
				Term{lit("b", true), lit("d", true)},
			},
		},
		{
			name:  "NegatedCompoundAnd",
			input: "not (Q1 and Q2)",
			want:  DNF{Term{lit("Q1", false)}, Term{lit("Q2", false)}},
		},
		{
			name:  "NegatedCompoundOr",
			input: "not (Q1 or Q2)",
			want:  DNF{Term{lit("Q1", false), lit("Q2", false)}},
		},
		{
			name:  "Rubicon",
			input: "(Q1 and not (Q5 and Q4)) or (Q2 and Q3)",
			want: DNF{
				Term{lit("Q1", true), lit("Q5", false)},
				Term{lit("Q1", true), lit("Q4", false)},
				Term{lit("Q2", true), lit("Q3", true)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDNF(mustParse(t, tt.input))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ToDNF(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestToDNFEquivalence checks that every total truth assignment satisfies
// the expression iff it satisfies the DNF, including nested negation at
// depth three and beyond.
func TestToDNFEquivalence(t *testing.T) {
	inputs := []string{
		"Q1",
		"not Q1",
		"Q1 and Q2",
		"Q1 or Q2",
		"not (Q1 and Q2)",
		"not (Q1 or (Q2 and not Q3))",
		"not (not (a and b) or not c)",
		"not ((a or b) and not (c or not d))",
		"(Q1 and not (Q5 and Q4)) or (Q2 and Q3)",
	}

	for _, input := range inputs {
		expr := mustParse(t, input)
		dnf := ToDNF(expr)
		names := Idents(expr)

		for mask := 0; mask < 1<<len(names); mask++ {
			model := make(map[string]bool, len(names))
			for i, name := range names {
				model[name] = mask&(1<<i) != 0
			}
			if want, got := Eval(expr, model), dnf.Satisfies(model); want != got {
				t.Errorf("%q under %v: expr=%v dnf=%v", input, model, want, got)
			}
		}
	}
}

// TestToDNFAfterNormalize checks the primary pipeline path: a normalized
// tree produces all-positive literals, with polarity carried by the
// negated-name side table.
func TestToDNFAfterNormalize(t *testing.T) {
	normalized, negated := Normalize(mustParse(t, "not (Q1 and Q2)"))
	dnf := ToDNF(normalized)

	want := DNF{Term{lit("Q1", true)}, Term{lit("Q2", true)}}
	if !reflect.DeepEqual(dnf, want) {
		t.Fatalf("dnf = %v, want %v", dnf, want)
	}
	if !negated["Q1"] || !negated["Q2"] {
		t.Errorf("negated = %v, want Q1 and Q2 present", negated)
	}
}

func TestToDNFDeterministicOrder(t *testing.T) {
	input := "(b or a) and (d or c)"
	first := ToDNF(mustParse(t, input))
	for i := 0; i < 10; i++ {
		if got := ToDNF(mustParse(t, input)); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: order changed: %v vs %v", i, got, first)
		}
	}
	// Input order, not sorted order.
	want := Term{lit("b", true), lit("d", true)}
	if !reflect.DeepEqual(first[0], want) {
		t.Errorf("first term = %v, want %v", first[0], want)
	}
}
