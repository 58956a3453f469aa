package logic

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // canonical String() rendering
	}{
		{name: "SingleIdent", input: "Q1", want: "Q1"},
		{name: "SimpleAnd", input: "Q1 and Q2", want: "Q1 and Q2"},
		{name: "SimpleOr", input: "Q1 or Q2", want: "Q1 or Q2"},
		{name: "FlatAndChain", input: "a and b and c", want: "a and b and c"},
		{name: "FlatOrChain", input: "a or b or c", want: "a or b or c"},
		{name: "NotBindsTightest", input: "not Q1 and Q2", want: "not Q1 and Q2"},
		{name: "AndBindsOverOr", input: "a and b or c", want: "a and b or c"},
		{name: "ParensOverride", input: "a and (b or c)", want: "a and (b or c)"},
		{name: "NotOverParens", input: "not (a and b)", want: "not (a and b)"},
		{name: "DoubleNot", input: "not not a", want: "not not a"},
		{name: "Rubicon", input: "(Q1 and not (Q5 and Q4)) or (Q2 and Q3)", want: "Q1 and not (Q5 and Q4) or Q2 and Q3"},
		{name: "Underscores", input: "has_license and is_adult", want: "has_license and is_adult"},
		{name: "ExtraWhitespace", input: "  a   and\n\tb ", want: "a and b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if got := expr.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseShapes(t *testing.T) {
	expr, err := Parse("a and b and c")
	if err != nil {
		t.Fatal(err)
	}
	and, ok := expr.(And)
	if !ok {
		t.Fatalf("expected And, got %T", expr)
	}
	if len(and.Operands) != 3 {
		t.Errorf("operands = %d, want 3 (same-level chain stays flat)", len(and.Operands))
	}

	expr, err = Parse("a and (b and c)")
	if err != nil {
		t.Fatal(err)
	}
	and = expr.(And)
	if len(and.Operands) != 2 {
		t.Errorf("operands = %d, want 2 (parens introduce nesting)", len(and.Operands))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "Empty", input: ""},
		{name: "TrailingOperator", input: "a and"},
		{name: "LeadingOperator", input: "or a"},
		{name: "UnclosedParen", input: "(a and b"},
		{name: "StrayCloseParen", input: "a)"},
		{name: "DoubleIdent", input: "a b"},
		{name: "BareNot", input: "not"},
		{name: "NumberLeaf", input: "a and 42"},
		{name: "SymbolOperator", input: "a && b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.input); err == nil {
				t.Errorf("Parse(%q): expected error, got nil", tt.input)
			}
		})
	}
}

func TestParseErrorMentionsPosition(t *testing.T) {
	_, err := Parse("a and (b or")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "end of input") {
		t.Errorf("error %q should mention end of input", err)
	}
}
