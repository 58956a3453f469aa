package decision

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ruleflow/ruleflow/pkg/logic"
)

func TestBuildDAGDoc(t *testing.T) {
	dnf, negated := compileDNF(t, "(Q1 and not (Q5 and Q4)) or (Q2 and Q3)")
	g := NewBuilder(nil, nil, negated).Build(dnf)

	doc := BuildDAGDoc(g)

	wantNodes := map[string]string{
		"Start": "Decision Point",
		"Q1":    "Q1",
		"Q2":    "Q2",
		"Q3":    "Q3",
		"Q4":    "Q4",
		"Q5":    "Q5",
	}
	if !reflect.DeepEqual(doc.Nodes, wantNodes) {
		t.Errorf("nodes = %v, want %v", doc.Nodes, wantNodes)
	}

	// Q1 splits into Q1 and Q1_1 in the graph; both collapse onto the "Q1"
	// key with the later instance's edges winning.
	wantEdges := map[string]map[string][]string{
		"Start": {"Start": {"Q1", "Q2"}},
		"Q1":    {"Yes": {"Deny"}, "No": {"Q4"}},
		"Q5":    {"Yes": {"Deny"}, "No": {"Approve"}},
		"Q4":    {"Yes": {"Deny"}, "No": {"Approve"}},
		"Q2":    {"Yes": {"Q3"}, "No": {"Deny"}},
		"Q3":    {"Yes": {"Approve"}, "No": {"Deny"}},
	}
	if !reflect.DeepEqual(doc.Edges, wantEdges) {
		t.Errorf("edges = %v, want %v", doc.Edges, wantEdges)
	}

	wantTerminal := map[string]string{"Approve": "Yes", "Deny": "No"}
	if !reflect.DeepEqual(doc.TerminalNodes, wantTerminal) {
		t.Errorf("terminal_nodes = %v, want %v", doc.TerminalNodes, wantTerminal)
	}
}

func TestBuildDAGDocVirtualOpaque(t *testing.T) {
	// The document never expands factor groups: a virtual start id appears
	// as an ordinary node and an ordinary fan-out entry.
	questions := map[string]string{"V1": "Meets either?"}
	groups := []logic.FactorGroup{{VirtualID: "V1", Members: []string{"Q2", "Q3"}}}

	dnf, negated := compileDNF(t, "V1 and Q1")
	g := NewBuilder(questions, groups, negated).Build(dnf)

	doc := BuildDAGDoc(g)
	if got := doc.Edges["Start"]["Start"]; !reflect.DeepEqual(got, []string{"V1"}) {
		t.Errorf("start fan-out = %v, want [V1]", got)
	}
	if _, ok := doc.Nodes["Q2"]; ok {
		t.Errorf("member Q2 must not appear in the document: %v", doc.Nodes)
	}
	if doc.Nodes["V1"] != "Meets either?" {
		t.Errorf("V1 label = %q, want composite question", doc.Nodes["V1"])
	}
}

func TestMarshalDAG(t *testing.T) {
	g := NewBuilder(map[string]string{"Q1": "Is it?"}, nil, nil).
		Build(logic.DNF{logic.Term{pos("Q1")}})

	got, err := MarshalDAG(g)
	if err != nil {
		t.Fatal(err)
	}

	want := `{"nodes":{"Q1":"Is it?","Start":"Decision Point"},` +
		`"edges":{"Q1":{"No":["Deny"],"Yes":["Approve"]},"Start":{"Start":["Q1"]}},` +
		`"terminal_nodes":{"Approve":"Yes","Deny":"No"}}`
	if string(got) != want {
		t.Errorf("MarshalDAG() = %s, want %s", got, want)
	}
	if strings.Contains(string(got), "\n") {
		t.Errorf("output must be a single line: %s", got)
	}
}

func TestMarshalDAGStable(t *testing.T) {
	input := "(Q1 and not (Q5 and Q4)) or (Q2 and Q3)"

	var first string
	for i := 0; i < 5; i++ {
		dnf, negated := compileDNF(t, input)
		out, err := MarshalDAG(NewBuilder(nil, nil, negated).Build(dnf))
		if err != nil {
			t.Fatal(err)
		}
		if i == 0 {
			first = string(out)
			continue
		}
		if string(out) != first {
			t.Fatalf("run %d produced different bytes", i)
		}
	}
}

func TestDAGDocCopiesStarts(t *testing.T) {
	dnf, negated := compileDNF(t, "Q1 or Q2")
	g := NewBuilder(nil, nil, negated).Build(dnf)

	doc := BuildDAGDoc(g)
	doc.Edges["Start"]["Start"][0] = "mutated"

	if g.Starts()[0] != "Q1" {
		t.Errorf("document mutation leaked into the graph: %v", g.Starts())
	}
}
