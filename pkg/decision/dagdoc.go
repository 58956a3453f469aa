package decision

import "encoding/json"

// =============================================================================
// Structured DAG Document
// =============================================================================

// DAGDoc is the machine-readable rendering of a decision graph.
//
// Edges are keyed by base identifier with the disambiguation suffix
// stripped, so multiple split instances of one identifier collapse onto one
// entry, last writer winning per (base source, label) pair. Virtual
// identifiers from OR-factoring appear as ordinary opaque nodes: the
// document does not carry the factor-group table, so a consumer cannot
// recover the sub-decision (accepted asymmetry with the diagram renderer).
type DAGDoc struct {
	Nodes         map[string]string              `json:"nodes"`
	Edges         map[string]map[string][]string `json:"edges"`
	TerminalNodes map[string]string              `json:"terminal_nodes"`
}

// BuildDAGDoc projects a graph into its structured document form.
func BuildDAGDoc(g *Graph) DAGDoc {
	doc := DAGDoc{
		Nodes:         map[string]string{NodeStart: "Decision Point"},
		Edges:         map[string]map[string][]string{},
		TerminalNodes: map[string]string{NodeApprove: LabelYes, NodeDeny: LabelNo},
	}

	for _, n := range g.Nodes() {
		base := BaseID(n.ID)
		doc.Nodes[base] = g.Question(base)
	}

	doc.Edges[NodeStart] = map[string][]string{NodeStart: startList(g)}

	for _, e := range g.Edges() {
		baseSrc := BaseID(e.From)
		baseTgt := BaseID(e.To)
		if doc.Edges[baseSrc] == nil {
			doc.Edges[baseSrc] = map[string][]string{}
		}
		doc.Edges[baseSrc][e.Label] = []string{baseTgt}
	}

	return doc
}

// MarshalDAG renders the graph as a single-line compact JSON document.
// Map keys serialize in sorted order, so output is stable across runs.
func MarshalDAG(g *Graph) ([]byte, error) {
	return json.Marshal(BuildDAGDoc(g))
}

// startList copies the Start fan-out so document mutation cannot touch the
// graph's slice.
func startList(g *Graph) []string {
	starts := make([]string, len(g.Starts()))
	copy(starts, g.Starts())
	return starts
}
