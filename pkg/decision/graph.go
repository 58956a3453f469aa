// Package decision synthesizes binary decision graphs from DNF terms and
// renders them as Mermaid flowchart text, a structured DAG document, or
// Graphviz DOT.
//
// Every non-sentinel node in a built graph has exactly one outgoing "Yes"
// edge and exactly one outgoing "No" edge; the three sentinels Start,
// Approve and Deny are always present. The same accumulated node/edge set
// feeds all renderers.
package decision

import (
	"fmt"
	"strings"

	"github.com/ruleflow/ruleflow/pkg/logic"
)

// =============================================================================
// Constants
// =============================================================================

// Sentinel node identifiers present in every graph.
const (
	NodeStart   = "Start"
	NodeApprove = "Approve"
	NodeDeny    = "Deny"
)

// Edge labels. Every non-sentinel node carries exactly one of each.
const (
	LabelYes = "Yes"
	LabelNo  = "No"
)

// =============================================================================
// Graph
// =============================================================================

// Edge is a labeled directed connection between two nodes.
type Edge struct {
	From  string
	Label string
	To    string
}

// Node is a decision node with its display question text.
type Node struct {
	ID    string
	Label string
}

// Graph is an accumulated decision graph. Node and edge order is insertion
// order, which renderers rely on for byte-stable output.
type Graph struct {
	nodes   []Node
	edges   []Edge
	edgeSet map[Edge]bool
	starts  []string // base ids of each term's first literal, deduplicated

	questions map[string]string
	groups    []logic.FactorGroup
}

// Nodes returns the graph's non-sentinel nodes in insertion order.
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges returns the accumulated labeled edges in insertion order.
func (g *Graph) Edges() []Edge { return g.edges }

// Starts returns the base identifiers Start fans out to, in term order.
func (g *Graph) Starts() []string { return g.starts }

// Group returns the factor group for a virtual identifier, if any.
func (g *Graph) Group(id string) (logic.FactorGroup, bool) {
	for _, grp := range g.groups {
		if grp.VirtualID == id {
			return grp, true
		}
	}
	return logic.FactorGroup{}, false
}

// Question returns the display text for a base identifier, falling back to
// the identifier itself when it has no known question.
func (g *Graph) Question(base string) string {
	if q, ok := g.questions[base]; ok {
		return q
	}
	return base
}

// BaseID strips the disambiguation suffix from a node id: "Q1_2" -> "Q1".
func BaseID(id string) string {
	if i := strings.IndexByte(id, '_'); i >= 0 {
		return id[:i]
	}
	return id
}

// =============================================================================
// Builder
// =============================================================================

// Builder accumulates a decision graph from DNF terms.
//
// A Builder carries per-compilation state (node disambiguation counters and
// the node/edge set) and must not be reused across compilation requests;
// construct a fresh one per call.
type Builder struct {
	questions map[string]string
	groups    []logic.FactorGroup
	negated   logic.NegatedSet

	graph     *Graph
	nodeCount map[string]int
}

// NewBuilder creates a builder for one compilation request. questions maps
// identifiers to display text, groups carries OR-factoring side data for the
// diagram renderer, and negated lists identifiers whose negation was folded
// away during normalization.
func NewBuilder(questions map[string]string, groups []logic.FactorGroup, negated logic.NegatedSet) *Builder {
	if questions == nil {
		questions = map[string]string{}
	}
	if negated == nil {
		negated = logic.NegatedSet{}
	}
	return &Builder{
		questions: questions,
		groups:    groups,
		negated:   negated,
		graph: &Graph{
			edgeSet:   make(map[Edge]bool),
			questions: questions,
			groups:    groups,
		},
		nodeCount: make(map[string]int),
	}
}

// Build accumulates every term of the DNF into one shared graph and returns
// it. An empty DNF yields a graph holding only the sentinels: everything
// routes to Deny.
func (b *Builder) Build(dnf logic.DNF) *Graph {
	for _, term := range dnf {
		if len(term) == 0 {
			continue
		}
		b.addStart(term[0].Name)
		b.addTerm(term)
	}
	return b.graph
}

// addTerm walks the term's literals left to right, threading the previous
// node through the chain.
//
// Edge polarity follows an XOR between the previous literal's polarity and
// the *current* node's negation flag. Using the current node's flag (rather
// than the previous node's) reproduces the chaining behavior this package
// models; tests pin it down.
func (b *Builder) addTerm(term logic.Term) {
	var prevNode string
	var prevPositive bool

	for i, lit := range term {
		curr := b.nodeFor(lit.Name)
		isNegated := b.negated[lit.Name]

		if prevNode != "" {
			if prevPositive != isNegated {
				b.addEdge(prevNode, LabelYes, curr)
				b.addEdge(prevNode, LabelNo, NodeDeny)
			} else {
				b.addEdge(prevNode, LabelYes, NodeDeny)
				b.addEdge(prevNode, LabelNo, curr)
			}
		}

		if i == len(term)-1 {
			if lit.Positive != isNegated {
				b.addEdge(curr, LabelYes, NodeApprove)
				b.addEdge(curr, LabelNo, NodeDeny)
			} else {
				b.addEdge(curr, LabelYes, NodeDeny)
				b.addEdge(curr, LabelNo, NodeApprove)
			}
		}

		prevNode = curr
		prevPositive = lit.Positive
	}
}

// nodeFor assigns the node id for an identifier occurrence.
//
// The first occurrence uses the bare identifier. A reuse splits into a fresh
// suffixed id only when the bare node already touches an edge; an edge-free
// bare node is shared as-is. The rule is order-dependent on purpose.
func (b *Builder) nodeFor(name string) string {
	count := b.nodeCount[name]
	if count == 0 {
		b.nodeCount[name] = 1
		b.addNode(name)
		return name
	}
	if !b.touched(name) {
		return name
	}
	id := fmt.Sprintf("%s_%d", name, count)
	b.nodeCount[name] = count + 1
	b.addNode(id)
	return id
}

// touched reports whether any accumulated edge starts or ends at id.
func (b *Builder) touched(id string) bool {
	for _, e := range b.graph.edges {
		if e.From == id || e.To == id {
			return true
		}
	}
	return false
}

func (b *Builder) addNode(id string) {
	base := BaseID(id)
	b.graph.nodes = append(b.graph.nodes, Node{ID: id, Label: b.graph.Question(base)})
}

func (b *Builder) addEdge(from, label, to string) {
	e := Edge{From: from, Label: label, To: to}
	if b.graph.edgeSet[e] {
		return
	}
	b.graph.edgeSet[e] = true
	b.graph.edges = append(b.graph.edges, e)
}

func (b *Builder) addStart(base string) {
	for _, s := range b.graph.starts {
		if s == base {
			return
		}
	}
	b.graph.starts = append(b.graph.starts, base)
}
