package decision

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// =============================================================================
// Graphviz DOT Rendering
// =============================================================================

// ToDOT converts a decision graph to Graphviz DOT format.
//
// Like the Mermaid renderer, virtual identifiers in the Start fan-out are
// expanded into their two-level sub-decision. Colors mirror the Mermaid
// class palette: Start orange, Approve green, Deny crimson.
func ToDOT(g *Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph decision {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=\"#f0f0f0\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#333333\"];\n")
	buf.WriteString("\n")

	buf.WriteString("  \"Start\" [label=\"Start\", fillcolor=\"#FFA500\", fontcolor=white];\n")
	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, n.Label)
	}
	for _, base := range g.Starts() {
		group, ok := g.Group(base)
		if !ok {
			continue
		}
		for _, member := range group.Members {
			fmt.Fprintf(&buf, "  %q [label=%q];\n", member, g.Question(member))
		}
	}
	buf.WriteString("  \"Approve\" [label=\"Yes\", fillcolor=\"#4CAF50\", fontcolor=white];\n")
	buf.WriteString("  \"Deny\" [label=\"No\", fillcolor=\"#DC143C\", fontcolor=white];\n")
	buf.WriteString("\n")

	for _, base := range g.Starts() {
		group, ok := g.Group(base)
		if !ok {
			fmt.Fprintf(&buf, "  \"Start\" -> %q;\n", base)
			continue
		}
		for _, member := range group.Members {
			fmt.Fprintf(&buf, "  \"Start\" -> %q;\n", member)
			fmt.Fprintf(&buf, "  %q -> %q [label=\"Yes\"];\n", member, group.VirtualID)
			fmt.Fprintf(&buf, "  %q -> \"Deny\" [label=\"No\"];\n", member)
		}
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, e.Label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
