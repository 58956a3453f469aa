package decision

import (
	"fmt"
	"strings"
)

// =============================================================================
// Mermaid Flowchart Rendering
// =============================================================================

// Fixed styling directives appended to every flowchart. The class palette
// matches the DOT renderer's colors.
var mermaidFooter = []string{
	"classDef default fill:#f0f0f0,stroke:#333,stroke-width:1px,color:black",
	"classDef start fill:#FFA500,stroke:#333,color:white",
	"classDef approval fill:#4CAF50,stroke:#333,color:white",
	"classDef rejection fill:#DC143C,stroke:#333,color:white",
	"classDef virtual fill:#9370DB,stroke:#333,color:white",
	"class Start start",
	"class Approve approval",
	"class Deny rejection",
	"linkStyle default stroke:#333,stroke-width:2px",
}

// Mermaid renders the graph as Mermaid flowchart text.
//
// Output is byte-for-byte reproducible for identical input: nodes and edges
// are emitted in accumulation order. When a term's first identifier is a
// factored virtual id, the Start fan-out expands it into a two-level
// sub-decision: Start connects to each member, each member's Yes edge
// converges on the virtual node, and each member's No edge goes to Deny.
func Mermaid(g *Graph) string {
	lines := []string{
		"%%{init: {'flowchart': {'rankSpacing': 25, 'nodeSpacing': 50, 'padding': 5}}}%%",
		"flowchart TD",
		`Start["Start"]`,
	}

	for _, n := range g.Nodes() {
		lines = append(lines, fmt.Sprintf(`%s["%s"]`, n.ID, n.Label))
	}

	// Members introduced by virtual-group expansion are not graph nodes;
	// declare them here so they display their question text.
	for _, base := range g.Starts() {
		group, ok := g.Group(base)
		if !ok {
			continue
		}
		for _, member := range group.Members {
			lines = append(lines, fmt.Sprintf(`%s["%s"]`, member, g.Question(member)))
		}
	}

	lines = append(lines, `Approve["Yes"]`, `Deny["No"]`)

	for _, base := range g.Starts() {
		group, ok := g.Group(base)
		if !ok {
			lines = append(lines, fmt.Sprintf("Start --> %s", base))
			continue
		}
		for _, member := range group.Members {
			lines = append(lines, fmt.Sprintf("Start --> %s", member))
			lines = append(lines, fmt.Sprintf("%s -->|Yes| %s", member, group.VirtualID))
			lines = append(lines, fmt.Sprintf("%s -->|No| Deny", member))
		}
	}

	for _, e := range g.Edges() {
		lines = append(lines, fmt.Sprintf("%s -->|%s| %s", e.From, e.Label, e.To))
	}

	lines = append(lines, mermaidFooter...)

	return strings.Join(lines, "\n")
}
