package flowchart

import (
	"fmt"
	"strings"

	"github.com/Veraticus/claimflow/internal/lifecycle"
	"github.com/Veraticus/claimflow/internal/model"
)

// DOT returns the lifecycle graph in Graphviz DOT with the same
// highlighting as the text chart.
func DOT(current model.ClaimStatus) string {
	g := lifecycle.Annotate(current)

	var b strings.Builder
	b.WriteString("digraph claim {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\"];\n")

	for _, n := range g.Nodes {
		fill, font := "#f5f5f5", "#737373"
		switch {
		case n.Current:
			fill, font = "#7c3aed", "#ffffff"
		case n.Active:
			fill, font = "#d1fae5", "#065f46"
		}
		fmt.Fprintf(&b, "  %q [label=%q, fillcolor=%q, fontcolor=%q];\n", string(n.Status), n.Status.Label(), fill, font)
	}

	b.WriteString("  { rank=same; ")
	for _, s := range lifecycle.MainPath {
		fmt.Fprintf(&b, "%q; ", string(s))
	}
	b.WriteString("}\n")

	for _, e := range g.Edges {
		color, width := "#a3a3a3", "1"
		if e.Active {
			color, width = "#10b981", "2"
		}
		fmt.Fprintf(&b, "  %q -> %q [color=%q, penwidth=%s];\n", string(e.From), string(e.To), color, width)
	}
	b.WriteString("}\n")
	return b.String()
}
