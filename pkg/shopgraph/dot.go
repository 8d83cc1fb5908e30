package shopgraph

import (
	"bytes"
	"fmt"
)

// ToDOT converts the shop graph to Graphviz DOT format. Nodes are labeled
// "Name (City)" and edges carry the distance in miles, so the rendered
// image mirrors what the centrality ranking saw.
func ToDOT(g *Graph, title string) string {
	var buf bytes.Buffer
	buf.WriteString("graph shops {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=\"#EE6E62\", fontsize=12, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  edge [color=gray, fontsize=9];\n")
	if title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", title)
	}
	buf.WriteString("\n")

	for i, s := range g.Shops {
		fmt.Fprintf(&buf, "  n%d [label=%q];\n", i, nodeLabel(s))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  n%d -- n%d [label=\"%.1f mi\"];\n", e.A, e.B, e.Weight)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(s Shop) string {
	if s.City == "" {
		return s.Name
	}
	return fmt.Sprintf("%s (%s)", s.Name, s.City)
}
