package yarnstats

import (
	"bytes"
	"fmt"
)

// Bipartite is a pattern-yarn graph: patterns on one side, yarns on the
// other, an edge per recommendation. Node order is insertion order so DOT
// output is deterministic.
type Bipartite struct {
	Patterns []string
	Yarns    []string
	Edges    [][2]int

	patternIdx map[string]int
	yarnIdx    map[string]int
	edgeSeen   map[[2]int]bool
}

// NewBipartite returns an empty pattern-yarn graph.
func NewBipartite() *Bipartite {
	return &Bipartite{
		patternIdx: make(map[string]int),
		yarnIdx:    make(map[string]int),
		edgeSeen:   make(map[[2]int]bool),
	}
}

// AddEdge records that pattern recommends yarn, adding either node on
// first sight. Duplicate edges collapse into one.
func (b *Bipartite) AddEdge(pattern, yarn string) {
	p, ok := b.patternIdx[pattern]
	if !ok {
		p = len(b.Patterns)
		b.patternIdx[pattern] = p
		b.Patterns = append(b.Patterns, pattern)
	}
	y, ok := b.yarnIdx[yarn]
	if !ok {
		y = len(b.Yarns)
		b.yarnIdx[yarn] = y
		b.Yarns = append(b.Yarns, yarn)
	}
	e := [2]int{p, y}
	if b.edgeSeen[e] {
		return
	}
	b.edgeSeen[e] = true
	b.Edges = append(b.Edges, e)
}

// Empty reports whether the graph has no nodes.
func (b *Bipartite) Empty() bool {
	return len(b.Patterns) == 0 && len(b.Yarns) == 0
}

// ToDOT converts the graph to Graphviz DOT format. Patterns and yarns get
// distinct fill colors so the two sides read apart in the rendered image.
func (b *Bipartite) ToDOT(title string) string {
	var buf bytes.Buffer
	buf.WriteString("graph designer_yarns {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=12, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  edge [color=gray];\n")
	if title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", title)
	}
	buf.WriteString("\n")

	for i, name := range b.Patterns {
		fmt.Fprintf(&buf, "  p%d [label=%q, fillcolor=\"#F3F4F0\"];\n", i, name)
	}
	for i, name := range b.Yarns {
		fmt.Fprintf(&buf, "  y%d [label=%q, fillcolor=\"#EE6E62\"];\n", i, name)
	}

	buf.WriteString("\n")
	for _, e := range b.Edges {
		fmt.Fprintf(&buf, "  p%d -- y%d;\n", e[0], e[1])
	}

	buf.WriteString("}\n")
	return buf.String()
}
