// Package shopgraph builds weighted proximity graphs over yarn shops and
// ranks them by centrality.
//
// A graph is constructed fresh per query: every pair of shops whose
// great-circle distance is within the radius gets an undirected edge
// weighted by that distance. Shops with no neighbor in range stay in the
// graph as isolated nodes so they still appear (last) in rankings.
package shopgraph

import (
	"errors"
	"sort"

	"github.com/fiberarts/fiberfind/pkg/geo"
)

var (
	// ErrInvalidRadius is returned by [Build] when the radius is not positive.
	ErrInvalidRadius = errors.New("radius must be positive")

	// ErrInvalidCoordinate is returned by [Build] when a shop coordinate is
	// outside the valid latitude/longitude range.
	ErrInvalidCoordinate = errors.New("invalid shop coordinate")
)

// DefaultRadiusMiles is the neighborhood radius used by the CLI: shops
// further apart than this are never connected.
const DefaultRadiusMiles = 50.0

// Shop is a graph node: a yarn shop with a resolved coordinate.
type Shop struct {
	ID    int64     `json:"id"`
	Name  string    `json:"name"`
	City  string    `json:"city"`
	Coord geo.Point `json:"coord"`
}

// Edge is an undirected connection between two shops, identified by their
// positions in the input slice. Weight is the great-circle distance in miles.
type Edge struct {
	A, B   int     `json:"-"`
	Weight float64 `json:"weight"`
}

// Graph is a weighted undirected proximity graph over shops.
// Node order matches the input slice; rankings tie-break on that order.
type Graph struct {
	Shops  []Shop
	Edges  []Edge
	Radius float64

	adjacency [][]neighbor
}

type neighbor struct {
	index  int
	weight float64
}

// Build constructs the proximity graph for shops using the given radius in
// miles. Edge weights are symmetric and non-negative; no shop gets a
// self-edge. The input slice is not modified.
func Build(shops []Shop, radius float64) (*Graph, error) {
	if radius <= 0 {
		return nil, ErrInvalidRadius
	}
	for _, s := range shops {
		if !s.Coord.Valid() {
			return nil, ErrInvalidCoordinate
		}
	}

	g := &Graph{
		Shops:     append([]Shop(nil), shops...),
		Radius:    radius,
		adjacency: make([][]neighbor, len(shops)),
	}

	for i := 0; i < len(shops); i++ {
		for j := i + 1; j < len(shops); j++ {
			d := geo.Distance(shops[i].Coord, shops[j].Coord)
			if d > radius {
				continue
			}
			g.Edges = append(g.Edges, Edge{A: i, B: j, Weight: d})
			g.adjacency[i] = append(g.adjacency[i], neighbor{index: j, weight: d})
			g.adjacency[j] = append(g.adjacency[j], neighbor{index: i, weight: d})
		}
	}
	return g, nil
}

// NodeCount returns the number of shops in the graph.
func (g *Graph) NodeCount() int { return len(g.Shops) }

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// Degree returns the number of neighbors of the shop at index i.
func (g *Graph) Degree(i int) int { return len(g.adjacency[i]) }

// Ranked pairs a shop with its centrality score.
type Ranked struct {
	Shop  Shop    `json:"shop"`
	Score float64 `json:"score"`
}

// Rank scores every shop with the given measure and returns shops ordered
// by descending score, most central first. Equal scores keep input order
// (stable sort); isolated shops score 0 and therefore sort last.
func (g *Graph) Rank(measure Measure) []Ranked {
	scores := measure.scores(g)

	ranked := make([]Ranked, len(g.Shops))
	for i, s := range g.Shops {
		ranked[i] = Ranked{Shop: s, Score: scores[i]}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})
	return ranked
}
