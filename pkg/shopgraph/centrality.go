package shopgraph

import (
	"container/heap"
	"fmt"
)

// Measure selects the centrality computation used by [Graph.Rank].
type Measure int

const (
	// Degree scores each shop by its fraction of possible neighbors:
	// deg(v) / (n-1). Cheap and matches the intuition "connected to many
	// nearby shops". A graph with fewer than two shops scores everything 0.
	Degree Measure = iota

	// Closeness scores each shop by how near it is to everything it can
	// reach, using Dijkstra over edge weights (miles). Disconnected
	// components are handled with the Wasserman-Faust correction: the raw
	// closeness is scaled by the fraction of the graph that is reachable.
	Closeness
)

// ParseMeasure maps a CLI flag value to a Measure.
func ParseMeasure(s string) (Measure, error) {
	switch s {
	case "", "degree":
		return Degree, nil
	case "closeness":
		return Closeness, nil
	default:
		return 0, fmt.Errorf("unknown centrality measure %q (available: degree, closeness)", s)
	}
}

// String returns the flag spelling of the measure.
func (m Measure) String() string {
	if m == Closeness {
		return "closeness"
	}
	return "degree"
}

func (m Measure) scores(g *Graph) []float64 {
	if m == Closeness {
		return closenessScores(g)
	}
	return degreeScores(g)
}

func degreeScores(g *Graph) []float64 {
	n := len(g.Shops)
	scores := make([]float64, n)
	if n < 2 {
		return scores
	}
	for i := range scores {
		scores[i] = float64(g.Degree(i)) / float64(n-1)
	}
	return scores
}

func closenessScores(g *Graph) []float64 {
	n := len(g.Shops)
	scores := make([]float64, n)
	if n < 2 {
		return scores
	}
	for i := range scores {
		total, reached := g.shortestPathsFrom(i)
		if reached < 2 || total == 0 {
			continue
		}
		// reached includes the source itself.
		c := float64(reached-1) / total
		scores[i] = c * float64(reached-1) / float64(n-1)
	}
	return scores
}

// shortestPathsFrom runs Dijkstra from source and returns the sum of
// distances to every reachable node plus the count of reached nodes
// (including the source).
func (g *Graph) shortestPathsFrom(source int) (total float64, reached int) {
	const unvisited = -1.0

	dist := make([]float64, len(g.Shops))
	for i := range dist {
		dist[i] = unvisited
	}

	pq := &distQueue{{index: source, dist: 0}}
	for pq.Len() > 0 {
		item := heap.Pop(pq).(distItem)
		if dist[item.index] != unvisited {
			continue
		}
		dist[item.index] = item.dist
		total += item.dist
		reached++

		for _, nb := range g.adjacency[item.index] {
			if dist[nb.index] == unvisited {
				heap.Push(pq, distItem{index: nb.index, dist: item.dist + nb.weight})
			}
		}
	}
	return total, reached
}

type distItem struct {
	index int
	dist  float64
}

type distQueue []distItem

func (q distQueue) Len() int           { return len(q) }
func (q distQueue) Less(i, j int) bool { return q[i].dist < q[j].dist }
func (q distQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *distQueue) Push(x any)        { *q = append(*q, x.(distItem)) }
func (q *distQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
