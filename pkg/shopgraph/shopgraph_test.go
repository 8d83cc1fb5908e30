package shopgraph

import (
	"strings"
	"testing"

	"github.com/fiberarts/fiberfind/pkg/geo"
)

// Three Portland shops within roughly 10 miles of each other.
var portlandShops = []Shop{
	{ID: 1, Name: "Pearl Fiber Arts", City: "Portland", Coord: geo.Point{Lat: 45.5272, Lon: -122.6819}},
	{ID: 2, Name: "Close Knit", City: "Portland", Coord: geo.Point{Lat: 45.5485, Lon: -122.6603}},
	{ID: 3, Name: "Starlight Knitting Society", City: "Portland", Coord: geo.Point{Lat: 45.4770, Lon: -122.6194}},
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		shops     []Shop
		radius    float64
		wantEdges int
		wantErr   error
	}{
		{
			name:      "Empty",
			shops:     nil,
			radius:    50,
			wantEdges: 0,
		},
		{
			name:      "SingleShop",
			shops:     portlandShops[:1],
			radius:    50,
			wantEdges: 0,
		},
		{
			name:      "PortlandTriangle",
			shops:     portlandShops,
			radius:    50,
			wantEdges: 3,
		},
		{
			name: "FarShopGetsNoEdge",
			shops: append(append([]Shop(nil), portlandShops...),
				Shop{ID: 4, Name: "Seattle Yarn", City: "Seattle", Coord: geo.Point{Lat: 47.6062, Lon: -122.3321}}),
			radius:    50,
			wantEdges: 3,
		},
		{
			name:    "BadRadius",
			shops:   portlandShops,
			radius:  0,
			wantErr: ErrInvalidRadius,
		},
		{
			name:    "BadCoordinate",
			shops:   []Shop{{ID: 9, Name: "Nowhere", Coord: geo.Point{Lat: 200, Lon: 0}}},
			radius:  50,
			wantErr: ErrInvalidCoordinate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Build(tt.shops, tt.radius)
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("Build() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if g.EdgeCount() != tt.wantEdges {
				t.Errorf("EdgeCount() = %d, want %d", g.EdgeCount(), tt.wantEdges)
			}
		})
	}
}

func TestBuildEdgeWeightsSymmetricNonNegative(t *testing.T) {
	g, err := Build(portlandShops, 50)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range g.Edges {
		if e.Weight < 0 {
			t.Errorf("edge %d--%d weight = %v, want non-negative", e.A, e.B, e.Weight)
		}
		if e.A == e.B {
			t.Errorf("self-edge on node %d", e.A)
		}
		back := geo.Distance(g.Shops[e.B].Coord, g.Shops[e.A].Coord)
		if back != e.Weight {
			t.Errorf("edge %d--%d weight = %v, reversed distance = %v", e.A, e.B, e.Weight, back)
		}
	}
}

func TestRankPortlandTriangle(t *testing.T) {
	g, err := Build(portlandShops, 50)
	if err != nil {
		t.Fatal(err)
	}

	for _, m := range []Measure{Degree, Closeness} {
		ranked := g.Rank(m)
		if len(ranked) != 3 {
			t.Fatalf("%s: len = %d, want 3", m, len(ranked))
		}
		for i := 1; i < len(ranked); i++ {
			if ranked[i].Score > ranked[i-1].Score {
				t.Errorf("%s: ranking not descending at %d: %v > %v", m, i, ranked[i].Score, ranked[i-1].Score)
			}
		}
		if ranked[len(ranked)-1].Score <= 0 {
			t.Errorf("%s: all connected shops should score > 0, got %v", m, ranked[len(ranked)-1].Score)
		}
	}
}

func TestRankFewerThanTwoInRange(t *testing.T) {
	// Two shops far apart: no edges, everything scores 0, input order kept.
	shops := []Shop{
		{ID: 1, Name: "A", Coord: geo.Point{Lat: 45.5, Lon: -122.6}},
		{ID: 2, Name: "B", Coord: geo.Point{Lat: 40.7, Lon: -74.0}},
	}
	g, err := Build(shops, 50)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range []Measure{Degree, Closeness} {
		ranked := g.Rank(m)
		for i, r := range ranked {
			if r.Score != 0 {
				t.Errorf("%s: score = %v, want 0", m, r.Score)
			}
			if r.Shop.ID != shops[i].ID {
				t.Errorf("%s: position %d = shop %d, want input order preserved", m, i, r.Shop.ID)
			}
		}
	}
}

func TestRankIsolatedShopSortsLast(t *testing.T) {
	shops := append(
		[]Shop{{ID: 99, Name: "Remote", City: "Astoria", Coord: geo.Point{Lat: 46.1879, Lon: -123.8313}}},
		portlandShops...)
	g, err := Build(shops, 50)
	if err != nil {
		t.Fatal(err)
	}
	ranked := g.Rank(Degree)
	last := ranked[len(ranked)-1]
	if last.Shop.ID != 99 {
		t.Errorf("last ranked = shop %d, want isolated shop 99", last.Shop.ID)
	}
	if last.Score != 0 {
		t.Errorf("isolated shop score = %v, want 0", last.Score)
	}
}

func TestRankStableOnTies(t *testing.T) {
	// A path graph a--b--c--d: a and d tie, b and c tie. Input order must
	// decide within each tier.
	shops := []Shop{
		{ID: 1, Name: "a", Coord: geo.Point{Lat: 45.00, Lon: -122.60}},
		{ID: 2, Name: "b", Coord: geo.Point{Lat: 45.30, Lon: -122.60}},
		{ID: 3, Name: "c", Coord: geo.Point{Lat: 45.60, Lon: -122.60}},
		{ID: 4, Name: "d", Coord: geo.Point{Lat: 45.90, Lon: -122.60}},
	}
	g, err := Build(shops, 25)
	if err != nil {
		t.Fatal(err)
	}
	if g.EdgeCount() != 3 {
		t.Fatalf("EdgeCount() = %d, want path with 3 edges", g.EdgeCount())
	}
	ranked := g.Rank(Degree)
	gotIDs := []int64{ranked[0].Shop.ID, ranked[1].Shop.ID, ranked[2].Shop.ID, ranked[3].Shop.ID}
	wantIDs := []int64{2, 3, 1, 4}
	for i := range wantIDs {
		if gotIDs[i] != wantIDs[i] {
			t.Fatalf("rank order = %v, want %v", gotIDs, wantIDs)
		}
	}
}

func TestParseMeasure(t *testing.T) {
	if m, err := ParseMeasure(""); err != nil || m != Degree {
		t.Errorf("ParseMeasure(\"\") = %v, %v; want Degree", m, err)
	}
	if m, err := ParseMeasure("closeness"); err != nil || m != Closeness {
		t.Errorf("ParseMeasure(closeness) = %v, %v; want Closeness", m, err)
	}
	if _, err := ParseMeasure("betweenness"); err == nil {
		t.Error("ParseMeasure(betweenness) expected error")
	}
}

func TestToDOT(t *testing.T) {
	g, err := Build(portlandShops, 50)
	if err != nil {
		t.Fatal(err)
	}
	dot := ToDOT(g, "Shops near Portland")
	if !strings.HasPrefix(dot, "graph shops {") {
		t.Errorf("DOT should be an undirected graph, got prefix %q", dot[:20])
	}
	if !strings.Contains(dot, "Pearl Fiber Arts (Portland)") {
		t.Error("DOT missing shop label")
	}
	if !strings.Contains(dot, " -- ") {
		t.Error("DOT missing undirected edges")
	}
	if !strings.Contains(dot, "Shops near Portland") {
		t.Error("DOT missing title label")
	}
}
