package shopgraph

import (
	"github.com/fiberarts/fiberfind/pkg/geo"
	"github.com/fiberarts/fiberfind/pkg/ravelry"
)

// FromShops converts Ravelry shop records into graph shops, keeping only
// shops with coordinates within radius miles of center. Input order is
// preserved, which fixes tie-breaking in [Graph.Rank].
func FromShops(records []ravelry.Shop, center geo.Point, radius float64) []Shop {
	var out []Shop
	for _, r := range records {
		coord, ok := r.Coord()
		if !ok {
			continue
		}
		if geo.Distance(center, coord) > radius {
			continue
		}
		out = append(out, Shop{ID: r.ID, Name: r.Name, City: r.City, Coord: coord})
	}
	return out
}
