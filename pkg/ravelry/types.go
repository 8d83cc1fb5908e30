package ravelry

import (
	"fmt"
	"strings"

	"github.com/fiberarts/fiberfind/pkg/geo"
)

// paginator is the paging envelope Ravelry attaches to search responses.
type paginator struct {
	PageCount int `json:"page_count"`
	Page      int `json:"page"`
}

// Pattern is a knitting or crochet pattern as returned by pattern search.
type Pattern struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Free      bool   `json:"free"`
	Permalink string `json:"permalink"`
	Designer  string `json:"designer"`
}

// Link returns the public pattern page URL.
func (p Pattern) Link() string {
	return "https://www.ravelry.com/patterns/library/" + p.Permalink
}

// PatternDetail extends Pattern with fields only present on the detail
// endpoint: price, categories, and the recommended yarns ("packs").
type PatternDetail struct {
	Pattern
	Price      *float64 `json:"price"`
	Currency   string   `json:"currency"`
	YarnIDs    []int64  `json:"yarn_ids"`
	Categories []string `json:"categories"`
}

// PriceLabel renders the price for display; free and unpriced patterns are
// labeled rather than shown as zero.
func (p PatternDetail) PriceLabel() string {
	if p.Free {
		return "free"
	}
	if p.Price == nil {
		return "unpriced"
	}
	return fmt.Sprintf("%.2f %s", *p.Price, p.Currency)
}

// Yarn is a yarn line as returned by yarn search.
type Yarn struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Brand  string `json:"brand"`
	Weight string `json:"weight"`
}

// Label returns the display form "Name by Brand" used in rankings and
// graph nodes.
func (y Yarn) Label() string {
	if y.Brand == "" {
		return y.Name
	}
	return y.Name + " by " + y.Brand
}

// Fiber is one component of a yarn's fiber content.
type Fiber struct {
	Percentage *float64 `json:"percentage"`
	Name       string   `json:"name"`
}

// YarnDetail extends Yarn with fiber content from the detail endpoint.
type YarnDetail struct {
	Yarn
	Fibers []Fiber `json:"fibers"`
}

// FiberContent renders fibers as "55% Merino" style lines.
func (y YarnDetail) FiberContent() []string {
	lines := make([]string, 0, len(y.Fibers))
	for _, f := range y.Fibers {
		if f.Percentage != nil {
			lines = append(lines, fmt.Sprintf("%.0f%% %s", *f.Percentage, f.Name))
		} else {
			lines = append(lines, f.Name)
		}
	}
	return lines
}

// MainFiber returns the fiber with the highest percentage, title-cased so
// that "merino" and "Merino" compare equal across yarns. When no
// percentages are listed the first fiber wins. Empty fiber content returns
// an empty string.
func (y YarnDetail) MainFiber() string {
	var main string
	highest := -1.0
	for _, f := range y.Fibers {
		if f.Percentage == nil || f.Name == "" {
			continue
		}
		if *f.Percentage >= highest {
			highest = *f.Percentage
			main = f.Name
		}
	}
	if main == "" && len(y.Fibers) > 0 {
		main = y.Fibers[0].Name
	}
	return titleCase(main)
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Shop is a yarn shop as returned by shop search. Latitude and longitude
// are pointers because Ravelry omits them for shops that never geocoded.
type Shop struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	City      string   `json:"city"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Coord returns the shop's coordinate and whether one is present.
func (s Shop) Coord() (geo.Point, bool) {
	if s.Latitude == nil || s.Longitude == nil {
		return geo.Point{}, false
	}
	return geo.Point{Lat: *s.Latitude, Lon: *s.Longitude}, true
}
