// Package yarnstats aggregates yarn recommendations across a designer's
// patterns: which yarns a designer reaches for most, and which yarns from
// their other patterns could substitute for a given pattern's picks.
package yarnstats

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fiberarts/fiberfind/pkg/ravelry"
)

// DefaultTopN is how many top yarns a designer report keeps.
const DefaultTopN = 5

// API is the slice of the Ravelry client this package needs.
type API interface {
	SearchPatternsByDesigner(ctx context.Context, designer string, maxPages int) ([]ravelry.Pattern, error)
	GetPattern(ctx context.Context, id int64) (*ravelry.PatternDetail, error)
	GetYarn(ctx context.Context, id int64) (*ravelry.YarnDetail, error)
}

// YarnCount is one entry in a designer's yarn ranking.
type YarnCount struct {
	Yarn  ravelry.Yarn `json:"yarn"`
	Count int          `json:"count"`
}

// DesignerReport holds everything computed from one designer's patterns:
// the pattern-yarn graph and the most recommended yarns.
type DesignerReport struct {
	Designer string      `json:"designer"`
	Patterns int         `json:"patterns"`
	Top      []YarnCount `json:"top"`
	Graph    *Bipartite  `json:"-"`
}

// DesignerYarns fetches the designer's patterns, resolves every recommended
// yarn, and ranks yarns by how many recommendations they collect. A yarn
// recommended twice by the same pattern counts twice. Ties keep the order
// yarns were first seen in. topN <= 0 means [DefaultTopN]; maxPages caps
// the pattern search (0 means all pages).
//
// A designer with no patterns yields an empty report, not an error.
func DesignerYarns(ctx context.Context, api API, designer string, topN, maxPages int) (*DesignerReport, error) {
	if strings.TrimSpace(designer) == "" {
		return nil, errors.New("designer name is empty")
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	patterns, err := api.SearchPatternsByDesigner(ctx, designer, maxPages)
	if err != nil {
		return nil, err
	}

	report := &DesignerReport{
		Designer: strings.TrimSpace(designer),
		Patterns: len(patterns),
		Graph:    NewBipartite(),
	}

	yarns := newYarnFetcher(api)
	counts := make(map[int64]int)
	var order []int64
	byID := make(map[int64]ravelry.Yarn)

	for _, p := range patterns {
		detail, err := api.GetPattern(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("pattern %d: %w", p.ID, err)
		}
		for _, yarnID := range detail.YarnIDs {
			y, err := yarns.get(ctx, yarnID)
			if err != nil {
				return nil, err
			}
			if y == nil {
				continue
			}
			report.Graph.AddEdge(detail.Name, y.Label())
			if _, seen := counts[y.ID]; !seen {
				order = append(order, y.ID)
				byID[y.ID] = y.Yarn
			}
			counts[y.ID]++
		}
	}

	ranked := make([]YarnCount, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, YarnCount{Yarn: byID[id], Count: counts[id]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	report.Top = ranked
	return report, nil
}

// Alternatives holds a pattern's recommended yarns and the substitutes
// found among the designer's other patterns.
type Alternatives struct {
	Pattern     ravelry.PatternDetail `json:"pattern"`
	Recommended []ravelry.YarnDetail  `json:"recommended"`
	Substitutes []ravelry.Yarn        `json:"substitutes"`
}

// FindAlternatives suggests substitute yarns for a pattern. A yarn
// recommended by another pattern from the same designer qualifies when its
// main fiber and weight name both match one of the target pattern's
// recommended yarns and it is not itself one of them. Substitutes keep
// first-seen order with duplicates dropped.
//
// A pattern with no recommended yarns yields empty Recommended and
// Substitutes slices; the caller reports that as "no results".
func FindAlternatives(ctx context.Context, api API, patternID int64, maxPages int) (*Alternatives, error) {
	target, err := api.GetPattern(ctx, patternID)
	if err != nil {
		return nil, err
	}
	out := &Alternatives{Pattern: *target}

	yarns := newYarnFetcher(api)
	fibers := make(map[string]bool)
	weights := make(map[string]bool)
	recommended := make(map[int64]bool)

	for _, yarnID := range target.YarnIDs {
		y, err := yarns.get(ctx, yarnID)
		if err != nil {
			return nil, err
		}
		if y == nil {
			continue
		}
		out.Recommended = append(out.Recommended, *y)
		recommended[y.ID] = true
		if f := y.MainFiber(); f != "" {
			fibers[f] = true
		}
		if y.Weight != "" {
			weights[strings.ToLower(y.Weight)] = true
		}
	}
	if len(out.Recommended) == 0 {
		return out, nil
	}

	siblings, err := api.SearchPatternsByDesigner(ctx, target.Designer, maxPages)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool)
	for _, p := range siblings {
		if p.ID == target.ID {
			continue
		}
		detail, err := api.GetPattern(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("pattern %d: %w", p.ID, err)
		}
		for _, yarnID := range detail.YarnIDs {
			if recommended[yarnID] || seen[yarnID] {
				continue
			}
			y, err := yarns.get(ctx, yarnID)
			if err != nil {
				return nil, err
			}
			if y == nil {
				continue
			}
			if fibers[y.MainFiber()] && weights[strings.ToLower(y.Weight)] {
				seen[y.ID] = true
				out.Substitutes = append(out.Substitutes, y.Yarn)
			}
		}
	}
	return out, nil
}

// yarnFetcher memoizes yarn detail lookups so a yarn recommended by many
// patterns is fetched once. Yarns that 404 are remembered as absent and
// skipped rather than failing the whole aggregation.
type yarnFetcher struct {
	api   API
	cache map[int64]*ravelry.YarnDetail
}

func newYarnFetcher(api API) *yarnFetcher {
	return &yarnFetcher{api: api, cache: make(map[int64]*ravelry.YarnDetail)}
}

func (f *yarnFetcher) get(ctx context.Context, id int64) (*ravelry.YarnDetail, error) {
	if y, ok := f.cache[id]; ok {
		return y, nil
	}
	y, err := f.api.GetYarn(ctx, id)
	if err != nil {
		if errors.Is(err, ravelry.ErrNotFound) {
			f.cache[id] = nil
			return nil, nil
		}
		return nil, fmt.Errorf("yarn %d: %w", id, err)
	}
	f.cache[id] = y
	return y, nil
}
