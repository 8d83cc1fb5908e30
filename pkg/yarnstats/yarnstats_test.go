package yarnstats

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/fiberarts/fiberfind/pkg/ravelry"
)

type fakeAPI struct {
	patterns  map[string][]ravelry.Pattern
	details   map[int64]*ravelry.PatternDetail
	yarns     map[int64]*ravelry.YarnDetail
	yarnCalls map[int64]int
}

func (f *fakeAPI) SearchPatternsByDesigner(_ context.Context, designer string, _ int) ([]ravelry.Pattern, error) {
	return f.patterns[strings.ToLower(designer)], nil
}

func (f *fakeAPI) GetPattern(_ context.Context, id int64) (*ravelry.PatternDetail, error) {
	d, ok := f.details[id]
	if !ok {
		return nil, fmt.Errorf("%w: pattern %d", ravelry.ErrNotFound, id)
	}
	return d, nil
}

func (f *fakeAPI) GetYarn(_ context.Context, id int64) (*ravelry.YarnDetail, error) {
	if f.yarnCalls == nil {
		f.yarnCalls = make(map[int64]int)
	}
	f.yarnCalls[id]++
	y, ok := f.yarns[id]
	if !ok {
		return nil, fmt.Errorf("%w: yarn %d", ravelry.ErrNotFound, id)
	}
	return y, nil
}

func pattern(id int64, name, designer string, yarnIDs ...int64) *ravelry.PatternDetail {
	return &ravelry.PatternDetail{
		Pattern: ravelry.Pattern{ID: id, Name: name, Designer: designer},
		YarnIDs: yarnIDs,
	}
}

func yarn(id int64, name, weight, fiber string) *ravelry.YarnDetail {
	pct := 100.0
	return &ravelry.YarnDetail{
		Yarn:   ravelry.Yarn{ID: id, Name: name, Brand: "Brand", Weight: weight},
		Fibers: []ravelry.Fiber{{Percentage: &pct, Name: fiber}},
	}
}

func janeAPI() *fakeAPI {
	return &fakeAPI{
		patterns: map[string][]ravelry.Pattern{
			"jane doe": {
				{ID: 1, Name: "Hat", Designer: "Jane Doe"},
				{ID: 2, Name: "Scarf", Designer: "Jane Doe"},
				{ID: 3, Name: "Socks", Designer: "Jane Doe"},
			},
		},
		details: map[int64]*ravelry.PatternDetail{
			1: pattern(1, "Hat", "Jane Doe", 10, 11),
			2: pattern(2, "Scarf", "Jane Doe", 10),
			3: pattern(3, "Socks", "Jane Doe", 10, 12),
		},
		yarns: map[int64]*ravelry.YarnDetail{
			10: yarn(10, "Heritage", "Fingering", "merino"),
			11: yarn(11, "Puffin", "Bulky", "wool"),
			12: yarn(12, "Felici", "Fingering", "merino"),
		},
	}
}

func TestDesignerYarnsCountsAcrossPatterns(t *testing.T) {
	api := janeAPI()
	report, err := DesignerYarns(context.Background(), api, "Jane Doe", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if report.Patterns != 3 {
		t.Errorf("patterns = %d, want 3", report.Patterns)
	}
	if len(report.Top) != 3 {
		t.Fatalf("top = %v, want 3 yarns", report.Top)
	}
	if report.Top[0].Yarn.ID != 10 || report.Top[0].Count != 3 {
		t.Errorf("top[0] = %+v, want yarn 10 with count 3", report.Top[0])
	}
	// Count ties keep first-seen order: Puffin appeared before Felici.
	if report.Top[1].Yarn.ID != 11 || report.Top[2].Yarn.ID != 12 {
		t.Errorf("tie order = %d, %d, want 11, 12", report.Top[1].Yarn.ID, report.Top[2].Yarn.ID)
	}
	if got := len(report.Graph.Edges); got != 5 {
		t.Errorf("graph edges = %d, want 5", got)
	}
}

func TestDesignerYarnsMemoizesYarnFetches(t *testing.T) {
	api := janeAPI()
	if _, err := DesignerYarns(context.Background(), api, "Jane Doe", 0, 0); err != nil {
		t.Fatal(err)
	}
	if api.yarnCalls[10] != 1 {
		t.Errorf("yarn 10 fetched %d times, want 1", api.yarnCalls[10])
	}
}

func TestDesignerYarnsTopNCut(t *testing.T) {
	api := janeAPI()
	report, err := DesignerYarns(context.Background(), api, "Jane Doe", 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Top) != 1 || report.Top[0].Yarn.ID != 10 {
		t.Errorf("top = %+v, want only yarn 10", report.Top)
	}
}

func TestDesignerYarnsUnknownDesigner(t *testing.T) {
	report, err := DesignerYarns(context.Background(), janeAPI(), "Nobody", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if report.Patterns != 0 || len(report.Top) != 0 || !report.Graph.Empty() {
		t.Errorf("report = %+v, want empty", report)
	}
}

func TestDesignerYarnsEmptyNameRejected(t *testing.T) {
	if _, err := DesignerYarns(context.Background(), janeAPI(), "  ", 0, 0); err == nil {
		t.Fatal("expected error for blank designer")
	}
}

func TestDesignerYarnsSkipsVanishedYarn(t *testing.T) {
	api := janeAPI()
	delete(api.yarns, 11)
	report, err := DesignerYarns(context.Background(), api, "Jane Doe", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, yc := range report.Top {
		if yc.Yarn.ID == 11 {
			t.Error("vanished yarn 11 should be skipped")
		}
	}
}

func TestFindAlternatives(t *testing.T) {
	api := janeAPI()
	got, err := FindAlternatives(context.Background(), api, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Recommended) != 1 || got.Recommended[0].ID != 10 {
		t.Fatalf("recommended = %+v, want yarn 10", got.Recommended)
	}
	// Felici matches Heritage on main fiber and weight; Puffin matches
	// neither; Heritage itself is excluded.
	if len(got.Substitutes) != 1 || got.Substitutes[0].ID != 12 {
		t.Errorf("substitutes = %+v, want only yarn 12", got.Substitutes)
	}
}

func TestFindAlternativesDedupes(t *testing.T) {
	api := janeAPI()
	api.details[3] = pattern(3, "Socks", "Jane Doe", 12, 12)
	got, err := FindAlternatives(context.Background(), api, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Substitutes) != 1 {
		t.Errorf("substitutes = %+v, want yarn 12 once", got.Substitutes)
	}
}

func TestFindAlternativesNoRecommendedYarns(t *testing.T) {
	api := janeAPI()
	api.details[2] = pattern(2, "Scarf", "Jane Doe")
	got, err := FindAlternatives(context.Background(), api, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Recommended) != 0 || len(got.Substitutes) != 0 {
		t.Errorf("result = %+v, want empty", got)
	}
}

func TestBipartiteAddEdge(t *testing.T) {
	b := NewBipartite()
	b.AddEdge("Hat", "Heritage by Brand")
	b.AddEdge("Hat", "Heritage by Brand")
	b.AddEdge("Scarf", "Heritage by Brand")

	if len(b.Patterns) != 2 || len(b.Yarns) != 1 {
		t.Errorf("nodes = %v / %v", b.Patterns, b.Yarns)
	}
	if len(b.Edges) != 2 {
		t.Errorf("edges = %v, want duplicate collapsed", b.Edges)
	}
}

func TestBipartiteToDOT(t *testing.T) {
	b := NewBipartite()
	b.AddEdge("Hat", "Heritage by Brand")
	dot := b.ToDOT("Jane Doe")

	for _, want := range []string{
		"graph designer_yarns {",
		`p0 [label="Hat", fillcolor="#F3F4F0"];`,
		`y0 [label="Heritage by Brand", fillcolor="#EE6E62"];`,
		"p0 -- y0;",
		`label="Jane Doe";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}
