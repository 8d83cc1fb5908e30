package ravelry

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type patternRecord struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Free      bool   `json:"free"`
	Permalink string `json:"permalink"`
	Designer  struct {
		Name string `json:"name"`
	} `json:"designer"`
}

type patternsPage struct {
	Patterns  []patternRecord `json:"patterns"`
	Paginator paginator       `json:"paginator"`
}

type patternDetailResponse struct {
	Pattern *struct {
		patternRecord
		Price    *float64 `json:"price"`
		Currency string   `json:"currency"`
		Packs    []struct {
			YarnID *int64 `json:"yarn_id"`
		} `json:"packs"`
		Categories []struct {
			Name string `json:"name"`
		} `json:"pattern_categories"`
	} `json:"pattern"`
}

// SearchPatterns queries pattern search and follows pagination up to
// maxPages pages (0 means all pages). An empty result is not an error.
func (c *Client) SearchPatterns(ctx context.Context, query string, maxPages int) ([]Pattern, error) {
	var out []Pattern
	for page := 1; ; page++ {
		var resp patternsPage
		if err := c.get(ctx, c.searchURL("/patterns/search.json", query, page), &resp); err != nil {
			return nil, fmt.Errorf("search patterns %q: %w", query, err)
		}
		for _, r := range resp.Patterns {
			p, err := toPattern(r)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		if done(page, resp.Paginator.PageCount, maxPages) {
			return out, nil
		}
	}
}

// SearchPatternsByDesigner returns the patterns attributed to the given
// designer, matching names case-insensitively. Zero matches is not an
// error; callers report it as "no results".
func (c *Client) SearchPatternsByDesigner(ctx context.Context, designer string, maxPages int) ([]Pattern, error) {
	patterns, err := c.SearchPatterns(ctx, designer, maxPages)
	if err != nil {
		return nil, err
	}
	var out []Pattern
	for _, p := range patterns {
		if strings.EqualFold(strings.TrimSpace(p.Designer), strings.TrimSpace(designer)) {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetPattern fetches full pattern data: price, categories, and recommended
// yarn IDs.
func (c *Client) GetPattern(ctx context.Context, id int64) (*PatternDetail, error) {
	var resp patternDetailResponse
	url := fmt.Sprintf("%s/patterns/%d.json", c.baseURL, id)
	if err := c.get(ctx, url, &resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: pattern %d", err, id)
		}
		return nil, err
	}
	if resp.Pattern == nil {
		return nil, fmt.Errorf("%w: missing pattern object", ErrMalformed)
	}

	p, err := toPattern(resp.Pattern.patternRecord)
	if err != nil {
		return nil, err
	}
	detail := &PatternDetail{
		Pattern:  p,
		Price:    resp.Pattern.Price,
		Currency: resp.Pattern.Currency,
	}
	for _, pack := range resp.Pattern.Packs {
		if pack.YarnID != nil {
			detail.YarnIDs = append(detail.YarnIDs, *pack.YarnID)
		}
	}
	for _, cat := range resp.Pattern.Categories {
		if cat.Name != "" {
			detail.Categories = append(detail.Categories, cat.Name)
		}
	}
	return detail, nil
}

func toPattern(r patternRecord) (Pattern, error) {
	if r.ID == 0 || r.Name == "" {
		return Pattern{}, fmt.Errorf("%w: pattern record missing id or name", ErrMalformed)
	}
	return Pattern{
		ID:        r.ID,
		Name:      strings.TrimSpace(r.Name),
		Free:      r.Free,
		Permalink: r.Permalink,
		Designer:  strings.TrimSpace(r.Designer.Name),
	}, nil
}

// done reports whether pagination should stop after the given page.
func done(page, pageCount, maxPages int) bool {
	if maxPages > 0 && page >= maxPages {
		return true
	}
	return page >= pageCount || pageCount == 0
}
