package ravelry

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type yarnRecord struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Company string `json:"yarn_company_name"`
	Weight  *struct {
		Name string `json:"name"`
	} `json:"yarn_weight"`
}

type yarnsPage struct {
	Yarns     []yarnRecord `json:"yarns"`
	Paginator paginator    `json:"paginator"`
}

type yarnDetailResponse struct {
	Yarn *struct {
		yarnRecord
		Fibers []struct {
			Percentage *float64 `json:"percentage"`
			FiberType  *struct {
				Name string `json:"name"`
			} `json:"fiber_type"`
		} `json:"yarn_fibers"`
	} `json:"yarn"`
}

// SearchYarns queries yarn search and follows pagination up to maxPages
// pages (0 means all pages).
func (c *Client) SearchYarns(ctx context.Context, query string, maxPages int) ([]Yarn, error) {
	var out []Yarn
	for page := 1; ; page++ {
		var resp yarnsPage
		if err := c.get(ctx, c.searchURL("/yarns/search.json", query, page), &resp); err != nil {
			return nil, fmt.Errorf("search yarns %q: %w", query, err)
		}
		for _, r := range resp.Yarns {
			y, err := toYarn(r)
			if err != nil {
				return nil, err
			}
			out = append(out, y)
		}
		if done(page, resp.Paginator.PageCount, maxPages) {
			return out, nil
		}
	}
}

// GetYarn fetches full yarn data including fiber content.
func (c *Client) GetYarn(ctx context.Context, id int64) (*YarnDetail, error) {
	var resp yarnDetailResponse
	url := fmt.Sprintf("%s/yarns/%d.json", c.baseURL, id)
	if err := c.get(ctx, url, &resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: yarn %d", err, id)
		}
		return nil, err
	}
	if resp.Yarn == nil {
		return nil, fmt.Errorf("%w: missing yarn object", ErrMalformed)
	}

	y, err := toYarn(resp.Yarn.yarnRecord)
	if err != nil {
		return nil, err
	}
	detail := &YarnDetail{Yarn: y}
	for _, f := range resp.Yarn.Fibers {
		fiber := Fiber{Percentage: f.Percentage}
		if f.FiberType != nil {
			fiber.Name = f.FiberType.Name
		}
		detail.Fibers = append(detail.Fibers, fiber)
	}
	return detail, nil
}

func toYarn(r yarnRecord) (Yarn, error) {
	if r.ID == 0 || r.Name == "" {
		return Yarn{}, fmt.Errorf("%w: yarn record missing id or name", ErrMalformed)
	}
	y := Yarn{
		ID:    r.ID,
		Name:  strings.TrimSpace(r.Name),
		Brand: strings.TrimSpace(r.Company),
	}
	if r.Weight != nil {
		y.Weight = r.Weight.Name
	}
	return y, nil
}
