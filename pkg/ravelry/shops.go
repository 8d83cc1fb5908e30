package ravelry

import (
	"context"
	"fmt"
	"strings"
)

type shopRecord struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	City      string   `json:"city"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type shopsPage struct {
	Shops     []shopRecord `json:"shops"`
	Paginator paginator    `json:"paginator"`
}

// SearchShops queries shop search and follows pagination up to maxPages
// pages (0 means all pages). Shops without coordinates are kept; callers
// that need geometry filter via [Shop.Coord].
func (c *Client) SearchShops(ctx context.Context, query string, maxPages int) ([]Shop, error) {
	var out []Shop
	for page := 1; ; page++ {
		var resp shopsPage
		if err := c.get(ctx, c.searchURL("/shops/search.json", query, page), &resp); err != nil {
			return nil, fmt.Errorf("search shops %q: %w", query, err)
		}
		for _, r := range resp.Shops {
			if r.ID == 0 || r.Name == "" {
				return nil, fmt.Errorf("%w: shop record missing id or name", ErrMalformed)
			}
			out = append(out, Shop{
				ID:        r.ID,
				Name:      strings.TrimSpace(r.Name),
				City:      strings.TrimSpace(r.City),
				Latitude:  r.Latitude,
				Longitude: r.Longitude,
			})
		}
		if done(page, resp.Paginator.PageCount, maxPages) {
			return out, nil
		}
	}
}

// ShopsInCity filters shops whose city matches, case-insensitively.
func ShopsInCity(shops []Shop, city string) []Shop {
	city = strings.TrimSpace(city)
	var out []Shop
	for _, s := range shops {
		if strings.EqualFold(s.City, city) {
			out = append(out, s)
		}
	}
	return out
}
