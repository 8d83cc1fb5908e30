package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/fiberarts/fiberfind/pkg/errors"
	"github.com/fiberarts/fiberfind/pkg/ravelry"
	"github.com/fiberarts/fiberfind/pkg/render"
	"github.com/fiberarts/fiberfind/pkg/shopgraph"
)

// defaultTopShops is how many central shops the ranking shows.
const defaultTopShops = 3

// centralCommand creates the shop-centrality command.
func (c *CLI) centralCommand() *cobra.Command {
	var (
		measureStr string
		radius     float64
		topN       int
		maxPages   int
		graphOut   string
		refresh    bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "central <city>",
		Short: "Rank the most central yarn shops near a city",
		Long: `Rank yarn shops near a city by graph centrality.

The city is geocoded, shops within the radius become graph nodes, and
shops within the radius of each other are connected by edges weighted
with great-circle distance in miles. Degree centrality is the default
measure; closeness weighs the actual distances. Use --graph to save the
shop graph as DOT, SVG, or PNG.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			measure, err := shopgraph.ParseMeasure(measureStr)
			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeInvalidMeasure, err, "measure %q", measureStr)
			}
			client, err := c.newRavelry(cmd.Context(), refresh, noCache)
			if err != nil {
				return err
			}
			city := strings.Join(args, " ")
			return c.runCentral(cmd.Context(), client, centralParams{
				city:     city,
				measure:  measure,
				radius:   radius,
				topN:     topN,
				maxPages: maxPages,
				graphOut: graphOut,
			})
		},
	}

	cmd.Flags().StringVarP(&measureStr, "measure", "m", "degree", "centrality measure: degree, closeness")
	cmd.Flags().Float64VarP(&radius, "radius", "r", shopgraph.DefaultRadiusMiles, "radius in miles around the city")
	cmd.Flags().IntVar(&topN, "top", defaultTopShops, "number of shops to show")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "limit search pagination (0 = all pages)")
	cmd.Flags().StringVarP(&graphOut, "graph", "g", "", "save the shop graph (.dot, .svg, or .png)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached API responses")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

type centralParams struct {
	city     string
	measure  shopgraph.Measure
	radius   float64
	topN     int
	maxPages int
	graphOut string
}

func (c *CLI) runCentral(ctx context.Context, client *ravelry.Client, p centralParams) error {
	logger := loggerFromContext(ctx)

	spinner := newSpinner(ctx, fmt.Sprintf("Geocoding %s...", p.city))
	spinner.Start()
	center, err := c.newGeocoder().Geocode(ctx, p.city)
	if err != nil {
		spinner.StopWithError("Geocoding failed")
		return wrapAPIError(err, apperrors.ErrCodeCityNotFound, "city %q", p.city)
	}
	spinner.Stop()
	logger.Debug("geocoded city", "city", p.city, "lat", center.Lat, "lon", center.Lon)

	spinner = newSpinner(ctx, "Searching yarn shops...")
	spinner.Start()
	records, err := client.SearchShops(ctx, p.city, p.maxPages)
	if err != nil {
		spinner.StopWithError("Shop search failed")
		return wrapAPIError(err, apperrors.ErrCodeNotFound, "shops near %q", p.city)
	}
	spinner.Stop()

	shops := shopgraph.FromShops(records, center, p.radius)
	if len(shops) == 0 {
		printInfo("There are no yarn shops within %.0f miles of %s", p.radius, strings.TrimSpace(p.city))
		return nil
	}

	g, err := shopgraph.Build(shops, p.radius)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "build shop graph")
	}
	logger.Debug("built shop graph", "shops", len(g.Shops), "edges", len(g.Edges))

	ranked := g.Rank(p.measure)
	topN := p.topN
	if topN <= 0 || topN > len(ranked) {
		topN = len(ranked)
	}

	fmt.Println(StyleTitle.Render(fmt.Sprintf("Most central yarn shops within %.0f miles of %s", p.radius, strings.TrimSpace(p.city))))
	for i, r := range ranked[:topN] {
		label := r.Shop.Name
		if r.Shop.City != "" {
			label += " (" + r.Shop.City + ")"
		}
		printRank(i+1, label, fmt.Sprintf("score %.3f", r.Score))
	}
	printDetail("%d shops, %d edges, %s centrality", len(g.Shops), len(g.Edges), p.measure)

	if p.graphOut != "" {
		dot := shopgraph.ToDOT(g, fmt.Sprintf("Yarn shops within %.0f miles of %s", p.radius, strings.TrimSpace(p.city)))
		if err := render.WriteFile(ctx, dot, p.graphOut); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "write graph %s", p.graphOut)
		}
		printNewline()
		printSuccess("Graph saved")
		printFile(p.graphOut)
	}
	return nil
}
