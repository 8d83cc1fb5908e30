package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/fiberarts/fiberfind/pkg/errors"
	"github.com/fiberarts/fiberfind/pkg/ravelry"
)

// shopsCommand creates the shop listing command.
func (c *CLI) shopsCommand() *cobra.Command {
	var (
		maxPages int
		refresh  bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "shops <city>",
		Short: "List yarn shops located in a city",
		Long: `List the yarn shops Ravelry knows in a city.

The city match is exact (case-insensitive); use 'central' for a radius
search around a city with centrality ranking.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newRavelry(cmd.Context(), refresh, noCache)
			if err != nil {
				return err
			}
			city := strings.Join(args, " ")
			return c.runShops(cmd.Context(), client, city, maxPages)
		},
	}

	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "limit search pagination (0 = all pages)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached API responses")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runShops(ctx context.Context, client *ravelry.Client, city string, maxPages int) error {
	spinner := newSpinner(ctx, fmt.Sprintf("Searching shops in %s...", city))
	spinner.Start()

	shops, err := client.SearchShops(ctx, city, maxPages)
	if err != nil {
		spinner.StopWithError("Shop search failed")
		return wrapAPIError(err, apperrors.ErrCodeNotFound, "shops in %q", city)
	}
	spinner.Stop()

	inCity := ravelry.ShopsInCity(shops, city)
	if len(inCity) == 0 {
		printInfo("No yarn shops found in %s", city)
		return nil
	}

	fmt.Println(StyleTitle.Render(fmt.Sprintf("Yarn shops in %s", strings.TrimSpace(city))))
	for _, s := range inCity {
		detail := fmt.Sprintf("id %d", s.ID)
		if _, ok := s.Coord(); !ok {
			detail += "  no coordinates"
		}
		fmt.Println("  " + StyleValue.Render(s.Name) + "  " + StyleDim.Render(detail))
	}
	printDetail("%d shops", len(inCity))
	return nil
}
