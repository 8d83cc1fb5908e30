package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/fiberarts/fiberfind/pkg/errors"
	"github.com/fiberarts/fiberfind/pkg/ravelry"
)

// patternCommand creates the pattern lookup command.
func (c *CLI) patternCommand() *cobra.Command {
	var (
		maxPages int
		refresh  bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "pattern <id|name>",
		Short: "Look up a pattern by ID or name",
		Long: `Look up a pattern by Ravelry ID or by name.

Name searches that match several patterns open an interactive list.
The output includes designer, price, categories, the Ravelry link, and
the recommended yarns with their fiber content.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newRavelry(cmd.Context(), refresh, noCache)
			if err != nil {
				return err
			}
			return c.runPattern(cmd.Context(), client, args[0], maxPages)
		},
	}

	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "limit search pagination (0 = all pages)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached API responses")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runPattern(ctx context.Context, client *ravelry.Client, arg string, maxPages int) error {
	spinner := newSpinner(ctx, "Looking up pattern...")
	spinner.Start()

	detail, err := resolvePattern(ctx, client, arg, maxPages)
	if err != nil {
		spinner.StopWithError("Pattern lookup failed")
		return err
	}
	spinner.Stop()

	printPattern(detail)

	if len(detail.YarnIDs) == 0 {
		printDetail("No recommended yarns listed")
		return nil
	}

	printNewline()
	printInfo("Recommended yarns")
	for _, yarnID := range detail.YarnIDs {
		yarn, err := client.GetYarn(ctx, yarnID)
		if err != nil {
			if errors.Is(err, ravelry.ErrNotFound) {
				continue
			}
			return wrapAPIError(err, apperrors.ErrCodeYarnNotFound, "yarn %d", yarnID)
		}
		detailLine := yarn.Weight
		if content := yarn.FiberContent(); len(content) > 0 {
			detailLine += "  " + strings.Join(content, ", ")
		}
		fmt.Println("  " + StyleValue.Render(yarn.Label()) + "  " + StyleDim.Render(strings.TrimSpace(detailLine)))
	}
	return nil
}

func printPattern(p *ravelry.PatternDetail) {
	fmt.Println(StyleTitle.Render(p.Name))
	printKeyValue("ID", fmt.Sprintf("%d", p.ID))
	printKeyValue("Designer", p.Designer)
	printKeyValue("Price", p.PriceLabel())
	if len(p.Categories) > 0 {
		printKeyValue("Categories", strings.Join(p.Categories, ", "))
	}
	printKeyValue("Link", StyleLink.Render(p.Link()))
}
