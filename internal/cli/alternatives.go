package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/fiberarts/fiberfind/pkg/errors"
	"github.com/fiberarts/fiberfind/pkg/ravelry"
	"github.com/fiberarts/fiberfind/pkg/yarnstats"
)

// alternativesCommand creates the substitute-yarn command.
func (c *CLI) alternativesCommand() *cobra.Command {
	var (
		maxPages int
		refresh  bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "alternatives <pattern-id|pattern-name>",
		Short: "Suggest substitute yarns for a pattern",
		Long: `Suggest substitute yarns for a pattern.

The pattern's recommended yarns set the bar: a yarn recommended by
another pattern from the same designer qualifies as a substitute when
its main fiber and weight both match one of them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newRavelry(cmd.Context(), refresh, noCache)
			if err != nil {
				return err
			}
			return c.runAlternatives(cmd.Context(), client, args[0], maxPages)
		},
	}

	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "limit search pagination (0 = all pages)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached API responses")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runAlternatives(ctx context.Context, client *ravelry.Client, arg string, maxPages int) error {
	target, err := resolvePattern(ctx, client, arg, maxPages)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, fmt.Sprintf("Scanning %s's other patterns...", target.Designer))
	spinner.Start()
	result, err := yarnstats.FindAlternatives(ctx, client, target.ID, maxPages)
	if err != nil {
		spinner.StopWithError("Alternative search failed")
		return wrapAPIError(err, apperrors.ErrCodePatternNotFound, "alternatives for pattern %d", target.ID)
	}
	spinner.Stop()

	fmt.Println(StyleTitle.Render(result.Pattern.Name) + StyleDim.Render(" by "+result.Pattern.Designer))

	if len(result.Recommended) == 0 {
		printInfo("No recommended yarns listed for this pattern")
		return nil
	}

	printInfo("Recommended yarns")
	for _, y := range result.Recommended {
		detail := strings.TrimSpace(y.Weight)
		if main := y.MainFiber(); main != "" {
			detail += "  " + main
		}
		fmt.Println("  " + StyleValue.Render(y.Label()) + "  " + StyleDim.Render(strings.TrimSpace(detail)))
	}

	printNewline()
	if len(result.Substitutes) == 0 {
		printInfo("No alternative yarns found in %s's other patterns", result.Pattern.Designer)
		return nil
	}
	printInfo("Alternative yarns from %s's other patterns", result.Pattern.Designer)
	for _, y := range result.Substitutes {
		fmt.Println("  " + StyleValue.Render(y.Label()) + "  " + StyleDim.Render(y.Weight))
	}
	return nil
}
