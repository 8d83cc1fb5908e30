package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/fiberarts/fiberfind/pkg/errors"
	"github.com/fiberarts/fiberfind/pkg/ravelry"
	"github.com/fiberarts/fiberfind/pkg/render"
	"github.com/fiberarts/fiberfind/pkg/yarnstats"
)

// designerCommand creates the designer yarn-ranking command.
func (c *CLI) designerCommand() *cobra.Command {
	var (
		topN     int
		maxPages int
		graphOut string
		refresh  bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "designer <name>",
		Short: "Rank a designer's most recommended yarns",
		Long: `Rank the yarns a designer recommends most across their patterns.

Every pattern attributed to the designer contributes its recommended
yarns; the ranking counts recommendations per yarn. Use --graph to save
the pattern-yarn graph as DOT, SVG, or PNG.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newRavelry(cmd.Context(), refresh, noCache)
			if err != nil {
				return err
			}
			designer := strings.Join(args, " ")
			return c.runDesigner(cmd.Context(), client, designer, topN, maxPages, graphOut)
		},
	}

	cmd.Flags().IntVar(&topN, "top", yarnstats.DefaultTopN, "number of yarns to show")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "limit search pagination (0 = all pages)")
	cmd.Flags().StringVarP(&graphOut, "graph", "g", "", "save the pattern-yarn graph (.dot, .svg, or .png)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached API responses")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runDesigner(ctx context.Context, client *ravelry.Client, designer string, topN, maxPages int, graphOut string) error {
	tracker := newProgress(loggerFromContext(ctx))
	spinner := newSpinner(ctx, fmt.Sprintf("Collecting patterns by %s...", designer))
	spinner.Start()

	report, err := yarnstats.DesignerYarns(ctx, client, designer, topN, maxPages)
	if err != nil {
		spinner.StopWithError("Designer lookup failed")
		return wrapAPIError(err, apperrors.ErrCodeDesignerNotFound, "designer %q", designer)
	}
	spinner.Stop()
	tracker.done(fmt.Sprintf("Aggregated %d patterns", report.Patterns))

	if report.Patterns == 0 {
		printInfo("No patterns found for designer %q", report.Designer)
		return nil
	}
	if len(report.Top) == 0 {
		printInfo("No recommended yarns found in %s's patterns", report.Designer)
		return nil
	}

	fmt.Println(StyleTitle.Render(fmt.Sprintf("Most recommended yarns by %s", report.Designer)))
	for i, yc := range report.Top {
		plural := "patterns"
		if yc.Count == 1 {
			plural = "pattern"
		}
		printRank(i+1, yc.Yarn.Label(), fmt.Sprintf("%d %s", yc.Count, plural))
	}

	if graphOut != "" {
		dot := report.Graph.ToDOT(fmt.Sprintf("Patterns and yarns by %s", report.Designer))
		if err := render.WriteFile(ctx, dot, graphOut); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "write graph %s", graphOut)
		}
		printNewline()
		printSuccess("Graph saved")
		printFile(graphOut)
	}
	return nil
}
