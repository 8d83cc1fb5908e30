package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fiberarts/fiberfind/pkg/ravelry"
)

// yarnCommand creates the yarn lookup command.
func (c *CLI) yarnCommand() *cobra.Command {
	var (
		maxPages int
		refresh  bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "yarn <id|name>",
		Short: "Look up a yarn by ID or name",
		Long: `Look up a yarn by Ravelry ID or by name.

Name searches that match several yarns open an interactive list. The
output includes brand, weight, and fiber content.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newRavelry(cmd.Context(), refresh, noCache)
			if err != nil {
				return err
			}
			return c.runYarn(cmd.Context(), client, args[0], maxPages)
		},
	}

	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "limit search pagination (0 = all pages)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached API responses")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runYarn(ctx context.Context, client *ravelry.Client, arg string, maxPages int) error {
	spinner := newSpinner(ctx, "Looking up yarn...")
	spinner.Start()

	detail, err := resolveYarn(ctx, client, arg, maxPages)
	if err != nil {
		spinner.StopWithError("Yarn lookup failed")
		return err
	}
	spinner.Stop()

	fmt.Println(StyleTitle.Render(detail.Label()))
	printKeyValue("ID", fmt.Sprintf("%d", detail.ID))
	printKeyValue("Brand", detail.Brand)
	printKeyValue("Weight", detail.Weight)
	if content := detail.FiberContent(); len(content) > 0 {
		printKeyValue("Fibers", strings.Join(content, ", "))
		if main := detail.MainFiber(); main != "" {
			printKeyValue("Main fiber", main)
		}
	} else {
		printDetail("No fiber content listed")
	}
	return nil
}
