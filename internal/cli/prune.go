package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func (c *CLI) newPruneCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "prune <layout.ini|name>",
		Short: "Drop node records that no window can use",
		Long: `Drop dock node records left behind by removed windows: empty leaves,
splits reduced to a single child and orphaned children. The layout is
rewritten in place unless --dry-run is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.readLayout(ctx, args[0])
			if err != nil {
				return err
			}
			before := len(s.Nodes)

			dc := c.newContext()
			dc.LoadSettings(s)
			pruned := dc.SaveSettings()
			removed := before - len(pruned.Nodes)
			c.Logger.Debug("prune", "layout", args[0], "before", before, "after", len(pruned.Nodes))

			out := cmd.OutOrStdout()
			if removed == 0 {
				fmt.Fprintf(out, "%s: nothing to prune\n", args[0])
				return nil
			}
			fmt.Fprintf(out, "%s: %d of %d node records removed\n", args[0], removed, before)
			if dryRun {
				return nil
			}
			file := ""
			if _, err := os.Stat(args[0]); err == nil {
				file = args[0]
			}
			return c.writeLayout(ctx, file, args[0], pruned)
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report without rewriting the layout")
	return cmd
}
