package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-theft-auto/dockgui/internal/inifile"
)

func (c *CLI) newSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <layout.ini>",
		Short: "Store a layout file under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := inifile.Load(args[1])
			if err != nil {
				return err
			}
			if err := c.writeLayout(cmd.Context(), "", args[0], s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%d windows, %d nodes)\n", args[0], len(s.Windows), len(s.Nodes))
			return nil
		},
	}
}

func (c *CLI) newLoadCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "load <name>",
		Short: "Export a stored layout",
		Long:  `Export a stored layout to --output, or print it when no output is given.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			s, err := st.Load(ctx, args[0])
			if err != nil {
				return err
			}
			if output == "" {
				return inifile.Write(cmd.OutOrStdout(), s)
			}
			return inifile.Save(output, s)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the layout to this file")
	return cmd
}

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored layouts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			names, err := st.List(ctx)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func (c *CLI) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>...",
		Aliases: []string{"rm"},
		Short:   "Delete stored layouts",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			for _, name := range args {
				if err := st.Delete(ctx, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
