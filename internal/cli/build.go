package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-theft-auto/dockgui/internal/inifile"
	"github.com/go-theft-auto/dockgui/internal/script"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	var (
		output string
		name   string
	)

	cmd := &cobra.Command{
		Use:   "build <layout.star>",
		Short: "Build a layout from a Starlark script",
		Long: `Build a layout from a Starlark script. The script drives the dock builder
with dockspace, split, dock and the other builtins; the resulting layout is
written to --output, stored under --name, or printed.

Example script:

  root = dockspace("Main", size=(1280, 720))
  left, rest = split(root, "left", 0.25)
  dock("Inspector", left)
  dock("Scene", rest)
  finish(root)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" && name != "" {
				return errors.New("--output and --name are mutually exclusive")
			}
			dc := c.newContext()
			env := script.New(dc)
			env.SetPrint(func(msg string) { fmt.Fprintln(cmd.ErrOrStderr(), msg) })
			if err := env.Exec(cmd.Context(), args[0], nil); err != nil {
				return err
			}
			s := dc.SaveSettings()
			if err := s.Validate(); err != nil {
				return fmt.Errorf("script produced an invalid layout: %w", err)
			}
			if output == "" && name == "" {
				return inifile.Write(cmd.OutOrStdout(), s)
			}
			return c.writeLayout(cmd.Context(), output, name, s)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the layout to this file")
	cmd.Flags().StringVar(&name, "name", "", "store the layout under this name")
	return cmd
}
