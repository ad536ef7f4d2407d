// Package cli implements dockctl, a tool to inspect, build and store dock
// layouts outside of a running application.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-theft-auto/dockgui"
	"github.com/go-theft-auto/dockgui/internal/config"
	"github.com/go-theft-auto/dockgui/internal/inifile"
	"github.com/go-theft-auto/dockgui/internal/layoutstore"
)

// CLI holds state shared by all subcommands.
type CLI struct {
	Config config.Config
	Logger *slog.Logger

	configPath string
	verbose    bool
}

// NewRootCmd creates the dockctl root command.
func NewRootCmd(version string) *cobra.Command {
	c := &CLI{}

	rootCmd := &cobra.Command{
		Use:           "dockctl",
		Short:         "Inspect, build and store dockgui layouts",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			dockgui.SetVerbose(c.verbose || cfg.Verbose)
			level := slog.LevelInfo
			if c.verbose || cfg.Verbose {
				level = slog.LevelDebug
			}
			c.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (TOML)")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		c.newTreeCmd(),
		c.newPruneCmd(),
		c.newBuildCmd(),
		c.newSaveCmd(),
		c.newLoadCmd(),
		c.newListCmd(),
		c.newDeleteCmd(),
		c.newWatchCmd(),
		c.newSchemaCmd(),
	)
	return rootCmd
}

// Execute runs the root command and reports errors on stderr.
func Execute(version string) int {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dockctl:", err)
		return 1
	}
	return 0
}

// openStore opens the configured layout store.
func (c *CLI) openStore(ctx context.Context) (layoutstore.Store, error) {
	switch c.Config.Store {
	case config.StoreSQLite:
		return layoutstore.OpenSQLite(ctx, c.Config.Database)
	default:
		return layoutstore.NewDirStore(c.Config.LayoutDir)
	}
}

// newContext creates a docking context sized to the configured display.
func (c *CLI) newContext() *dockgui.Context {
	dc := dockgui.NewContext(
		dockgui.WithConfig(c.Config.Runtime),
		dockgui.WithLogger(c.Logger),
	)
	dc.DisplaySize = c.Config.Display
	return dc
}

// readLayout resolves arg as a layout file, falling back to a name in the
// layout store.
func (c *CLI) readLayout(ctx context.Context, arg string) (*dockgui.Settings, error) {
	s, err := inifile.Load(arg)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	st, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	s, err = st.Load(ctx, arg)
	if err != nil {
		return nil, fmt.Errorf("%s is neither a file nor a stored layout: %w", arg, err)
	}
	return s, nil
}

// writeLayout writes s to the file at out, or to the store under name when
// out is empty.
func (c *CLI) writeLayout(ctx context.Context, out, name string, s *dockgui.Settings) error {
	if out != "" {
		return inifile.Save(out, s)
	}
	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.Save(ctx, name, s)
}
