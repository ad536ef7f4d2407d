package cli

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/go-theft-auto/dockgui/internal/inifile"
)

// watchDebounce coalesces the burst of events an editor or an atomic
// rename produces for one save.
const watchDebounce = 100 * time.Millisecond

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <layout.ini>...",
		Short: "Re-validate layout files whenever they change",
		Long: `Watch layout files and report, on every change, whether they still form a
valid dock tree. Runs until interrupted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return c.watch(ctx, cmd.OutOrStdout(), args)
		},
	}
}

// watch validates files once, then again after each change, until ctx is
// done. Parent directories are watched so atomic saves are seen.
func (c *CLI) watch(ctx context.Context, out io.Writer, files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", f, err)
		}
		watched[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	for f := range watched {
		c.report(out, f)
	}

	changed := make(chan string)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(changed)
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !watched[filepath.Clean(ev.Name)] || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) {
					continue
				}
				select {
				case changed <- filepath.Clean(ev.Name):
				case <-ctx.Done():
					return nil
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				c.Logger.Warn("watch error", "err", err)
			}
		}
	})
	g.Go(func() error {
		pending := make(map[string]bool)
		timer := time.NewTimer(watchDebounce)
		timer.Stop()
		for {
			select {
			case f, ok := <-changed:
				if !ok {
					return nil
				}
				pending[f] = true
				timer.Reset(watchDebounce)
			case <-timer.C:
				for f := range pending {
					c.report(out, f)
				}
				clear(pending)
			}
		}
	})
	return g.Wait()
}

// report prints whether path holds a loadable layout, after the records
// the reader had to skip or repair.
func (c *CLI) report(out io.Writer, path string) {
	s, issues, err := inifile.ParseFile(path)
	for _, is := range issues {
		fmt.Fprintf(out, "%s: %v\n", path, is)
	}
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", path, err)
		return
	}
	dc := c.newContext()
	dc.LoadSettings(s)
	kept := len(dc.SaveSettings().Nodes)
	c.Logger.Debug("layout checked", "path", path, "nodes", len(s.Nodes), "usable", kept)
	fmt.Fprintf(out, "%s: ok (%d windows, %d nodes, %d usable)\n", path, len(s.Windows), len(s.Nodes), kept)
}
