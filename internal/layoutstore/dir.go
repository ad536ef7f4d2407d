package layoutstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-theft-auto/dockgui"
	"github.com/go-theft-auto/dockgui/internal/inifile"
)

const layoutExt = ".ini"

// DirStore keeps one layout file per name in a directory.
type DirStore struct {
	dir string
}

// NewDirStore opens dir, creating it if needed.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create layout directory: %w", err)
	}
	return &DirStore{dir: dir}, nil
}

// Path returns the file backing name.
func (d *DirStore) Path(name string) string {
	return filepath.Join(d.dir, name+layoutExt)
}

func (d *DirStore) Save(_ context.Context, name string, s *dockgui.Settings) error {
	if err := checkName(name); err != nil {
		return err
	}
	return inifile.Save(d.Path(name), s)
}

func (d *DirStore) Load(_ context.Context, name string) (*dockgui.Settings, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	s, err := inifile.Load(d.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("layout %q: %w", name, dockgui.ErrLayoutNotFound)
	}
	return s, err
}

func (d *DirStore) List(context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), layoutExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), layoutExt))
	}
	slices.Sort(names)
	return names, nil
}

func (d *DirStore) Delete(_ context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	err := os.Remove(d.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("layout %q: %w", name, dockgui.ErrLayoutNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete layout: %w", err)
	}
	return nil
}

func (d *DirStore) Close() error { return nil }
