// Package layoutstore keeps named dock layouts, either as a directory of
// layout files or as rows of a SQLite database.
package layoutstore

import (
	"context"
	"fmt"
	"regexp"

	"github.com/go-theft-auto/dockgui"
)

// Store persists named layouts.
type Store interface {
	Save(ctx context.Context, name string, s *dockgui.Settings) error
	// Load returns dockgui.ErrLayoutNotFound for unknown names.
	Load(ctx context.Context, name string) (*dockgui.Settings, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// checkName rejects names that could escape a directory store or collide
// with its temp files.
func checkName(name string) error {
	if !validName.MatchString(name) || len(name) > 128 {
		return fmt.Errorf("invalid layout name %q", name)
	}
	return nil
}
