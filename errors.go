package dockgui

import "errors"

var (
	// ErrNodeNotFound is returned when a dock node id does not resolve.
	ErrNodeNotFound = errors.New("dock node not found")

	// ErrLayoutNotFound is returned by layout stores for unknown layout names.
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrInvalidRecord is returned for settings records that cannot form a tree.
	ErrInvalidRecord = errors.New("invalid settings record")
)
