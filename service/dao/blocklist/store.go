// Package blocklist defines persistence of the blocked command document.
package blocklist

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no document has been persisted yet
var ErrNotFound = errors.New("blocklist: not found")

// Document is the persisted form of the blocked command set
type Document struct {
	BlockedCommands []string `json:"blockedCommands" yaml:"blockedCommands" toml:"blockedCommands"`
}

// Clone returns a deep copy
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	return &Document{BlockedCommands: append([]string(nil), d.BlockedCommands...)}
}

// Store reads and writes the blocked command document
type Store interface {
	Load(ctx context.Context) (*Document, error)

	Save(ctx context.Context, document *Document) error
}
