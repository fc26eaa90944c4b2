package memory

import (
	"context"
	"sync"

	"github.com/viant/commander/service/dao/blocklist"
)

// Service keeps the blocklist document in memory. Load and Save work with
// copies so callers never share slices with the store.
type Service struct {
	document *blocklist.Document
	mux      sync.RWMutex
}

var _ blocklist.Store = (*Service)(nil)

func (s *Service) Load(_ context.Context) (*blocklist.Document, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	if s.document == nil {
		return nil, blocklist.ErrNotFound
	}
	return s.document.Clone(), nil
}

func (s *Service) Save(_ context.Context, document *blocklist.Document) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.document = document.Clone()
	return nil
}

// New creates a memory store, optionally seeded with commands
func New(commands ...string) *Service {
	ret := &Service{}
	if len(commands) > 0 {
		ret.document = &blocklist.Document{BlockedCommands: append([]string(nil), commands...)}
	}
	return ret
}
