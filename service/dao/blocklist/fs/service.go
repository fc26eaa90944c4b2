package fs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/commander/service/dao/blocklist"
)

// Service persists the blocklist document at a single afs URL. Writes to
// local files are additionally guarded by a cross-process file lock.
type Service struct {
	URL    string
	format Format
	fs     afs.Service
	mu     sync.RWMutex
}

var _ blocklist.Store = (*Service)(nil)

// Load reads and decodes the document
func (s *Service) Load(ctx context.Context) (*blocklist.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exists, err := s.fs.Exists(ctx, s.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check if blocklist exists: %w", err)
	}
	if !exists {
		return nil, blocklist.ErrNotFound
	}
	data, err := s.fs.DownloadWithURL(ctx, s.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read blocklist %s: %w", s.URL, err)
	}
	return decode(s.format, data)
}

// Save encodes and rewrites the whole document
func (s *Service) Save(ctx context.Context, document *blocklist.Document) error {
	if document == nil {
		return fmt.Errorf("cannot save nil blocklist")
	}
	data, err := encode(s.format, document)
	if err != nil {
		return fmt.Errorf("failed to encode blocklist: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if unlock, err := s.lock(); err != nil {
		return err
	} else if unlock != nil {
		defer unlock()
	}
	if err = s.fs.Upload(ctx, s.URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save blocklist to %s: %w", s.URL, err)
	}
	return nil
}

func (s *Service) lock() (func(), error) {
	if url.Scheme(s.URL, file.Scheme) != file.Scheme {
		return nil, nil
	}
	location := url.Path(s.URL)
	if err := os.MkdirAll(filepath.Dir(location), file.DefaultDirOsMode); err != nil {
		return nil, fmt.Errorf("failed to create blocklist directory: %w", err)
	}
	fileLock := flock.New(location + ".lock")
	if err := fileLock.Lock(); err != nil {
		return nil, fmt.Errorf("failed to lock blocklist %s: %w", location, err)
	}
	return func() { _ = fileLock.Unlock() }, nil
}

// New creates a store for the supplied URL; plain paths are treated as local files
func New(URL string) (*Service, error) {
	if URL == "" {
		return nil, fmt.Errorf("blocklist URL cannot be empty")
	}
	URL = url.Normalize(URL, file.Scheme)
	return &Service{
		URL:    URL,
		format: FormatOf(URL),
		fs:     afs.New(),
	}, nil
}
