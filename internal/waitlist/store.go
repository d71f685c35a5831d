package waitlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"waitly/pkg/logger"
)

// Store loads and persists the waitlist state. Load never fails the caller:
// missing, unreadable, or malformed persisted state yields the default.
// Stores do not lock; the service serializes every load-decide-save cycle.
type Store interface {
	Load(ctx context.Context) *State
	Save(ctx context.Context, state *State) error
}

// FileStore persists the state as a single JSON document on disk. Writes
// overwrite the whole file and are not atomic; the single-writer lock in
// the service is what keeps the document consistent.
type FileStore struct {
	path       string
	defaultCap int
	log        *logger.Logger
}

// NewFileStore creates a file-backed store
func NewFileStore(path string, defaultCap int, log *logger.Logger) *FileStore {
	return &FileStore{
		path:       path,
		defaultCap: defaultCap,
		log:        log,
	}
}

// Load reads the persisted state, upgrading legacy payloads and falling
// back to the default state on any error.
func (s *FileStore) Load(ctx context.Context) *State {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.WarnContext(ctx, "state file unreadable, using defaults",
				slog.String("path", s.path),
				slog.String("error", err.Error()),
			)
		}
		return defaultState(s.defaultCap)
	}
	return decodeState(raw, s.defaultCap)
}

// Save overwrites the persisted representation with the three-field schema
func (s *FileStore) Save(ctx context.Context, state *State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write state file %s: %w", s.path, err)
	}
	return nil
}

// Ping reports whether the state file's directory is reachable
func (s *FileStore) Ping(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("state directory %s unavailable: %w", dir, err)
	}
	return nil
}
