// Package file implements the JSON-file snapshot store, the default
// persistence backend. The whole state lives in a single document; writes
// go through a temp file + rename so a crash never leaves a torn snapshot.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/acadbox/acadbox-engine/internal/domain/snapshot"
)

// SnapshotStore persists snapshots to one JSON file on disk.
type SnapshotStore struct {
	path string
}

// NewSnapshotStore creates a store writing to the given path. The parent
// directory is created if missing.
func NewSnapshotStore(path string) (*SnapshotStore, error) {
	if path == "" {
		return nil, errors.New("file: snapshot path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("file: create snapshot directory: %w", err)
		}
	}
	return &SnapshotStore{path: path}, nil
}

// Save writes the snapshot atomically: marshal, write a sibling temp file,
// rename over the target.
func (s *SnapshotStore) Save(ctx context.Context, snap *snapshot.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("file: marshal snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("file: write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("file: replace snapshot: %w", err)
	}
	return nil
}

// Load reads the stored snapshot. A missing or empty file reports
// snapshot.ErrEmpty so the caller can seed defaults.
func (s *SnapshotStore) Load(ctx context.Context) (*snapshot.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, snapshot.ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("file: read snapshot: %w", err)
	}
	if len(data) == 0 {
		return nil, snapshot.ErrEmpty
	}

	var snap snapshot.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("file: decode snapshot: %w", err)
	}
	return &snap, nil
}

// Close is a no-op; the store holds no open handles between calls.
func (s *SnapshotStore) Close() error {
	return nil
}
