package target

import (
	"context"
	"log/slog"

	"courtside/internal/adapters/storage/snapshot"
)

// FileStore implements Store over a JSON snapshot file.
type FileStore struct {
	path string
}

// NewFileStore creates a target store writing to the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the target snapshot.
// POST: A missing or corrupt file degrades to an empty map; corrupt files
// are logged, never fatal
func (s *FileStore) Load(ctx context.Context) (map[string]int, error) {
	var targets map[string]int
	if _, err := snapshot.Load(s.path, &targets); err != nil {
		slog.Error("targets_snapshot_unreadable", "path", s.path, "error", err.Error())
		return map[string]int{}, nil
	}
	if targets == nil {
		targets = map[string]int{}
	}
	return targets, nil
}

// Save atomically replaces the target snapshot.
func (s *FileStore) Save(ctx context.Context, targets map[string]int) error {
	return snapshot.Save(s.path, targets)
}
