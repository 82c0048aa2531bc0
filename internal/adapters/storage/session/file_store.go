package session

import (
	"context"
	"log/slog"

	"courtside/internal/adapters/storage/snapshot"
	domain "courtside/internal/domain/session"
)

// FileStore implements Store over a JSON snapshot file.
type FileStore struct {
	path string
}

// NewFileStore creates a session store writing to the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the session snapshot.
// POST: A missing or corrupt file degrades to an empty collection; corrupt
// files are logged, never fatal
func (s *FileStore) Load(ctx context.Context) ([]domain.Session, error) {
	var sessions []domain.Session
	if _, err := snapshot.Load(s.path, &sessions); err != nil {
		slog.Error("sessions_snapshot_unreadable", "path", s.path, "error", err.Error())
		return []domain.Session{}, nil
	}
	if sessions == nil {
		sessions = []domain.Session{}
	}
	return sessions, nil
}

// Save atomically replaces the session snapshot.
func (s *FileStore) Save(ctx context.Context, sessions []domain.Session) error {
	return snapshot.Save(s.path, sessions)
}
