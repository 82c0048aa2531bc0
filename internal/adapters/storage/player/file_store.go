package player

import (
	"context"
	"log/slog"

	"courtside/internal/adapters/storage/snapshot"
	domain "courtside/internal/domain/player"
)

// FileStore implements Store over a JSON snapshot file.
type FileStore struct {
	path string
}

// NewFileStore creates a player store writing to the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the player snapshot.
// POST: A missing or corrupt file degrades to an empty collection; corrupt
// files are logged, never fatal
func (s *FileStore) Load(ctx context.Context) ([]domain.Player, error) {
	var players []domain.Player
	if _, err := snapshot.Load(s.path, &players); err != nil {
		slog.Error("players_snapshot_unreadable", "path", s.path, "error", err.Error())
		return []domain.Player{}, nil
	}
	if players == nil {
		players = []domain.Player{}
	}
	return players, nil
}

// Save atomically replaces the player snapshot.
func (s *FileStore) Save(ctx context.Context, players []domain.Player) error {
	return snapshot.Save(s.path, players)
}
