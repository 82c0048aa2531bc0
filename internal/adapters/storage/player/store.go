package player

import (
	"context"

	domain "courtside/internal/domain/player"
)

// Store persists the player collection as a whole snapshot.
type Store interface {
	Load(ctx context.Context) ([]domain.Player, error)
	Save(ctx context.Context, players []domain.Player) error
}
