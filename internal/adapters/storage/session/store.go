package session

import (
	"context"

	domain "courtside/internal/domain/session"
)

// Store persists the session collection as a whole snapshot.
type Store interface {
	Load(ctx context.Context) ([]domain.Session, error)
	Save(ctx context.Context, sessions []domain.Session) error
}
