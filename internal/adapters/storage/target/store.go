package target

import "context"

// Store persists the month-to-attendance-target map as a whole snapshot.
type Store interface {
	Load(ctx context.Context) (map[string]int, error)
	Save(ctx context.Context, targets map[string]int) error
}
