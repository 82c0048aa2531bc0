package scheduler

import (
	"context"
	"log/slog"

	crerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"courtside/internal/domain/player"
)

// AddPlayer creates a player with a zero credit balance and empty stats.
// PRE: name is non-empty, level >= 0
// POST: player is persisted and returned with its assigned id
func (e *Engine) AddPlayer(ctx context.Context, name string, level int, slots []player.DefaultSlot) (player.Player, error) {
	p := player.Player{
		ID:           uuid.New().String(),
		Name:         name,
		Level:        level,
		DefaultSlots: append([]player.DefaultSlot(nil), slots...),
	}
	if err := p.Validate(); err != nil {
		return player.Player{}, crerr.Wrap(ErrInvalidState, err.Error())
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.players = append(e.players, p)
	e.savePlayers(ctx)

	slog.Info("player_added", "player_id", p.ID, "name", p.Name, "level", p.Level)
	return p.Clone(), nil
}

// Players returns the full player collection.
func (e *Engine) Players(ctx context.Context) []player.Player {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]player.Player, 0, len(e.players))
	for i := range e.players {
		out = append(out, e.players[i].Clone())
	}
	return out
}

// PlayerByID returns one player.
// POST: Returns ErrNotFound if no player has that id
func (e *Engine) PlayerByID(ctx context.Context, id string) (player.Player, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.findPlayer(id)
	if p == nil {
		return player.Player{}, crerr.Wrapf(ErrNotFound, "player %s", id)
	}
	return p.Clone(), nil
}

// UpdatePlayerInput carries an optional-field patch for a player. Nil
// fields are left unchanged; a non-nil empty DefaultSlots replaces the
// slot list with an empty one.
type UpdatePlayerInput struct {
	Name          *string
	Level         *int
	DefaultSlots  []player.DefaultSlot
	SlotsSupplied bool
	MakeupCredits *int
}

// UpdatePlayer applies the patch. Removing a default-slot declaration does
// not retroactively unenroll the player from matching sessions.
// POST: Returns ErrNotFound if the player does not exist; ErrInvalidState
// on a negative credit balance
func (e *Engine) UpdatePlayer(ctx context.Context, id string, in UpdatePlayerInput) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.findPlayer(id)
	if p == nil {
		return crerr.Wrapf(ErrNotFound, "player %s", id)
	}
	if in.MakeupCredits != nil && *in.MakeupCredits < 0 {
		return crerr.Wrap(ErrInvalidState, player.ErrNegativeCredits.Error())
	}

	if in.Name != nil && *in.Name != "" {
		p.Name = *in.Name
	}
	if in.Level != nil {
		p.Level = *in.Level
	}
	if in.SlotsSupplied {
		p.DefaultSlots = append([]player.DefaultSlot(nil), in.DefaultSlots...)
	}
	if in.MakeupCredits != nil {
		p.MakeupCredits = *in.MakeupCredits
	}
	e.savePlayers(ctx)
	return nil
}

// DeletePlayer removes the player and cascades: the player leaves every
// session roster and attendance map.
// POST: Returns ErrNotFound if the player does not exist
func (e *Engine) DeletePlayer(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i := range e.players {
		if e.players[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return crerr.Wrapf(ErrNotFound, "player %s", id)
	}
	e.players = append(e.players[:idx], e.players[idx+1:]...)
	e.savePlayers(ctx)

	touched := false
	for i := range e.sessions {
		s := &e.sessions[i]
		if s.RemoveStudent(id) {
			touched = true
		} else if _, ok := s.Attendance[id]; ok {
			s.ClearStatus(id)
			touched = true
		}
	}
	if touched {
		e.saveSessions(ctx)
	}

	slog.Info("player_deleted", "player_id", id, "rosters_touched", touched)
	return nil
}
