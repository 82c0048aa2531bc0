// Package scheduler owns the class-scheduling and enrollment engine: player
// and session collections, the makeup-credit economy, attendance marking,
// and monthly attendance rollups.
package scheduler

import (
	"context"
	"log/slog"
	"sync"

	"courtside/internal/domain/player"
	"courtside/internal/domain/session"
)

// PlayerStore persists the player collection as a whole.
type PlayerStore interface {
	Load(ctx context.Context) ([]player.Player, error)
	Save(ctx context.Context, players []player.Player) error
}

// SessionStore persists the session collection as a whole.
type SessionStore interface {
	Load(ctx context.Context) ([]session.Session, error)
	Save(ctx context.Context, sessions []session.Session) error
}

// TargetStore persists the month-to-target mapping as a whole.
type TargetStore interface {
	Load(ctx context.Context) (map[string]int, error)
	Save(ctx context.Context, targets map[string]int) error
}

// Deps holds the persistence dependencies for the engine.
type Deps struct {
	Players  PlayerStore
	Sessions SessionStore
	Targets  TargetStore
}

// Engine is the scheduling core. It owns the in-memory player and session
// collections and the monthly-target map, and snapshots them through the
// stores after every successful mutating operation.
//
// One mutex serializes all operations: attendance marking and roster
// removal need a consistent joint view of both collections, so readers and
// writers alike take the lock.
type Engine struct {
	mu       sync.Mutex
	players  []player.Player
	sessions []session.Session
	targets  map[string]int
	deps     Deps
}

// New loads all three collections and returns a ready engine.
// PRE: all three stores are non-nil
// POST: missing or corrupt snapshots have degraded to empty collections
func New(ctx context.Context, deps Deps) (*Engine, error) {
	players, err := deps.Players.Load(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := deps.Sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	targets, err := deps.Targets.Load(ctx)
	if err != nil {
		return nil, err
	}
	if targets == nil {
		targets = make(map[string]int)
	}
	return &Engine{
		players:  players,
		sessions: sessions,
		targets:  targets,
		deps:     deps,
	}, nil
}

// savePlayers snapshots the player collection. A failed save is logged and
// in-memory state is kept; the on-disk view catches up on the next
// successful save.
func (e *Engine) savePlayers(ctx context.Context) {
	if err := e.deps.Players.Save(ctx, e.players); err != nil {
		slog.Error("players_save_failed", "error", err.Error())
	}
}

func (e *Engine) saveSessions(ctx context.Context) {
	if err := e.deps.Sessions.Save(ctx, e.sessions); err != nil {
		slog.Error("sessions_save_failed", "error", err.Error())
	}
}

func (e *Engine) saveTargets(ctx context.Context) {
	if err := e.deps.Targets.Save(ctx, e.targets); err != nil {
		slog.Error("targets_save_failed", "error", err.Error())
	}
}

// findPlayer returns a pointer into the player collection, or nil.
// Callers hold the engine lock.
func (e *Engine) findPlayer(id string) *player.Player {
	for i := range e.players {
		if e.players[i].ID == id {
			return &e.players[i]
		}
	}
	return nil
}

// findSession returns a pointer into the session collection, or nil.
// Callers hold the engine lock.
func (e *Engine) findSession(id string) *session.Session {
	for i := range e.sessions {
		if e.sessions[i].ID == id {
			return &e.sessions[i]
		}
	}
	return nil
}

// isDefaultSession reports whether the session falls on one of the
// player's default slots. A session with an unparseable date is never a
// default slot, so removal from it refunds a credit.
func isDefaultSession(p *player.Player, s *session.Session) bool {
	weekday, ok := s.Weekday()
	if !ok {
		return false
	}
	return p.HasDefaultSlot(weekday, s.Time, s.Coach)
}
