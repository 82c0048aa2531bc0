package scheduler

import (
	"context"
	"errors"
	"testing"

	"courtside/internal/domain/player"
	"courtside/internal/domain/session"
)

// mockPlayerStore implements PlayerStore for testing.
type mockPlayerStore struct {
	players  []player.Player
	saves    int
	failSave bool
}

func (m *mockPlayerStore) Load(_ context.Context) ([]player.Player, error) {
	return m.players, nil
}

func (m *mockPlayerStore) Save(_ context.Context, players []player.Player) error {
	if m.failSave {
		return errors.New("disk full")
	}
	m.players = players
	m.saves++
	return nil
}

// mockSessionStore implements SessionStore for testing.
type mockSessionStore struct {
	sessions []session.Session
	saves    int
}

func (m *mockSessionStore) Load(_ context.Context) ([]session.Session, error) {
	return m.sessions, nil
}

func (m *mockSessionStore) Save(_ context.Context, sessions []session.Session) error {
	m.sessions = sessions
	m.saves++
	return nil
}

// mockTargetStore implements TargetStore for testing.
type mockTargetStore struct {
	targets map[string]int
	saves   int
}

func (m *mockTargetStore) Load(_ context.Context) (map[string]int, error) {
	return m.targets, nil
}

func (m *mockTargetStore) Save(_ context.Context, targets map[string]int) error {
	m.targets = targets
	m.saves++
	return nil
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(context.Background(), Deps{
		Players:  &mockPlayerStore{},
		Sessions: &mockSessionStore{},
		Targets:  &mockTargetStore{},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

// addTestPlayer seeds one player through the public API.
func addTestPlayer(t *testing.T, e *Engine, name string, level int, slots []player.DefaultSlot) player.Player {
	t.Helper()
	p, err := e.AddPlayer(context.Background(), name, level, slots)
	if err != nil {
		t.Fatalf("AddPlayer(%s): %v", name, err)
	}
	return p
}

// addTestSession seeds one session through the public API.
func addTestSession(t *testing.T, e *Engine, date, timeStr string, roster []string, coach session.Coach, capacity int) session.Session {
	t.Helper()
	s, err := e.CreateSession(context.Background(), date, timeStr, roster, coach, capacity)
	if err != nil {
		t.Fatalf("CreateSession(%s %s): %v", date, timeStr, err)
	}
	return s
}

// sessionByID reads one session back through the query API.
func sessionByID(t *testing.T, e *Engine, id string) session.Session {
	t.Helper()
	for _, s := range e.Sessions(context.Background(), "") {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("session %s not found", id)
	return session.Session{}
}

// playerByID reads one player back through the query API.
func playerByID(t *testing.T, e *Engine, id string) player.Player {
	t.Helper()
	p, err := e.PlayerByID(context.Background(), id)
	if err != nil {
		t.Fatalf("PlayerByID(%s): %v", id, err)
	}
	return p
}
