package scheduler

import (
	"context"
	"errors"
	"testing"

	"courtside/internal/domain/player"
	"courtside/internal/domain/session"
)

func TestAddPlayerRejectsInvalid(t *testing.T) {
	e := newTestEngine(t)

	if _, err := e.AddPlayer(context.Background(), "", 2, nil); !errors.Is(err, ErrInvalidState) {
		t.Errorf("AddPlayer with empty name: err = %v, want ErrInvalidState", err)
	}
	if _, err := e.AddPlayer(context.Background(), "Mia", -3, nil); !errors.Is(err, ErrInvalidState) {
		t.Errorf("AddPlayer with negative level: err = %v, want ErrInvalidState", err)
	}
}

func TestUpdatePlayerPatch(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	p := addTestPlayer(t, e, "Mia", 2, nil)

	name := "Mia L"
	level := 3
	credits := 5
	err := e.UpdatePlayer(ctx, p.ID, UpdatePlayerInput{Name: &name, Level: &level, MakeupCredits: &credits})
	if err != nil {
		t.Fatalf("UpdatePlayer: %v", err)
	}

	got := playerByID(t, e, p.ID)
	if got.Name != "Mia L" || got.Level != 3 || got.MakeupCredits != 5 {
		t.Errorf("after patch: %+v", got)
	}

	// Unsupplied fields stay put.
	if err := e.UpdatePlayer(ctx, p.ID, UpdatePlayerInput{}); err != nil {
		t.Fatalf("empty patch: %v", err)
	}
	got = playerByID(t, e, p.ID)
	if got.Name != "Mia L" || got.MakeupCredits != 5 {
		t.Errorf("empty patch changed fields: %+v", got)
	}

	negative := -1
	if err := e.UpdatePlayer(ctx, p.ID, UpdatePlayerInput{MakeupCredits: &negative}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("negative credits: err = %v, want ErrInvalidState", err)
	}

	if err := e.UpdatePlayer(ctx, "nope", UpdatePlayerInput{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown player: err = %v, want ErrNotFound", err)
	}
}

// TestRemovingDefaultSlotKeepsEnrollment locks in that dropping a
// default-slot declaration does not retroactively unenroll the player from
// sessions it had matched.
func TestRemovingDefaultSlotKeepsEnrollment(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	alice := session.NamedCoach("Alice")

	slot := player.DefaultSlot{Weekday: "Wednesday", Time: "10:00", Coach: alice}
	p := addTestPlayer(t, e, "Mia", 2, []player.DefaultSlot{slot})
	s := addTestSession(t, e, "2025-01-01", "10:00", nil, alice, 4)

	count, err := e.BatchEnroll(ctx, p.ID, "2025-01", "Wednesday", "10:00", alice)
	if err != nil || count != 1 {
		t.Fatalf("BatchEnroll = %d, %v, want 1, nil", count, err)
	}

	err = e.UpdatePlayer(ctx, p.ID, UpdatePlayerInput{SlotsSupplied: true, DefaultSlots: []player.DefaultSlot{}})
	if err != nil {
		t.Fatalf("UpdatePlayer: %v", err)
	}

	if got := sessionByID(t, e, s.ID); !got.Enrolled(p.ID) {
		t.Error("clearing default slots must not unenroll the player")
	}
	if got := playerByID(t, e, p.ID); len(got.DefaultSlots) != 0 {
		t.Errorf("DefaultSlots = %+v, want empty", got.DefaultSlots)
	}
}

// TestSaveFailureKeepsState verifies a failed snapshot write does not roll
// back the in-memory collection.
func TestSaveFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	store := &mockPlayerStore{failSave: true}
	e, err := New(ctx, Deps{
		Players:  store,
		Sessions: &mockSessionStore{},
		Targets:  &mockTargetStore{},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	p, err := e.AddPlayer(ctx, "Mia", 2, nil)
	if err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	if store.saves != 0 {
		t.Errorf("saves = %d, want 0", store.saves)
	}
	if _, err := e.PlayerByID(ctx, p.ID); err != nil {
		t.Errorf("player lost after failed save: %v", err)
	}
}

func TestDeletePlayerCascades(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	p := addTestPlayer(t, e, "Mia", 2, nil)
	other := addTestPlayer(t, e, "Noah", 2, nil)
	s := addTestSession(t, e, "2025-01-01", "10:00", []string{p.ID, other.ID}, session.NoCoach(), 4)

	if _, err := e.MarkAttendance(ctx, s.ID, p.ID, session.StatusPresent); err != nil {
		t.Fatalf("MarkAttendance: %v", err)
	}

	if err := e.DeletePlayer(ctx, p.ID); err != nil {
		t.Fatalf("DeletePlayer: %v", err)
	}

	got := sessionByID(t, e, s.ID)
	if got.Enrolled(p.ID) {
		t.Error("deleted player still on roster")
	}
	if _, ok := got.Attendance[p.ID]; ok {
		t.Error("deleted player still in attendance map")
	}
	if !got.Enrolled(other.ID) {
		t.Error("other player should be untouched")
	}

	if err := e.DeletePlayer(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
}
