package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	crerr "github.com/cockroachdb/errors"

	"courtside/internal/domain/player"
	"courtside/internal/domain/session"
)

// MarkAttendance drives the per-(player, session) attendance state machine.
// The old status's effects are reversed, then the new status's effects
// applied:
//
//	present: classes_attended +1, makeups_used +1 when the session is not
//	         one of the player's default slots, history entry appended
//	absent:  one makeup credit awarded
//	unset:   status cleared, no further effects
//
// Marking the current status again is a no-op. Stats accounting happens
// here, not at booking time, so a booked-but-never-attended makeup never
// inflates them.
// POST: Returns ErrNotFound if player or session is missing,
// ErrInvalidState if the player is not on the roster; both collections are
// persisted as a unit on success
func (e *Engine) MarkAttendance(ctx context.Context, sessionID, playerID string, status session.Status) (string, error) {
	if status != session.StatusUnset && status != session.StatusPresent && status != session.StatusAbsent {
		return "", crerr.Wrapf(ErrInvalidState, "unknown attendance status %q", status)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.findPlayer(playerID)
	if p == nil {
		return "", crerr.Wrapf(ErrNotFound, "player %s", playerID)
	}
	s := e.findSession(sessionID)
	if s == nil {
		return "", crerr.Wrapf(ErrNotFound, "class %s", sessionID)
	}
	if !s.Enrolled(playerID) {
		return "", crerr.Wrap(ErrInvalidState, "player not in class roster")
	}

	old := s.Attendance[playerID]
	if old == status {
		if status == session.StatusUnset {
			return "Attendance status cleared", nil
		}
		return fmt.Sprintf("Already marked as %s", status), nil
	}

	e.reverseStatus(p, s, old)

	var msg string
	switch status {
	case session.StatusUnset:
		s.ClearStatus(playerID)
		msg = "Attendance status cleared"
	case session.StatusAbsent:
		s.SetStatus(playerID, session.StatusAbsent)
		p.AddCredit()
		msg = "Marked absent, makeup added"
	case session.StatusPresent:
		s.SetStatus(playerID, session.StatusPresent)
		p.RecordAttended()
		if !isDefaultSession(p, s) {
			p.RecordMakeupUsed()
		}
		p.AppendHistory(player.HistoryEntry{
			Date:      s.Date,
			Time:      s.Time,
			SessionID: s.ID,
			Coach:     s.Coach,
		})
		msg = "Marked present"
	}

	e.saveSessions(ctx)
	e.savePlayers(ctx)

	slog.Info("attendance_marked", "class_id", sessionID, "player_id", playerID, "from", string(old), "to", string(status))
	return msg, nil
}

// reverseStatus undoes the side effects of a previously recorded status so
// a later re-mark applies them identically. Reversal is fully symmetric:
// present takes back the attended counter, the makeup-used counter when the
// session was not a default slot, and the history entry; absent takes back
// the awarded credit. Counters and credits floor at zero.
func (e *Engine) reverseStatus(p *player.Player, s *session.Session, old session.Status) {
	switch old {
	case session.StatusAbsent:
		p.RevokeCredit()
	case session.StatusPresent:
		p.UnrecordAttended()
		if !isDefaultSession(p, s) {
			p.UnrecordMakeupUsed()
		}
		p.RemoveHistory(s.Date, s.Time, s.ID)
	}
}

// MarkAbsent is the convenience form of MarkAttendance.
func (e *Engine) MarkAbsent(ctx context.Context, sessionID, playerID string) (string, error) {
	return e.MarkAttendance(ctx, sessionID, playerID, session.StatusAbsent)
}

// BookMakeup appends the player to the session roster, spending one makeup
// credit when useCredit is set. Attendance statistics are deliberately not
// touched here; they update on the later mark into present.
// POST: Returns ErrNotFound for a missing player or session;
// ErrInvalidState on zero credit balance, a full class, or an existing
// enrollment
func (e *Engine) BookMakeup(ctx context.Context, sessionID, playerID string, useCredit bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.findPlayer(playerID)
	if p == nil {
		return crerr.Wrapf(ErrNotFound, "player %s", playerID)
	}
	if useCredit && p.MakeupCredits <= 0 {
		return crerr.Wrap(ErrInvalidState, "no makeups available")
	}
	s := e.findSession(sessionID)
	if s == nil {
		return crerr.Wrapf(ErrNotFound, "class %s", sessionID)
	}
	if s.ActiveCount() >= s.MaxStudents {
		return crerr.Wrap(ErrInvalidState, "class is full")
	}
	if s.Enrolled(playerID) {
		return crerr.Wrap(ErrInvalidState, "player already in class")
	}

	s.Enroll(playerID)
	if useCredit {
		if err := p.SpendCredit(); err != nil {
			return crerr.Wrap(ErrInvalidState, err.Error())
		}
	}

	e.saveSessions(ctx)
	e.savePlayers(ctx)

	slog.Info("makeup_booked", "class_id", sessionID, "player_id", playerID, "use_credit", useCredit)
	return nil
}

// RemoveStudentFromClass removes the player from the roster and clears any
// attendance entry. Removal from a non-default (makeup or ad-hoc) slot
// always refunds a credit; removal from a default slot refunds only when
// awardCredit is set.
// POST: Returns ErrNotFound for a missing player or session;
// ErrInvalidState if the player was not on the roster; both collections
// are persisted as a unit on success
func (e *Engine) RemoveStudentFromClass(ctx context.Context, sessionID, playerID string, awardCredit bool) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.findPlayer(playerID)
	if p == nil {
		return "", crerr.Wrapf(ErrNotFound, "player %s", playerID)
	}
	s := e.findSession(sessionID)
	if s == nil {
		return "", crerr.Wrapf(ErrNotFound, "class %s", sessionID)
	}
	if !s.RemoveStudent(playerID) {
		return "", crerr.Wrap(ErrInvalidState, "player not in class")
	}

	var msg string
	if !isDefaultSession(p, s) || awardCredit {
		p.AddCredit()
		msg = "Player removed, credit refunded"
	} else {
		msg = "Player removed from default class"
	}

	e.saveSessions(ctx)
	e.savePlayers(ctx)

	slog.Info("student_removed", "class_id", sessionID, "player_id", playerID, "refunded", msg == "Player removed, credit refunded")
	return msg, nil
}
