package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"courtside/internal/domain/calendar"
	"courtside/internal/domain/session"
)

// CreateSession creates a single session. The roster is copied, never
// aliased; a non-positive capacity falls back to the default of 4.
// PRE: date is YYYY-MM-DD, timeStr is HH:MM
// POST: session is persisted and returned with its assigned id
func (e *Engine) CreateSession(ctx context.Context, date, timeStr string, roster []string, coach session.Coach, capacity int) (session.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.appendSession(date, timeStr, roster, coach, capacity)
	e.saveSessions(ctx)
	return s.Clone(), nil
}

// appendSession builds and appends one session without persisting.
// Callers hold the engine lock.
func (e *Engine) appendSession(date, timeStr string, roster []string, coach session.Coach, capacity int) *session.Session {
	if capacity <= 0 {
		capacity = session.DefaultMaxStudents
	}
	s := session.Session{
		ID:          uuid.New().String(),
		Date:        date,
		Time:        timeStr,
		Coach:       coach,
		StudentIDs:  append([]string{}, roster...),
		MaxStudents: capacity,
	}
	e.sessions = append(e.sessions, s)
	return &e.sessions[len(e.sessions)-1]
}

// CreateSeries creates one session per occurrence of weekday in the month,
// each with the same roster, coach, and capacity. An unknown weekday or
// malformed month creates nothing and returns an empty result.
// POST: Returns the created sessions in date order
func (e *Engine) CreateSeries(ctx context.Context, month, weekday, timeStr string, roster []string, coach session.Coach, capacity int) ([]session.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	created := e.appendSeries(month, weekday, timeStr, roster, coach, capacity)
	if len(created) > 0 {
		e.saveSessions(ctx)
	}
	return created, nil
}

func (e *Engine) appendSeries(month, weekday, timeStr string, roster []string, coach session.Coach, capacity int) []session.Session {
	var created []session.Session
	for _, date := range calendar.ExpandMonth(month, weekday) {
		s := e.appendSession(date, timeStr, roster, coach, capacity)
		created = append(created, s.Clone())
	}
	return created
}

// UpdateSessionInput carries an optional-field patch for a session. Nil
// fields are left unchanged. Coach is a tri-state: nil leaves the coach
// alone, a pointer to the no-coach value clears it, a pointer to a named
// coach sets it.
type UpdateSessionInput struct {
	Date        *string
	Time        *string
	Coach       *session.Coach
	StudentIDs  []string
	IDsSupplied bool
	MaxStudents *int
}

// UpdateSession applies the patch; each supplied field replaces the prior
// value unconditionally.
// POST: Returns ErrNotFound if no session has that id
func (e *Engine) UpdateSession(ctx context.Context, id string, in UpdateSessionInput) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.findSession(id)
	if s == nil {
		return crerr.Wrapf(ErrNotFound, "class %s", id)
	}
	if in.Date != nil && *in.Date != "" {
		s.Date = *in.Date
	}
	if in.Time != nil && *in.Time != "" {
		s.Time = *in.Time
	}
	if in.Coach != nil {
		s.Coach = *in.Coach
	}
	if in.IDsSupplied {
		s.StudentIDs = append([]string{}, in.StudentIDs...)
	}
	if in.MaxStudents != nil {
		s.MaxStudents = *in.MaxStudents
	}
	e.saveSessions(ctx)
	return nil
}

// BatchEnroll enrolls the player into every session matching the
// (month, weekday, time, coach) pattern with a free active slot. Sessions
// at capacity are skipped silently; the returned count reports partial
// success.
// POST: Returns ErrNotFound if the player does not exist
func (e *Engine) BatchEnroll(ctx context.Context, playerID, month, weekday, timeStr string, coach session.Coach) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.findPlayer(playerID) == nil {
		return 0, crerr.Wrapf(ErrNotFound, "player %s", playerID)
	}

	count := 0
	for i := range e.sessions {
		s := &e.sessions[i]
		if !s.MatchesPattern(month, weekday, timeStr, coach) {
			continue
		}
		if s.Enrolled(playerID) {
			continue
		}
		if s.ActiveCount() >= s.MaxStudents {
			continue
		}
		s.Enroll(playerID)
		count++
	}
	if count > 0 {
		e.saveSessions(ctx)
	}
	slog.Info("batch_enroll", "player_id", playerID, "month", month, "weekday", weekday, "time", timeStr, "count", count)
	return count, nil
}

// BatchUnenroll removes the player from every matching session where they
// are enrolled, clearing any attendance entry.
// POST: Returns ErrNotFound if the player does not exist
func (e *Engine) BatchUnenroll(ctx context.Context, playerID, month, weekday, timeStr string, coach session.Coach) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.findPlayer(playerID) == nil {
		return 0, crerr.Wrapf(ErrNotFound, "player %s", playerID)
	}

	count := 0
	for i := range e.sessions {
		s := &e.sessions[i]
		if !s.MatchesPattern(month, weekday, timeStr, coach) {
			continue
		}
		if s.RemoveStudent(playerID) {
			count++
		}
	}
	if count > 0 {
		e.saveSessions(ctx)
	}
	return count, nil
}

// PropagateProperties copies the source session's time, coach, and
// capacity onto every other session in the same month and weekday whose
// current time equals matchTime. An empty matchTime targets the source's
// current time; passing the source's old time lets a caller retarget
// siblings after renaming the source.
// POST: Returns the number of siblings updated; the source is never
// counted. ErrNotFound if the source does not exist.
func (e *Engine) PropagateProperties(ctx context.Context, sourceID, matchTime string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	src := e.findSession(sourceID)
	if src == nil {
		return 0, crerr.Wrapf(ErrNotFound, "class %s", sourceID)
	}
	srcWeekday, ok := src.Weekday()
	if !ok {
		return 0, nil
	}
	srcMonth := src.Month()
	if matchTime == "" {
		matchTime = src.Time
	}

	count := 0
	for i := range e.sessions {
		s := &e.sessions[i]
		if s.ID == sourceID || s.Month() != srcMonth || s.Time != matchTime {
			continue
		}
		day, ok := s.Weekday()
		if !ok || day != srcWeekday {
			continue
		}
		s.Time = src.Time
		s.Coach = src.Coach
		s.MaxStudents = src.MaxStudents
		count++
	}
	if count > 0 {
		e.saveSessions(ctx)
	}
	return count, nil
}

// CopyMonthSchedule recreates the prior month's schedule structure in the
// target month: one empty-roster series per distinct (weekday, time, coach)
// triple, and the prior month's attendance target carried forward.
// Enrollments do not copy.
// POST: Returns a human-readable count message; ErrInvalidState if the
// prior month has no sessions
func (e *Engine) CopyMonthSchedule(ctx context.Context, targetMonth string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sourceMonth, err := calendar.PrevMonth(targetMonth)
	if err != nil {
		return "", crerr.Wrapf(ErrInvalidState, "invalid target month %q", targetMonth)
	}

	type pattern struct {
		weekday string
		time    string
		coach   session.Coach
	}
	seen := make(map[pattern]bool)
	var patterns []pattern
	for i := range e.sessions {
		s := &e.sessions[i]
		if !strings.HasPrefix(s.Date, sourceMonth) {
			continue
		}
		day, ok := s.Weekday()
		if !ok {
			continue
		}
		pat := pattern{weekday: day, time: s.Time, coach: s.Coach}
		if !seen[pat] {
			seen[pat] = true
			patterns = append(patterns, pat)
		}
	}
	if len(patterns) == 0 {
		return "", crerr.Wrapf(ErrInvalidState, "no classes found in previous month (%s)", sourceMonth)
	}

	e.targets[targetMonth] = e.targetFor(sourceMonth)
	e.saveTargets(ctx)

	// Deterministic creation order regardless of collection order.
	sort.Slice(patterns, func(i, j int) bool {
		a, b := patterns[i], patterns[j]
		if a.weekday != b.weekday {
			return a.weekday < b.weekday
		}
		if a.time != b.time {
			return a.time < b.time
		}
		return a.coach.String() < b.coach.String()
	})

	count := 0
	for _, pat := range patterns {
		created := e.appendSeries(targetMonth, pat.weekday, pat.time, nil, pat.coach, session.DefaultMaxStudents)
		count += len(created)
	}
	if count > 0 {
		e.saveSessions(ctx)
	}

	slog.Info("month_schedule_copied", "source", sourceMonth, "target", targetMonth, "created", count)
	return fmt.Sprintf("Successfully created %d classes from %s", count, sourceMonth), nil
}

// DeleteSession removes one session.
// POST: Returns ErrNotFound if no session has that id
func (e *Engine) DeleteSession(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.deleteSessions([]string{id}) == 0 {
		return crerr.Wrapf(ErrNotFound, "class %s", id)
	}
	e.saveSessions(ctx)
	return nil
}

// DeleteSessions removes every session whose id is in ids and returns the
// number removed.
func (e *Engine) DeleteSessions(ctx context.Context, ids []string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	count := e.deleteSessions(ids)
	if count > 0 {
		e.saveSessions(ctx)
	}
	return count
}

func (e *Engine) deleteSessions(ids []string) int {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := e.sessions[:0]
	count := 0
	for i := range e.sessions {
		if drop[e.sessions[i].ID] {
			count++
			continue
		}
		kept = append(kept, e.sessions[i])
	}
	e.sessions = kept
	return count
}

// Sessions returns sessions sorted by (date, time), filtered to the given
// YYYY-MM month when one is supplied.
func (e *Engine) Sessions(ctx context.Context, month string) []session.Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]session.Session, 0, len(e.sessions))
	for i := range e.sessions {
		if month != "" && !strings.HasPrefix(e.sessions[i].Date, month) {
			continue
		}
		out = append(out, e.sessions[i].Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out
}
