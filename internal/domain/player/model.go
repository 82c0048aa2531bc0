package player

import (
	"errors"
	"strings"

	"courtside/internal/domain/session"
)

// Domain errors
var (
	ErrEmptyName       = errors.New("player name cannot be empty")
	ErrNegativeLevel   = errors.New("level cannot be negative")
	ErrNegativeCredits = errors.New("makeup credits cannot be negative")
	ErrNoCredits       = errors.New("no makeup credits available")
)

// DefaultSlot is a player's standing recurring enrollment pattern. It
// describes which sessions the player routinely attends; it is matched
// dynamically against session date/time/coach, never stored as a relation.
type DefaultSlot struct {
	Weekday string        `json:"weekday"` // English day name, e.g. "Wednesday"
	Time    string        `json:"time"`    // HH:MM format
	Coach   session.Coach `json:"coach"`
}

// Matches reports whether a session occurrence identified by weekday, time
// and coach falls on this slot. The no-coach value only matches a session
// with no coach.
func (d DefaultSlot) Matches(weekday, timeStr string, coach session.Coach) bool {
	return d.Weekday == weekday && d.Time == timeStr && d.Coach == coach
}

// Stats is the per-player attendance counter record. Both counters are
// floored at zero on every decrement.
type Stats struct {
	ClassesAttended int `json:"classes_attended"`
	MakeupsUsed     int `json:"makeups_used"`
}

// HistoryEntry records one attended session. The history log is
// append-only; duplicate entries for the same session are suppressed.
type HistoryEntry struct {
	Date      string        `json:"date"`
	Time      string        `json:"time"`
	SessionID string        `json:"class_id"`
	Coach     session.Coach `json:"coach"`
}

// Player holds state for a rostered player.
type Player struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Level         int            `json:"level"` // lower = less skilled
	DefaultSlots  []DefaultSlot  `json:"default_days"`
	MakeupCredits int            `json:"makeup_credits"`
	Stats         Stats          `json:"stats"`
	History       []HistoryEntry `json:"attendance_history,omitempty"`
}

// Validate checks if the Player has valid data.
// PRE: Player struct is populated
// POST: Returns nil if valid, error otherwise
// INVARIANT: MakeupCredits never goes negative
func (p *Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Level < 0 {
		return ErrNegativeLevel
	}
	if p.MakeupCredits < 0 {
		return ErrNegativeCredits
	}
	return nil
}

// HasDefaultSlot reports whether any of the player's default slots matches
// the given session occurrence.
func (p *Player) HasDefaultSlot(weekday, timeStr string, coach session.Coach) bool {
	for _, slot := range p.DefaultSlots {
		if slot.Matches(weekday, timeStr, coach) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy whose slot and history slices do not alias the
// receiver's.
func (p *Player) Clone() Player {
	out := *p
	out.DefaultSlots = append([]DefaultSlot(nil), p.DefaultSlots...)
	out.History = append([]HistoryEntry(nil), p.History...)
	return out
}

// AddCredit awards one makeup credit.
func (p *Player) AddCredit() {
	p.MakeupCredits++
}

// SpendCredit consumes one makeup credit.
// POST: Returns ErrNoCredits if the balance is zero; balance never goes
// negative
func (p *Player) SpendCredit() error {
	if p.MakeupCredits <= 0 {
		return ErrNoCredits
	}
	p.MakeupCredits--
	return nil
}

// RevokeCredit takes back one credit, flooring the balance at zero.
func (p *Player) RevokeCredit() {
	if p.MakeupCredits > 0 {
		p.MakeupCredits--
	}
}

// RecordAttended increments the attended counter.
func (p *Player) RecordAttended() {
	p.Stats.ClassesAttended++
}

// UnrecordAttended decrements the attended counter, floored at zero.
func (p *Player) UnrecordAttended() {
	if p.Stats.ClassesAttended > 0 {
		p.Stats.ClassesAttended--
	}
}

// RecordMakeupUsed increments the makeups-used counter.
func (p *Player) RecordMakeupUsed() {
	p.Stats.MakeupsUsed++
}

// UnrecordMakeupUsed decrements the makeups-used counter, floored at zero.
func (p *Player) UnrecordMakeupUsed() {
	if p.Stats.MakeupsUsed > 0 {
		p.Stats.MakeupsUsed--
	}
}

// AppendHistory appends an attendance-history entry, suppressing duplicates
// for the same session.
func (p *Player) AppendHistory(entry HistoryEntry) {
	for _, h := range p.History {
		if h == entry {
			return
		}
	}
	p.History = append(p.History, entry)
}

// RemoveHistory removes any history entry recorded for the given session
// occurrence.
func (p *Player) RemoveHistory(date, timeStr, sessionID string) {
	kept := p.History[:0]
	for _, h := range p.History {
		if h.Date == date && h.Time == timeStr && h.SessionID == sessionID {
			continue
		}
		kept = append(kept, h)
	}
	p.History = kept
}
