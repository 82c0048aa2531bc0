package scheduler

import (
	"context"
	"sort"
	"strings"

	"courtside/internal/domain/session"
)

// DefaultMonthlyTarget is the attendance target assumed for months without
// an explicit one.
const DefaultMonthlyTarget = 8

// PlayerMonthStats is one player's attendance-vs-target rollup for a month.
type PlayerMonthStats struct {
	ID              string `json:"student_id"`
	Name            string `json:"name"`
	Target          int    `json:"target"`
	Attended        int    `json:"attended"`
	Absences        int    `json:"absences"`
	RolloverCredits int    `json:"rollover_credits"`
	Achieved        bool   `json:"achieved"`
}

// Target returns the attendance target for a month, defaulting to 8.
func (e *Engine) Target(ctx context.Context, month string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.targetFor(month)
}

// targetFor reads the target map. Callers hold the engine lock.
func (e *Engine) targetFor(month string) int {
	if t, ok := e.targets[month]; ok {
		return t
	}
	return DefaultMonthlyTarget
}

// SetTarget records the attendance target for a month.
func (e *Engine) SetTarget(ctx context.Context, month string, target int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.targets[month] = target
	e.saveTargets(ctx)
}

// MonthStats computes one rollup per player for the month, sorted by
// player name. Attended and absence counts come from attendance entries on
// that month's sessions only; rollover credits are the player's current
// balance, not a historical reconstruction.
func (e *Engine) MonthStats(ctx context.Context, month string) []PlayerMonthStats {
	e.mu.Lock()
	defer e.mu.Unlock()

	var monthSessions []*session.Session
	for i := range e.sessions {
		if strings.HasPrefix(e.sessions[i].Date, month) {
			monthSessions = append(monthSessions, &e.sessions[i])
		}
	}
	target := e.targetFor(month)

	stats := make([]PlayerMonthStats, 0, len(e.players))
	for i := range e.players {
		p := &e.players[i]
		attended, absences := 0, 0
		for _, s := range monthSessions {
			switch s.Attendance[p.ID] {
			case session.StatusPresent:
				attended++
			case session.StatusAbsent:
				absences++
			}
		}
		stats = append(stats, PlayerMonthStats{
			ID:              p.ID,
			Name:            p.Name,
			Target:          target,
			Attended:        attended,
			Absences:        absences,
			RolloverCredits: p.MakeupCredits,
			Achieved:        attended >= target,
		})
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats
}
