package scheduler

import (
	"context"
	"sort"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"courtside/internal/domain/session"
)

// MakeupOption is a bookable session annotated with the skill levels of the
// players currently on its roster.
type MakeupOption struct {
	session.Session
	CurrentLevels []int `json:"current_levels"`
}

// FindMakeupOptions returns the sessions the player may book as a makeup,
// sorted by (date, time). A session is eligible when it falls in the month
// filter (if given), has a free active slot, does not already hold the
// player, and contains no strictly higher-skilled peer. The rule is
// asymmetric on purpose: joining a class of lower-skilled players is
// allowed.
// POST: Returns ErrNotFound if the player does not exist
func (e *Engine) FindMakeupOptions(ctx context.Context, playerID, month string) ([]MakeupOption, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.findPlayer(playerID)
	if p == nil {
		return nil, crerr.Wrapf(ErrNotFound, "player %s", playerID)
	}

	levelByID := make(map[string]int, len(e.players))
	for i := range e.players {
		levelByID[e.players[i].ID] = e.players[i].Level
	}

	options := []MakeupOption{}
	for i := range e.sessions {
		s := &e.sessions[i]
		if month != "" && !strings.HasPrefix(s.Date, month) {
			continue
		}
		if s.ActiveCount() >= s.MaxStudents {
			continue
		}
		if s.Enrolled(playerID) {
			continue
		}

		eligible := true
		var levels []int
		for _, sid := range s.StudentIDs {
			level, ok := levelByID[sid]
			if !ok {
				continue
			}
			levels = append(levels, level)
			if level > p.Level {
				eligible = false
				break
			}
		}
		if eligible {
			options = append(options, MakeupOption{Session: s.Clone(), CurrentLevels: levels})
		}
	}

	sort.Slice(options, func(i, j int) bool {
		if options[i].Date != options[j].Date {
			return options[i].Date < options[j].Date
		}
		return options[i].Time < options[j].Time
	})
	return options, nil
}
