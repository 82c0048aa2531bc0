package session

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// DefaultMaxStudents is the capacity applied when none is given.
const DefaultMaxStudents = 4

// Attendance status values. The zero value means no status has been
// recorded for the player in this session.
const (
	StatusUnset   Status = ""
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

// Status is a player's recorded attendance for one session.
type Status string

// Domain errors
var (
	ErrEmptyDate       = errors.New("date cannot be empty")
	ErrEmptyTime       = errors.New("time cannot be empty")
	ErrInvalidCapacity = errors.New("max students must be positive")
)

// Coach identifies who takes a session. A session with no assigned coach is
// a real, distinct state, not missing data: Named=false never equals any
// named coach. The JSON form is null for no coach, or the bare name string.
type Coach struct {
	Name  string
	Named bool
}

// NamedCoach returns a Coach for the given name.
func NamedCoach(name string) Coach {
	return Coach{Name: name, Named: true}
}

// NoCoach returns the absent-coach value.
func NoCoach() Coach {
	return Coach{}
}

// String renders the coach for display. The no-coach value renders as
// "No Coach", matching the label the original roster UI used.
func (c Coach) String() string {
	if !c.Named {
		return "No Coach"
	}
	return c.Name
}

// MarshalJSON encodes a named coach as its name and no coach as null.
func (c Coach) MarshalJSON() ([]byte, error) {
	if !c.Named {
		return []byte("null"), nil
	}
	return json.Marshal(c.Name)
}

// UnmarshalJSON decodes null as no coach and any string as a named coach.
func (c *Coach) UnmarshalJSON(data []byte) error {
	if strings.TrimSpace(string(data)) == "null" {
		*c = Coach{}
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*c = Coach{Name: name, Named: true}
	return nil
}

// Session represents one scheduled class occurrence.
type Session struct {
	ID          string            `json:"id"`
	Date        string            `json:"date"` // YYYY-MM-DD format
	Time        string            `json:"time"` // HH:MM format
	Coach       Coach             `json:"coach"`
	StudentIDs  []string          `json:"student_ids"`
	MaxStudents int               `json:"max_students"`
	Attendance  map[string]Status `json:"attendance,omitempty"`
}

// Validate checks if the Session has valid data.
// PRE: Session struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Session) Validate() error {
	if strings.TrimSpace(s.Date) == "" {
		return ErrEmptyDate
	}
	if strings.TrimSpace(s.Time) == "" {
		return ErrEmptyTime
	}
	if s.MaxStudents <= 0 {
		return ErrInvalidCapacity
	}
	return nil
}

// Weekday returns the English weekday name of the session date.
// PRE: Date is in YYYY-MM-DD format
// POST: Returns ("", false) if the date cannot be parsed
func (s *Session) Weekday() (string, bool) {
	t, err := time.Parse("2006-01-02", s.Date)
	if err != nil {
		return "", false
	}
	return t.Weekday().String(), true
}

// Month returns the YYYY-MM prefix of the session date.
func (s *Session) Month() string {
	if len(s.Date) < 7 {
		return s.Date
	}
	return s.Date[:7]
}

// MatchesPattern reports whether the session matches an enrollment pattern.
// All four predicates are conjunctive and exact: month prefix, time, coach
// (the no-coach value only matches a session with no coach), and weekday
// name derived from the date. A session whose date cannot be parsed never
// matches.
// PRE: month is YYYY-MM, weekday is an English day name
// POST: Returns true only if every predicate holds
func (s *Session) MatchesPattern(month, weekday, timeStr string, coach Coach) bool {
	if !strings.HasPrefix(s.Date, month) {
		return false
	}
	if s.Time != timeStr {
		return false
	}
	if s.Coach != coach {
		return false
	}
	day, ok := s.Weekday()
	if !ok {
		return false
	}
	return day == weekday
}

// Enrolled reports whether the player is on the roster.
func (s *Session) Enrolled(playerID string) bool {
	for _, id := range s.StudentIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// ActiveCount returns the roster count excluding players marked absent.
// Absent players stay on the roster but free their slot for booking.
func (s *Session) ActiveCount() int {
	count := 0
	for _, id := range s.StudentIDs {
		if s.Attendance[id] != StatusAbsent {
			count++
		}
	}
	return count
}

// Enroll appends the player to the roster.
// PRE: player is not already enrolled (caller checks)
// POST: player is on the roster
func (s *Session) Enroll(playerID string) {
	s.StudentIDs = append(s.StudentIDs, playerID)
}

// RemoveStudent removes the player from the roster and clears any
// attendance entry for them.
// POST: Returns true if the player was on the roster
func (s *Session) RemoveStudent(playerID string) bool {
	for i, id := range s.StudentIDs {
		if id == playerID {
			s.StudentIDs = append(s.StudentIDs[:i], s.StudentIDs[i+1:]...)
			delete(s.Attendance, playerID)
			return true
		}
	}
	return false
}

// Clone returns a deep copy whose roster and attendance map do not alias
// the receiver's.
func (s *Session) Clone() Session {
	out := *s
	out.StudentIDs = append([]string(nil), s.StudentIDs...)
	if s.Attendance != nil {
		out.Attendance = make(map[string]Status, len(s.Attendance))
		for id, status := range s.Attendance {
			out.Attendance[id] = status
		}
	}
	return out
}

// SetStatus records an attendance status, allocating the map on first use.
func (s *Session) SetStatus(playerID string, status Status) {
	if s.Attendance == nil {
		s.Attendance = make(map[string]Status)
	}
	s.Attendance[playerID] = status
}

// ClearStatus removes any recorded status for the player.
func (s *Session) ClearStatus(playerID string) {
	delete(s.Attendance, playerID)
}
