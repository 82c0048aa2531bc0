// Package calendar expands month/weekday patterns into concrete dates.
package calendar

import (
	"fmt"
	"time"
)

// Weekday names accepted by the expander, as produced by
// time.Weekday.String().
var weekdays = map[string]time.Weekday{
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
	"Sunday":    time.Sunday,
}

// ExpandMonth returns every date in the month falling on the given weekday,
// ascending, in YYYY-MM-DD format. An unrecognized weekday or malformed
// month yields an empty result, never an error.
// PRE: month is YYYY-MM, weekday is an English day name
// POST: Returns 0, 4 or 5 dates
func ExpandMonth(month, weekday string) []string {
	target, ok := weekdays[weekday]
	if !ok {
		return nil
	}
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil
	}

	var dates []string
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == target {
			dates = append(dates, d.Format("2006-01-02"))
		}
	}
	return dates
}

// WeekdayName returns the English weekday name for a YYYY-MM-DD date.
// POST: Returns ("", false) if the date cannot be parsed
func WeekdayName(date string) (string, bool) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", false
	}
	return t.Weekday().String(), true
}

// PrevMonth returns the month immediately before the given YYYY-MM month.
func PrevMonth(month string) (string, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return "", fmt.Errorf("invalid month %q: %w", month, err)
	}
	return t.AddDate(0, -1, 0).Format("2006-01"), nil
}
