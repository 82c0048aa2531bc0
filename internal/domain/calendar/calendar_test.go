package calendar_test

import (
	"reflect"
	"testing"

	"courtside/internal/domain/calendar"
)

// TestExpandMonth tests date expansion for month/weekday patterns.
func TestExpandMonth(t *testing.T) {
	tests := []struct {
		name    string
		month   string
		weekday string
		want    []string
	}{
		{
			name:    "five wednesdays in january 2025",
			month:   "2025-01",
			weekday: "Wednesday",
			want:    []string{"2025-01-01", "2025-01-08", "2025-01-15", "2025-01-22", "2025-01-29"},
		},
		{
			name:    "four saturdays in february 2025",
			month:   "2025-02",
			weekday: "Saturday",
			want:    []string{"2025-02-01", "2025-02-08", "2025-02-15", "2025-02-22"},
		},
		{
			name:    "unknown weekday",
			month:   "2025-01",
			weekday: "Wodinsday",
			want:    nil,
		},
		{
			name:    "malformed month",
			month:   "january",
			weekday: "Monday",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calendar.ExpandMonth(tt.month, tt.weekday)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExpandMonth(%q, %q) = %v, want %v", tt.month, tt.weekday, got, tt.want)
			}
		})
	}
}

// TestWeekdayName tests weekday derivation from dates.
func TestWeekdayName(t *testing.T) {
	if name, ok := calendar.WeekdayName("2025-01-01"); !ok || name != "Wednesday" {
		t.Errorf("WeekdayName(2025-01-01) = %q, %v, want Wednesday, true", name, ok)
	}
	if _, ok := calendar.WeekdayName("not-a-date"); ok {
		t.Error("WeekdayName(not-a-date) should not parse")
	}
}

// TestPrevMonth tests month arithmetic including the year boundary.
func TestPrevMonth(t *testing.T) {
	tests := []struct {
		month   string
		want    string
		wantErr bool
	}{
		{month: "2025-02", want: "2025-01"},
		{month: "2025-01", want: "2024-12"},
		{month: "bogus", wantErr: true},
	}

	for _, tt := range tests {
		got, err := calendar.PrevMonth(tt.month)
		if (err != nil) != tt.wantErr {
			t.Errorf("PrevMonth(%q) error = %v, wantErr %v", tt.month, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("PrevMonth(%q) = %q, want %q", tt.month, got, tt.want)
		}
	}
}
