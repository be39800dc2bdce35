package schedule

import (
	"fmt"
	"sort"
	"time"
)

// TimeOfDay is a wall-clock time with no date attached. Shift
// occurrences combine one TimeOfDay with each generated date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// On combines the clock time with the date portion of d.
func (t TimeOfDay) On(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour, t.Minute, 0, 0, d.Location())
}

// After reports whether t is strictly later in the day than other.
func (t TimeOfDay) After(other TimeOfDay) bool {
	if t.Hour != other.Hour {
		return t.Hour > other.Hour
	}
	return t.Minute > other.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Occurrence is one concrete dated shift produced by a weekly pattern.
type Occurrence struct {
	Date    time.Time // midnight on the occurrence date
	StartAt time.Time
	EndAt   *time.Time
}

// WeeklyPattern describes a weekly recurrence: on which weekdays, at
// which times, between which dates (both inclusive). Weekday indices
// use Monday=0 through Sunday=6.
type WeeklyPattern struct {
	StartDate time.Time
	EndDate   time.Time
	Weekdays  []int
	Start     TimeOfDay
	End       *TimeOfDay
}

// Occurrences enumerates every concrete occurrence the pattern covers,
// in ascending date order. An end date before the start date yields an
// empty slice, not an error. The walk is pure: no I/O, deterministic
// for a given pattern.
func (p WeeklyPattern) Occurrences() ([]Occurrence, error) {
	weekdays, err := normalizeWeekdays(p.Weekdays)
	if err != nil {
		return nil, err
	}

	start := DateOf(p.StartDate)
	end := DateOf(p.EndDate)

	var out []Occurrence
	// walk Monday-aligned weeks; within a week ascending weekday index
	// is already ascending by date
	for weekStart := mondayOf(start); !weekStart.After(end); weekStart = weekStart.AddDate(0, 0, 7) {
		for _, dow := range weekdays {
			day := weekStart.AddDate(0, 0, dow)
			if day.Before(start) || day.After(end) {
				continue
			}
			occ := Occurrence{Date: day, StartAt: p.Start.On(day)}
			if p.End != nil {
				endAt := p.End.On(day)
				occ.EndAt = &endAt
			}
			out = append(out, occ)
		}
	}
	return out, nil
}

// normalizeWeekdays deduplicates and sorts the indices, rejecting any
// outside 0..6 before generation begins.
func normalizeWeekdays(weekdays []int) ([]int, error) {
	if len(weekdays) == 0 {
		return nil, ErrNoWeekdays
	}
	seen := make(map[int]bool, len(weekdays))
	out := make([]int, 0, len(weekdays))
	for _, d := range weekdays {
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, d)
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Ints(out)
	return out, nil
}

// DateOf truncates a timestamp to midnight of its day.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ClockOf extracts the wall-clock portion of a timestamp.
func ClockOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// WeekdayIndex maps Go's Sunday-based weekday to the Monday=0 indexing
// used throughout the scheduler.
func WeekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// mondayOf returns midnight of the Monday on or before d.
func mondayOf(d time.Time) time.Time {
	return DateOf(d).AddDate(0, 0, -WeekdayIndex(d.Weekday()))
}

// endOfYear returns December 31 of t's year, the default horizon for a
// recurrence with no explicit repeat-until date.
func endOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, t.Location())
}
