// Package report derives weekly hours and pay figures from stored
// shifts. It is pure: callers fetch the rows, report does the math.
package report

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/harborlight/carecal/internal/model"
)

// DefaultShiftDuration is assumed for any shift with a missing or
// non-positive end time. Only reporting synthesizes this default; the
// schedule engine stores end_at exactly as given.
const DefaultShiftDuration = time.Hour

// Window resolves optional bounds into an inclusive reporting window.
// A missing start defaults to the Monday of today's week; a missing end
// to start plus six days. Reversed bounds are swapped, not rejected.
func Window(start, end *time.Time, today time.Time) (time.Time, time.Time) {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	from := day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))
	if start != nil {
		from = *start
	}
	to := from.AddDate(0, 0, 6)
	if end != nil {
		to = *end
	}
	if to.Before(from) {
		from, to = to, from
	}
	return from, to
}

// EmployeeHours is one report line: total scheduled hours for one
// caregiver, rounded to two decimals.
type EmployeeHours struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

// HoursByEmployee totals shift minutes per caregiver, sorted by name
// (case-insensitive).
func HoursByEmployee(shifts []model.ShiftWithEmployee) []EmployeeHours {
	totals := make(map[string]time.Duration)
	for _, s := range shifts {
		totals[s.EmployeeName] += shiftDuration(s.StartAt, s.EndAt)
	}

	out := make([]EmployeeHours, 0, len(totals))
	for name, d := range totals {
		out = append(out, EmployeeHours{Name: name, Hours: roundHours(d)})
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// PayrollLine extends the hours report with pay: hours times the
// employee's hourly rate, plus any adjustments dated in the window.
type PayrollLine struct {
	EmployeeID  int     `json:"employee_id"`
	Name        string  `json:"name"`
	Hours       float64 `json:"hours"`
	Rate        float64 `json:"rate"`
	Adjustments float64 `json:"adjustments"`
	Total       float64 `json:"total"`
}

func Payroll(employees []model.Employee, shifts []model.ShiftWithEmployee, adjustments []model.PayAdjustment) []PayrollLine {
	hours := make(map[int]time.Duration)
	for _, s := range shifts {
		hours[s.EmployeeID] += shiftDuration(s.StartAt, s.EndAt)
	}
	adjusted := make(map[int]float64)
	for _, a := range adjustments {
		adjusted[a.EmployeeID] += a.Amount
	}

	out := make([]PayrollLine, 0, len(employees))
	for _, e := range employees {
		h := roundHours(hours[e.ID])
		line := PayrollLine{
			EmployeeID:  e.ID,
			Name:        e.Name,
			Hours:       h,
			Rate:        e.HourlyRate,
			Adjustments: round2(adjusted[e.ID]),
		}
		line.Total = round2(h*e.HourlyRate + line.Adjustments)
		out = append(out, line)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

func shiftDuration(start time.Time, end *time.Time) time.Duration {
	if end == nil || !end.After(start) {
		return DefaultShiftDuration
	}
	return end.Sub(start)
}

func roundHours(d time.Duration) float64 {
	minutes := math.Floor(d.Minutes())
	return round2(minutes / 60.0)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
