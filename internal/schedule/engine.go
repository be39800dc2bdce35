package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/harborlight/carecal/internal/model"
)

// Store is the persistence gateway the engine drives. The db package
// provides the Postgres implementation; tests supply an in-memory fake.
//
// InsertShift must be idempotent on (employee, start): it reports false
// instead of an error when an identical shift already exists, which is
// what makes series generation safe to retry.
type Store interface {
	InsertShift(employeeID int, startAt time.Time, endAt *time.Time, seriesID *string) (created bool, err error)
	GetShiftByID(id int) (*model.Shift, error)
	UpdateShiftEmployee(id, employeeID int) (updated bool, err error)
	UpdateShiftOccurrence(id int, startAt time.Time, endAt *time.Time, employeeID int) (updated bool, err error)
	DeleteShiftsBySeries(seriesID string) (int, error)
	DeleteSeriesFrom(seriesID string, from time.Time) (int, error)
	// SeriesEmployeeOnOrAfter / SeriesEmployeeBefore return the employee
	// of the earliest occurrence dated on/after (resp. latest before)
	// the pivot, or nil when the series has no such occurrence.
	SeriesEmployeeOnOrAfter(seriesID string, pivot time.Time) (*int, error)
	SeriesEmployeeBefore(seriesID string, pivot time.Time) (*int, error)
	// InSeriesTx runs fn atomically while holding a lock on the series,
	// so two replacements of the same series cannot interleave their
	// delete and insert phases.
	InSeriesTx(seriesID string, fn func(Store) error) error
}

// Engine turns recurrence requests into persisted shift rows and keeps
// a series consistent when its tail is replaced.
type Engine struct {
	store       Store
	clock       func() time.Time
	newSeriesID func() string
}

func NewEngine(store Store) *Engine {
	return &Engine{
		store:       store,
		clock:       time.Now,
		newSeriesID: uuid.NewString,
	}
}

// CreateShiftsInput describes one create request, either a single shift
// or a weekly recurrence anchored at StartAt.
type CreateShiftsInput struct {
	EmployeeID int
	StartAt    time.Time
	EndTime    *TimeOfDay // optional; applied to each occurrence's date
	Repeat     bool
	Weekdays   []int      // Monday=0; empty defaults to StartAt's weekday
	Until      *time.Time // inclusive; default Dec 31 of StartAt's year
}

// CreateShifts inserts the shift(s) the request describes and returns
// how many rows were actually created. Re-submitting the same request
// creates nothing extra: duplicates are silently skipped.
func (e *Engine) CreateShifts(in CreateShiftsInput) (int, error) {
	if in.EndTime != nil && !in.EndTime.After(ClockOf(in.StartAt)) {
		return 0, ErrEndNotAfterStart
	}

	if !in.Repeat {
		var endAt *time.Time
		if in.EndTime != nil {
			t := in.EndTime.On(in.StartAt)
			endAt = &t
		}
		created, err := e.store.InsertShift(in.EmployeeID, in.StartAt, endAt, nil)
		if err != nil {
			return 0, err
		}
		if created {
			return 1, nil
		}
		return 0, nil
	}

	weekdays := in.Weekdays
	if len(weekdays) == 0 {
		weekdays = []int{WeekdayIndex(in.StartAt.Weekday())}
	}
	until := endOfYear(in.StartAt)
	if in.Until != nil {
		until = DateOf(*in.Until)
	}

	pattern := WeeklyPattern{
		StartDate: DateOf(in.StartAt),
		EndDate:   until,
		Weekdays:  weekdays,
		Start:     ClockOf(in.StartAt),
		End:       in.EndTime,
	}
	occurrences, err := pattern.Occurrences()
	if err != nil {
		return 0, err
	}

	seriesID := e.newSeriesID()
	var created int
	err = e.store.InSeriesTx(seriesID, func(s Store) error {
		n, err := insertOccurrences(s, occurrences, in.EmployeeID, &seriesID)
		created = n
		return err
	})
	if err != nil {
		return 0, err
	}
	log.Info().Str("series_id", seriesID).Int("created", created).Msg("recurring series created")
	return created, nil
}

// ReplaceSeriesInput describes a replace-from-date request: from the
// pivot date onward the series is regenerated with new times, weekdays
// and (optionally) a new employee; earlier occurrences are preserved.
type ReplaceSeriesInput struct {
	SeriesID   string
	PivotDate  *time.Time // default: today
	Start      TimeOfDay
	End        *TimeOfDay
	Weekdays   []int      // required, non-empty
	Until      *time.Time // inclusive; default Dec 31 of pivot's year
	EmployeeID *int       // default: inferred from existing occurrences
}

// ReplaceSeriesFrom deletes every occurrence of the series dated on or
// after the pivot and regenerates the tail under the same series id,
// returning the number of rows inserted. Delete and regenerate run as
// one atomic unit per series.
func (e *Engine) ReplaceSeriesFrom(in ReplaceSeriesInput) (int, error) {
	if _, err := normalizeWeekdays(in.Weekdays); err != nil {
		return 0, err
	}
	if in.End != nil && !in.End.After(in.Start) {
		return 0, ErrEndNotAfterStart
	}

	pivot := DateOf(e.clock())
	if in.PivotDate != nil {
		pivot = DateOf(*in.PivotDate)
	}
	until := endOfYear(pivot)
	if in.Until != nil {
		until = DateOf(*in.Until)
	}

	pattern := WeeklyPattern{
		StartDate: pivot,
		EndDate:   until,
		Weekdays:  in.Weekdays,
		Start:     in.Start,
		End:       in.End,
	}
	occurrences, err := pattern.Occurrences()
	if err != nil {
		return 0, err
	}

	var created int
	err = e.store.InSeriesTx(in.SeriesID, func(s Store) error {
		employeeID, err := resolveSeriesEmployee(s, in.SeriesID, pivot, in.EmployeeID)
		if err != nil {
			return err
		}
		if _, err := s.DeleteSeriesFrom(in.SeriesID, pivot); err != nil {
			return fmt.Errorf("delete series tail: %w", err)
		}
		n, err := insertOccurrences(s, occurrences, employeeID, &in.SeriesID)
		created = n
		return err
	})
	if err != nil {
		return 0, err
	}
	log.Info().
		Str("series_id", in.SeriesID).
		Time("pivot", pivot).
		Int("created", created).
		Msg("series replaced from pivot")
	return created, nil
}

// resolveSeriesEmployee picks the employee regenerated occurrences
// belong to: the explicit override if given, otherwise the earliest
// occurrence on/after the pivot, otherwise the latest one before it.
func resolveSeriesEmployee(s Store, seriesID string, pivot time.Time, explicit *int) (int, error) {
	if explicit != nil {
		return *explicit, nil
	}
	id, err := s.SeriesEmployeeOnOrAfter(seriesID, pivot)
	if err != nil {
		return 0, err
	}
	if id == nil {
		id, err = s.SeriesEmployeeBefore(seriesID, pivot)
		if err != nil {
			return 0, err
		}
	}
	if id == nil {
		return 0, ErrEmployeeUnresolved
	}
	return *id, nil
}

func insertOccurrences(s Store, occurrences []Occurrence, employeeID int, seriesID *string) (int, error) {
	var created int
	for _, occ := range occurrences {
		ok, err := s.InsertShift(employeeID, occ.StartAt, occ.EndAt, seriesID)
		if err != nil {
			return created, fmt.Errorf("insert occurrence %s: %w", occ.Date.Format("2006-01-02"), err)
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// DeleteSeries removes every occurrence of the series. Deleting a
// series that no longer exists is a no-op, not an error.
func (e *Engine) DeleteSeries(seriesID string) error {
	n, err := e.store.DeleteShiftsBySeries(seriesID)
	if err != nil {
		return err
	}
	log.Info().Str("series_id", seriesID).Int("deleted", n).Msg("series deleted")
	return nil
}

// ReassignShift moves one occurrence to a different caregiver without
// touching its times or detaching it from its series.
func (e *Engine) ReassignShift(shiftID, newEmployeeID int) error {
	updated, err := e.store.UpdateShiftEmployee(shiftID, newEmployeeID)
	if err != nil {
		return err
	}
	if !updated {
		return ErrShiftNotFound
	}
	return nil
}

// EditDayInput targets a single occurrence by id and gives it a new
// date, times and (optionally) employee.
type EditDayInput struct {
	ShiftID    int
	Date       time.Time
	Start      TimeOfDay
	End        *TimeOfDay
	EmployeeID *int // default: the occurrence's current employee
}

// EditDay rewrites exactly one occurrence in place. Sibling occurrences
// of the same series are never touched, and the row keeps its series id.
func (e *Engine) EditDay(in EditDayInput) error {
	if in.End != nil && !in.End.After(in.Start) {
		return ErrEndNotAfterStart
	}

	shift, err := e.store.GetShiftByID(in.ShiftID)
	if err != nil {
		return err
	}
	if shift == nil {
		return ErrShiftNotFound
	}

	employeeID := shift.EmployeeID
	if in.EmployeeID != nil {
		employeeID = *in.EmployeeID
	}

	day := DateOf(in.Date)
	startAt := in.Start.On(day)
	var endAt *time.Time
	if in.End != nil {
		t := in.End.On(day)
		endAt = &t
	}

	updated, err := e.store.UpdateShiftOccurrence(in.ShiftID, startAt, endAt, employeeID)
	if err != nil {
		return err
	}
	if !updated {
		return ErrShiftNotFound
	}
	return nil
}
