package schedule

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/harborlight/carecal/internal/model"
)

// fakeStore is an in-memory Store with the same idempotency contract
// as the Postgres implementation.
type fakeStore struct {
	shifts map[int]*model.Shift
	nextID int

	txDepth     int
	insertErr   error
	insertCount int
}

func newFakeStore() *fakeStore {
	return &fakeStore{shifts: make(map[int]*model.Shift), nextID: 1}
}

func (f *fakeStore) InsertShift(employeeID int, startAt time.Time, endAt *time.Time, seriesID *string) (bool, error) {
	if f.insertErr != nil {
		return false, f.insertErr
	}
	for _, s := range f.shifts {
		if s.EmployeeID == employeeID && s.StartAt.Equal(startAt) {
			return false, nil
		}
	}
	id := f.nextID
	f.nextID++
	f.shifts[id] = &model.Shift{
		ID:         id,
		EmployeeID: employeeID,
		StartAt:    startAt,
		EndAt:      endAt,
		SeriesID:   seriesID,
	}
	f.insertCount++
	return true, nil
}

func (f *fakeStore) GetShiftByID(id int) (*model.Shift, error) {
	s, ok := f.shifts[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) UpdateShiftEmployee(id, employeeID int) (bool, error) {
	s, ok := f.shifts[id]
	if !ok {
		return false, nil
	}
	s.EmployeeID = employeeID
	return true, nil
}

func (f *fakeStore) UpdateShiftOccurrence(id int, startAt time.Time, endAt *time.Time, employeeID int) (bool, error) {
	s, ok := f.shifts[id]
	if !ok {
		return false, nil
	}
	s.StartAt = startAt
	s.EndAt = endAt
	s.EmployeeID = employeeID
	return true, nil
}

func (f *fakeStore) DeleteShiftsBySeries(seriesID string) (int, error) {
	var n int
	for id, s := range f.shifts {
		if s.SeriesID != nil && *s.SeriesID == seriesID {
			delete(f.shifts, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) DeleteSeriesFrom(seriesID string, from time.Time) (int, error) {
	var n int
	for id, s := range f.shifts {
		if s.SeriesID != nil && *s.SeriesID == seriesID && !DateOf(s.StartAt).Before(DateOf(from)) {
			delete(f.shifts, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) SeriesEmployeeOnOrAfter(seriesID string, pivot time.Time) (*int, error) {
	var best *model.Shift
	for _, s := range f.shifts {
		if s.SeriesID == nil || *s.SeriesID != seriesID || DateOf(s.StartAt).Before(DateOf(pivot)) {
			continue
		}
		if best == nil || s.StartAt.Before(best.StartAt) {
			best = s
		}
	}
	if best == nil {
		return nil, nil
	}
	id := best.EmployeeID
	return &id, nil
}

func (f *fakeStore) SeriesEmployeeBefore(seriesID string, pivot time.Time) (*int, error) {
	var best *model.Shift
	for _, s := range f.shifts {
		if s.SeriesID == nil || *s.SeriesID != seriesID || !DateOf(s.StartAt).Before(DateOf(pivot)) {
			continue
		}
		if best == nil || s.StartAt.After(best.StartAt) {
			best = s
		}
	}
	if best == nil {
		return nil, nil
	}
	id := best.EmployeeID
	return &id, nil
}

func (f *fakeStore) InSeriesTx(seriesID string, fn func(Store) error) error {
	f.txDepth++
	defer func() { f.txDepth-- }()
	return fn(f)
}

func (f *fakeStore) startTimes(seriesID string) []time.Time {
	var out []time.Time
	for _, s := range f.shifts {
		if s.SeriesID != nil && *s.SeriesID == seriesID {
			out = append(out, s.StartAt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func testEngine(store *fakeStore) *Engine {
	e := NewEngine(store)
	e.clock = func() time.Time { return date(2024, time.January, 8) }
	e.newSeriesID = func() string { return "series-1" }
	return e
}

func at(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestCreateShiftsSingle(t *testing.T) {
	store := newFakeStore()
	engine := testEngine(store)

	end := TimeOfDay{Hour: 17}
	created, err := engine.CreateShifts(CreateShiftsInput{
		EmployeeID: 1,
		StartAt:    at(2024, time.January, 3, 9),
		EndTime:    &end,
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, created)

	shift := store.shifts[1]
	assert.Nil(t, shift.SeriesID)
	if assert.NotNil(t, shift.EndAt) {
		assert.Equal(t, at(2024, time.January, 3, 17), *shift.EndAt)
	}
}

// The same request twice creates nothing the second time.
func TestCreateShiftsIdempotent(t *testing.T) {
	store := newFakeStore()
	engine := testEngine(store)

	in := CreateShiftsInput{EmployeeID: 1, StartAt: at(2024, time.January, 3, 9)}
	created, err := engine.CreateShifts(in)
	assert.NoError(t, err)
	assert.Equal(t, 1, created)

	created, err = engine.CreateShifts(in)
	assert.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Len(t, store.shifts, 1)
}

func TestCreateShiftsRejectsEndNotAfterStart(t *testing.T) {
	store := newFakeStore()
	engine := testEngine(store)

	end := TimeOfDay{Hour: 9}
	_, err := engine.CreateShifts(CreateShiftsInput{
		EmployeeID: 1,
		StartAt:    at(2024, time.January, 3, 9),
		EndTime:    &end,
		Repeat:     true,
		Weekdays:   []int{0},
	})
	assert.True(t, errors.Is(err, ErrEndNotAfterStart))
	assert.Empty(t, store.shifts, "no rows may be written on validation failure")
}

func TestCreateShiftsWeekly(t *testing.T) {
	store := newFakeStore()
	engine := testEngine(store)

	until := date(2024, time.January, 14)
	created, err := engine.CreateShifts(CreateShiftsInput{
		EmployeeID: 1,
		StartAt:    at(2024, time.January, 1, 9),
		Repeat:     true,
		Weekdays:   []int{0, 2, 4},
		Until:      &until,
	})
	assert.NoError(t, err)
	assert.Equal(t, 6, created)

	times := store.startTimes("series-1")
	assert.Len(t, times, 6)
	assert.Equal(t, at(2024, time.January, 1, 9), times[0])
	assert.Equal(t, at(2024, time.January, 12, 9), times[5])
}

// A recurrence with no weekday list repeats on the start date's weekday.
func TestCreateShiftsWeeklyDefaultsWeekday(t *testing.T) {
	store := newFakeStore()
	engine := testEngine(store)

	until := date(2024, time.January, 21)
	// Jan 3 is a Wednesday
	created, err := engine.CreateShifts(CreateShiftsInput{
		EmployeeID: 1,
		StartAt:    at(2024, time.January, 3, 9),
		Repeat:     true,
		Until:      &until,
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, created)
	for _, st := range store.startTimes("series-1") {
		assert.Equal(t, time.Wednesday, st.Weekday())
	}
}

func seedSeries(t *testing.T, store *fakeStore, engine *Engine) {
	t.Helper()
	until := date(2024, time.January, 14)
	_, err := engine.CreateShifts(CreateShiftsInput{
		EmployeeID: 1,
		StartAt:    at(2024, time.January, 1, 9),
		Repeat:     true,
		Weekdays:   []int{0, 2, 4},
		Until:      &until,
	})
	assert.NoError(t, err)
}

// Replacing from Jan 8 keeps the first week untouched and regenerates
// the second under the same series id.
func TestReplaceSeriesFromPreservesHistory(t *testing.T) {
	store := newFakeStore()
	engine := testEngine(store)
	seedSeries(t, store, engine)

	pivot := date(2024, time.January, 8)
	until := date(2024, time.January, 14)
	created, err := engine.ReplaceSeriesFrom(ReplaceSeriesInput{
		SeriesID:  "series-1",
		PivotDate: &pivot,
		Start:     TimeOfDay{Hour: 14},
		Weekdays:  []int{1, 3},
		Until:     &until,
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, created)

	times := store.startTimes("series-1")
	assert.Equal(t, []time.Time{
		at(2024, time.January, 1, 9),
		at(2024, time.January, 3, 9),
		at(2024, time.January, 5, 9),
		at(2024, time.January, 9, 14),
		at(2024, time.January, 11, 14),
	}, times)
}

// Without an explicit employee the tail inherits from the earliest
// occurrence on or after the pivot, falling back to the latest before it.
func TestReplaceSeriesEmployeeInference(t *testing.T) {
	store := newFakeStore()
	engine := testEngine(store)
	seedSeries(t, store, engine)

	// second-week occurrences belong to employee 2
	for _, s := range store.shifts {
		if !s.StartAt.Before(date(2024, time.January, 8)) {
			s.EmployeeID = 2
		}
	}

	pivot := date(2024, time.January, 8)
	until := date(2024, time.January, 14)
	_, err := engine.ReplaceSeriesFrom(ReplaceSeriesInput{
		SeriesID:  "series-1",
		PivotDate: &pivot,
		Start:     TimeOfDay{Hour: 14},
		Weekdays:  []int{1},
		Until:     &until,
	})
	assert.NoError(t, err)
	for _, st := range store.startTimes("series-1") {
		if !st.Before(pivot) {
			s := findByStart(store, st)
			assert.Equal(t, 2, s.EmployeeID)
		}
	}

	// pivot beyond every occurrence: fall back to the latest before it
	farPivot := date(2024, time.February, 1)
	farUntil := date(2024, time.February, 7)
	_, err = engine.ReplaceSeriesFrom(ReplaceSeriesInput{
		SeriesID:  "series-1",
		PivotDate: &farPivot,
		Start:     TimeOfDay{Hour: 8},
		Weekdays:  []int{0},
		Until:     &farUntil,
	})
	assert.NoError(t, err)
	s := findByStart(store, at(2024, time.February, 5, 8))
	if assert.NotNil(t, s) {
		assert.Equal(t, 2, s.EmployeeID)
	}
}

func findByStart(store *fakeStore, startAt time.Time) *model.Shift {
	for _, s := range store.shifts {
		if s.StartAt.Equal(startAt) {
			return s
		}
	}
	return nil
}

func TestReplaceSeriesUnknownSeries(t *testing.T) {
	store := newFakeStore()
	engine := testEngine(store)

	pivot := date(2024, time.January, 8)
	_, err := engine.ReplaceSeriesFrom(ReplaceSeriesInput{
		SeriesID:  "no-such-series",
		PivotDate: &pivot,
		Start:     TimeOfDay{Hour: 9},
		Weekdays:  []int{0},
	})
	assert.True(t, errors.Is(err, ErrEmployeeUnresolved))
}

func TestReplaceSeriesValidatesBeforeWriting(t *testing.T) {
	store := newFakeStore()
	engine := testEngine(store)
	seedSeries(t, store, engine)
	before := len(store.shifts)

	end := TimeOfDay{Hour: 9}
	_, err := engine.ReplaceSeriesFrom(ReplaceSeriesInput{
		SeriesID: "series-1",
		Start:    TimeOfDay{Hour: 9},
		End:      &end,
		Weekdays: []int{0},
	})
	assert.True(t, errors.Is(err, ErrEndNotAfterStart))
	assert.Len(t, store.shifts, before, "failed replace must not delete the tail")

	_, err = engine.ReplaceSeriesFrom(ReplaceSeriesInput{
		SeriesID: "series-1",
		Start:    TimeOfDay{Hour: 9},
		Weekdays: []int{9},
	})
	assert.True(t, errors.Is(err, ErrInvalidWeekday))
	assert.Len(t, store.shifts, before)
}

func TestDeleteSeries(t *testing.T) {
	store := newFakeStore()
	engine := testEngine(store)
	seedSeries(t, store, engine)

	// one standalone shift that must survive
	_, err := engine.CreateShifts(CreateShiftsInput{EmployeeID: 1, StartAt: at(2024, time.January, 20, 9)})
	assert.NoError(t, err)

	assert.NoError(t, engine.DeleteSeries("series-1"))
	assert.Len(t, store.shifts, 1)

	// deleting again is a no-op
	assert.NoError(t, engine.DeleteSeries("series-1"))
}

func TestReassignShift(t *testing.T) {
	store := newFakeStore()
	engine := testEngine(store)

	_, err := engine.CreateShifts(CreateShiftsInput{EmployeeID: 1, StartAt: at(2024, time.January, 3, 9)})
	assert.NoError(t, err)

	assert.NoError(t, engine.ReassignShift(1, 2))
	assert.Equal(t, 2, store.shifts[1].EmployeeID)

	err = engine.ReassignShift(99, 2)
	assert.True(t, errors.Is(err, ErrShiftNotFound))
}

// Editing one occurrence leaves its siblings alone and keeps the row in
// its series.
func TestEditDay(t *testing.T) {
	store := newFakeStore()
	engine := testEngine(store)
	seedSeries(t, store, engine)

	target := findByStart(store, at(2024, time.January, 3, 9))
	end := TimeOfDay{Hour: 18}
	err := engine.EditDay(EditDayInput{
		ShiftID: target.ID,
		Date:    date(2024, time.January, 4),
		Start:   TimeOfDay{Hour: 10},
		End:     &end,
	})
	assert.NoError(t, err)

	edited := store.shifts[target.ID]
	assert.Equal(t, at(2024, time.January, 4, 10), edited.StartAt)
	if assert.NotNil(t, edited.EndAt) {
		assert.Equal(t, at(2024, time.January, 4, 18), *edited.EndAt)
	}
	if assert.NotNil(t, edited.SeriesID) {
		assert.Equal(t, "series-1", *edited.SeriesID)
	}
	assert.Equal(t, 1, edited.EmployeeID, "employee defaults to the row's current one")

	// siblings untouched
	assert.NotNil(t, findByStart(store, at(2024, time.January, 1, 9)))
	assert.NotNil(t, findByStart(store, at(2024, time.January, 5, 9)))
}

func TestEditDayValidation(t *testing.T) {
	store := newFakeStore()
	engine := testEngine(store)

	end := TimeOfDay{Hour: 9}
	err := engine.EditDay(EditDayInput{
		ShiftID: 1,
		Date:    date(2024, time.January, 4),
		Start:   TimeOfDay{Hour: 9},
		End:     &end,
	})
	assert.True(t, errors.Is(err, ErrEndNotAfterStart))

	err = engine.EditDay(EditDayInput{
		ShiftID: 42,
		Date:    date(2024, time.January, 4),
		Start:   TimeOfDay{Hour: 9},
	})
	assert.True(t, errors.Is(err, ErrShiftNotFound))
}
