package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30")
	assert.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 9, Minute: 30}, tod)
	assert.Equal(t, "09:30", tod.String())

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)
	_, err = ParseTimeOfDay("nine")
	assert.Error(t, err)
}

func TestTimeOfDayAfter(t *testing.T) {
	nine := TimeOfDay{Hour: 9}
	five := TimeOfDay{Hour: 17}
	assert.True(t, five.After(nine))
	assert.False(t, nine.After(five))
	assert.False(t, nine.After(nine))
	assert.True(t, TimeOfDay{Hour: 9, Minute: 1}.After(nine))
}

// Two full weeks, Mon/Wed/Fri. 2024-01-01 is a Monday, so the pattern
// should land on Jan 1, 3, 5, 8, 10 and 12.
func TestOccurrencesTwoWeeks(t *testing.T) {
	p := WeeklyPattern{
		StartDate: date(2024, time.January, 1),
		EndDate:   date(2024, time.January, 14),
		Weekdays:  []int{0, 2, 4},
		Start:     TimeOfDay{Hour: 9},
	}

	occs, err := p.Occurrences()
	assert.NoError(t, err)

	var days []int
	for _, o := range occs {
		days = append(days, o.Date.Day())
		assert.Equal(t, 9, o.StartAt.Hour())
		assert.Nil(t, o.EndAt)
	}
	assert.Equal(t, []int{1, 3, 5, 8, 10, 12}, days)
}

// Starting mid-week must not reach back into days the window excludes:
// a Monday pattern started on Wednesday Jan 3 skips Jan 1.
func TestOccurrencesExcludesDaysBeforeStart(t *testing.T) {
	p := WeeklyPattern{
		StartDate: date(2024, time.January, 3),
		EndDate:   date(2024, time.January, 14),
		Weekdays:  []int{0},
		Start:     TimeOfDay{Hour: 9},
	}

	occs, err := p.Occurrences()
	assert.NoError(t, err)
	assert.Len(t, occs, 1)
	assert.Equal(t, date(2024, time.January, 8), occs[0].Date)
}

func TestOccurrencesEndTimes(t *testing.T) {
	end := TimeOfDay{Hour: 17, Minute: 30}
	p := WeeklyPattern{
		StartDate: date(2024, time.January, 1),
		EndDate:   date(2024, time.January, 7),
		Weekdays:  []int{0},
		Start:     TimeOfDay{Hour: 9},
		End:       &end,
	}

	occs, err := p.Occurrences()
	assert.NoError(t, err)
	assert.Len(t, occs, 1)
	if assert.NotNil(t, occs[0].EndAt) {
		assert.Equal(t, time.Date(2024, time.January, 1, 17, 30, 0, 0, time.UTC), *occs[0].EndAt)
	}
}

func TestOccurrencesEmptyRange(t *testing.T) {
	p := WeeklyPattern{
		StartDate: date(2024, time.March, 10),
		EndDate:   date(2024, time.March, 1),
		Weekdays:  []int{0, 1, 2, 3, 4, 5, 6},
		Start:     TimeOfDay{Hour: 9},
	}

	occs, err := p.Occurrences()
	assert.NoError(t, err)
	assert.Empty(t, occs)
}

func TestOccurrencesRejectsBadWeekdays(t *testing.T) {
	p := WeeklyPattern{
		StartDate: date(2024, time.January, 1),
		EndDate:   date(2024, time.January, 31),
		Weekdays:  []int{7},
		Start:     TimeOfDay{Hour: 9},
	}
	_, err := p.Occurrences()
	assert.True(t, errors.Is(err, ErrInvalidWeekday))

	p.Weekdays = nil
	_, err = p.Occurrences()
	assert.True(t, errors.Is(err, ErrNoWeekdays))
}

// Duplicate and unsorted weekday indices do not produce duplicate or
// out-of-order occurrences.
func TestOccurrencesNormalizesWeekdays(t *testing.T) {
	p := WeeklyPattern{
		StartDate: date(2024, time.January, 1),
		EndDate:   date(2024, time.January, 7),
		Weekdays:  []int{4, 0, 4, 0},
		Start:     TimeOfDay{Hour: 9},
	}

	occs, err := p.Occurrences()
	assert.NoError(t, err)
	assert.Len(t, occs, 2)
	assert.Equal(t, date(2024, time.January, 1), occs[0].Date)
	assert.Equal(t, date(2024, time.January, 5), occs[1].Date)
}

func TestWeekdayIndex(t *testing.T) {
	assert.Equal(t, 0, WeekdayIndex(time.Monday))
	assert.Equal(t, 6, WeekdayIndex(time.Sunday))
	assert.Equal(t, 5, WeekdayIndex(time.Saturday))
}

func TestMondayOf(t *testing.T) {
	// 2024-01-10 is a Wednesday
	assert.Equal(t, date(2024, time.January, 8), mondayOf(date(2024, time.January, 10)))
	// Monday maps to itself
	assert.Equal(t, date(2024, time.January, 8), mondayOf(date(2024, time.January, 8)))
	// Sunday belongs to the week starting the previous Monday
	assert.Equal(t, date(2024, time.January, 8), mondayOf(date(2024, time.January, 14)))
}
