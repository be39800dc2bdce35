package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/harborlight/carecal/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func shift(name string, start time.Time, end *time.Time) model.ShiftWithEmployee {
	return model.ShiftWithEmployee{
		Shift:        model.Shift{EmployeeID: employeeID(name), StartAt: start, EndAt: end},
		EmployeeName: name,
	}
}

func employeeID(name string) int {
	// deterministic fake id derived from the first letter
	return int(name[0])
}

func ptr(t time.Time) *time.Time { return &t }

func TestWindowDefaults(t *testing.T) {
	// 2024-01-10 is a Wednesday; the default window is that week
	from, to := Window(nil, nil, date(2024, time.January, 10))
	assert.Equal(t, date(2024, time.January, 8), from)
	assert.Equal(t, date(2024, time.January, 14), to)
}

func TestWindowExplicitStart(t *testing.T) {
	start := date(2024, time.March, 1)
	from, to := Window(&start, nil, date(2024, time.January, 10))
	assert.Equal(t, start, from)
	assert.Equal(t, date(2024, time.March, 7), to)
}

func TestWindowSwapsReversedBounds(t *testing.T) {
	start := date(2024, time.March, 10)
	end := date(2024, time.March, 1)
	from, to := Window(&start, &end, date(2024, time.January, 10))
	assert.Equal(t, end, from)
	assert.Equal(t, start, to)
}

func TestHoursByEmployee(t *testing.T) {
	nine := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
	rows := HoursByEmployee([]model.ShiftWithEmployee{
		shift("Bea", nine, ptr(nine.Add(8*time.Hour))),
		shift("Bea", nine.AddDate(0, 0, 1), ptr(nine.AddDate(0, 0, 1).Add(4*time.Hour+30*time.Minute))),
		shift("alma", nine, ptr(nine.Add(6*time.Hour))),
	})

	assert.Equal(t, []EmployeeHours{
		{Name: "alma", Hours: 6},
		{Name: "Bea", Hours: 12.5},
	}, rows)
}

// Shifts with no end time, or an end that does not follow the start,
// count as one hour.
func TestHoursDefaultDuration(t *testing.T) {
	nine := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
	rows := HoursByEmployee([]model.ShiftWithEmployee{
		shift("Alma", nine, nil),
		shift("Alma", nine.AddDate(0, 0, 1), ptr(nine.AddDate(0, 0, 1))),
		shift("Alma", nine.AddDate(0, 0, 2), ptr(nine.AddDate(0, 0, 2).Add(-time.Hour))),
	})

	assert.Equal(t, []EmployeeHours{{Name: "Alma", Hours: 3}}, rows)
}

func TestPayroll(t *testing.T) {
	nine := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
	employees := []model.Employee{
		{ID: employeeID("Alma"), Name: "Alma", HourlyRate: 20},
		{ID: employeeID("Bea"), Name: "Bea", HourlyRate: 18},
		{ID: employeeID("Cruz"), Name: "Cruz", HourlyRate: 16},
	}
	shifts := []model.ShiftWithEmployee{
		shift("Alma", nine, ptr(nine.Add(8*time.Hour))),
		shift("Bea", nine, nil), // default hour
	}
	note := "mileage"
	adjustments := []model.PayAdjustment{
		{EmployeeID: employeeID("Alma"), Amount: 25.50, Note: &note},
		{EmployeeID: employeeID("Alma"), Amount: -5},
	}

	lines := Payroll(employees, shifts, adjustments)
	assert.Len(t, lines, 3)

	assert.Equal(t, PayrollLine{
		EmployeeID:  employeeID("Alma"),
		Name:        "Alma",
		Hours:       8,
		Rate:        20,
		Adjustments: 20.5,
		Total:       180.5,
	}, lines[0])

	assert.Equal(t, 18.0, lines[1].Total, "one default hour at rate 18")
	assert.Equal(t, 0.0, lines[2].Total, "no shifts, no adjustments")
}

func TestWriteHoursCSV(t *testing.T) {
	var sb strings.Builder
	err := WriteHoursCSV(&sb, []EmployeeHours{
		{Name: "Alma", Hours: 6},
		{Name: "Bea", Hours: 12.5},
	})
	assert.NoError(t, err)
	assert.Equal(t, "Employee,Hours\nAlma,6\nBea,12.5\n", sb.String())
}
