// exposes a Store interface that is passed to API handlers and to the
// series engine as its persistence gateway
package db

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/harborlight/carecal/internal/model"
	"github.com/harborlight/carecal/internal/schedule"
)

type Store interface {
	// shift persistence gateway used by the series engine
	schedule.Store

	// shift listings for the calendar board
	ListShifts() ([]model.ShiftWithEmployee, error)
	ListShiftsBetween(start, end time.Time) ([]model.ShiftWithEmployee, error)
	DeleteShift(id int) (bool, error)

	// employee functions
	CreateEmployee(name, position string) (model.Employee, error)
	ListEmployees() ([]model.Employee, error)
	GetEmployeeByID(id int) (*model.Employee, error)
	UpdateEmployeeRate(id int, rate float64) (bool, error)
	DeleteEmployee(id int) error
	EmployeeExists(id int) (bool, error)

	// attendance functions
	InsertAttendance(employeeID int, date time.Time, status string) (model.Attendance, error)
	ListAttendance() ([]model.AttendanceWithEmployee, error)
	DeleteAttendance(id int) (bool, error)

	// task functions
	CreateTask(employeeID int, task, status string) (model.Task, error)
	ListTasks() ([]model.TaskWithEmployee, error)
	DeleteTask(id int) (bool, error)

	// time off functions
	InsertTimeOff(employeeID int, start, end time.Time, reason *string) (model.TimeOff, error)
	GetTimeOffByID(id int) (*model.TimeOff, error)
	ListTimeOffOverlapping(start, end time.Time) ([]model.TimeOff, error)
	UpdateTimeOff(id, employeeID int, start, end time.Time, reason *string) (bool, error)
	DeleteTimeOff(id int) (bool, error)

	// pay adjustment functions
	InsertAdjustment(employeeID int, date time.Time, amount float64, note *string) (model.PayAdjustment, error)
	ListAdjustmentsBetween(start, end time.Time) ([]model.PayAdjustment, error)

	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// dashboard counters
	GetStatistics() (model.Statistics, error)
}

// pgStore runs its queries against run, which is the bare connection
// normally and an open transaction inside InSeriesTx.
type pgStore struct {
	db  *sqlx.DB
	run sqlx.Ext
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(database *sqlx.DB) Store {
	return &pgStore{db: database, run: database}
}
