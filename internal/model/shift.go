package model

import "time"

// Shift is one scheduled work occurrence. EndAt is optional; SeriesID
// groups occurrences generated by one weekly recurrence request and is
// nil for standalone shifts.
type Shift struct {
	ID         int        `db:"id" json:"id"`
	EmployeeID int        `db:"employee_id" json:"employee_id"`
	StartAt    time.Time  `db:"start_at" json:"start_at"`
	EndAt      *time.Time `db:"end_at" json:"end_at"`
	SeriesID   *string    `db:"series_id" json:"series_id"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// ShiftWithEmployee joins a shift with its employee's name for the
// calendar board.
type ShiftWithEmployee struct {
	Shift
	EmployeeName string `db:"employee_name" json:"employee_name"`
}
