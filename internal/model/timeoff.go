package model

import "time"

// TimeOff is an inclusive date window during which a caregiver is
// unavailable for shifts.
type TimeOff struct {
	ID         int       `db:"id" json:"id"`
	EmployeeID int       `db:"employee_id" json:"employee_id"`
	StartDate  time.Time `db:"start_date" json:"start_date"`
	EndDate    time.Time `db:"end_date" json:"end_date"`
	Reason     *string   `db:"reason" json:"reason"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
