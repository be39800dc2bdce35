package model

import "time"

// PayAdjustment is a miscellaneous amount owed to (positive) or already
// paid out to (negative) an employee, outside normal shift pay.
type PayAdjustment struct {
	ID         int       `db:"id" json:"id"`
	EmployeeID int       `db:"employee_id" json:"employee_id"`
	Date       time.Time `db:"date" json:"date"`
	Amount     float64   `db:"amount" json:"amount"`
	Note       *string   `db:"note" json:"note"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
