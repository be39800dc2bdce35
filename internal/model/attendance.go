package model

import "time"

type Attendance struct {
	ID         int       `db:"id" json:"id"`
	EmployeeID int       `db:"employee_id" json:"employee_id"`
	Date       time.Time `db:"date" json:"date"`
	Status     string    `db:"status" json:"status"`
}

type AttendanceWithEmployee struct {
	Attendance
	EmployeeName string `db:"employee_name" json:"employee_name"`
}
