package model

type Task struct {
	ID         int    `db:"id" json:"id"`
	EmployeeID int    `db:"employee_id" json:"employee_id"`
	Task       string `db:"task" json:"task"`
	Status     string `db:"status" json:"status"`
}

type TaskWithEmployee struct {
	Task
	EmployeeName string `db:"employee_name" json:"employee_name"`
}
