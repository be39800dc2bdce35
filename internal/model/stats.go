package model

// Statistics backs the dashboard counters.
type Statistics struct {
	Employees int `db:"employees" json:"employees"`
	Tasks     int `db:"tasks" json:"tasks"`
	Shifts    int `db:"shifts" json:"shifts"`
	Present   int `db:"present" json:"present"`
	Absent    int `db:"absent" json:"absent"`
}
