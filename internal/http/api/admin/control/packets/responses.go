package packets

// ShiftResponse flattens times to the board's local formats.
type ShiftResponse struct {
	ID           int     `json:"id"`
	EmployeeID   int     `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	StartAt      string  `json:"start_at"`
	EndAt        *string `json:"end_at"`
	SeriesID     *string `json:"series_id"`
}

type CreatedResponse struct {
	Created int `json:"created"`
}

type UpdatedResponse struct {
	Updated int `json:"updated"`
}

type EmployeeResponse struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	HourlyRate float64 `json:"hourly_rate"`
}

type AttendanceResponse struct {
	ID           int    `json:"id"`
	EmployeeID   int    `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Date         string `json:"date"`
	Status       string `json:"status"`
}

type TaskResponse struct {
	ID           int    `json:"id"`
	EmployeeID   int    `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Task         string `json:"task"`
	Status       string `json:"status"`
}

type TimeOffResponse struct {
	ID         int     `json:"id"`
	EmployeeID int     `json:"employee_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Reason     *string `json:"reason"`
}
