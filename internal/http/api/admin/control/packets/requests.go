package packets

// Date-bearing fields travel as strings in the clinic's local formats:
// "2006-01-02" for dates, "15:04" for clock times, and
// "2006-01-02T15:04" for the shift start (matching the board's
// datetime-local inputs). Handlers parse and validate.

type CreateEmployeeRequest struct {
	Name     string `json:"name" binding:"required"`
	Position string `json:"position" binding:"required"`
}

type UpdateEmployeeRateRequest struct {
	HourlyRate float64 `json:"hourly_rate" binding:"required,gt=0"`
}

type CreateShiftRequest struct {
	EmployeeID   int     `json:"employee_id" binding:"required"`
	StartAt      string  `json:"start_at" binding:"required"`
	EndTime      *string `json:"end_time"`
	RepeatWeekly bool    `json:"repeat_weekly"`
	Weekdays     []int   `json:"weekdays"`
	RepeatUntil  *string `json:"repeat_until"`
}

type UpdateSeriesRequest struct {
	StartDate   *string `json:"start_date"`
	Time        string  `json:"time" binding:"required"`
	EndTime     *string `json:"end_time"`
	Weekdays    []int   `json:"weekdays" binding:"required"`
	RepeatUntil *string `json:"repeat_until"`
	EmployeeID  *int    `json:"employee_id"`
}

type SwapShiftRequest struct {
	NewEmployeeID int `json:"new_employee_id" binding:"required"`
}

type EditDayRequest struct {
	ShiftDate  string  `json:"shift_date" binding:"required"`
	Time       string  `json:"time" binding:"required"`
	EndTime    *string `json:"end_time"`
	EmployeeID *int    `json:"employee_id"`
}

type ListShiftsQuery struct {
	From *string `form:"from"`
	To   *string `form:"to"`
}

type CreateAttendanceRequest struct {
	EmployeeID int    `json:"employee_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Status     string `json:"status" binding:"required,oneof=Present Absent"`
}

type CreateTaskRequest struct {
	EmployeeID int    `json:"employee_id" binding:"required"`
	Task       string `json:"task" binding:"required"`
	Status     string `json:"status" binding:"required"`
}

type TimeOffRequest struct {
	EmployeeID int     `json:"employee_id" binding:"required"`
	StartDate  string  `json:"start_date" binding:"required"`
	EndDate    string  `json:"end_date" binding:"required"`
	Reason     *string `json:"reason" binding:"omitempty,max=120"`
}

type CreateAdjustmentRequest struct {
	EmployeeID int     `json:"employee_id" binding:"required"`
	Date       string  `json:"date" binding:"required"`
	Amount     float64 `json:"amount" binding:"required"`
	Note       *string `json:"note"`
}

type ReportQuery struct {
	Start *string `form:"start"`
	End   *string `form:"end"`
}
