package attendance

// Clock event actions as reported to the terminal.
const (
	ActionCheckIn  = "check-in"
	ActionCheckOut = "check-out"
)

// AttendanceResponse is the wire representation of an attendance record.
type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	CheckIn      *string `json:"check_in,omitempty"`
	CheckOut     *string `json:"check_out,omitempty"`
	Status       string  `json:"status"`
	Note         *string `json:"note,omitempty"`
}

// EventResult reports the branch RecordEvent took.
type EventResult struct {
	Action     string             `json:"action"`
	Attendance AttendanceResponse `json:"attendance"`
}

// ProcessResult is what the face terminal gets back. Business rejections are
// reported inside the payload, not as transport errors, so the terminal can
// show the message to the employee.
type ProcessResult struct {
	Success    bool   `json:"success"`
	EmployeeID string `json:"employee_id,omitempty"`
	FullName   string `json:"full_name,omitempty"`
	Action     string `json:"action,omitempty"`
	Message    string `json:"message"`
}

// WorkingDayTally is the day-level aggregate for one employee over a date
// range. It is derived, never persisted. OvertimeHours stays fractional here;
// rounding happens at the payroll stage.
type WorkingDayTally struct {
	EmployeeID    string  `json:"employee_id"`
	FullDays      int     `json:"full_days"`
	HalfDays      int     `json:"half_days"`
	AbsentDays    int     `json:"absent_days"`
	LateMinutes   int     `json:"late_minutes"`
	OvertimeHours float64 `json:"overtime_hours"`
	TotalWorkDays float64 `json:"total_work_days"`
}

// AttendanceFilter narrows the admin listing.
type AttendanceFilter struct {
	EmployeeID string
	Status     string
	DateFrom   string
	DateTo     string
	Page       int
	Limit      int
}

// ListAttendanceResponse is a paged listing.
type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	Attendances []AttendanceResponse `json:"attendances"`
}
