package salary

import (
	"regexp"

	"github.com/shopspring/decimal"
)

var monthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidMonth reports whether s is a YYYY-MM month string.
func ValidMonth(s string) bool {
	return monthRegex.MatchString(s)
}

// SalaryResponse is the wire representation of a salary record.
type SalaryResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	Month         string          `json:"month"`
	FullName      string          `json:"full_name"`
	Department    string          `json:"department"`
	Position      string          `json:"position"`
	Level         string          `json:"level"`
	WorkDates     float64         `json:"work_dates"`
	OffDates      int             `json:"off_dates"`
	OvertimeHours float64         `json:"overtime_hours"`
	LateMinutes   int             `json:"late_minutes"`
	AbsenceDays   int             `json:"absence_days"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	Bonus         decimal.Decimal `json:"bonus"`
	Deductions    decimal.Decimal `json:"deductions"`
	NetSalary     decimal.Decimal `json:"net_salary"`
}

// BatchFailure names the employee whose generation failed and why.
type BatchFailure struct {
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

// BatchResult enumerates the outcome of a GenerateMany run. A partial
// failure never surfaces as a bare error; callers read the buckets. Skipped
// holds units that never generated: unknown employees, and units an aborted
// batch did not run.
type BatchResult struct {
	Succeeded []string       `json:"succeeded"`
	Skipped   []string       `json:"skipped"`
	Failed    []BatchFailure `json:"failed"`
}

// SalaryFilter narrows listings.
type SalaryFilter struct {
	Month      string
	EmployeeID string
	Page       int
	Limit      int
}

// ListSalaryResponse is a paged listing.
type ListSalaryResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Salaries   []SalaryResponse `json:"salaries"`
}
