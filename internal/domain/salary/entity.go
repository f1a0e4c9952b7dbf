package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// Salary is the per-employee-per-month payroll record. It is keyed uniquely
// by (EmployeeID, Month); regeneration fully replaces the row, so generating
// twice from unchanged inputs stores the same record.
type Salary struct {
	ID         string
	EmployeeID string
	Month      string // YYYY-MM

	// Snapshots denormalized at generation time
	FullName   string
	Department string
	Position   string
	Level      string

	WorkDates     float64
	OffDates      int
	OvertimeHours float64
	LateMinutes   int
	AbsenceDays   int

	BaseSalary decimal.Decimal
	Bonus      decimal.Decimal
	Deductions decimal.Decimal
	NetSalary  decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}
