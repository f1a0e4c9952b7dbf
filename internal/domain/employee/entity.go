package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusTerminated Status = "terminated"
)

type Employee struct {
	ID           string
	FullName     string
	Email        string
	Phone        *string
	PositionID   *string
	DepartmentID *string
	Status       Status
	StartDate    *time.Time
	EndDate      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PayrollProfile is the denormalized snapshot the payroll engine needs:
// identity plus the pay rate resolved through the assigned position.
// BaseSalary is zero when the employee has no position.
type PayrollProfile struct {
	EmployeeID     string
	FullName       string
	DepartmentName string
	PositionTitle  string
	PositionLevel  string
	BaseSalary     decimal.Decimal
}
