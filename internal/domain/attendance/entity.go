package attendance

import (
	"time"
)

// Status classifies a single attendance day.
type Status string

const (
	StatusOnTime   Status = "on-time"
	StatusLate     Status = "late"
	StatusHalfDay  Status = "half-day"
	StatusAbsent   Status = "absent"
	StatusCheckOut Status = "check-out"
)

// Attendance is one logical record per employee per calendar day. It is
// created by the first clock event of the day, closed by the second, and
// never touched by a third.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     Status
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}
