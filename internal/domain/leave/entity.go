package leave

import "time"

// RequestStatus mirrors the leave-request lifecycle. Only approved requests
// participate in payroll.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// LeaveRequest is an inclusive [StartDate, EndDate] interval. This core only
// reads leave; the leave-management surface owns the lifecycle.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Reason     *string
	Status     RequestStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
