package leave

import (
	"context"
	"time"
)

// LeaveRepository exposes the read side payroll needs.
type LeaveRepository interface {
	// FindApprovedOverlapping returns approved requests whose span intersects
	// the half-open billing window [windowStart, windowEnd): startDate before
	// windowEnd and endDate at or after windowStart.
	FindApprovedOverlapping(ctx context.Context, employeeID string, windowStart, windowEnd time.Time) ([]LeaveRequest, error)
}
