package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/facetrack-hrm/payroll-backend-go/internal/domain/leave"
	"github.com/facetrack-hrm/payroll-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRequestRepository{db: db}
}

// FindApprovedOverlapping implements leave.LeaveRepository. A request
// overlaps the window when it starts before the window ends and ends on or
// after the window starts; clipping to the window is the caller's job.
func (l *leaveRequestRepository) FindApprovedOverlapping(ctx context.Context, employeeID string, windowStart, windowEnd time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, employee_id, start_date, end_date, reason, status, created_at, updated_at
		FROM leave_requests
		WHERE employee_id = $1
		  AND status = $2
		  AND start_date < $3
		  AND end_date >= $4
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, leave.StatusApproved, windowEnd, windowStart)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.StartDate, &req.EndDate,
			&req.Reason, &req.Status, &req.CreatedAt, &req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request row: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leave request rows: %w", err)
	}

	return requests, nil
}
