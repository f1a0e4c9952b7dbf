package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// RecordEvent applies one clock event for the employee: the first event
	// of the local day is a check-in, the second a check-out, a third is
	// rejected with ErrAlreadyCheckedOut.
	RecordEvent(ctx context.Context, employeeID string, now time.Time) (EventResult, error)

	// ProcessAttendance resolves the employee through the face recognition
	// oracle and applies a clock event for the match.
	ProcessAttendance(ctx context.Context, imageBase64 string) (ProcessResult, error)

	// Tally aggregates day-level counts for the employee over
	// [start, end] inclusive. Days without a record count as absent.
	Tally(ctx context.Context, employeeID string, start, end time.Time) (WorkingDayTally, error)

	// GetAttendance retrieves a single record by ID
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// ListAttendance retrieves records with filters (admin)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// ListByEmployee retrieves the employee's records for a date range
	ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]AttendanceResponse, error)

	// DeleteAttendance removes a record (admin correction path)
	DeleteAttendance(ctx context.Context, id string) error
}
