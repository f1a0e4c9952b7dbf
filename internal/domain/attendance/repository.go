package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records.
type AttendanceRepository interface {
	// CreateIfAbsent inserts a record unless one already exists for the
	// employee on the record's calendar day. The bool reports whether the
	// insert happened; when it is false the stored record is returned so the
	// caller can continue with the existing one. This is the atomic guard
	// against two concurrent first events of the day.
	CreateIfAbsent(ctx context.Context, att Attendance) (Attendance, bool, error)

	// GetForDay retrieves the record whose date falls in [dayStart, dayEnd]
	// for the employee. Returns nil when the day has no record yet.
	GetForDay(ctx context.Context, employeeID string, dayStart, dayEnd time.Time) (*Attendance, error)

	// Update replaces the mutable fields of an existing record
	Update(ctx context.Context, att Attendance) error

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// ListByEmployeeBetween retrieves all records for the employee whose date
	// falls in [start, end], ordered by date
	ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// Delete removes an attendance record
	Delete(ctx context.Context, id string) error
}
