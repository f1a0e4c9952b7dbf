package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedOut  = errors.New("already checked out today, no further events accepted")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidDateRange   = errors.New("end date must not be before start date")
	ErrNoFaceMatch        = errors.New("no employee match for the given image")
)
