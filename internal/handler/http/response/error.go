package response

import (
	"errors"
	"net/http"

	"github.com/facetrack-hrm/payroll-backend-go/internal/domain/attendance"
	"github.com/facetrack-hrm/payroll-backend-go/internal/domain/employee"
	"github.com/facetrack-hrm/payroll-backend-go/internal/domain/salary"
	"github.com/facetrack-hrm/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, attendance.ErrNoFaceMatch):
		NotFound(w, "No employee match for the given image")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Salary domain errors
	case errors.Is(err, salary.ErrSalaryNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, salary.ErrInvalidMonth):
		BadRequest(w, "Month must be in format YYYY-MM", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
