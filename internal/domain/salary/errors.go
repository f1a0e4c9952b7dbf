package salary

import "errors"

var (
	ErrSalaryNotFound = errors.New("salary record not found")
	ErrInvalidMonth   = errors.New("month must be in format YYYY-MM")
)
