package salary

import "context"

// SalaryService derives and stores payroll records.
type SalaryService interface {
	// Generate derives the salary record for one employee and month
	// (YYYY-MM) and upserts it. Regeneration with unchanged inputs stores an
	// identical record.
	Generate(ctx context.Context, employeeID, month string) (SalaryResponse, error)

	// GenerateMany fans Generate out over the ids under the configured
	// concurrency limit. Employee-not-found is skipped; any other failure
	// stops dispatch of queued units while in-flight units finish.
	GenerateMany(ctx context.Context, employeeIDs []string, month string) (BatchResult, error)

	// GenerateForDepartment generates for active employees of the departments
	GenerateForDepartment(ctx context.Context, departmentIDs []string, month string) (BatchResult, error)

	// GenerateForAll generates for every active employee
	GenerateForAll(ctx context.Context, month string) (BatchResult, error)

	// GetByEmployeeAndMonth retrieves a stored record
	GetByEmployeeAndMonth(ctx context.Context, employeeID, month string) (SalaryResponse, error)

	// ListByEmployee retrieves all stored records for an employee
	ListByEmployee(ctx context.Context, employeeID string) ([]SalaryResponse, error)

	// List retrieves stored records with filters
	List(ctx context.Context, filter SalaryFilter) (ListSalaryResponse, error)

	// Delete removes a stored record
	Delete(ctx context.Context, id string) error
}
