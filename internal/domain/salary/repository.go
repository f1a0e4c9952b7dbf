package salary

import "context"

// SalaryRepository defines data access for salary records.
type SalaryRepository interface {
	// Upsert stores the record keyed by (EmployeeID, Month), fully replacing
	// any previous row for that key. Partial merges are not permitted.
	Upsert(ctx context.Context, s Salary) (Salary, error)

	// GetByEmployeeAndMonth retrieves one record; ErrSalaryNotFound when absent
	GetByEmployeeAndMonth(ctx context.Context, employeeID, month string) (Salary, error)

	// ListByEmployee retrieves all records for an employee
	ListByEmployee(ctx context.Context, employeeID string) ([]Salary, error)

	// List retrieves records with filters and pagination
	List(ctx context.Context, filter SalaryFilter) ([]Salary, int64, error)

	// Delete removes a record by id
	Delete(ctx context.Context, id string) error
}
