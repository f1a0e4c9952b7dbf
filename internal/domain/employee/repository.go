package employee

import "context"

// EmployeeRepository is the read side of the employee directory.
type EmployeeRepository interface {
	// Exists reports whether the employee id is known
	Exists(ctx context.Context, id string) (bool, error)

	// GetPayrollProfile resolves the snapshot payroll denormalizes into the
	// salary record. Returns ErrEmployeeNotFound when the id is unknown.
	GetPayrollProfile(ctx context.Context, id string) (PayrollProfile, error)

	// GetActiveIDs lists ids of all active employees
	GetActiveIDs(ctx context.Context) ([]string, error)

	// GetActiveIDsByDepartment lists ids of active employees in the departments
	GetActiveIDsByDepartment(ctx context.Context, departmentIDs []string) ([]string, error)
}
