package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/facetrack-hrm/payroll-backend-go/internal/domain/employee"
	"github.com/facetrack-hrm/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// Exists implements employee.EmployeeRepository.
func (e *employeeRepository) Exists(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, e.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check employee existence: %w", err)
	}

	return exists, nil
}

// GetPayrollProfile implements employee.EmployeeRepository. Department and
// position are optional on an employee, so the joins are LEFT and the
// salary falls back to zero.
func (e *employeeRepository) GetPayrollProfile(ctx context.Context, id string) (employee.PayrollProfile, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT e.id, e.full_name,
		       COALESCE(d.name, ''),
		       COALESCE(p.title, ''),
		       COALESCE(p.level, ''),
		       COALESCE(p.base_salary, 0)
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id
		LEFT JOIN positions p ON p.id = e.position_id
		WHERE e.id = $1
	`

	var profile employee.PayrollProfile
	err := q.QueryRow(ctx, query, id).Scan(
		&profile.EmployeeID, &profile.FullName,
		&profile.DepartmentName, &profile.PositionTitle, &profile.PositionLevel,
		&profile.BaseSalary,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.PayrollProfile{}, employee.ErrEmployeeNotFound
		}
		return employee.PayrollProfile{}, fmt.Errorf("failed to get payroll profile: %w", err)
	}

	return profile, nil
}

// GetActiveIDs implements employee.EmployeeRepository.
func (e *employeeRepository) GetActiveIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, `SELECT id FROM employees WHERE status = $1 ORDER BY id`, employee.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

// GetActiveIDsByDepartment implements employee.EmployeeRepository.
func (e *employeeRepository) GetActiveIDsByDepartment(ctx context.Context, departmentIDs []string) ([]string, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, `
		SELECT id FROM employees
		WHERE status = $1 AND department_id = ANY($2)
		ORDER BY id
	`, employee.StatusActive, departmentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees by department: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

func scanIDs(rows pgx.Rows) ([]string, error) {
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee rows: %w", err)
	}

	return ids, nil
}
