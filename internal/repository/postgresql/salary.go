package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/facetrack-hrm/payroll-backend-go/internal/domain/salary"
	"github.com/facetrack-hrm/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepository{db: db}
}

const salaryColumns = `id, employee_id, month, full_name, department, position, level,
	work_dates, off_dates, overtime_hours, late_minutes, absence_days,
	base_salary, bonus, deductions, net_salary, created_at, updated_at`

func scanSalary(row pgx.Row) (salary.Salary, error) {
	var s salary.Salary
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Month, &s.FullName, &s.Department, &s.Position, &s.Level,
		&s.WorkDates, &s.OffDates, &s.OvertimeHours, &s.LateMinutes, &s.AbsenceDays,
		&s.BaseSalary, &s.Bonus, &s.Deductions, &s.NetSalary, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Upsert implements salary.SalaryRepository. Regenerating a month replaces
// every derived figure for the (employee, month) pair in place, so repeated
// runs stay idempotent.
func (s *salaryRepository) Upsert(ctx context.Context, sal salary.Salary) (salary.Salary, error) {
	q := GetQuerier(ctx, s.db)

	sal.ID = uuid.NewString()

	query := `
		INSERT INTO salaries (
			id, employee_id, month, full_name, department, position, level,
			work_dates, off_dates, overtime_hours, late_minutes, absence_days,
			base_salary, bonus, deductions, net_salary
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (employee_id, month) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			department = EXCLUDED.department,
			position = EXCLUDED.position,
			level = EXCLUDED.level,
			work_dates = EXCLUDED.work_dates,
			off_dates = EXCLUDED.off_dates,
			overtime_hours = EXCLUDED.overtime_hours,
			late_minutes = EXCLUDED.late_minutes,
			absence_days = EXCLUDED.absence_days,
			base_salary = EXCLUDED.base_salary,
			bonus = EXCLUDED.bonus,
			deductions = EXCLUDED.deductions,
			net_salary = EXCLUDED.net_salary,
			updated_at = NOW()
		RETURNING ` + salaryColumns

	stored, err := scanSalary(q.QueryRow(ctx, query,
		sal.ID, sal.EmployeeID, sal.Month, sal.FullName, sal.Department, sal.Position, sal.Level,
		sal.WorkDates, sal.OffDates, sal.OvertimeHours, sal.LateMinutes, sal.AbsenceDays,
		sal.BaseSalary, sal.Bonus, sal.Deductions, sal.NetSalary,
	))
	if err != nil {
		return salary.Salary{}, fmt.Errorf("failed to upsert salary: %w", err)
	}

	return stored, nil
}

// GetByEmployeeAndMonth implements salary.SalaryRepository.
func (s *salaryRepository) GetByEmployeeAndMonth(ctx context.Context, employeeID, month string) (salary.Salary, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT ` + salaryColumns + `
		FROM salaries
		WHERE employee_id = $1 AND month = $2
	`

	sal, err := scanSalary(q.QueryRow(ctx, query, employeeID, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to get salary: %w", err)
	}

	return sal, nil
}

// ListByEmployee implements salary.SalaryRepository.
func (s *salaryRepository) ListByEmployee(ctx context.Context, employeeID string) ([]salary.Salary, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT ` + salaryColumns + `
		FROM salaries
		WHERE employee_id = $1
		ORDER BY month DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries by employee: %w", err)
	}
	defer rows.Close()

	return collectSalaries(rows)
}

// List implements salary.SalaryRepository.
func (s *salaryRepository) List(ctx context.Context, filter salary.SalaryFilter) ([]salary.Salary, int64, error) {
	q := GetQuerier(ctx, s.db)

	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.Month != "" {
		conditions = append(conditions, fmt.Sprintf("month = $%d", argPos))
		args = append(args, filter.Month)
		argPos++
	}
	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argPos))
		args = append(args, filter.EmployeeID)
		argPos++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM salaries %s`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count salaries: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM salaries
		%s
		ORDER BY month DESC, full_name ASC
		LIMIT $%d OFFSET $%d
	`, salaryColumns, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list salaries: %w", err)
	}
	defer rows.Close()

	records, err := collectSalaries(rows)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// Delete implements salary.SalaryRepository.
func (s *salaryRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, s.db)

	tag, err := q.Exec(ctx, `DELETE FROM salaries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete salary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrSalaryNotFound
	}

	return nil
}

func collectSalaries(rows pgx.Rows) ([]salary.Salary, error) {
	var records []salary.Salary
	for rows.Next() {
		sal, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary row: %w", err)
		}
		records = append(records, sal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read salary rows: %w", err)
	}

	return records, nil
}
