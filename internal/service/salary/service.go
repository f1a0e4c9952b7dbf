package salary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/facetrack-hrm/payroll-backend-go/internal/config"
	"github.com/facetrack-hrm/payroll-backend-go/internal/domain/attendance"
	"github.com/facetrack-hrm/payroll-backend-go/internal/domain/employee"
	"github.com/facetrack-hrm/payroll-backend-go/internal/domain/leave"
	"github.com/facetrack-hrm/payroll-backend-go/internal/domain/salary"
	"github.com/facetrack-hrm/payroll-backend-go/internal/pkg/events"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type SalaryServiceImpl struct {
	salaryRepo    salary.SalaryRepository
	employeeRepo  employee.EmployeeRepository
	leaveRepo     leave.LeaveRepository
	attendanceSvc attendance.AttendanceService
	overlap       *OverlapCalculator
	hub           *events.Hub
	cfg           config.PayrollConfig
	hoursPerMonth decimal.Decimal
}

func NewSalaryService(
	salaryRepo salary.SalaryRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRepository,
	attendanceSvc attendance.AttendanceService,
	overlap *OverlapCalculator,
	hub *events.Hub,
	cfg config.PayrollConfig,
) salary.SalaryService {
	return &SalaryServiceImpl{
		salaryRepo:    salaryRepo,
		employeeRepo:  employeeRepo,
		leaveRepo:     leaveRepo,
		attendanceSvc: attendanceSvc,
		overlap:       overlap,
		hub:           hub,
		cfg:           cfg,
		hoursPerMonth: decimal.NewFromInt(int64(cfg.WorkDaysPerMonth) * int64(cfg.WorkHoursPerDay)),
	}
}

// Generate implements salary.SalaryService.
func (s *SalaryServiceImpl) Generate(ctx context.Context, employeeID, month string) (salary.SalaryResponse, error) {
	if !salary.ValidMonth(month) {
		return salary.SalaryResponse{}, salary.ErrInvalidMonth
	}

	record, err := s.derive(ctx, employeeID, month)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	stored, err := s.salaryRepo.Upsert(ctx, record)
	if err != nil {
		return salary.SalaryResponse{}, fmt.Errorf("failed to upsert salary record: %w", err)
	}

	s.hub.Publish(events.TypeSalaryCreated, map[string]string{
		"employee_id": employeeID,
		"month":       month,
	})

	return mapToResponse(stored), nil
}

// derive computes the full salary record without storing it.
func (s *SalaryServiceImpl) derive(ctx context.Context, employeeID, month string) (salary.Salary, error) {
	profile, err := s.employeeRepo.GetPayrollProfile(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return salary.Salary{}, employee.ErrEmployeeNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to resolve payroll profile: %w", err)
	}

	windowStart, windowEnd, err := monthWindow(month)
	if err != nil {
		return salary.Salary{}, err
	}

	tally, err := s.attendanceSvc.Tally(ctx, employeeID, windowStart, windowEnd.AddDate(0, 0, -1))
	if err != nil {
		return salary.Salary{}, fmt.Errorf("failed to tally working days: %w", err)
	}

	leaves, err := s.leaveRepo.FindApprovedOverlapping(ctx, employeeID, windowStart, windowEnd)
	if err != nil {
		return salary.Salary{}, fmt.Errorf("failed to load approved leave: %w", err)
	}

	offDates := 0
	lastDay := windowEnd.AddDate(0, 0, -1)
	for _, l := range leaves {
		offDates += s.overlap.OverlapDays(l.StartDate, l.EndDate, windowStart, lastDay)
	}

	hourlyRate := profile.BaseSalary.Div(s.hoursPerMonth)

	bonus := decimal.NewFromFloat(tally.OvertimeHours).
		Mul(hourlyRate).
		Mul(s.cfg.OvertimeRate)
	if offDates == 0 {
		bonus = bonus.Add(s.cfg.BonusWhenNoLeave)
	}
	bonus = clampZero(bonus.Ceil())

	deductions := decimal.NewFromInt(int64(tally.LateMinutes)).Mul(s.cfg.LatePenaltyPerMinute).
		Add(decimal.NewFromInt(int64(tally.AbsentDays)).Mul(s.cfg.AbsencePenaltyPerDay))
	deductions = clampZero(deductions.Ceil())

	netSalary := clampZero(decimal.NewFromFloat(tally.TotalWorkDays).
		Mul(hourlyRate).
		Add(bonus).
		Sub(deductions))

	return salary.Salary{
		EmployeeID:    employeeID,
		Month:         month,
		FullName:      profile.FullName,
		Department:    profile.DepartmentName,
		Position:      profile.PositionTitle,
		Level:         profile.PositionLevel,
		WorkDates:     tally.TotalWorkDays,
		OffDates:      offDates,
		OvertimeHours: tally.OvertimeHours,
		LateMinutes:   tally.LateMinutes,
		AbsenceDays:   tally.AbsentDays,
		BaseSalary:    profile.BaseSalary,
		Bonus:         bonus,
		Deductions:    deductions,
		NetSalary:     netSalary,
	}, nil
}

// GenerateMany implements salary.SalaryService. At most MaxConcurrent
// generations run at once. Unknown employees are skipped; the first other
// failure stops dispatch of queued units while in-flight units finish, and
// is returned alongside the partial result. Units the abort prevented from
// running are reported as skipped, not failed.
func (s *SalaryServiceImpl) GenerateMany(ctx context.Context, employeeIDs []string, month string) (salary.BatchResult, error) {
	result := salary.BatchResult{
		Succeeded: []string{},
		Skipped:   []string{},
		Failed:    []salary.BatchFailure{},
	}

	if !salary.ValidMonth(month) {
		return result, salary.ErrInvalidMonth
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrent)

	var mu sync.Mutex
	for _, id := range employeeIDs {
		// A failed or cancelled batch stops dispatching; units already
		// running are left to finish.
		if gctx.Err() != nil {
			break
		}

		employeeID := id
		g.Go(func() error {
			// The batch may have been aborted while this unit waited on the
			// concurrency limit.
			if gctx.Err() != nil {
				mu.Lock()
				result.Skipped = append(result.Skipped, employeeID)
				mu.Unlock()
				return nil
			}

			_, err := s.Generate(gctx, employeeID, month)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				result.Succeeded = append(result.Succeeded, employeeID)
			case errors.Is(err, employee.ErrEmployeeNotFound):
				result.Skipped = append(result.Skipped, employeeID)
			case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
				result.Skipped = append(result.Skipped, employeeID)
			default:
				result.Failed = append(result.Failed, salary.BatchFailure{
					EmployeeID: employeeID,
					Error:      err.Error(),
				})
				return err
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil && ctx.Err() != nil {
		// Caller cancelled before or during the batch without any unit
		// failing on its own.
		err = ctx.Err()
	}

	s.hub.Publish(events.TypeBatchFinished, map[string]interface{}{
		"month":     month,
		"succeeded": len(result.Succeeded),
		"skipped":   len(result.Skipped),
		"failed":    len(result.Failed),
	})

	if err != nil {
		slog.Error("salary batch aborted", "month", month, "error", err,
			"succeeded", len(result.Succeeded), "skipped", len(result.Skipped))
		return result, err
	}

	return result, nil
}

// GenerateForDepartment implements salary.SalaryService.
func (s *SalaryServiceImpl) GenerateForDepartment(ctx context.Context, departmentIDs []string, month string) (salary.BatchResult, error) {
	if !salary.ValidMonth(month) {
		return salary.BatchResult{}, salary.ErrInvalidMonth
	}

	ids, err := s.employeeRepo.GetActiveIDsByDepartment(ctx, departmentIDs)
	if err != nil {
		return salary.BatchResult{}, fmt.Errorf("failed to list department employees: %w", err)
	}
	return s.GenerateMany(ctx, ids, month)
}

// GenerateForAll implements salary.SalaryService.
func (s *SalaryServiceImpl) GenerateForAll(ctx context.Context, month string) (salary.BatchResult, error) {
	if !salary.ValidMonth(month) {
		return salary.BatchResult{}, salary.ErrInvalidMonth
	}

	ids, err := s.employeeRepo.GetActiveIDs(ctx)
	if err != nil {
		return salary.BatchResult{}, fmt.Errorf("failed to list active employees: %w", err)
	}
	return s.GenerateMany(ctx, ids, month)
}

// GetByEmployeeAndMonth implements salary.SalaryService.
func (s *SalaryServiceImpl) GetByEmployeeAndMonth(ctx context.Context, employeeID, month string) (salary.SalaryResponse, error) {
	if !salary.ValidMonth(month) {
		return salary.SalaryResponse{}, salary.ErrInvalidMonth
	}

	record, err := s.salaryRepo.GetByEmployeeAndMonth(ctx, employeeID, month)
	if err != nil {
		if errors.Is(err, salary.ErrSalaryNotFound) {
			return salary.SalaryResponse{}, salary.ErrSalaryNotFound
		}
		return salary.SalaryResponse{}, fmt.Errorf("failed to get salary record: %w", err)
	}
	return mapToResponse(record), nil
}

// ListByEmployee implements salary.SalaryService.
func (s *SalaryServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]salary.SalaryResponse, error) {
	exists, err := s.employeeRepo.Exists(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up employee: %w", err)
	}
	if !exists {
		return nil, employee.ErrEmployeeNotFound
	}

	records, err := s.salaryRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}

	responses := make([]salary.SalaryResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, mapToResponse(record))
	}
	return responses, nil
}

// List implements salary.SalaryService.
func (s *SalaryServiceImpl) List(ctx context.Context, filter salary.SalaryFilter) (salary.ListSalaryResponse, error) {
	if filter.Month != "" && !salary.ValidMonth(filter.Month) {
		return salary.ListSalaryResponse{}, salary.ErrInvalidMonth
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	records, total, err := s.salaryRepo.List(ctx, filter)
	if err != nil {
		return salary.ListSalaryResponse{}, fmt.Errorf("failed to list salary records: %w", err)
	}

	responses := make([]salary.SalaryResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, mapToResponse(record))
	}

	return salary.ListSalaryResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Salaries:   responses,
	}, nil
}

// Delete implements salary.SalaryService.
func (s *SalaryServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.salaryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, salary.ErrSalaryNotFound) {
			return salary.ErrSalaryNotFound
		}
		return fmt.Errorf("failed to delete salary record: %w", err)
	}
	return nil
}

// monthWindow returns the half-open [first instant of month, first instant
// of next month) billing window in UTC.
func monthWindow(month string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01", month, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, salary.ErrInvalidMonth
	}
	return start, start.AddDate(0, 1, 0), nil
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func mapToResponse(record salary.Salary) salary.SalaryResponse {
	return salary.SalaryResponse{
		ID:            record.ID,
		EmployeeID:    record.EmployeeID,
		Month:         record.Month,
		FullName:      record.FullName,
		Department:    record.Department,
		Position:      record.Position,
		Level:         record.Level,
		WorkDates:     record.WorkDates,
		OffDates:      record.OffDates,
		OvertimeHours: record.OvertimeHours,
		LateMinutes:   record.LateMinutes,
		AbsenceDays:   record.AbsenceDays,
		BaseSalary:    record.BaseSalary,
		Bonus:         record.Bonus,
		Deductions:    record.Deductions,
		NetSalary:     record.NetSalary,
	}
}
