package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/facetrack-hrm/payroll-backend-go/internal/domain/salary"
)

type PayrollJobs struct {
	salarySvc salary.SalaryService
	loc       *time.Location
}

func NewPayrollJobs(salarySvc salary.SalaryService, loc *time.Location) *PayrollJobs {
	return &PayrollJobs{
		salarySvc: salarySvc,
		loc:       loc,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_generate_monthly_salaries", 1*time.Hour, j.AutoGenerateMonthlySalaries)
}

// AutoGenerateMonthlySalaries closes the previous month's payroll. The job
// ticks hourly but only acts in the first hour of the first day of the month.
// Generation upserts, so a retry on the next tick is harmless.
func (j *PayrollJobs) AutoGenerateMonthlySalaries(ctx context.Context) error {
	now := time.Now().In(j.loc)
	if now.Day() != 1 || now.Hour() != 0 {
		return nil
	}

	month := now.AddDate(0, -1, 0).Format("2006-01")
	slog.Info("Cron: Starting monthly salary generation", "month", month)

	result, err := j.salarySvc.GenerateForAll(ctx, month)
	if err != nil {
		return fmt.Errorf("failed to generate salaries for %s: %w", month, err)
	}

	slog.Info("Cron: Monthly salary generation finished",
		"month", month,
		"succeeded", len(result.Succeeded),
		"skipped", len(result.Skipped),
		"failed", len(result.Failed),
	)
	return nil
}
