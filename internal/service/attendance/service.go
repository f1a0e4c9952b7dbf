package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/facetrack-hrm/payroll-backend-go/internal/config"
	"github.com/facetrack-hrm/payroll-backend-go/internal/domain/attendance"
	"github.com/facetrack-hrm/payroll-backend-go/internal/domain/employee"
	"github.com/facetrack-hrm/payroll-backend-go/internal/pkg/events"
	"github.com/facetrack-hrm/payroll-backend-go/internal/pkg/face"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	matcher        face.Matcher
	hub            *events.Hub
	rules          config.WorkRulesConfig
	loc            *time.Location
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	matcher face.Matcher,
	hub *events.Hub,
	rules config.WorkRulesConfig,
) (attendance.AttendanceService, error) {
	loc, err := time.LoadLocation(rules.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid work rules timezone %q: %w", rules.Timezone, err)
	}
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		matcher:        matcher,
		hub:            hub,
		rules:          rules,
		loc:            loc,
	}, nil
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	formatted := t.In(loc).Format("2006-01-02 15:04:05")
	return &formatted
}

// RecordEvent implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RecordEvent(ctx context.Context, employeeID string, now time.Time) (attendance.EventResult, error) {
	exists, err := a.employeeRepo.Exists(ctx, employeeID)
	if err != nil {
		return attendance.EventResult{}, fmt.Errorf("failed to look up employee: %w", err)
	}
	if !exists {
		return attendance.EventResult{}, employee.ErrEmployeeNotFound
	}

	nowLocal := now.In(a.loc)
	dayStart := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, a.loc)
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	record, err := a.attendanceRepo.GetForDay(ctx, employeeID, dayStart, dayEnd)
	if err != nil {
		return attendance.EventResult{}, fmt.Errorf("failed to load attendance for day: %w", err)
	}

	if record == nil {
		checkIn := nowLocal
		created, inserted, err := a.attendanceRepo.CreateIfAbsent(ctx, attendance.Attendance{
			EmployeeID: employeeID,
			Date:       nowLocal,
			CheckIn:    &checkIn,
			Status:     attendance.StatusOnTime,
		})
		if err != nil {
			return attendance.EventResult{}, fmt.Errorf("failed to create attendance record: %w", err)
		}
		if inserted {
			a.hub.Publish(events.TypeCheckIn, map[string]string{
				"employee_id": employeeID,
				"date":        dayStart.Format("2006-01-02"),
			})
			return attendance.EventResult{
				Action:     attendance.ActionCheckIn,
				Attendance: a.mapToResponse(created),
			}, nil
		}
		// Lost the insert race: another event already opened the day.
		// Continue down the check-out branch with the stored record.
		record = &created
	}

	if record.CheckOut != nil {
		return attendance.EventResult{}, attendance.ErrAlreadyCheckedOut
	}

	checkOut := nowLocal
	record.CheckOut = &checkOut
	record.Status = a.checkOutStatus(record.CheckIn, checkOut)

	if err := a.attendanceRepo.Update(ctx, *record); err != nil {
		return attendance.EventResult{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	a.hub.Publish(events.TypeCheckOut, map[string]string{
		"employee_id": employeeID,
		"date":        dayStart.Format("2006-01-02"),
		"status":      string(record.Status),
	})

	return attendance.EventResult{
		Action:     attendance.ActionCheckOut,
		Attendance: a.mapToResponse(*record),
	}, nil
}

// checkOutStatus classifies the closed day. The late rule compares the
// check-out hour against the work START hour, which flags almost any
// check-out after the morning as late; that matches the deployed behavior
// and stays until the payroll policy owner rules otherwise.
func (a *AttendanceServiceImpl) checkOutStatus(checkIn *time.Time, checkOut time.Time) attendance.Status {
	status := attendance.StatusCheckOut
	if checkOut.In(a.loc).Hour() > a.rules.StartHour {
		status = attendance.StatusLate
	}

	if checkIn != nil {
		inLocal := checkIn.In(a.loc)
		outLocal := checkOut.In(a.loc)
		checkInMinutes := inLocal.Hour()*60 + inLocal.Minute()
		checkOutMinutes := outLocal.Hour()*60 + outLocal.Minute()
		// A day is half when check-in is late, or check-out early, by more
		// than a quarter of the work window.
		halfWindow := (a.rules.EndHour - a.rules.StartHour) * 30
		if checkInMinutes-a.rules.StartHour*60 > halfWindow ||
			a.rules.EndHour*60-checkOutMinutes > halfWindow {
			status = attendance.StatusHalfDay
		}
	}

	return status
}

// ProcessAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ProcessAttendance(ctx context.Context, imageBase64 string) (attendance.ProcessResult, error) {
	match, err := a.matcher.Match(ctx, imageBase64)
	if err != nil {
		return attendance.ProcessResult{}, fmt.Errorf("face match failed: %w", err)
	}

	if match.EmployeeID == "" {
		return attendance.ProcessResult{
			Success: false,
			Message: "no employee match",
		}, nil
	}

	result, err := a.RecordEvent(ctx, match.EmployeeID, time.Now())
	if err != nil {
		// Business rejections go back to the terminal inside the payload so
		// it can show them to the employee.
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) || errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.ProcessResult{
				Success:    false,
				EmployeeID: match.EmployeeID,
				FullName:   match.FullName,
				Message:    err.Error(),
			}, nil
		}
		return attendance.ProcessResult{}, err
	}

	return attendance.ProcessResult{
		Success:    true,
		EmployeeID: match.EmployeeID,
		FullName:   match.FullName,
		Action:     result.Action,
		Message:    "success",
	}, nil
}

// Tally implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Tally(ctx context.Context, employeeID string, start, end time.Time) (attendance.WorkingDayTally, error) {
	startLocal := start.In(a.loc)
	endLocal := end.In(a.loc)
	startDay := time.Date(startLocal.Year(), startLocal.Month(), startLocal.Day(), 0, 0, 0, 0, a.loc)
	endDay := time.Date(endLocal.Year(), endLocal.Month(), endLocal.Day(), 0, 0, 0, 0, a.loc)
	if endDay.Before(startDay) {
		return attendance.WorkingDayTally{}, attendance.ErrInvalidDateRange
	}

	records, err := a.attendanceRepo.ListByEmployeeBetween(ctx, employeeID, startDay, endDay.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		return attendance.WorkingDayTally{}, fmt.Errorf("failed to load attendance records: %w", err)
	}

	byDay := make(map[string]attendance.Attendance, len(records))
	for _, record := range records {
		byDay[record.Date.In(a.loc).Format("2006-01-02")] = record
	}

	tally := attendance.WorkingDayTally{EmployeeID: employeeID}
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		record, ok := byDay[day.Format("2006-01-02")]
		if !ok {
			// No record at all counts as absent, even for days that have not
			// elapsed yet. Inherited payroll policy.
			tally.AbsentDays++
			continue
		}

		switch record.Status {
		case attendance.StatusCheckOut:
			tally.FullDays++
		case attendance.StatusHalfDay:
			tally.HalfDays++
		case attendance.StatusAbsent:
			tally.AbsentDays++
		case attendance.StatusLate:
			tally.FullDays++
			if record.CheckIn != nil {
				inLocal := record.CheckIn.In(a.loc)
				late := inLocal.Hour()*60 + inLocal.Minute() - a.rules.StartHour*60
				if late > a.rules.LateThresholdMinutes {
					tally.LateMinutes += late
				}
			}
		}

		if record.CheckOut != nil {
			outLocal := record.CheckOut.In(a.loc)
			outHour := float64(outLocal.Hour()) + float64(outLocal.Minute())/60
			if outHour > float64(a.rules.EndHour) {
				tally.OvertimeHours += outHour - float64(a.rules.EndHour)
			}
		}
	}

	tally.TotalWorkDays = float64(tally.FullDays) + 0.5*float64(tally.HalfDays)
	return tally, nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := a.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return a.mapToResponse(record), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	records, total, err := a.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, a.mapToResponse(record))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		Attendances: responses,
	}, nil
}

// ListByEmployee implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.AttendanceResponse, error) {
	if end.Before(start) {
		return nil, attendance.ErrInvalidDateRange
	}

	records, err := a.attendanceRepo.ListByEmployeeBetween(ctx, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, a.mapToResponse(record))
	}
	return responses, nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	if err := a.attendanceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	return nil
}

func (a *AttendanceServiceImpl) mapToResponse(record attendance.Attendance) attendance.AttendanceResponse {
	var employeeName string
	if record.EmployeeName != nil {
		employeeName = *record.EmployeeName
	}

	return attendance.AttendanceResponse{
		ID:           record.ID,
		EmployeeID:   record.EmployeeID,
		EmployeeName: employeeName,
		Date:         record.Date.In(a.loc).Format("2006-01-02"),
		CheckIn:      timePtrToString(record.CheckIn, a.loc),
		CheckOut:     timePtrToString(record.CheckOut, a.loc),
		Status:       string(record.Status),
		Note:         record.Note,
	}
}
