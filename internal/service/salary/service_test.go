package salary

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/facetrack-hrm/payroll-backend-go/internal/config"
	"github.com/facetrack-hrm/payroll-backend-go/internal/domain/attendance"
	"github.com/facetrack-hrm/payroll-backend-go/internal/domain/employee"
	"github.com/facetrack-hrm/payroll-backend-go/internal/domain/leave"
	"github.com/facetrack-hrm/payroll-backend-go/internal/domain/salary"
	"github.com/facetrack-hrm/payroll-backend-go/internal/pkg/events"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayrollConfig() config.PayrollConfig {
	return config.PayrollConfig{
		WorkDaysPerMonth:     26,
		WorkHoursPerDay:      8,
		OvertimeRate:         decimal.NewFromFloat(1.5),
		LatePenaltyPerMinute: decimal.NewFromInt(2000),
		AbsencePenaltyPerDay: decimal.NewFromInt(300000),
		BonusWhenNoLeave:     decimal.NewFromInt(500000),
		MaxConcurrent:        3,
	}
}

type fakeSalaryRepo struct {
	mu      sync.Mutex
	records map[string]salary.Salary // keyed by employeeID/month
	upserts int
}

func newFakeSalaryRepo() *fakeSalaryRepo {
	return &fakeSalaryRepo{records: make(map[string]salary.Salary)}
}

func (f *fakeSalaryRepo) Upsert(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := s.EmployeeID + "/" + s.Month
	if existing, ok := f.records[key]; ok {
		s.ID = existing.ID
	} else {
		s.ID = "sal-" + key
	}
	f.records[key] = s
	f.upserts++
	return s, nil
}

func (f *fakeSalaryRepo) GetByEmployeeAndMonth(ctx context.Context, employeeID, month string) (salary.Salary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.records[employeeID+"/"+month]; ok {
		return s, nil
	}
	return salary.Salary{}, salary.ErrSalaryNotFound
}

func (f *fakeSalaryRepo) ListByEmployee(ctx context.Context, employeeID string) ([]salary.Salary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []salary.Salary
	for _, s := range f.records {
		if s.EmployeeID == employeeID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSalaryRepo) List(ctx context.Context, filter salary.SalaryFilter) ([]salary.Salary, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []salary.Salary
	for _, s := range f.records {
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSalaryRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, s := range f.records {
		if s.ID == id {
			delete(f.records, key)
			return nil
		}
	}
	return salary.ErrSalaryNotFound
}

type fakeEmployeeRepo struct {
	profiles map[string]employee.PayrollProfile
	failing  map[string]error
}

func (f *fakeEmployeeRepo) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := f.profiles[id]
	return ok, nil
}

func (f *fakeEmployeeRepo) GetPayrollProfile(ctx context.Context, id string) (employee.PayrollProfile, error) {
	if err, ok := f.failing[id]; ok {
		return employee.PayrollProfile{}, err
	}
	profile, ok := f.profiles[id]
	if !ok {
		return employee.PayrollProfile{}, employee.ErrEmployeeNotFound
	}
	return profile, nil
}

func (f *fakeEmployeeRepo) GetActiveIDs(ctx context.Context) ([]string, error) {
	var ids []string
	for id := range f.profiles {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeEmployeeRepo) GetActiveIDsByDepartment(ctx context.Context, departmentIDs []string) ([]string, error) {
	return f.GetActiveIDs(ctx)
}

type fakeLeaveRepo struct {
	leaves map[string][]leave.LeaveRequest
}

func (f *fakeLeaveRepo) FindApprovedOverlapping(ctx context.Context, employeeID string, windowStart, windowEnd time.Time) ([]leave.LeaveRequest, error) {
	return f.leaves[employeeID], nil
}

// stubAttendanceService serves canned tallies; only Tally is exercised here.
type stubAttendanceService struct {
	mu        sync.Mutex
	tallies   map[string]attendance.WorkingDayTally
	lastStart time.Time
	lastEnd   time.Time
	inFlight  atomic.Int32
	peak      atomic.Int32
}

func (s *stubAttendanceService) Tally(ctx context.Context, employeeID string, start, end time.Time) (attendance.WorkingDayTally, error) {
	current := s.inFlight.Add(1)
	for {
		peak := s.peak.Load()
		if current <= peak || s.peak.CompareAndSwap(peak, current) {
			break
		}
	}
	time.Sleep(time.Millisecond)
	s.inFlight.Add(-1)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastStart = start
	s.lastEnd = end
	tally, ok := s.tallies[employeeID]
	if !ok {
		return attendance.WorkingDayTally{EmployeeID: employeeID}, nil
	}
	return tally, nil
}

func (s *stubAttendanceService) RecordEvent(ctx context.Context, employeeID string, now time.Time) (attendance.EventResult, error) {
	return attendance.EventResult{}, nil
}

func (s *stubAttendanceService) ProcessAttendance(ctx context.Context, imageBase64 string) (attendance.ProcessResult, error) {
	return attendance.ProcessResult{}, nil
}

func (s *stubAttendanceService) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func (s *stubAttendanceService) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return attendance.ListAttendanceResponse{}, nil
}

func (s *stubAttendanceService) ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.AttendanceResponse, error) {
	return nil, nil
}

func (s *stubAttendanceService) DeleteAttendance(ctx context.Context, id string) error {
	return nil
}

type salaryTestEnv struct {
	svc           salary.SalaryService
	salaryRepo    *fakeSalaryRepo
	employeeRepo  *fakeEmployeeRepo
	leaveRepo     *fakeLeaveRepo
	attendanceSvc *stubAttendanceService
}

func newSalaryTestEnv() *salaryTestEnv {
	return newSalaryTestEnvWith(testPayrollConfig())
}

func newSalaryTestEnvWith(cfg config.PayrollConfig) *salaryTestEnv {
	env := &salaryTestEnv{
		salaryRepo: newFakeSalaryRepo(),
		employeeRepo: &fakeEmployeeRepo{
			profiles: map[string]employee.PayrollProfile{},
			failing:  map[string]error{},
		},
		leaveRepo:     &fakeLeaveRepo{leaves: map[string][]leave.LeaveRequest{}},
		attendanceSvc: &stubAttendanceService{tallies: map[string]attendance.WorkingDayTally{}},
	}
	env.svc = NewSalaryService(
		env.salaryRepo,
		env.employeeRepo,
		env.leaveRepo,
		env.attendanceSvc,
		NewOverlapCalculator(),
		events.NewHub(),
		cfg,
	)
	return env
}

func (env *salaryTestEnv) addEmployee(id string, baseSalary int64) {
	env.employeeRepo.profiles[id] = employee.PayrollProfile{
		EmployeeID:     id,
		FullName:       "An Nguyen",
		DepartmentName: "Engineering",
		PositionTitle:  "Engineer",
		PositionLevel:  "Mid",
		BaseSalary:     decimal.NewFromInt(baseSalary),
	}
}

func TestGenerate_DerivesScenarioFigures(t *testing.T) {
	env := newSalaryTestEnv()
	env.addEmployee("emp-1", 10_000_000)
	env.attendanceSvc.tallies["emp-1"] = attendance.WorkingDayTally{
		EmployeeID:    "emp-1",
		FullDays:      24,
		AbsentDays:    2,
		TotalWorkDays: 24,
	}

	result, err := env.svc.Generate(context.Background(), "emp-1", "2024-02")
	require.NoError(t, err)

	assert.Equal(t, decimal.NewFromInt(500000).String(), result.Bonus.String())
	assert.Equal(t, decimal.NewFromInt(600000).String(), result.Deductions.String())
	// 24 x (10,000,000 / 208) + 500,000 - 600,000
	assert.InDelta(t, 1_053_846.15, result.NetSalary.InexactFloat64(), 0.01)
	assert.Equal(t, "An Nguyen", result.FullName)
	assert.Equal(t, "Engineering", result.Department)
}

func TestGenerate_LeaveWithholdsFullPresenceBonus(t *testing.T) {
	env := newSalaryTestEnv()
	env.addEmployee("emp-1", 10_000_000)
	env.attendanceSvc.tallies["emp-1"] = attendance.WorkingDayTally{TotalWorkDays: 20, FullDays: 20}
	env.leaveRepo.leaves["emp-1"] = []leave.LeaveRequest{{
		EmployeeID: "emp-1",
		StartDate:  day(2024, time.February, 5),
		EndDate:    day(2024, time.February, 7),
		Status:     leave.StatusApproved,
	}}

	result, err := env.svc.Generate(context.Background(), "emp-1", "2024-02")
	require.NoError(t, err)

	assert.Equal(t, 3, result.OffDates)
	assert.True(t, result.Bonus.IsZero(), "no overtime and leave taken: bonus should be zero, got %s", result.Bonus)
}

func TestGenerate_OvertimeBonusRoundedUp(t *testing.T) {
	env := newSalaryTestEnv()
	env.addEmployee("emp-1", 10_000_000)
	env.attendanceSvc.tallies["emp-1"] = attendance.WorkingDayTally{
		TotalWorkDays: 26,
		FullDays:      26,
		OvertimeHours: 2.5,
	}

	result, err := env.svc.Generate(context.Background(), "emp-1", "2024-02")
	require.NoError(t, err)

	// 2.5 x 48,076.92... x 1.5 = 180,288.46..., ceil + presence bonus
	assert.Equal(t, "680289", result.Bonus.String())
}

func TestGenerate_NetSalaryNeverNegative(t *testing.T) {
	env := newSalaryTestEnv()
	env.addEmployee("emp-1", 1_000_000)
	env.attendanceSvc.tallies["emp-1"] = attendance.WorkingDayTally{AbsentDays: 26}

	result, err := env.svc.Generate(context.Background(), "emp-1", "2024-02")
	require.NoError(t, err)

	assert.True(t, result.NetSalary.IsZero(), "net salary must clamp at zero, got %s", result.NetSalary)
}

func TestGenerate_InvalidMonth(t *testing.T) {
	env := newSalaryTestEnv()
	env.addEmployee("emp-1", 10_000_000)

	for _, month := range []string{"2024-13", "2024-00", "202402", "2024-2", "abc"} {
		_, err := env.svc.Generate(context.Background(), "emp-1", month)
		assert.ErrorIs(t, err, salary.ErrInvalidMonth, "month %q", month)
	}
}

func TestGenerate_UnknownEmployee(t *testing.T) {
	env := newSalaryTestEnv()

	_, err := env.svc.Generate(context.Background(), "emp-unknown", "2024-02")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestGenerate_WindowCoversWholeMonthInclusive(t *testing.T) {
	env := newSalaryTestEnv()
	env.addEmployee("emp-1", 10_000_000)

	_, err := env.svc.Generate(context.Background(), "emp-1", "2024-02")
	require.NoError(t, err)

	// Leap February: tally runs over Feb 1 through Feb 29 inclusive.
	assert.True(t, env.attendanceSvc.lastStart.Equal(day(2024, time.February, 1)),
		"window start = %s", env.attendanceSvc.lastStart)
	assert.True(t, env.attendanceSvc.lastEnd.Equal(day(2024, time.February, 29)),
		"window end = %s", env.attendanceSvc.lastEnd)
}

func TestGenerate_RegenerationIsIdempotent(t *testing.T) {
	env := newSalaryTestEnv()
	env.addEmployee("emp-1", 10_000_000)
	env.attendanceSvc.tallies["emp-1"] = attendance.WorkingDayTally{TotalWorkDays: 24, FullDays: 24, AbsentDays: 2}

	first, err := env.svc.Generate(context.Background(), "emp-1", "2024-02")
	require.NoError(t, err)
	second, err := env.svc.Generate(context.Background(), "emp-1", "2024-02")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "regeneration must replace, not duplicate")
	assert.Equal(t, first.NetSalary.String(), second.NetSalary.String())
	assert.Len(t, env.salaryRepo.records, 1)
}

func TestGenerateMany_SkipsUnknownEmployees(t *testing.T) {
	env := newSalaryTestEnv()
	env.addEmployee("emp-1", 10_000_000)

	result, err := env.svc.GenerateMany(context.Background(), []string{"emp-1", "emp-unknown"}, "2024-02")
	require.NoError(t, err)

	assert.Equal(t, []string{"emp-1"}, result.Succeeded)
	assert.Equal(t, []string{"emp-unknown"}, result.Skipped)
	assert.Empty(t, result.Failed)
}

func TestGenerateMany_HardFailureSurfaces(t *testing.T) {
	env := newSalaryTestEnv()
	env.addEmployee("emp-1", 10_000_000)
	env.employeeRepo.failing["emp-broken"] = errors.New("connection reset")

	result, err := env.svc.GenerateMany(context.Background(), []string{"emp-broken"}, "2024-02")
	require.Error(t, err)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, "emp-broken", result.Failed[0].EmployeeID)
	assert.Contains(t, result.Failed[0].Error, "connection reset")
}

func TestGenerateMany_AbortStopsQueuedDispatch(t *testing.T) {
	cfg := testPayrollConfig()
	cfg.MaxConcurrent = 1
	env := newSalaryTestEnvWith(cfg)
	env.employeeRepo.failing["emp-broken"] = errors.New("connection reset")

	ids := []string{"emp-broken"}
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("emp-%d", i)
		ids = append(ids, id)
		env.addEmployee(id, 5_000_000)
	}

	result, err := env.svc.GenerateMany(context.Background(), ids, "2024-02")
	require.Error(t, err)

	// The first unit fails; with one slot, nothing behind it in the queue
	// may generate.
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "emp-broken", result.Failed[0].EmployeeID)
	assert.Empty(t, result.Succeeded)
	assert.Empty(t, env.salaryRepo.records, "queued units must not generate after an abort")
	// At most the unit already waiting on the limit is reported as skipped.
	assert.LessOrEqual(t, len(result.Skipped), 1)
}

func TestGenerateMany_CancelledContextGeneratesNothing(t *testing.T) {
	env := newSalaryTestEnv()
	env.addEmployee("emp-1", 10_000_000)
	env.addEmployee("emp-2", 8_000_000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := env.svc.GenerateMany(ctx, []string{"emp-1", "emp-2"}, "2024-02")
	assert.ErrorIs(t, err, context.Canceled)

	assert.Empty(t, result.Succeeded)
	assert.Empty(t, result.Failed)
	assert.Empty(t, env.salaryRepo.records)
}

func TestGenerateMany_RespectsConcurrencyLimit(t *testing.T) {
	env := newSalaryTestEnv()
	ids := make([]string, 12)
	for i := range ids {
		id := string(rune('a'+i)) + "-emp"
		ids[i] = id
		env.addEmployee(id, 5_000_000)
	}

	result, err := env.svc.GenerateMany(context.Background(), ids, "2024-02")
	require.NoError(t, err)

	assert.Len(t, result.Succeeded, 12)
	assert.LessOrEqual(t, env.attendanceSvc.peak.Load(), int32(testPayrollConfig().MaxConcurrent))
}

func TestGenerateForAll_DelegatesToBatch(t *testing.T) {
	env := newSalaryTestEnv()
	env.addEmployee("emp-1", 10_000_000)
	env.addEmployee("emp-2", 8_000_000)

	result, err := env.svc.GenerateForAll(context.Background(), "2024-02")
	require.NoError(t, err)

	assert.Len(t, result.Succeeded, 2)
	assert.Len(t, env.salaryRepo.records, 2)
}

func TestDelete_UnknownRecord(t *testing.T) {
	env := newSalaryTestEnv()

	err := env.svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, salary.ErrSalaryNotFound)
}
