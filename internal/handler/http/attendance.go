package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/facetrack-hrm/payroll-backend-go/internal/domain/attendance"
	"github.com/facetrack-hrm/payroll-backend-go/internal/handler/http/response"
	"github.com/facetrack-hrm/payroll-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

var (
	errStartDate = errors.New("start must be a valid YYYY-MM-DD date")
	errEndDate   = errors.New("end must be a valid YYYY-MM-DD date")
)

type AttendanceHandler interface {
	CheckInOrOut(w http.ResponseWriter, r *http.Request)
	ProcessImage(w http.ResponseWriter, r *http.Request)
	GetTally(w http.ResponseWriter, r *http.Request)
	GetAttendance(w http.ResponseWriter, r *http.Request)
	ListAttendance(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	DeleteAttendance(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *attendanceHandlerImpl) CheckInOrOut(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if validator.IsEmpty(employeeID) {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.attendanceService.RecordEvent(r.Context(), employeeID, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance recorded", result)
}

type processImageRequest struct {
	Image string `json:"image"`
}

func (h *attendanceHandlerImpl) ProcessImage(w http.ResponseWriter, r *http.Request) {
	var req processImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if validator.IsEmpty(req.Image) {
		response.BadRequest(w, "Image is required", nil)
		return
	}

	result, err := h.attendanceService.ProcessAttendance(r.Context(), req.Image)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) GetTally(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if validator.IsEmpty(employeeID) {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	start, end, err := parseDateRange(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, tallyErr := h.attendanceService.Tally(r.Context(), employeeID, start, end)
	if tallyErr != nil {
		response.HandleError(w, tallyErr)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) GetAttendance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid attendance ID", nil)
		return
	}

	result, err := h.attendanceService.GetAttendance(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) ListAttendance(w http.ResponseWriter, r *http.Request) {
	filter := attendance.AttendanceFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Status:     r.URL.Query().Get("status"),
		DateFrom:   r.URL.Query().Get("date_from"),
		DateTo:     r.URL.Query().Get("date_to"),
		Page:       parseIntQuery(r, "page", 1),
		Limit:      parseIntQuery(r, "limit", 10),
	}

	result, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Attendances, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages(result.TotalCount, result.Limit),
	})
}

func (h *attendanceHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if validator.IsEmpty(employeeID) {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	start, end, err := parseDateRange(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, listErr := h.attendanceService.ListByEmployee(r.Context(), employeeID, start, end)
	if listErr != nil {
		response.HandleError(w, listErr)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) DeleteAttendance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid attendance ID", nil)
		return
	}

	if err := h.attendanceService.DeleteAttendance(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance deleted", nil)
}

func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	start, ok := validator.IsValidDate(r.URL.Query().Get("start"))
	if !ok {
		return time.Time{}, time.Time{}, errStartDate
	}
	end, ok := validator.IsValidDate(r.URL.Query().Get("end"))
	if !ok {
		return time.Time{}, time.Time{}, errEndDate
	}
	return start, end, nil
}

func parseIntQuery(r *http.Request, key string, fallback int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
