package http

import (
	"encoding/json"
	"net/http"

	"github.com/facetrack-hrm/payroll-backend-go/internal/domain/salary"
	"github.com/facetrack-hrm/payroll-backend-go/internal/handler/http/response"
	"github.com/facetrack-hrm/payroll-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type SalaryHandler interface {
	GenerateForEmployee(w http.ResponseWriter, r *http.Request)
	GenerateForDepartment(w http.ResponseWriter, r *http.Request)
	GenerateForAll(w http.ResponseWriter, r *http.Request)
	GetByEmployeeAndMonth(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	ListSalaries(w http.ResponseWriter, r *http.Request)
	DeleteSalary(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &salaryHandlerImpl{salaryService: salaryService}
}

func (h *salaryHandlerImpl) GenerateForEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	month := chi.URLParam(r, "month")
	if validator.IsEmpty(employeeID) {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.salaryService.Generate(r.Context(), employeeID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary generated", result)
}

type generateDepartmentRequest struct {
	DepartmentIDs []string `json:"department_ids"`
}

func (h *salaryHandlerImpl) GenerateForDepartment(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")

	var req generateDepartmentRequest
	if departmentID := chi.URLParam(r, "departmentId"); departmentID != "" {
		req.DepartmentIDs = []string{departmentID}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if len(req.DepartmentIDs) == 0 {
		response.BadRequest(w, "At least one department ID is required", nil)
		return
	}

	result, err := h.salaryService.GenerateForDepartment(r.Context(), req.DepartmentIDs, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary generation finished", result)
}

func (h *salaryHandlerImpl) GenerateForAll(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")

	result, err := h.salaryService.GenerateForAll(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary generation finished", result)
}

func (h *salaryHandlerImpl) GetByEmployeeAndMonth(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	month := chi.URLParam(r, "month")
	if validator.IsEmpty(employeeID) {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.salaryService.GetByEmployeeAndMonth(r.Context(), employeeID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if validator.IsEmpty(employeeID) {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.salaryService.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryHandlerImpl) ListSalaries(w http.ResponseWriter, r *http.Request) {
	filter := salary.SalaryFilter{
		Month:      r.URL.Query().Get("month"),
		EmployeeID: r.URL.Query().Get("employee_id"),
		Page:       parseIntQuery(r, "page", 1),
		Limit:      parseIntQuery(r, "limit", 10),
	}

	result, err := h.salaryService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Salaries, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages(result.TotalCount, result.Limit),
	})
}

func (h *salaryHandlerImpl) DeleteSalary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid salary ID", nil)
		return
	}

	if err := h.salaryService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary deleted", nil)
}
