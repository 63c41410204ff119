package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/presentia-hr/presentia-backend-go/internal/domain/employee"
	"github.com/presentia-hr/presentia-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	Enroll(w http.ResponseWriter, r *http.Request)
	GetByLegajo(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// Enroll implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Enroll(w http.ResponseWriter, r *http.Request) {
	var enrollReq employee.EnrollRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&enrollReq); err != nil {
		slog.Error("Enroll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Call service
	resp, err := h.employeeService.Enroll(r.Context(), enrollReq)
	if err != nil {
		slog.Error("Enroll service error", "error", err, "legajo", enrollReq.Legajo)
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee enrolled", "legajo", resp.Legajo, "turno", resp.Shift)
	response.Created(w, "Employee enrolled successfully", resp)
}

// GetByLegajo implements EmployeeHandler.
func (h *EmployeeHandlerImpl) GetByLegajo(w http.ResponseWriter, r *http.Request) {
	legajo := chi.URLParam(r, "legajo")

	resp, err := h.employeeService.GetByLegajo(r.Context(), legajo)
	if err != nil {
		slog.Error("GetByLegajo service error", "error", err, "legajo", legajo)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
