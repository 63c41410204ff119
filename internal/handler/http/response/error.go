package response

import (
	"errors"
	"net/http"

	"github.com/presentia-hr/presentia-backend-go/internal/domain/attendance"
	"github.com/presentia-hr/presentia-backend-go/internal/domain/auth"
	"github.com/presentia-hr/presentia-backend-go/internal/domain/employee"
	"github.com/presentia-hr/presentia-backend-go/internal/domain/recognition"
	"github.com/presentia-hr/presentia-backend-go/internal/domain/shift"
	"github.com/presentia-hr/presentia-backend-go/internal/pkg/database"
	"github.com/presentia-hr/presentia-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Duplicate enrollment carries the conflicting legajo
	var dup *employee.DuplicatePersonError
	if errors.As(err, &dup) {
		Conflict(w, "Face already enrolled for another employee", map[string]string{
			"legajo": dup.ExistingLegajo,
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAdminRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, auth.ErrOperatorNotFound):
		NotFound(w, "Operator not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrLegajoExists):
		Conflict(w, "Legajo already registered", nil)
	case errors.Is(err, employee.ErrInvalidLegajo):
		BadRequest(w, "Legajo must be numeric", nil)

	// Shift and recognition errors
	case errors.Is(err, shift.ErrUnknownShift):
		BadRequest(w, "Unknown shift", nil)
	case errors.Is(err, recognition.ErrInvalidEmbedding):
		BadRequest(w, "Embedding has the wrong dimension", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrShiftMismatch):
		Conflict(w, "Claimed shift does not match the assigned shift", nil)
	case errors.Is(err, attendance.ErrShiftClosed):
		Conflict(w, "Shift already closed for this business date", nil)
	case errors.Is(err, attendance.ErrDuplicateCapture):
		Conflict(w, "Duplicate capture discarded", nil)
	case errors.Is(err, attendance.ErrEventConflict):
		Conflict(w, "A newer event was recorded concurrently", nil)
	case errors.Is(err, attendance.ErrEventNotFound):
		NotFound(w, "Attendance event not found")

	// Infrastructure
	case errors.Is(err, database.ErrTimeout):
		ServiceUnavailable(w, "Storage timed out, retry the capture")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
