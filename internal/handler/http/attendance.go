package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/presentia-hr/presentia-backend-go/internal/domain/attendance"
	"github.com/presentia-hr/presentia-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// List implements AttendanceHandler.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	listReq := attendance.ListRequest{
		Legajo: r.URL.Query().Get("legajo"),
		From:   r.URL.Query().Get("from"),
		To:     r.URL.Query().Get("to"),
	}

	filter, err := listReq.Validate()
	if err != nil {
		slog.Error("List validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	events, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		slog.Error("List service error", "error", err, "legajo", filter.Legajo)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, events, &response.Meta{TotalItems: len(events)})
}

// Stats implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	legajo := r.URL.Query().Get("legajo")
	if legajo == "" {
		response.BadRequest(w, "legajo query parameter is required", nil)
		return
	}

	// Default to the current month when year/month are omitted.
	now := time.Now().UTC()
	year := now.Year()
	month := now.Month()

	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "year must be an integer", nil)
			return
		}
		year = parsed
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			response.BadRequest(w, "month must be between 1 and 12", nil)
			return
		}
		month = time.Month(parsed)
	}

	stats, err := h.attendanceService.MonthlyStats(r.Context(), legajo, year, month)
	if err != nil {
		slog.Error("Stats service error", "error", err, "legajo", legajo)
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}
