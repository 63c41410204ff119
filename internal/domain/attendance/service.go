package attendance

import (
	"context"
	"time"

	"github.com/presentia-hr/presentia-backend-go/internal/domain/employee"
	"github.com/presentia-hr/presentia-backend-go/internal/domain/shift"
)

// AttendanceService owns the attendance decision for a recognized employee:
// it classifies the event as entry or exit, rejects inconsistent ones, and
// writes the record. Deciding and writing are one operation so no decision
// exists without a committed event.
type AttendanceService interface {
	// Record runs the state machine for one recognition of emp under the
	// claimed shift at the given instant and persists the resulting event.
	Record(ctx context.Context, emp employee.Employee, claimed shift.Label, at time.Time) (Event, error)

	// List returns committed events for an employee and date range.
	List(ctx context.Context, filter ListFilter) ([]EventResponse, error)

	// MonthlyStats summarizes one employee's month.
	MonthlyStats(ctx context.Context, legajo string, year int, month time.Month) (StatsResponse, error)
}
