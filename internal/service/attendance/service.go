package attendance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/presentia-hr/presentia-backend-go/internal/domain/attendance"
	"github.com/presentia-hr/presentia-backend-go/internal/domain/employee"
	"github.com/presentia-hr/presentia-backend-go/internal/domain/shift"
)

type AttendanceServiceImpl struct {
	attendance.EventRepository
	calendar *shift.Calendar
	minGap   time.Duration

	// Per-employee locks serialize decide-and-write for one legajo while
	// letting unrelated employees proceed concurrently.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewAttendanceService(
	eventRepo attendance.EventRepository,
	calendar *shift.Calendar,
	minGap time.Duration,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		EventRepository: eventRepo,
		calendar:        calendar,
		minGap:          minGap,
		locks:           make(map[string]*sync.Mutex),
	}
}

func (a *AttendanceServiceImpl) lockFor(legajo string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	l, ok := a.locks[legajo]
	if !ok {
		l = &sync.Mutex{}
		a.locks[legajo] = l
	}
	return l
}

// Record implements attendance.AttendanceService.
//
// The entry/exit state is derived from the most recent persisted event for
// (legajo, business date), never stored separately. The decision and the
// write happen under the same per-employee lock, and the repository insert
// is conditional on no newer event existing, so a concurrent recognition
// that slips past the lock (another process) loses with ErrEventConflict
// instead of double-writing.
func (a *AttendanceServiceImpl) Record(ctx context.Context, emp employee.Employee, claimed shift.Label, at time.Time) (attendance.Event, error) {
	if claimed != emp.Shift {
		return attendance.Event{}, fmt.Errorf("%w: assigned %s, claimed %s",
			attendance.ErrShiftMismatch, emp.Shift, claimed)
	}

	businessDate, within, err := a.calendar.BusinessDateFor(claimed, at)
	if err != nil {
		return attendance.Event{}, err
	}

	lock := a.lockFor(emp.Legajo)
	lock.Lock()
	defer lock.Unlock()

	last, err := a.EventRepository.GetLastEvent(ctx, emp.Legajo)
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to read last event: %w", err)
	}

	var prevRecordedAt time.Time
	if last != nil {
		prevRecordedAt = last.RecordedAt
		// Duplicate camera frames arrive fractions of a second apart; any
		// second decision inside the gap is discarded.
		if at.Sub(last.RecordedAt) < a.minGap {
			return attendance.Event{}, attendance.ErrDuplicateCapture
		}
	}

	lastForDate, err := a.EventRepository.GetLastEventForDate(ctx, emp.Legajo, businessDate)
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to read last event for date: %w", err)
	}

	var kind attendance.EventKind
	switch {
	case lastForDate == nil:
		kind = attendance.KindEntry
	case lastForDate.Kind == attendance.KindEntry:
		kind = attendance.KindExit
	default:
		// Closed days stay closed: no re-entry after an exit.
		return attendance.Event{}, attendance.ErrShiftClosed
	}

	punctuality := shift.PunctualityOffTurn
	if within {
		if kind == attendance.KindEntry {
			punctuality, err = a.calendar.ClassifyArrival(claimed, at)
		} else {
			punctuality, err = a.calendar.ClassifyDeparture(claimed, at)
		}
		if err != nil {
			return attendance.Event{}, err
		}
	}

	ev := attendance.Event{
		ID:           uuid.NewString(),
		Legajo:       emp.Legajo,
		Shift:        claimed,
		Kind:         kind,
		BusinessDate: businessDate,
		RecordedAt:   at,
		Punctuality:  punctuality,
	}

	committed, err := a.EventRepository.Insert(ctx, ev, prevRecordedAt)
	if err != nil {
		return attendance.Event{}, err
	}

	return committed, nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.EventResponse, error) {
	events, err := a.EventRepository.ListByEmployee(ctx, filter.Legajo, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	responses := make([]attendance.EventResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, mapEventToResponse(ev))
	}
	return responses, nil
}

// MonthlyStats implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MonthlyStats(ctx context.Context, legajo string, year int, month time.Month) (attendance.StatsResponse, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	events, err := a.EventRepository.ListByEmployee(ctx, legajo, from, to)
	if err != nil {
		return attendance.StatsResponse{}, fmt.Errorf("failed to list events for stats: %w", err)
	}

	stats := attendance.StatsResponse{
		Legajo: legajo,
		Year:   year,
		Month:  int(month),
	}

	days := make(map[string]struct{})
	for _, ev := range events {
		stats.TotalEvents++
		switch ev.Kind {
		case attendance.KindEntry:
			stats.Entries++
		case attendance.KindExit:
			stats.Exits++
		}
		days[ev.BusinessDate.Format("2006-01-02")] = struct{}{}
	}
	stats.DaysWorked = len(days)

	return stats, nil
}

// mapEventToResponse converts an Event entity to EventResponse
func mapEventToResponse(ev attendance.Event) attendance.EventResponse {
	return attendance.EventResponse{
		ID:           ev.ID,
		Legajo:       ev.Legajo,
		Shift:        ev.Shift.String(),
		Kind:         string(ev.Kind),
		BusinessDate: ev.BusinessDate.Format("2006-01-02"),
		Time:         ev.RecordedAt.Format("15:04:05"),
		RecordedAt:   ev.RecordedAt.Format(time.RFC3339),
		Punctuality:  string(ev.Punctuality),
	}
}
