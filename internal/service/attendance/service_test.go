package attendance

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presentia-hr/presentia-backend-go/internal/domain/attendance"
	"github.com/presentia-hr/presentia-backend-go/internal/domain/employee"
	"github.com/presentia-hr/presentia-backend-go/internal/domain/shift"
)

// fakeEventRepository keeps events in memory and mirrors the conditional
// insert semantics of the PostgreSQL repository.
type fakeEventRepository struct {
	mu     sync.Mutex
	events []attendance.Event
}

func (f *fakeEventRepository) Insert(_ context.Context, ev attendance.Event, prevRecordedAt time.Time) (attendance.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.events {
		if e.Legajo == ev.Legajo && e.RecordedAt.After(prevRecordedAt) {
			return attendance.Event{}, attendance.ErrEventConflict
		}
	}

	ev.CreatedAt = time.Now().UTC()
	f.events = append(f.events, ev)
	return ev, nil
}

func (f *fakeEventRepository) GetLastEvent(_ context.Context, legajo string) (*attendance.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var last *attendance.Event
	for i := range f.events {
		e := f.events[i]
		if e.Legajo != legajo {
			continue
		}
		if last == nil || e.RecordedAt.After(last.RecordedAt) {
			last = &e
		}
	}
	return last, nil
}

func (f *fakeEventRepository) GetLastEventForDate(_ context.Context, legajo string, businessDate time.Time) (*attendance.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var last *attendance.Event
	for i := range f.events {
		e := f.events[i]
		if e.Legajo != legajo || !e.BusinessDate.Equal(businessDate) {
			continue
		}
		if last == nil || e.RecordedAt.After(last.RecordedAt) {
			last = &e
		}
	}
	return last, nil
}

func (f *fakeEventRepository) ListByEmployee(_ context.Context, legajo string, from, to time.Time) ([]attendance.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if to.IsZero() {
		to = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	}

	var out []attendance.Event
	for _, e := range f.events {
		if e.Legajo != legajo || e.BusinessDate.Before(from) || e.BusinessDate.After(to) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})
	return out, nil
}

func newTestService(repo attendance.EventRepository) attendance.AttendanceService {
	return NewAttendanceService(repo, shift.NewCalendar(), 30*time.Second)
}

func morningEmployee() employee.Employee {
	return employee.Employee{Legajo: "1001", Area: "Deposito", Role: "Operario", Shift: shift.Manana}
}

func TestRecord_EntryThenExit(t *testing.T) {
	repo := &fakeEventRepository{}
	svc := newTestService(repo)
	emp := morningEmployee()
	ctx := context.Background()

	entry, err := svc.Record(ctx, emp, shift.Manana, time.Date(2025, 3, 10, 6, 5, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, attendance.KindEntry, entry.Kind)
	assert.Equal(t, shift.PunctualityOnTime, entry.Punctuality)
	assert.Equal(t, "2025-03-10", entry.BusinessDate.Format("2006-01-02"))

	exit, err := svc.Record(ctx, emp, shift.Manana, time.Date(2025, 3, 10, 13, 58, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, attendance.KindExit, exit.Kind)
	assert.Equal(t, shift.PunctualityOnTime, exit.Punctuality)
	assert.True(t, exit.BusinessDate.Equal(entry.BusinessDate))
}

func TestRecord_NoDoubleExit(t *testing.T) {
	repo := &fakeEventRepository{}
	svc := newTestService(repo)
	emp := morningEmployee()
	ctx := context.Background()

	_, err := svc.Record(ctx, emp, shift.Manana, time.Date(2025, 3, 10, 6, 5, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = svc.Record(ctx, emp, shift.Manana, time.Date(2025, 3, 10, 13, 58, 0, 0, time.UTC))
	require.NoError(t, err)

	_, err = svc.Record(ctx, emp, shift.Manana, time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC))
	assert.ErrorIs(t, err, attendance.ErrShiftClosed)
}

func TestRecord_DuplicateCaptureInsideGap(t *testing.T) {
	repo := &fakeEventRepository{}
	svc := newTestService(repo)
	emp := morningEmployee()
	ctx := context.Background()

	base := time.Date(2025, 3, 10, 6, 5, 0, 0, time.UTC)
	_, err := svc.Record(ctx, emp, shift.Manana, base)
	require.NoError(t, err)

	// A second frame two seconds later is the same physical presentation.
	_, err = svc.Record(ctx, emp, shift.Manana, base.Add(2*time.Second))
	assert.ErrorIs(t, err, attendance.ErrDuplicateCapture)

	events, err := repo.ListByEmployee(ctx, emp.Legajo, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestRecord_ShiftMismatch(t *testing.T) {
	repo := &fakeEventRepository{}
	svc := newTestService(repo)
	emp := morningEmployee()

	_, err := svc.Record(context.Background(), emp, shift.Tarde, time.Date(2025, 3, 10, 14, 5, 0, 0, time.UTC))
	assert.ErrorIs(t, err, attendance.ErrShiftMismatch)
}

func TestRecord_NightShiftSameBusinessDate(t *testing.T) {
	repo := &fakeEventRepository{}
	svc := newTestService(repo)
	emp := employee.Employee{Legajo: "2002", Shift: shift.Noche}
	ctx := context.Background()

	entry, err := svc.Record(ctx, emp, shift.Noche, time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, attendance.KindEntry, entry.Kind)
	assert.Equal(t, "2025-03-14", entry.BusinessDate.Format("2006-01-02"))

	// The exit after midnight belongs to the same business date, so it
	// closes the shift instead of opening a new day.
	exit, err := svc.Record(ctx, emp, shift.Noche, time.Date(2025, 3, 15, 1, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, attendance.KindExit, exit.Kind)
	assert.Equal(t, "2025-03-14", exit.BusinessDate.Format("2006-01-02"))
}

func TestRecord_OutsideWindowIsMarkedOffTurn(t *testing.T) {
	repo := &fakeEventRepository{}
	svc := newTestService(repo)
	emp := morningEmployee()

	ev, err := svc.Record(context.Background(), emp, shift.Manana, time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, shift.PunctualityOffTurn, ev.Punctuality)
}

func TestRecord_LatePunctuality(t *testing.T) {
	repo := &fakeEventRepository{}
	svc := newTestService(repo)
	emp := morningEmployee()

	ev, err := svc.Record(context.Background(), emp, shift.Manana, time.Date(2025, 3, 10, 6, 45, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, attendance.KindEntry, ev.Kind)
	assert.Equal(t, shift.PunctualityLate, ev.Punctuality)
}

func TestRecord_ConcurrentSameEmployee(t *testing.T) {
	repo := &fakeEventRepository{}
	svc := newTestService(repo)
	emp := morningEmployee()
	at := time.Date(2025, 3, 10, 6, 5, 0, 0, time.UTC)

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Record(context.Background(), emp, shift.Manana, at)
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, attendance.ErrDuplicateCapture)
		}
	}
	assert.Equal(t, 1, ok, "exactly one recognition must commit")

	events, err := repo.ListByEmployee(context.Background(), emp.Legajo, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestList_RoundTrip(t *testing.T) {
	repo := &fakeEventRepository{}
	svc := newTestService(repo)
	emp := morningEmployee()
	ctx := context.Background()

	entry, err := svc.Record(ctx, emp, shift.Manana, time.Date(2025, 3, 10, 6, 5, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = svc.Record(ctx, emp, shift.Manana, time.Date(2025, 3, 10, 13, 58, 0, 0, time.UTC))
	require.NoError(t, err)

	responses, err := svc.List(ctx, attendance.ListFilter{Legajo: emp.Legajo})
	require.NoError(t, err)
	require.Len(t, responses, 2)

	// Newest first.
	assert.Equal(t, "salida", responses[0].Kind)
	assert.Equal(t, "entrada", responses[1].Kind)
	assert.Equal(t, entry.ID, responses[1].ID)
	assert.Equal(t, "2025-03-10", responses[1].BusinessDate)
	assert.Equal(t, "06:05:00", responses[1].Time)
}

func TestMonthlyStats(t *testing.T) {
	repo := &fakeEventRepository{}
	svc := newTestService(repo)
	emp := morningEmployee()
	ctx := context.Background()

	days := []int{10, 11, 12}
	for _, d := range days {
		_, err := svc.Record(ctx, emp, shift.Manana, time.Date(2025, 3, d, 6, 5, 0, 0, time.UTC))
		require.NoError(t, err)
		_, err = svc.Record(ctx, emp, shift.Manana, time.Date(2025, 3, d, 13, 58, 0, 0, time.UTC))
		require.NoError(t, err)
	}

	stats, err := svc.MonthlyStats(ctx, emp.Legajo, 2025, time.March)
	require.NoError(t, err)
	assert.Equal(t, 6, stats.TotalEvents)
	assert.Equal(t, 3, stats.Entries)
	assert.Equal(t, 3, stats.Exits)
	assert.Equal(t, 3, stats.DaysWorked)

	empty, err := svc.MonthlyStats(ctx, emp.Legajo, 2025, time.April)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalEvents)
}
