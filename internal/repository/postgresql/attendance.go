package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/presentia-hr/presentia-backend-go/internal/domain/attendance"
	"github.com/presentia-hr/presentia-backend-go/internal/domain/shift"
	"github.com/presentia-hr/presentia-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.EventRepository {
	return &attendanceRepository{db: db}
}

// Insert implements attendance.EventRepository.
//
// The WHERE NOT EXISTS guard gives the compare-and-insert semantics the
// state machine depends on: if another recognition committed an event for
// the same legajo after prevRecordedAt, this insert writes nothing and the
// caller gets ErrEventConflict.
func (r *attendanceRepository) Insert(ctx context.Context, ev attendance.Event, prevRecordedAt time.Time) (attendance.Event, error) {
	ctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO attendance_events (id, legajo, turno, tipo, business_date, recorded_at, estado)
		SELECT $1, $2, $3, $4, $5, $6, $7
		WHERE NOT EXISTS (
			SELECT 1 FROM attendance_events
			WHERE legajo = $2 AND recorded_at > $8
		)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		ev.ID,
		ev.Legajo,
		ev.Shift.String(),
		string(ev.Kind),
		ev.BusinessDate,
		ev.RecordedAt,
		string(ev.Punctuality),
		prevRecordedAt,
	).Scan(&ev.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Event{}, attendance.ErrEventConflict
		}
		return attendance.Event{}, fmt.Errorf("failed to insert attendance event: %w", database.MapTimeout(err))
	}

	return ev, nil
}

// GetLastEvent implements attendance.EventRepository.
func (r *attendanceRepository) GetLastEvent(ctx context.Context, legajo string) (*attendance.Event, error) {
	query := `
		SELECT id, legajo, turno, tipo, business_date, recorded_at, estado, created_at
		FROM attendance_events
		WHERE legajo = $1
		ORDER BY recorded_at DESC
		LIMIT 1
	`
	return r.getOne(ctx, query, legajo)
}

// GetLastEventForDate implements attendance.EventRepository.
func (r *attendanceRepository) GetLastEventForDate(ctx context.Context, legajo string, businessDate time.Time) (*attendance.Event, error) {
	query := `
		SELECT id, legajo, turno, tipo, business_date, recorded_at, estado, created_at
		FROM attendance_events
		WHERE legajo = $1 AND business_date = $2
		ORDER BY recorded_at DESC
		LIMIT 1
	`
	return r.getOne(ctx, query, legajo, businessDate)
}

func (r *attendanceRepository) getOne(ctx context.Context, query string, args ...interface{}) (*attendance.Event, error) {
	ctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	ev, err := scanEvent(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no prior event
		}
		return nil, fmt.Errorf("failed to get last attendance event: %w", database.MapTimeout(err))
	}

	return &ev, nil
}

// ListByEmployee implements attendance.EventRepository.
func (r *attendanceRepository) ListByEmployee(ctx context.Context, legajo string, from, to time.Time) ([]attendance.Event, error) {
	ctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	if to.IsZero() {
		to = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	}

	query := `
		SELECT id, legajo, turno, tipo, business_date, recorded_at, estado, created_at
		FROM attendance_events
		WHERE legajo = $1 AND business_date BETWEEN $2 AND $3
		ORDER BY recorded_at DESC
	`

	rows, err := r.db.Query(ctx, query, legajo, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", database.MapTimeout(err))
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance events: %w", database.MapTimeout(err))
	}

	return events, nil
}

func scanEvent(row pgx.Row) (attendance.Event, error) {
	var ev attendance.Event
	var turno, tipo, estado string

	err := row.Scan(&ev.ID, &ev.Legajo, &turno, &tipo, &ev.BusinessDate, &ev.RecordedAt, &estado, &ev.CreatedAt)
	if err != nil {
		return attendance.Event{}, err
	}

	label, err := shift.Parse(turno)
	if err != nil {
		return attendance.Event{}, fmt.Errorf("event %s: %w", ev.ID, err)
	}
	ev.Shift = label
	ev.Kind = attendance.EventKind(tipo)
	ev.Punctuality = shift.Punctuality(estado)

	return ev, nil
}
