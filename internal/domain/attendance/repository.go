package attendance

import (
	"context"
	"time"
)

// EventRepository defines data access for attendance events. Events are
// append-only: there is no update or delete.
type EventRepository interface {
	// Insert commits an event with compare-and-insert semantics: it fails
	// with ErrEventConflict if any event for the same legajo was recorded
	// after prevRecordedAt (zero time when no prior event was observed).
	// The decide-and-write sequence in the service relies on this to stay
	// atomic under concurrent recognitions.
	Insert(ctx context.Context, ev Event, prevRecordedAt time.Time) (Event, error)

	// GetLastEvent returns the most recent event for an employee regardless
	// of date, or nil when none exists. Used for the minimum-gap guard.
	GetLastEvent(ctx context.Context, legajo string) (*Event, error)

	// GetLastEventForDate returns the most recent event for an employee on a
	// business date, or nil when none exists.
	GetLastEventForDate(ctx context.Context, legajo string, businessDate time.Time) (*Event, error)

	// ListByEmployee returns events for an employee inside [from, to],
	// newest first.
	ListByEmployee(ctx context.Context, legajo string, from, to time.Time) ([]Event, error)
}
