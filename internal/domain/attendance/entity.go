package attendance

import (
	"time"

	"github.com/presentia-hr/presentia-backend-go/internal/domain/shift"
)

type EventKind string

const (
	KindEntry EventKind = "entrada"
	KindExit  EventKind = "salida"
)

// Event is one committed attendance record. Events are append-only and never
// mutated after insertion.
//
// BusinessDate is the working day the event is attributed to. For the night
// shift it is derived from the shift window, so a post-midnight exit shares
// the date of the previous evening's entry.
type Event struct {
	ID           string
	Legajo       string
	Shift        shift.Label
	Kind         EventKind
	BusinessDate time.Time
	RecordedAt   time.Time
	Punctuality  shift.Punctuality
	CreatedAt    time.Time
}
