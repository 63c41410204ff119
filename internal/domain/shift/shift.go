package shift

import (
	"fmt"
	"strings"
)

// Label identifies one of the fixed work shifts. Free-form strings coming
// from clients must go through Parse before reaching any other component.
type Label string

const (
	Manana Label = "manana"
	Tarde  Label = "tarde"
	Noche  Label = "noche"
)

// Labels lists every valid shift label.
func Labels() []Label {
	return []Label{Manana, Tarde, Noche}
}

// Parse normalizes a client-provided shift name into a Label.
// The accented spelling used by the legacy terminals is accepted.
func Parse(s string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "manana", "mañana":
		return Manana, nil
	case "tarde":
		return Tarde, nil
	case "noche":
		return Noche, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownShift, s)
	}
}

func (l Label) String() string {
	return string(l)
}

// ClockTime is a time of day with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:MM".
func ParseClockTime(s string) (ClockTime, error) {
	var h, m int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &h, &m); err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: out of range", s)
	}
	return ClockTime{Hour: h, Minute: m}, nil
}

// MinuteOfDay returns the offset from midnight in minutes.
func (c ClockTime) MinuteOfDay() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Window is the daily time window of a shift. WrapsMidnight marks windows
// whose end falls on the following calendar day (e.g. 22:00-06:00).
type Window struct {
	Start         ClockTime
	End           ClockTime
	WrapsMidnight bool
}

// Punctuality classifies how an event timestamp relates to the expected
// arrival or departure window of the shift.
type Punctuality string

const (
	PunctualityOnTime  Punctuality = "puntual"
	PunctualityEarly   Punctuality = "temprano"
	PunctualityLate    Punctuality = "tardio"
	PunctualityOffTurn Punctuality = "fuera_de_turno"
)
