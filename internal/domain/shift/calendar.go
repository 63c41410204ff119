package shift

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Calendar maps every shift label to its daily window and answers
// business-date questions. It is immutable after construction.
type Calendar struct {
	windows   map[Label]Window
	tolerance time.Duration
}

// DefaultArrivalTolerance is how far from the shift edge an event still
// counts as punctual.
const DefaultArrivalTolerance = 30 * time.Minute

type calendarFile struct {
	Shifts map[string]struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"shifts"`
}

// NewCalendar builds the default three-shift calendar:
// manana 06:00-14:00, tarde 14:00-22:00, noche 22:00-06:00.
func NewCalendar() *Calendar {
	return &Calendar{
		windows: map[Label]Window{
			Manana: {Start: ClockTime{6, 0}, End: ClockTime{14, 0}},
			Tarde:  {Start: ClockTime{14, 0}, End: ClockTime{22, 0}},
			Noche:  {Start: ClockTime{22, 0}, End: ClockTime{6, 0}, WrapsMidnight: true},
		},
		tolerance: DefaultArrivalTolerance,
	}
}

// NewCalendarFromYAML overrides the default windows with the ones defined in
// a YAML document. Every label in the document must be a known shift.
func NewCalendarFromYAML(data []byte) (*Calendar, error) {
	var file calendarFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse shift calendar: %w", err)
	}

	cal := NewCalendar()
	for name, def := range file.Shifts {
		label, err := Parse(name)
		if err != nil {
			return nil, err
		}
		start, err := ParseClockTime(def.Start)
		if err != nil {
			return nil, fmt.Errorf("shift %s: %w", label, err)
		}
		end, err := ParseClockTime(def.End)
		if err != nil {
			return nil, fmt.Errorf("shift %s: %w", label, err)
		}
		if start == end {
			return nil, fmt.Errorf("%w: shift %s has zero-length window", ErrInvalidWindow, label)
		}
		cal.windows[label] = Window{
			Start:         start,
			End:           end,
			WrapsMidnight: start.MinuteOfDay() > end.MinuteOfDay(),
		}
	}
	return cal, nil
}

// WindowFor returns the window assigned to a shift label.
func (c *Calendar) WindowFor(label Label) (Window, error) {
	w, ok := c.windows[label]
	if !ok {
		return Window{}, fmt.Errorf("%w: %q", ErrUnknownShift, label)
	}
	return w, nil
}

// BusinessDateFor resolves the business date an event at t belongs to under
// the given shift, and whether t falls inside the shift window.
//
// For a wrapping window the early-morning side belongs to the previous
// calendar day, so a 23:30 entry and a 01:00 exit land on the same date.
func (c *Calendar) BusinessDateFor(label Label, t time.Time) (time.Time, bool, error) {
	w, err := c.WindowFor(label)
	if err != nil {
		return time.Time{}, false, err
	}

	tod := t.Hour()*60 + t.Minute()
	start := w.Start.MinuteOfDay()
	end := w.End.MinuteOfDay()
	date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())

	if !w.WrapsMidnight {
		within := tod >= start && tod < end
		return date, within, nil
	}

	if tod < end {
		return date.AddDate(0, 0, -1), true, nil
	}
	return date, tod >= start, nil
}

// ClassifyArrival rates an entry timestamp against the shift start edge.
func (c *Calendar) ClassifyArrival(label Label, t time.Time) (Punctuality, error) {
	w, err := c.WindowFor(label)
	if err != nil {
		return PunctualityOffTurn, err
	}
	return c.classify(w.Start, t), nil
}

// ClassifyDeparture rates an exit timestamp against the shift end edge.
func (c *Calendar) ClassifyDeparture(label Label, t time.Time) (Punctuality, error) {
	w, err := c.WindowFor(label)
	if err != nil {
		return PunctualityOffTurn, err
	}
	return c.classify(w.End, t), nil
}

// classify compares the time of day of t against a shift edge, taking the
// shortest signed distance around midnight so night-shift edges work.
func (c *Calendar) classify(edge ClockTime, t time.Time) Punctuality {
	tod := t.Hour()*60 + t.Minute()
	diff := tod - edge.MinuteOfDay()
	if diff > 720 {
		diff -= 1440
	}
	if diff < -720 {
		diff += 1440
	}

	tol := int(c.tolerance.Minutes())
	switch {
	case diff < -tol:
		return PunctualityEarly
	case diff > tol:
		return PunctualityLate
	default:
		return PunctualityOnTime
	}
}
