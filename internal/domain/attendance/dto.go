package attendance

import (
	"time"

	"github.com/presentia-hr/presentia-backend-go/internal/pkg/validator"
)

type ListFilter struct {
	Legajo string
	From   time.Time
	To     time.Time
}

type ListRequest struct {
	Legajo string `json:"legajo"`
	From   string `json:"from"`
	To     string `json:"to"`
}

func (r ListRequest) Validate() (ListFilter, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Legajo) {
		errs = append(errs, validator.ValidationError{Field: "legajo", Message: "legajo is required"})
	}

	filter := ListFilter{Legajo: r.Legajo}
	if r.From != "" {
		from, ok := validator.IsValidDate(r.From)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "from", Message: "must be a YYYY-MM-DD date"})
		}
		filter.From = from
	}
	if r.To != "" {
		to, ok := validator.IsValidDate(r.To)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "to", Message: "must be a YYYY-MM-DD date"})
		}
		// Make the upper bound inclusive of the whole day.
		filter.To = to.Add(24*time.Hour - time.Nanosecond)
	}

	if len(errs) > 0 {
		return ListFilter{}, errs
	}
	return filter, nil
}

type EventResponse struct {
	ID           string `json:"id"`
	Legajo       string `json:"legajo"`
	Shift        string `json:"turno"`
	Kind         string `json:"tipo"`
	BusinessDate string `json:"fecha"`
	Time         string `json:"hora"`
	RecordedAt   string `json:"timestamp"`
	Punctuality  string `json:"estado"`
}

type StatsResponse struct {
	Legajo      string `json:"legajo"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	TotalEvents int    `json:"total_events"`
	Entries     int    `json:"entries"`
	Exits       int    `json:"exits"`
	DaysWorked  int    `json:"days_worked"`
}
