package recognition

import (
	"time"

	"github.com/presentia-hr/presentia-backend-go/internal/pkg/validator"
)

type RecognizeRequest struct {
	Embedding []float32 `json:"embedding"`
	Shift     string    `json:"turno"`
	// Timestamp is optional; terminals with a trusted clock may send it,
	// otherwise the server time is used.
	Timestamp string `json:"timestamp,omitempty"`
}

func (r RecognizeRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Embedding) == 0 {
		errs = append(errs, validator.ValidationError{Field: "embedding", Message: "embedding is required"})
	}
	if validator.IsEmpty(r.Shift) {
		errs = append(errs, validator.ValidationError{Field: "turno", Message: "turno is required"})
	}
	if r.Timestamp != "" {
		if _, ok := validator.IsValidDateTime(r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "must be an RFC3339 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// At resolves the event instant, falling back to now.
func (r RecognizeRequest) At(now time.Time) time.Time {
	if r.Timestamp == "" {
		return now
	}
	t, ok := validator.IsValidDateTime(r.Timestamp)
	if !ok {
		return now
	}
	return t
}

// MatchResult is the ephemeral outcome of one probe against the face index.
// It is never persisted.
type MatchResult struct {
	Legajo    string
	Distance  float64
	Matched   bool
	Ambiguous bool
}

type RecognizeResponse struct {
	Matched      bool    `json:"matched"`
	Legajo       string  `json:"legajo,omitempty"`
	Kind         string  `json:"tipo,omitempty"`
	BusinessDate string  `json:"fecha,omitempty"`
	Punctuality  string  `json:"estado,omitempty"`
	Distance     float64 `json:"distancia,omitempty"`
	Message      string  `json:"mensaje,omitempty"`
}
