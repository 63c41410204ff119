package recognition

import (
	"context"
)

// RecognitionService runs the full recognition pipeline: match the probe
// embedding against enrolled employees, then hand the match to the
// attendance state machine. An unmatched probe is a normal negative result,
// not an error.
type RecognitionService interface {
	Recognize(ctx context.Context, req RecognizeRequest) (RecognizeResponse, error)
}
