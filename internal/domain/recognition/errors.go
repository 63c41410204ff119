package recognition

import "errors"

var (
	// ErrInvalidEmbedding marks a probe whose dimensionality does not match
	// the enrolled vectors. Caller error, never retried.
	ErrInvalidEmbedding = errors.New("embedding dimensionality mismatch")
)
