package attendance

import "errors"

// Attendance domain errors
var (
	// Business-rule rejections, surfaced verbatim to the caller.
	ErrShiftMismatch    = errors.New("recognition shift does not match the employee's assigned shift")
	ErrShiftClosed      = errors.New("shift already closed for this business date")
	ErrDuplicateCapture = errors.New("event discarded: too close to the previous one")

	// Transient errors, safe to retry the whole recognition call.
	ErrEventConflict = errors.New("a newer event was committed concurrently")

	ErrEventNotFound = errors.New("attendance event not found")
)
