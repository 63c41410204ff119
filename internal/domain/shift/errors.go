package shift

import "errors"

var (
	ErrUnknownShift  = errors.New("unknown shift label")
	ErrInvalidWindow = errors.New("invalid shift window definition")
)
