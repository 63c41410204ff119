package employee

import (
	"errors"
	"fmt"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrLegajoExists     = errors.New("legajo already registered")
	ErrInvalidLegajo    = errors.New("legajo must be a non-empty numeric identifier")
	ErrDuplicatePerson  = errors.New("face already enrolled for another employee")
)

// DuplicatePersonError carries the legajo of the already-enrolled employee
// whose face the candidate embedding collided with.
type DuplicatePersonError struct {
	ExistingLegajo string
	Distance       float64
}

func (e *DuplicatePersonError) Error() string {
	return fmt.Sprintf("face already enrolled as legajo %s (distance %.4f)", e.ExistingLegajo, e.Distance)
}

func (e *DuplicatePersonError) Unwrap() error {
	return ErrDuplicatePerson
}
