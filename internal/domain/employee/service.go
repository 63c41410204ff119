package employee

import (
	"context"
)

// EmployeeService defines business logic for enrollment and lookups.
type EmployeeService interface {
	// Enroll registers a new employee after the duplicate-face guard passes.
	// A candidate embedding matching an existing employee is rejected with a
	// DuplicatePersonError naming the conflicting legajo.
	Enroll(ctx context.Context, req EnrollRequest) (EmployeeResponse, error)

	// GetByLegajo retrieves an employee profile without the embedding.
	GetByLegajo(ctx context.Context, legajo string) (EmployeeResponse, error)
}
