package employee

import (
	"context"
)

// EmployeeRepository defines data access for enrolled employees.
type EmployeeRepository interface {
	// Create inserts a new employee. Fails with ErrLegajoExists when the
	// legajo is already taken.
	Create(ctx context.Context, emp Employee) (Employee, error)

	// GetByLegajo retrieves one employee, embedding included.
	GetByLegajo(ctx context.Context, legajo string) (Employee, error)

	// ListEnrolled returns every employee that has a reference embedding.
	// Used to warm the face index at startup.
	ListEnrolled(ctx context.Context) ([]Employee, error)
}
