package employee

import (
	"time"

	"github.com/presentia-hr/presentia-backend-go/internal/domain/shift"
)

// Employee is one enrolled person. The legajo (personnel file number) is the
// stable unique key; the reference embedding is the single face vector the
// matcher compares probes against.
type Employee struct {
	Legajo    string
	Area      string
	Role      string
	Shift     shift.Label
	Embedding []float32
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasEmbedding reports whether the employee carries a usable reference vector.
func (e Employee) HasEmbedding() bool {
	return len(e.Embedding) > 0
}
