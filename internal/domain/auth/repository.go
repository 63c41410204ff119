package auth

import "context"

// OperatorRepository defines data access for operator accounts.
type OperatorRepository interface {
	GetByUsername(ctx context.Context, username string) (Operator, error)
}
