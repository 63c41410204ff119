package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/presentia-hr/presentia-backend-go/internal/domain/auth"
	"github.com/presentia-hr/presentia-backend-go/internal/pkg/database"
)

type operatorRepository struct {
	db *database.DB
}

func NewOperatorRepository(db *database.DB) auth.OperatorRepository {
	return &operatorRepository{db: db}
}

// GetByUsername implements auth.OperatorRepository.
func (r *operatorRepository) GetByUsername(ctx context.Context, username string) (auth.Operator, error) {
	ctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, username, password_hash, is_admin, created_at
		FROM operators
		WHERE username = $1
	`

	var op auth.Operator
	err := r.db.QueryRow(ctx, query, username).Scan(
		&op.ID, &op.Username, &op.PasswordHash, &op.IsAdmin, &op.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Operator{}, auth.ErrOperatorNotFound
		}
		return auth.Operator{}, fmt.Errorf("failed to get operator by username: %w", database.MapTimeout(err))
	}

	return op, nil
}
