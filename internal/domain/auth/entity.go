package auth

import "time"

// Operator is a back-office account that can query attendance and, when
// IsAdmin is set, enroll employees. Terminals authenticate with the same
// mechanism using non-admin accounts.
type Operator struct {
	ID           string
	Username     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}
