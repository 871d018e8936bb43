// Copyright (c) 2026 F-Students App. All rights reserved.

package auth

import (
	"context"
	"time"
)

// UserRepository defines the data access contract for user accounts.
//
// # Review Process
//
// This interface is placed in a separate file from user.go so entity changes
// and storage-contract changes can be reviewed independently by the team.
//
// # Implementations
//
// The canonical implementation is PostgreSQL ([PostgresUserRepository]).
type UserRepository interface {
	// FindByLogin returns the account whose username or email exactly
	// matches the given login, with active role codes loaded.
	//
	// Returns [apperr.NotFound] if the account does not exist.
	FindByLogin(ctx context.Context, login string) (*User, error)

	// FindByID returns the account with the given ID, with active role
	// codes loaded.
	//
	// Returns [apperr.NotFound] if the account does not exist.
	FindByID(ctx context.Context, id string) (*User, error)

	// RecordLoginFailure persists the outcome of a failed password check
	// in a single transaction: the incremented failure counter, the
	// optional lockout window, and the append-only audit row. The audit
	// row must survive even though the login itself fails.
	RecordLoginFailure(ctx context.Context, userID string, attempts int, lockedUntil *time.Time, record *LoginRecord) error

	// RecordLoginSuccess persists the outcome of a successful login in a
	// single transaction: counter reset, lock cleared, last-login stamp,
	// the new refresh token row, and the audit row.
	RecordLoginSuccess(ctx context.Context, userID string, ipAddress string, token *RefreshToken, record *LoginRecord) error
}

// RefreshTokenRepository defines the data access contract for refresh tokens.
//
// # Domain Ownership
//
// This is kept alongside [UserRepository] because refresh tokens are owned
// entirely by the users' domain, despite serving authentication security.
type RefreshTokenRepository interface {
	// FindActive returns the stored token row matching the given token
	// string, provided it is neither revoked nor expired.
	//
	// Returns [apperr.NotFound] if no such row exists.
	FindActive(ctx context.Context, token string) (*RefreshToken, error)

	// RevokeMatching stamps RevokedAt on every active row holding the
	// given token string. Revoking an unknown token is a no-op.
	RevokeMatching(ctx context.Context, token string) error

	// RevokeAllForUser stamps RevokedAt on every active row of the user.
	// Crucial for security event responses (e.g., password change or
	// account compromise).
	RevokeAllForUser(ctx context.Context, userID string) error
}
