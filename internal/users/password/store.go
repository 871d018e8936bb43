// Copyright (c) 2026 F-Students App. All rights reserved.

package password

import "context"

// AccountRepository defines the account access the credential flows need.
type AccountRepository interface {
	// FindByEmail returns the active account registered with the email.
	//
	// Returns [apperr.NotFound] if no such account exists.
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// FindByID returns the active account with the given ID.
	//
	// Returns [apperr.NotFound] if no such account exists.
	FindByID(ctx context.Context, id string) (*Account, error)

	// ApplyUpdate commits a password change in a single transaction: the
	// new hash (clearing mustchangepassword, stamping passwordchangedat),
	// the append-only history row, and, when set, the consumed reset
	// token. Partial application is never visible.
	ApplyUpdate(ctx context.Context, update Update) error
}

// SessionRevoker invalidates every live refresh token a user holds. It is
// called after a successful password change so stolen sessions cannot
// outlive the compromised credential.
type SessionRevoker interface {
	RevokeAllForUser(ctx context.Context, userID string) error
}

// ResetTokenRepository defines the data access contract for reset tokens.
type ResetTokenRepository interface {
	// Create persists a freshly issued reset token.
	Create(ctx context.Context, token *ResetToken) error

	// FindActive returns the token row matching the given token string,
	// provided it is neither used nor expired.
	//
	// Returns [apperr.NotFound] otherwise.
	FindActive(ctx context.Context, token string) (*ResetToken, error)
}
