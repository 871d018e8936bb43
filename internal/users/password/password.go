// Copyright (c) 2026 F-Students App. All rights reserved.

// Package password implements the credential lifecycle: forgot-password
// token issuance, single-use reset, and authenticated password change.
package password

import "time"

// Account is the reduced account projection the credential flows operate on.
type Account struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	PasswordHash string
	IsActive     bool
}

// ResetToken is a single-use, time-boxed credential recovery token.
//
// # Rules
//   - Token is 32 random bytes, hex encoded.
//   - A token is consumed exactly once: UsedAt is stamped inside the same
//     transaction that updates the password hash.
type ResetToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Update bundles the rows touched by a password change so the storage layer
// can commit them atomically.
type Update struct {
	UserID    string
	NewHash   string
	HistoryID string
	// ResetTokenID marks the consumed reset token. Empty for the
	// authenticated change-password flow.
	ResetTokenID string
}

// # Validation Field Names

const (
	FieldEmail           = "email"
	FieldToken           = "token"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
	FieldConfirmPassword = "confirmPassword"
)

// ResetTokenLength is the byte length of the random reset token.
const ResetTokenLength = 32
