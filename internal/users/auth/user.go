// Copyright (c) 2026 F-Students App. All rights reserved.

// Package auth implements the authentication core of the identity service.
//
// # Architecture
//
// Entities in this file represent the "Truth" of the account domain.
// They have no dependencies on outer layers (like databases, APIs, or libraries).
// This makes the core logic highly testable and resilient to technology changes.
package auth

import (
	"time"

	"github.com/f-students-app/auth-service/pkg/slice"
)

// RoleRef is the reduced role projection attached to an account.
type RoleRef struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// User represents a registered account of the platform.
//
// # Rules
//   - Username and Email are unique.
//   - PasswordHash is generated via Bcrypt exclusively via the password service.
//   - FailedLoginAttempts and LockedUntil drive the lockout state machine.
type User struct {
	ID                  string     `json:"id"`
	Username            string     `json:"username"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"` // Explicitly omitted from JSON for security.
	FullName            string     `json:"fullName"`
	IsActive            bool       `json:"isActive"`
	MustChangePassword  bool       `json:"mustChangePassword"`
	PasswordChangedAt   *time.Time `json:"-"`
	FailedLoginAttempts int        `json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"lastLoginAt,omitempty"`
	LastLoginIP         *string    `json:"-"`
	Roles               []RoleRef  `json:"roles"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"-"`
}

// RoleCodes returns the role codes attached to the account.
func (user *User) RoleCodes() []string {
	return slice.Map(user.Roles, func(role RoleRef) string { return role.Code })
}

// Profile is the sanitized account projection returned over the wire.
//
// Roles are flattened to role codes; clients resolve details through the
// role administration endpoints.
type Profile struct {
	ID                 string     `json:"id"`
	Username           string     `json:"username"`
	Email              string     `json:"email"`
	FullName           string     `json:"fullName"`
	IsActive           bool       `json:"isActive"`
	MustChangePassword bool       `json:"mustChangePassword"`
	LastLoginAt        *time.Time `json:"lastLoginAt,omitempty"`
	Roles              []string   `json:"roles"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// Profile returns the wire-safe projection of the account.
func (user *User) Profile() Profile {
	return Profile{
		ID:                 user.ID,
		Username:           user.Username,
		Email:              user.Email,
		FullName:           user.FullName,
		IsActive:           user.IsActive,
		MustChangePassword: user.MustChangePassword,
		LastLoginAt:        user.LastLoginAt,
		Roles:              user.RoleCodes(),
		CreatedAt:          user.CreatedAt,
	}
}

// IsLocked reports whether the account is under an active lockout window.
func (user *User) IsLocked(now time.Time) bool {
	return user.LockedUntil != nil && user.LockedUntil.After(now)
}

// RefreshToken represents a persisted long-lived session credential.
//
// # Security Concept
//
// Access tokens are short-lived JWTs and cannot be revoked before expiry.
// Refresh tokens are stored server-side so a logout (or a security event)
// can invalidate the session immediately. Revoked rows are timestamped and
// kept for audit, never deleted.
type RefreshToken struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Token     string     `json:"-"` // The signed token string. Omitted for security.
	UserAgent string     `json:"userAgent"`
	IPAddress string     `json:"ipAddress"`
	ExpiresAt time.Time  `json:"expiresAt"`
	RevokedAt *time.Time `json:"revokedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// LoginRecord is an append-only audit entry for an authentication attempt.
//
// UserID is a pointer because failed attempts against unknown usernames
// carry no account reference.
type LoginRecord struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"userId,omitempty"`
	Username  string    `json:"username"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// # Validation Field Names

const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldToken    = "token"
)
