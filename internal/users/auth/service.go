// Copyright (c) 2026 F-Students App. All rights reserved.

/*
Package auth implements the core identity and access management (IAM) system.

It handles credential verification with a transactional lockout state machine,
refresh-token lifecycle (issue, refresh, revoke), and the trusted internal
user lookup.

Architecture:

  - Service: Orchestrates business logic (Login, Refresh, Logout).
  - Repository: Abstracted interfaces for Postgres (Users, RefreshTokens).
  - Security: Leverages Bcrypt and HS256-signed JWTs in two secret domains.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/f-students-app/auth-service/internal/platform/apperr"
	"github.com/f-students-app/auth-service/internal/platform/constants"
	"github.com/f-students-app/auth-service/internal/platform/sec"
	"github.com/f-students-app/auth-service/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing and verifying session tokens.
type TokenProvider interface {
	// IssueAccessToken creates a signed access JWT for the given user.
	// The isAuthorized flag marks whether the token has passed the
	// authorization exchange.
	IssueAccessToken(userID, username string, roles []string, isAuthorized bool) (string, error)

	// IssueRefreshToken creates a signed refresh JWT carrying identity
	// claims only, never authorization state.
	IssueRefreshToken(userID, username string, roles []string) (string, error)

	// VerifyRefreshToken validates a refresh JWT against the refresh
	// secret domain.
	VerifyRefreshToken(tokenString string) (*sec.SessionClaims, error)

	// AccessTokenTTL reports the configured access token lifetime.
	AccessTokenTTL() time.Duration
}

// Settings carries the tunable lockout and session parameters.
type Settings struct {
	MaxLoginAttempts int
	LockoutDuration  time.Duration
	RefreshTokenTTL  time.Duration
}

// Service implements the authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to the lockout state
// machine or token issuance must be reviewed by the security team.
type Service struct {
	userRepository         UserRepository
	refreshTokenRepository RefreshTokenRepository
	tokenProvider          TokenProvider
	settings               Settings
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	refreshRepo RefreshTokenRepository,
	tokenProv TokenProvider,
	settings Settings,
) *Service {
	return &Service{
		userRepository:         userRepo,
		refreshTokenRepository: refreshRepo,
		tokenProvider:          tokenProv,
		settings:               settings,
	}
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login     string // Can be Username or Email
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession represents a successfully established user session.
//
// The access token is pre-authorization (isAuthorized=false); the client
// must exchange it at the authorize endpoint before reaching guarded routes.
type LoginSession struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int // Access token lifetime in seconds.
	User         *User
}

/*
Login validates user credentials and issues security tokens.

Description: Verifies identity through the lockout state machine, performs
constant-time password comparison, and persists the session plus audit trail
in a single transaction.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - err: Unauthorized, Locked or internal failures

State machine:
 1. Unknown login resolves to the same generic 401 as a wrong password.
 2. Inactive accounts are rejected before password verification.
 3. A live lockout window rejects with 423 and the unlock timestamp.
 4. A failed password check commits the incremented counter and the audit
    row even though the login fails; reaching the attempt ceiling arms the
    lockout window.
 5. A match resets the counter and stamps the last login inside the same
    transaction that persists the refresh token.
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {

	// Flexible login: look up by username or email. Generic message on miss
	// to prevent account enumeration.
	user, err := service.userRepository.FindByLogin(context, input.Login)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !user.IsActive {
		return nil, apperr.Unauthorized("Account is inactive")
	}

	now := time.Now()
	if user.IsLocked(now) {
		return nil, apperr.Locked(fmt.Sprintf(
			"Account is locked due to too many failed login attempts. Try again after %s",
			user.LockedUntil.UTC().Format(time.RFC3339),
		))
	}

	// Constant-time comparison in bcrypt to prevent timing attacks.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		attempts := user.FailedLoginAttempts + 1

		var lockedUntil *time.Time
		if attempts >= service.settings.MaxLoginAttempts {
			lockExpiry := now.Add(service.settings.LockoutDuration)
			lockedUntil = &lockExpiry
		}

		record := service.newLoginRecord(user, input, constants.LoginStatusFailedCredentials)

		// The counter and audit row are committed even though the login fails.
		if err := service.userRepository.RecordLoginFailure(context, user.ID, attempts, lockedUntil, record); err != nil {
			return nil, fmt.Errorf("auth_service_record_failure_failed: %w", err)
		}

		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Issue the pre-authorization access token. isAuthorized stays false
	// until the authorize exchange.
	accessToken, err := service.tokenProvider.IssueAccessToken(user.ID, user.Username, user.RoleCodes(), false)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	refreshToken, err := service.tokenProvider.IssueRefreshToken(user.ID, user.Username, user.RoleCodes())
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	tokenRow := &RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     refreshToken,
		UserAgent: input.UserAgent,
		IPAddress: input.IPAddress,
		ExpiresAt: now.Add(service.settings.RefreshTokenTTL),
	}

	record := service.newLoginRecord(user, input, constants.LoginStatusSuccess)

	if err := service.userRepository.RecordLoginSuccess(context, user.ID, input.IPAddress, tokenRow, record); err != nil {
		return nil, fmt.Errorf("auth_service_record_success_failed: %w", err)
	}

	// Reflect the reset in the returned profile without a re-read.
	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	user.LastLoginAt = &now

	return &LoginSession{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(service.tokenProvider.AccessTokenTTL().Seconds()),
		User:         user,
	}, nil
}

// newLoginRecord builds an append-only audit row for the attempt outcome.
func (service *Service) newLoginRecord(user *User, input LoginInput, status string) *LoginRecord {
	return &LoginRecord{
		ID:        uuid.New(),
		UserID:    &user.ID,
		Username:  user.Username,
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
		Status:    status,
	}
}

// # Session Management

// RefreshedSession carries the replacement access token minted by [Service.Refresh].
type RefreshedSession struct {
	AccessToken string
	ExpiresIn   int
}

/*
Refresh mints a fresh pre-authorization access token from a stored refresh token.

Description: The refresh token itself is NOT rotated; it stays valid until
its own expiry or revocation. A signature failure, a missing row, a revoked
row, and an expired row all collapse into one generic 401 so callers cannot
tell token states apart.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *RefreshedSession: New pre-authorization access token
  - err: Unauthorized or storage failures
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*RefreshedSession, error) {

	// Verify the signature and expiry against the refresh secret domain.
	claims, err := service.tokenProvider.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// The row must still exist, unrevoked and unexpired.
	row, err := service.refreshTokenRepository.FindActive(context, refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	if row.UserID != claims.UserID {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Re-derive live role codes; a deactivated account cannot refresh.
	user, err := service.userRepository.FindByID(context, row.UserID)
	if err != nil || !user.IsActive {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	accessToken, err := service.tokenProvider.IssueAccessToken(user.ID, user.Username, user.RoleCodes(), false)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_access_token_failed: %w", err)
	}

	return &RefreshedSession{
		AccessToken: accessToken,
		ExpiresIn:   int(service.tokenProvider.AccessTokenTTL().Seconds()),
	}, nil
}

/*
Logout revokes the user's refresh token.

Description: Revocation stamps RevokedAt on every matching row; rows are
never deleted. The operation is idempotent: an empty, unknown, or already
revoked token is a successful logout.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - err: Revocation failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	if err := service.refreshTokenRepository.RevokeMatching(context, refreshToken); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Trusted Lookups

/*
InternalLookup returns the sanitized account profile for service-to-service callers.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Sanitized account entity
  - err: apperr.NotFound or storage failures
*/
func (service *Service) InternalLookup(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

/*
FindIdentity resolves the live identity behind a verified token for the
session authenticator middleware.

Description: Tokens outlive account state changes, so this re-check rejects
deleted and deactivated accounts on every authenticated request.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - sec.Identity: Immutable identity value for the request context
  - err: Unauthorized if the account is missing or inactive
*/
func (service *Service) FindIdentity(context context.Context, userID string) (sec.Identity, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return sec.Identity{}, apperr.Unauthorized("User account is inactive or no longer exists")
	}

	if !user.IsActive {
		return sec.Identity{}, apperr.Unauthorized("User account is inactive or no longer exists")
	}

	return sec.Identity{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    user.RoleCodes(),
	}, nil
}
