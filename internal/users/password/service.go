// Copyright (c) 2026 F-Students App. All rights reserved.

package password

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/f-students-app/auth-service/internal/platform/apperr"
	"github.com/f-students-app/auth-service/internal/platform/ctxutil"
	"github.com/f-students-app/auth-service/internal/platform/sec"
	"github.com/f-students-app/auth-service/pkg/uuid"
)

// Service implements the credential lifecycle use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to token issuance,
// consumption, or the transactional update path must be reviewed by the
// security team.
type Service struct {
	accountRepository    AccountRepository
	resetTokenRepository ResetTokenRepository
	sessions             SessionRevoker
	notifier             Notifier
	policy               sec.PasswordPolicy
	resetTokenTTL        time.Duration
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	accountRepo AccountRepository,
	resetRepo ResetTokenRepository,
	sessions SessionRevoker,
	notifier Notifier,
	policy sec.PasswordPolicy,
	resetTokenTTL time.Duration,
) *Service {
	return &Service{
		accountRepository:    accountRepo,
		resetTokenRepository: resetRepo,
		sessions:             sessions,
		notifier:             notifier,
		policy:               policy,
		resetTokenTTL:        resetTokenTTL,
	}
}

/*
Forgot initiates the credential recovery flow.

Description: An unknown email succeeds with zero rows written, so the
response never reveals whether an account exists. For a known account a
32-byte hex token is persisted and handed to the notification service;
dispatch failure is logged and swallowed because the token row is already
durable and support can resend.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - err: Token generation or persistence failures
*/
func (service *Service) Forgot(context context.Context, email string) error {

	// Anti-enumeration: unknown emails return success with no side effects.
	account, err := service.accountRepository.FindByEmail(context, email)
	if err != nil {
		return nil
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return fmt.Errorf("password_service_generate_token_failed: %w", err)
	}

	row := &ResetToken{
		ID:        uuid.New(),
		UserID:    account.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(service.resetTokenTTL),
	}

	if err := service.resetTokenRepository.Create(context, row); err != nil {
		return fmt.Errorf("password_service_save_token_failed: %w", err)
	}

	// Best-effort dispatch. The token row is durable either way.
	if err := service.notifier.SendPasswordReset(context, account.Email, account.FullName, token); err != nil {
		ctxutil.GetLogger(context).Warn("password_reset_dispatch_failed",
			slog.String("user_id", account.ID),
			slog.Any("error", err),
		)
	}

	return nil
}

/*
Reset completes the credential recovery flow with a single-use token.

Description: A missing, already used, and expired token all collapse into
one generic 400 so callers cannot tell token states apart. The hash update,
the history row, and the token consumption commit in one transaction, after
which every live refresh token of the user is revoked.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string
  - confirmPassword: string

Returns:
  - err: Validation or transactional failures
*/
func (service *Service) Reset(context context.Context, token, newPassword, confirmPassword string) error {
	if err := service.checkNewPassword(newPassword, confirmPassword); err != nil {
		return err
	}

	row, err := service.resetTokenRepository.FindActive(context, token)
	if err != nil {
		return apperr.ValidationError("Invalid or expired reset token")
	}

	newHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("password_service_reset_hash_failed: %w", err)
	}

	update := Update{
		UserID:       row.UserID,
		NewHash:      newHash,
		HistoryID:    uuid.New(),
		ResetTokenID: row.ID,
	}

	if err := service.accountRepository.ApplyUpdate(context, update); err != nil {
		return fmt.Errorf("password_service_reset_apply_failed: %w", err)
	}

	service.revokeSessions(context, row.UserID)
	return nil
}

/*
Change rotates the password of an authenticated user.

Description: The current password must verify before anything is written; a
mismatch leaves no trace in the password history. The update itself is the
same transactional path as [Service.Reset], minus the token consumption,
and likewise revokes every live refresh token afterwards.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string
  - confirmPassword: string

Returns:
  - err: Unauthorized, validation, or transactional failures
*/
func (service *Service) Change(context context.Context, userID, currentPassword, newPassword, confirmPassword string) error {
	if err := service.checkNewPassword(newPassword, confirmPassword); err != nil {
		return err
	}

	account, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, account.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	newHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("password_service_change_hash_failed: %w", err)
	}

	update := Update{
		UserID:    account.ID,
		NewHash:   newHash,
		HistoryID: uuid.New(),
	}

	if err := service.accountRepository.ApplyUpdate(context, update); err != nil {
		return fmt.Errorf("password_service_change_apply_failed: %w", err)
	}

	service.revokeSessions(context, account.ID)
	return nil
}

// revokeSessions invalidates every refresh token the user still holds. The
// password update is already committed at this point, so a revocation
// failure is logged rather than surfaced; the caller cannot retry the flow.
func (service *Service) revokeSessions(context context.Context, userID string) {
	if err := service.sessions.RevokeAllForUser(context, userID); err != nil {
		ctxutil.GetLogger(context).Warn("password_session_revocation_failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}
}

// checkNewPassword enforces confirmation matching and the strength policy.
func (service *Service) checkNewPassword(newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return apperr.ValidationError("Passwords do not match")
	}

	if !service.policy.Validate(newPassword) {
		return apperr.ValidationError("Password does not meet the strength requirements")
	}

	return nil
}
