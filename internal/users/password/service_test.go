// Copyright (c) 2026 F-Students App. All rights reserved.

package password_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f-students-app/auth-service/internal/platform/apperr"
	"github.com/f-students-app/auth-service/internal/platform/sec"
	"github.com/f-students-app/auth-service/internal/users/password"
)

// # Fakes

type fakeAccountRepository struct {
	accounts map[string]*password.Account // keyed by email and ID
	updates  []password.Update
}

func (r *fakeAccountRepository) FindByEmail(_ context.Context, email string) (*password.Account, error) {
	if account, ok := r.accounts[email]; ok {
		return account, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeAccountRepository) FindByID(_ context.Context, id string) (*password.Account, error) {
	if account, ok := r.accounts[id]; ok {
		return account, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeAccountRepository) ApplyUpdate(_ context.Context, update password.Update) error {
	r.updates = append(r.updates, update)
	return nil
}

type fakeResetTokenRepository struct {
	created []*password.ResetToken
	active  map[string]*password.ResetToken
}

func (r *fakeResetTokenRepository) Create(_ context.Context, token *password.ResetToken) error {
	r.created = append(r.created, token)
	return nil
}

func (r *fakeResetTokenRepository) FindActive(_ context.Context, token string) (*password.ResetToken, error) {
	if row, ok := r.active[token]; ok {
		return row, nil
	}
	return nil, apperr.NotFound("Reset token")
}

type fakeSessionRevoker struct {
	revoked []string // user IDs
	err     error
}

func (s *fakeSessionRevoker) RevokeAllForUser(_ context.Context, userID string) error {
	s.revoked = append(s.revoked, userID)
	return s.err
}

type fakeNotifier struct {
	sent []string // emails
	err  error
}

func (n *fakeNotifier) SendPasswordReset(_ context.Context, email, _, _ string) error {
	n.sent = append(n.sent, email)
	return n.err
}

// # Fixtures

const currentPassword = "Old-Password-1!"

func testPolicy() sec.PasswordPolicy {
	return sec.PasswordPolicy{
		MinLength:      8,
		RequireUpper:   true,
		RequireLower:   true,
		RequireNumber:  true,
		RequireSpecial: true,
	}
}

func newTestService(t *testing.T) (*password.Service, *fakeAccountRepository, *fakeResetTokenRepository, *fakeSessionRevoker, *fakeNotifier) {
	t.Helper()

	hash, err := sec.HashPassword(currentPassword)
	require.NoError(t, err)

	account := &password.Account{
		ID:           "user-1",
		Username:     "alice",
		Email:        "alice@example.com",
		FullName:     "Alice Nguyen",
		PasswordHash: hash,
		IsActive:     true,
	}

	accountRepo := &fakeAccountRepository{accounts: map[string]*password.Account{
		account.ID:    account,
		account.Email: account,
	}}
	resetRepo := &fakeResetTokenRepository{active: map[string]*password.ResetToken{}}
	sessions := &fakeSessionRevoker{}
	notifier := &fakeNotifier{}

	service := password.NewService(accountRepo, resetRepo, sessions, notifier, testPolicy(), time.Hour)
	return service, accountRepo, resetRepo, sessions, notifier
}

// # Forgot

/*
TestForgot_KnownEmail verifies a token is persisted and dispatched.
*/
func TestForgot_KnownEmail(t *testing.T) {
	service, _, resetRepo, _, notifier := newTestService(t)

	err := service.Forgot(context.Background(), "alice@example.com")
	require.NoError(t, err)

	require.Len(t, resetRepo.created, 1)
	token := resetRepo.created[0]
	assert.Equal(t, "user-1", token.UserID)
	assert.Len(t, token.Token, 64) // 32 random bytes, hex encoded
	assert.True(t, token.ExpiresAt.After(time.Now()))

	assert.Equal(t, []string{"alice@example.com"}, notifier.sent)
}

/*
TestForgot_UnknownEmail verifies anti-enumeration: success with zero side
effects.
*/
func TestForgot_UnknownEmail(t *testing.T) {
	service, _, resetRepo, _, notifier := newTestService(t)

	err := service.Forgot(context.Background(), "nobody@example.com")
	require.NoError(t, err)

	assert.Empty(t, resetRepo.created)
	assert.Empty(t, notifier.sent)
}

/*
TestForgot_DispatchFailureIsSwallowed verifies a notification outage does
not fail the flow; the token row is already durable.
*/
func TestForgot_DispatchFailureIsSwallowed(t *testing.T) {
	service, _, resetRepo, _, notifier := newTestService(t)
	notifier.err = assert.AnError

	err := service.Forgot(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Len(t, resetRepo.created, 1)
}

// # Reset

/*
TestReset_Success verifies the transactional update consumes the token.
*/
func TestReset_Success(t *testing.T) {
	service, accountRepo, resetRepo, sessions, _ := newTestService(t)
	resetRepo.active["valid-token"] = &password.ResetToken{
		ID:        "prt-1",
		UserID:    "user-1",
		Token:     "valid-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	err := service.Reset(context.Background(), "valid-token", "New-Password-2!", "New-Password-2!")
	require.NoError(t, err)

	require.Len(t, accountRepo.updates, 1)
	update := accountRepo.updates[0]
	assert.Equal(t, "user-1", update.UserID)
	assert.Equal(t, "prt-1", update.ResetTokenID)
	assert.NotEmpty(t, update.HistoryID)
	assert.True(t, sec.CheckPasswordHash("New-Password-2!", update.NewHash))

	// Existing sessions must not survive a password reset.
	assert.Equal(t, []string{"user-1"}, sessions.revoked)
}

/*
TestReset_CollapsedTokenErrors verifies a missing, used, and expired token
produce the same generic message.
*/
func TestReset_CollapsedTokenErrors(t *testing.T) {
	service, accountRepo, _, sessions, _ := newTestService(t)

	err := service.Reset(context.Background(), "unknown-token", "New-Password-2!", "New-Password-2!")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 400, appError.HTTPStatus)
	assert.Equal(t, "Invalid or expired reset token", appError.Message)
	assert.Empty(t, accountRepo.updates)
	assert.Empty(t, sessions.revoked)
}

/*
TestReset_Validation verifies confirmation mismatch and weak passwords are
rejected before the token is even looked up.
*/
func TestReset_Validation(t *testing.T) {
	tests := []struct {
		name     string
		password string
		confirm  string
	}{
		{"mismatch", "New-Password-2!", "Other-Password-2!"},
		{"too_short", "Np2!", "Np2!"},
		{"missing_special", "NewPassword22", "NewPassword22"},
		{"missing_upper", "new-password-2!", "new-password-2!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, accountRepo, _, _, _ := newTestService(t)

			err := service.Reset(context.Background(), "any", tt.password, tt.confirm)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, 400, appError.HTTPStatus)
			assert.Empty(t, accountRepo.updates)
		})
	}
}

// # Change

/*
TestChange_Success verifies the authenticated rotation path.
*/
func TestChange_Success(t *testing.T) {
	service, accountRepo, _, sessions, _ := newTestService(t)

	err := service.Change(context.Background(), "user-1", currentPassword, "New-Password-2!", "New-Password-2!")
	require.NoError(t, err)

	require.Len(t, accountRepo.updates, 1)
	update := accountRepo.updates[0]
	assert.Equal(t, "user-1", update.UserID)
	assert.Empty(t, update.ResetTokenID) // no token consumption on change
	assert.NotEmpty(t, update.HistoryID)

	assert.Equal(t, []string{"user-1"}, sessions.revoked)
}

/*
TestChange_RevocationFailureIsSwallowed verifies a session store outage does
not fail the flow once the password update has committed.
*/
func TestChange_RevocationFailureIsSwallowed(t *testing.T) {
	service, accountRepo, _, sessions, _ := newTestService(t)
	sessions.err = assert.AnError

	err := service.Change(context.Background(), "user-1", currentPassword, "New-Password-2!", "New-Password-2!")
	require.NoError(t, err)
	assert.Len(t, accountRepo.updates, 1)
}

/*
TestChange_WrongCurrentPassword verifies a bad current password yields 401
and, critically, writes no history row.
*/
func TestChange_WrongCurrentPassword(t *testing.T) {
	service, accountRepo, _, sessions, _ := newTestService(t)

	err := service.Change(context.Background(), "user-1", "wrong-password", "New-Password-2!", "New-Password-2!")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 401, appError.HTTPStatus)
	assert.Empty(t, accountRepo.updates)
	assert.Empty(t, sessions.revoked)
}
