// Copyright (c) 2026 F-Students App. All rights reserved.

package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f-students-app/auth-service/internal/platform/apperr"
	"github.com/f-students-app/auth-service/internal/platform/sec"
	"github.com/f-students-app/auth-service/internal/users/auth"
)

// # Fakes

type failureCall struct {
	userID      string
	attempts    int
	lockedUntil *time.Time
	record      *auth.LoginRecord
}

type successCall struct {
	userID string
	token  *auth.RefreshToken
	record *auth.LoginRecord
}

type fakeUserRepository struct {
	users     map[string]*auth.User // keyed by both login and ID
	failures  []failureCall
	successes []successCall
}

func (r *fakeUserRepository) FindByLogin(_ context.Context, login string) (*auth.User, error) {
	if user, ok := r.users[login]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepository) RecordLoginFailure(_ context.Context, userID string, attempts int, lockedUntil *time.Time, record *auth.LoginRecord) error {
	r.failures = append(r.failures, failureCall{userID, attempts, lockedUntil, record})
	return nil
}

func (r *fakeUserRepository) RecordLoginSuccess(_ context.Context, userID string, _ string, token *auth.RefreshToken, record *auth.LoginRecord) error {
	r.successes = append(r.successes, successCall{userID, token, record})
	return nil
}

type fakeRefreshTokenRepository struct {
	rows      map[string]*auth.RefreshToken
	revoked   []string
	revokeAll []string
}

func (r *fakeRefreshTokenRepository) FindActive(_ context.Context, token string) (*auth.RefreshToken, error) {
	if row, ok := r.rows[token]; ok {
		return row, nil
	}
	return nil, apperr.NotFound("Refresh token")
}

func (r *fakeRefreshTokenRepository) RevokeMatching(_ context.Context, token string) error {
	r.revoked = append(r.revoked, token)
	delete(r.rows, token)
	return nil
}

func (r *fakeRefreshTokenRepository) RevokeAllForUser(_ context.Context, userID string) error {
	r.revokeAll = append(r.revokeAll, userID)
	return nil
}

// fakeTokenProvider mints deterministic token strings and verifies refresh
// tokens from an allow-list.
type fakeTokenProvider struct {
	validRefresh map[string]*sec.SessionClaims
}

func (p *fakeTokenProvider) IssueAccessToken(userID, _ string, _ []string, isAuthorized bool) (string, error) {
	if isAuthorized {
		return "access-authorized-" + userID, nil
	}
	return "access-preauth-" + userID, nil
}

func (p *fakeTokenProvider) IssueRefreshToken(userID, _ string, _ []string) (string, error) {
	return "refresh-" + userID, nil
}

func (p *fakeTokenProvider) VerifyRefreshToken(tokenString string) (*sec.SessionClaims, error) {
	if claims, ok := p.validRefresh[tokenString]; ok {
		return claims, nil
	}
	return nil, errors.New("signature is invalid")
}

func (p *fakeTokenProvider) AccessTokenTTL() time.Duration {
	return 15 * time.Minute
}

// # Fixtures

const testPassword = "Correct-Horse-1!"

func newTestUser(t *testing.T) *auth.User {
	t.Helper()

	hash, err := sec.HashPassword(testPassword)
	require.NoError(t, err)

	return &auth.User{
		ID:           "user-1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
		FullName:     "Alice Nguyen",
		IsActive:     true,
		Roles:        []auth.RoleRef{{ID: "role-1", Code: "TEACHER", Name: "Teacher"}},
	}
}

func newTestService(t *testing.T, user *auth.User) (*auth.Service, *fakeUserRepository, *fakeRefreshTokenRepository, *fakeTokenProvider) {
	t.Helper()

	userRepo := &fakeUserRepository{users: map[string]*auth.User{}}
	if user != nil {
		userRepo.users[user.ID] = user
		userRepo.users[user.Username] = user
		userRepo.users[user.Email] = user
	}

	refreshRepo := &fakeRefreshTokenRepository{rows: map[string]*auth.RefreshToken{}}
	tokenProvider := &fakeTokenProvider{validRefresh: map[string]*sec.SessionClaims{}}

	service := auth.NewService(userRepo, refreshRepo, tokenProvider, auth.Settings{
		MaxLoginAttempts: 5,
		LockoutDuration:  30 * time.Minute,
		RefreshTokenTTL:  7 * 24 * time.Hour,
	})

	return service, userRepo, refreshRepo, tokenProvider
}

// # Login

/*
TestLogin_Success verifies the happy path: credentials match, the session is
persisted transactionally, and the issued access token is pre-authorization.
*/
func TestLogin_Success(t *testing.T) {
	user := newTestUser(t)
	user.FailedLoginAttempts = 3 // prior failures must be wiped on success

	service, userRepo, _, _ := newTestService(t, user)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Login:     "alice",
		Password:  testPassword,
		UserAgent: "go-test",
		IPAddress: "10.0.0.1",
	})

	require.NoError(t, err)
	assert.Equal(t, "access-preauth-user-1", session.AccessToken)
	assert.Equal(t, "refresh-user-1", session.RefreshToken)
	assert.Equal(t, 900, session.ExpiresIn)
	assert.Equal(t, 0, session.User.FailedLoginAttempts)
	assert.Nil(t, session.User.LockedUntil)

	require.Len(t, userRepo.successes, 1)
	recorded := userRepo.successes[0]
	assert.Equal(t, "user-1", recorded.userID)
	assert.Equal(t, "refresh-user-1", recorded.token.Token)
	assert.Equal(t, "SUCCESS", recorded.record.Status)
	assert.Empty(t, userRepo.failures)
}

/*
TestLogin_AntiEnumeration verifies an unknown login and a wrong password
produce the identical generic error.
*/
func TestLogin_AntiEnumeration(t *testing.T) {
	service, _, _, _ := newTestService(t, newTestUser(t))

	_, unknownErr := service.Login(context.Background(), auth.LoginInput{Login: "nobody", Password: "whatever"})
	_, wrongPassErr := service.Login(context.Background(), auth.LoginInput{Login: "alice", Password: "wrong-password"})

	require.Error(t, unknownErr)
	require.Error(t, wrongPassErr)

	unknownApp := apperr.As(unknownErr)
	wrongApp := apperr.As(wrongPassErr)
	require.NotNil(t, unknownApp)
	require.NotNil(t, wrongApp)
	assert.Equal(t, unknownApp.Message, wrongApp.Message)
	assert.Equal(t, unknownApp.HTTPStatus, wrongApp.HTTPStatus)
}

/*
TestLogin_FailureIncrementsCounter verifies a wrong password commits the
incremented counter and audit row without arming the lockout early.
*/
func TestLogin_FailureIncrementsCounter(t *testing.T) {
	user := newTestUser(t)
	user.FailedLoginAttempts = 2

	service, userRepo, _, _ := newTestService(t, user)

	_, err := service.Login(context.Background(), auth.LoginInput{Login: "alice", Password: "wrong"})
	require.Error(t, err)

	require.Len(t, userRepo.failures, 1)
	failure := userRepo.failures[0]
	assert.Equal(t, 3, failure.attempts)
	assert.Nil(t, failure.lockedUntil)
	assert.Equal(t, "FAILED_INVALID_CREDENTIALS", failure.record.Status)
}

/*
TestLogin_LockoutAtCeiling verifies the attempt that reaches the ceiling
arms the lockout window.
*/
func TestLogin_LockoutAtCeiling(t *testing.T) {
	user := newTestUser(t)
	user.FailedLoginAttempts = 4 // next failure is the 5th

	service, userRepo, _, _ := newTestService(t, user)

	before := time.Now()
	_, err := service.Login(context.Background(), auth.LoginInput{Login: "alice", Password: "wrong"})
	require.Error(t, err)

	require.Len(t, userRepo.failures, 1)
	failure := userRepo.failures[0]
	assert.Equal(t, 5, failure.attempts)
	require.NotNil(t, failure.lockedUntil)

	wantUnlock := before.Add(30 * time.Minute)
	assert.WithinDuration(t, wantUnlock, *failure.lockedUntil, 5*time.Second)
}

/*
TestLogin_LockedAccount verifies an account inside the lockout window is
rejected with 423 before the password is even checked.
*/
func TestLogin_LockedAccount(t *testing.T) {
	user := newTestUser(t)
	lockedUntil := time.Now().Add(10 * time.Minute)
	user.LockedUntil = &lockedUntil

	service, userRepo, _, _ := newTestService(t, user)

	_, err := service.Login(context.Background(), auth.LoginInput{Login: "alice", Password: testPassword})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 423, appError.HTTPStatus)
	assert.Contains(t, appError.Message, lockedUntil.UTC().Format(time.RFC3339))
	assert.Empty(t, userRepo.failures)
	assert.Empty(t, userRepo.successes)
}

/*
TestLogin_ExpiredLockIsIgnored verifies a lockout window in the past no
longer blocks authentication.
*/
func TestLogin_ExpiredLockIsIgnored(t *testing.T) {
	user := newTestUser(t)
	expired := time.Now().Add(-time.Minute)
	user.LockedUntil = &expired
	user.FailedLoginAttempts = 5

	service, _, _, _ := newTestService(t, user)

	session, err := service.Login(context.Background(), auth.LoginInput{Login: "alice", Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, 0, session.User.FailedLoginAttempts)
	assert.Nil(t, session.User.LockedUntil)
}

/*
TestLogin_InactiveAccount verifies deactivated accounts cannot authenticate.
*/
func TestLogin_InactiveAccount(t *testing.T) {
	user := newTestUser(t)
	user.IsActive = false

	service, _, _, _ := newTestService(t, user)

	_, err := service.Login(context.Background(), auth.LoginInput{Login: "alice", Password: testPassword})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 401, appError.HTTPStatus)
}

// # Refresh

/*
TestRefresh_Success verifies a valid stored refresh token mints a fresh
pre-authorization access token without rotating the refresh token.
*/
func TestRefresh_Success(t *testing.T) {
	user := newTestUser(t)
	service, _, refreshRepo, tokenProvider := newTestService(t, user)

	tokenProvider.validRefresh["refresh-user-1"] = &sec.SessionClaims{UserID: "user-1", Username: "alice"}
	refreshRepo.rows["refresh-user-1"] = &auth.RefreshToken{
		ID:        "rt-1",
		UserID:    "user-1",
		Token:     "refresh-user-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	session, err := service.Refresh(context.Background(), "refresh-user-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(session.AccessToken, "access-preauth-"))
	assert.Equal(t, 900, session.ExpiresIn)

	// The stored token must survive the refresh untouched.
	assert.Contains(t, refreshRepo.rows, "refresh-user-1")
	assert.Empty(t, refreshRepo.revoked)
}

/*
TestRefresh_CollapsedErrors verifies every failure mode resolves to the same
generic 401 so callers cannot tell token states apart.
*/
func TestRefresh_CollapsedErrors(t *testing.T) {
	user := newTestUser(t)

	inactive := newTestUser(t)
	inactive.ID = "user-2"
	inactive.Username = "bob"
	inactive.Email = "bob@example.com"
	inactive.IsActive = false

	service, userRepo, refreshRepo, tokenProvider := newTestService(t, user)
	userRepo.users[inactive.ID] = inactive

	// Signed but with no stored row.
	tokenProvider.validRefresh["refresh-ghost"] = &sec.SessionClaims{UserID: "user-1"}

	// Signed and stored, but the account is inactive.
	tokenProvider.validRefresh["refresh-inactive"] = &sec.SessionClaims{UserID: "user-2"}
	refreshRepo.rows["refresh-inactive"] = &auth.RefreshToken{
		ID: "rt-2", UserID: "user-2", Token: "refresh-inactive", ExpiresAt: time.Now().Add(time.Hour),
	}

	tests := []struct {
		name  string
		token string
	}{
		{"bad_signature", "not-a-token"},
		{"missing_row", "refresh-ghost"},
		{"inactive_account", "refresh-inactive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Refresh(context.Background(), tt.token)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, 401, appError.HTTPStatus)
			assert.Equal(t, "Invalid or expired refresh token", appError.Message)
		})
	}
}

// # Logout

/*
TestLogout_Idempotent verifies logout succeeds for empty, unknown, and
active tokens alike, and revokes rather than deletes.
*/
func TestLogout_Idempotent(t *testing.T) {
	user := newTestUser(t)
	service, _, refreshRepo, _ := newTestService(t, user)

	refreshRepo.rows["refresh-user-1"] = &auth.RefreshToken{
		ID: "rt-1", UserID: "user-1", Token: "refresh-user-1", ExpiresAt: time.Now().Add(time.Hour),
	}

	// Empty token is a silent no-op.
	require.NoError(t, service.Logout(context.Background(), ""))
	assert.Empty(t, refreshRepo.revoked)

	// Active token is revoked.
	require.NoError(t, service.Logout(context.Background(), "refresh-user-1"))
	assert.Equal(t, []string{"refresh-user-1"}, refreshRepo.revoked)

	// Logging out again still succeeds.
	require.NoError(t, service.Logout(context.Background(), "refresh-user-1"))
}

// # Identity Resolution

/*
TestFindIdentity verifies live account resolution for the session middleware.
*/
func TestFindIdentity(t *testing.T) {
	user := newTestUser(t)

	inactive := newTestUser(t)
	inactive.ID = "user-2"
	inactive.IsActive = false

	service, userRepo, _, _ := newTestService(t, user)
	userRepo.users[inactive.ID] = inactive

	identity, err := service.FindIdentity(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.ID)
	assert.Equal(t, []string{"TEACHER"}, identity.Roles)

	_, err = service.FindIdentity(context.Background(), "user-2")
	require.Error(t, err)

	_, err = service.FindIdentity(context.Background(), "user-missing")
	require.Error(t, err)
}
