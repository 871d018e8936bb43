// Copyright (c) 2026 F-Students App. All rights reserved.

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f-students-app/auth-service/internal/platform/sec"
)

func newTestCodec(t *testing.T, accessTTL time.Duration) *sec.TokenCodec {
	t.Helper()
	codec, err := sec.NewTokenCodec("access-secret-for-tests", "refresh-secret-for-tests", "test-issuer", accessTTL, 7*24*time.Hour)
	require.NoError(t, err)
	return codec
}

/*
TestTokenCodec_AccessRoundTrip verifies that issued access tokens decode back
to the original identity claims.
*/
func TestTokenCodec_AccessRoundTrip(t *testing.T) {
	codec := newTestCodec(t, 15*time.Minute)

	token, err := codec.IssueAccessToken("user-1", "testuser", []string{"ADMIN", "FINANCE"}, false)
	require.NoError(t, err)

	claims, err := codec.VerifyAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "testuser", claims.Username)
	assert.Equal(t, []string{"ADMIN", "FINANCE"}, claims.Roles)
	assert.False(t, claims.IsAuthorized)
}

/*
TestTokenCodec_AuthorizedFlag verifies that the IsAuthorized claim survives
the round trip for exchanged tokens.
*/
func TestTokenCodec_AuthorizedFlag(t *testing.T) {
	codec := newTestCodec(t, 15*time.Minute)

	token, err := codec.IssueAccessToken("user-1", "testuser", []string{"ADMIN"}, true)
	require.NoError(t, err)

	claims, err := codec.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAuthorized)
}

/*
TestTokenCodec_DomainSeparation verifies that the two signing domains are
mutually exclusive: a refresh token never verifies as an access token and
vice versa.
*/
func TestTokenCodec_DomainSeparation(t *testing.T) {
	codec := newTestCodec(t, 15*time.Minute)

	refreshToken, err := codec.IssueRefreshToken("user-1", "testuser", []string{"ADMIN"})
	require.NoError(t, err)

	_, err = codec.VerifyAccessToken(refreshToken)
	assert.Error(t, err)

	accessToken, err := codec.IssueAccessToken("user-1", "testuser", nil, false)
	require.NoError(t, err)

	_, err = codec.VerifyRefreshToken(accessToken)
	assert.Error(t, err)
}

/*
TestTokenCodec_Expiry verifies that expired tokens are rejected with an error
rather than a panic.
*/
func TestTokenCodec_Expiry(t *testing.T) {
	codec := newTestCodec(t, -1*time.Minute) // Already expired on issue

	token, err := codec.IssueAccessToken("user-1", "testuser", nil, false)
	require.NoError(t, err)

	claims, err := codec.VerifyAccessToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

/*
TestTokenCodec_Malformed verifies that garbage input fails cleanly.
*/
func TestTokenCodec_Malformed(t *testing.T) {
	codec := newTestCodec(t, 15*time.Minute)

	for _, garbage := range []string{"", "not-a-token", "a.b.c"} {
		claims, err := codec.VerifyAccessToken(garbage)
		assert.Error(t, err)
		assert.Nil(t, claims)
	}
}

/*
TestTokenCodec_SecretsMustDiffer verifies constructor guard rails.
*/
func TestTokenCodec_SecretsMustDiffer(t *testing.T) {
	_, err := sec.NewTokenCodec("same", "same", "issuer", time.Minute, time.Hour)
	assert.Error(t, err)

	_, err = sec.NewTokenCodec("", "refresh", "issuer", time.Minute, time.Hour)
	assert.Error(t, err)
}
