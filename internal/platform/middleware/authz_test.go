// Copyright (c) 2026 F-Students App. All rights reserved.

package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f-students-app/auth-service/internal/platform/ctxutil"
	"github.com/f-students-app/auth-service/internal/platform/middleware"
	"github.com/f-students-app/auth-service/internal/platform/sec"
)

// fakeVerifier maps token strings to canned claims.
type fakeVerifier struct {
	claims map[string]*sec.SessionClaims
}

func (v *fakeVerifier) VerifyAccessToken(tokenStr string) (*sec.SessionClaims, error) {
	claims, ok := v.claims[tokenStr]
	if !ok {
		return nil, errors.New("token is invalid")
	}
	return claims, nil
}

// fakeIdentities maps user IDs to live identities.
type fakeIdentities struct {
	identities map[string]sec.Identity
}

func (s *fakeIdentities) FindIdentity(_ context.Context, userID string) (sec.Identity, error) {
	identity, ok := s.identities[userID]
	if !ok {
		return sec.Identity{}, errors.New("user is inactive or missing")
	}
	return identity, nil
}

func newAuthStack() (*fakeVerifier, *fakeIdentities) {
	verifier := &fakeVerifier{claims: map[string]*sec.SessionClaims{
		"full-token": {UserID: "user-1", Username: "alice", Roles: []string{"TEACHER"}, IsAuthorized: true},
		"pre-token":  {UserID: "user-1", Username: "alice", Roles: []string{"TEACHER"}, IsAuthorized: false},
		"gone-token": {UserID: "user-gone", Username: "ghost", Roles: nil, IsAuthorized: true},
	}}
	identities := &fakeIdentities{identities: map[string]sec.Identity{
		"user-1": {ID: "user-1", Username: "alice", Email: "alice@example.com", Roles: []string{"TEACHER"}},
	}}
	return verifier, identities
}

// okHandler records that the chain reached the terminal handler.
func okHandler(reached *bool) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*reached = true
		writer.WriteHeader(http.StatusOK)
	})
}

/*
TestAuthenticate_StageGate verifies that a pre-authorization token can only
reach the authorize exchange endpoint.
*/
func TestAuthenticate_StageGate(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		method     string
		path       string
		wantStatus int
	}{
		{"authorized_token_any_route", "full-token", http.MethodGet, "/api/v1/roles", http.StatusOK},
		{"pre_token_blocked_elsewhere", "pre-token", http.MethodGet, "/api/v1/roles", http.StatusForbidden},
		{"pre_token_allowed_on_exchange", "pre-token", http.MethodGet, "/api/v1/auth/authorize", http.StatusOK},
		{"pre_token_blocked_on_post_exchange", "pre-token", http.MethodPost, "/api/v1/auth/authorize", http.StatusForbidden},
		{"unknown_token", "garbage", http.MethodGet, "/api/v1/roles", http.StatusUnauthorized},
	}

	verifier, identities := newAuthStack()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			handler := middleware.Authenticate(verifier, identities)(okHandler(&reached))

			request := httptest.NewRequest(tt.method, tt.path, nil)
			request.Header.Set("Authorization", "Bearer "+tt.token)
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, reached)
		})
	}
}

/*
TestAuthenticate_MissingHeader verifies that requests without a bearer token
are rejected before any verification happens.
*/
func TestAuthenticate_MissingHeader(t *testing.T) {
	verifier, identities := newAuthStack()
	reached := false
	handler := middleware.Authenticate(verifier, identities)(okHandler(&reached))

	request := httptest.NewRequest(http.MethodGet, "/api/v1/roles", nil)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, reached)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Authentication required", body["message"])
}

/*
TestAuthenticate_LiveAccountCheck verifies that a valid token for a deleted
or deactivated account is rejected with 401.
*/
func TestAuthenticate_LiveAccountCheck(t *testing.T) {
	verifier, identities := newAuthStack()
	reached := false
	handler := middleware.Authenticate(verifier, identities)(okHandler(&reached))

	request := httptest.NewRequest(http.MethodGet, "/api/v1/roles", nil)
	request.Header.Set("Authorization", "Bearer gone-token")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, reached)
}

/*
TestAuthenticate_InjectsIdentity verifies the resolved identity is available
to downstream handlers.
*/
func TestAuthenticate_InjectsIdentity(t *testing.T) {
	verifier, identities := newAuthStack()

	var got sec.Identity
	handler := middleware.Authenticate(verifier, identities)(
		http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity, ok := ctxutil.GetIdentity(request.Context())
			require.True(t, ok)
			got = identity
			writer.WriteHeader(http.StatusOK)
		}),
	)

	request := httptest.NewRequest(http.MethodGet, "/api/v1/roles", nil)
	request.Header.Set("Authorization", "Bearer full-token")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "user-1", got.ID)
	assert.Equal(t, []string{"TEACHER"}, got.Roles)
}

/*
TestRequireRole verifies role membership checks including the SUPERADMIN bypass.
*/
func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		identity   *sec.Identity
		required   []string
		wantStatus int
	}{
		{"matching_role", &sec.Identity{ID: "u1", Roles: []string{"TEACHER"}}, []string{"TEACHER"}, http.StatusOK},
		{"one_of_many", &sec.Identity{ID: "u1", Roles: []string{"STAFF", "TEACHER"}}, []string{"ADMIN", "TEACHER"}, http.StatusOK},
		{"missing_role", &sec.Identity{ID: "u1", Roles: []string{"STUDENT"}}, []string{"ADMIN"}, http.StatusForbidden},
		{"superadmin_bypass", &sec.Identity{ID: "u1", Roles: []string{"SUPERADMIN"}}, []string{"ADMIN"}, http.StatusOK},
		{"no_identity", nil, []string{"ADMIN"}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			handler := middleware.RequireRole(tt.required...)(okHandler(&reached))

			request := httptest.NewRequest(http.MethodGet, "/api/v1/roles", nil)
			if tt.identity != nil {
				ctx := ctxutil.WithIdentity(request.Context(), *tt.identity)
				request = request.WithContext(ctx)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, reached)
		})
	}
}

/*
TestInternalAuth verifies the shared-secret gate for service-to-service routes.
*/
func TestInternalAuth(t *testing.T) {
	tests := []struct {
		name          string
		configuredKey string
		providedKey   string
		wantStatus    int
	}{
		{"matching_key", "secret-key", "secret-key", http.StatusOK},
		{"wrong_key", "secret-key", "other-key", http.StatusUnauthorized},
		{"missing_key", "secret-key", "", http.StatusUnauthorized},
		{"unconfigured", "", "anything", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			handler := middleware.InternalAuth(tt.configuredKey)(okHandler(&reached))

			request := httptest.NewRequest(http.MethodGet, "/api/v1/auth/internal/user/u1", nil)
			if tt.providedKey != "" {
				request.Header.Set("X-Internal-Key", tt.providedKey)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, reached)
		})
	}
}
