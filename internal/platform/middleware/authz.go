// Copyright (c) 2026 F-Students App. All rights reserved.

package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/f-students-app/auth-service/internal/platform/apperr"
	"github.com/f-students-app/auth-service/internal/platform/constants"
	"github.com/f-students-app/auth-service/internal/platform/ctxutil"
	"github.com/f-students-app/auth-service/internal/platform/respond"
	"github.com/f-students-app/auth-service/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify access tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the `sec` codec
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyAccessToken(tokenStr string) (*sec.SessionClaims, error)
}

// IdentitySource resolves the live account behind a verified token.
//
// Tokens outlive account state changes, so every authenticated request
// re-checks that the user still exists and is active before it is served.
type IdentitySource interface {
	FindIdentity(ctx context.Context, userID string) (sec.Identity, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header,
// then resolves the live user identity behind it.
//
// # Flow
//  1. Require an 'Authorization: Bearer <token>' header; abort 401 if absent.
//  2. Parse and verify the JWT via [TokenVerifier]; abort 401 on failure.
//  3. Enforce the authorization stage gate: a token carrying
//     isAuthorized=false may only reach the authorize exchange endpoint
//     (GET, path ending in /authorize). Everything else aborts 403.
//  4. Resolve the live account via [IdentitySource]; a deleted or
//     deactivated account aborts 401 even if the token is valid.
//  5. Inject [sec.Identity] into the request context for downstream use.
//
// # Parameters
//   - verifier: The TokenVerifier instance.
//   - identities: The IdentitySource used for the live account check.
//
// # Returns
//   - An [http.Handler] middleware.
func Authenticate(verifier TokenVerifier, identities IdentitySource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Header Presence ────────────────────────────────────────────
			if authHeader == "" {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			tokenStr := parts[1]
			claims, err := verifier.VerifyAccessToken(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Authorization Stage Gate ───────────────────────────────────
			if !claims.IsAuthorized && !isAuthorizeExchange(request) {
				respond.Error(writer, request, apperr.Forbidden("Token is not authorized. Please complete the authorization step."))
				return
			}

			// ── 5. Live Account Check ─────────────────────────────────────────
			identity, err := identities.FindIdentity(request.Context(), claims.UserID)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("User account is inactive or no longer exists"))
				return
			}

			// ── 6. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// isAuthorizeExchange reports whether the request targets the one endpoint
// that accepts a pre-authorization token.
func isAuthorizeExchange(request *http.Request) bool {
	return request.Method == http.MethodGet &&
		strings.HasSuffix(request.URL.Path, constants.AuthorizeEndpointSuffix)
}

// RequireRole blocks requests unless the authenticated user holds at least
// one of the given role codes.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. A SUPERADMIN
// identity passes every role guard unconditionally.
//
// # Flow
//  1. Check if [sec.Identity] exists in context (implies AuthN).
//  2. Check role membership using [sec.Identity.HasAnyRole].
//  3. If insufficient, abort with HTTP 403 Forbidden.
func RequireRole(roleCodes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Authentication Check ───────────────────────────────────────
			identity, ok := ctxutil.GetIdentity(request.Context())
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !identity.HasAnyRole(roleCodes...) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// InternalAuth gates service-to-service routes behind a shared secret header.
//
// The comparison is constant time. An empty configured key disables the
// route entirely rather than leaving it open.
func InternalAuth(configuredKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			if configuredKey == "" {
				respond.Error(writer, request, apperr.Internal(errors.New("internal API key is not configured")))
				return
			}

			providedKey := request.Header.Get(constants.HeaderInternalKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(configuredKey)) != 1 {
				respond.Error(writer, request, apperr.Unauthorized("Invalid internal key"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
