// Copyright (c) 2026 F-Students App. All rights reserved.

/*
HTTP delivery layer for the authentication lifecycle.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Orchestrates the pre-authorization token handshake and the
    X-Refresh-Token header contract.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/f-students-app/auth-service/internal/platform/constants"
	"github.com/f-students-app/auth-service/internal/platform/middleware"
	requestutil "github.com/f-students-app/auth-service/internal/platform/request"
	"github.com/f-students-app/auth-service/internal/platform/respond"
	"github.com/f-students-app/auth-service/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// RegisterRoutes mounts the authentication endpoints onto the given router.
//
// # Endpoints
//   - POST /login              : Authenticates and returns the token pair.
//   - GET  /token/refresh      : Mints a new access token (X-Refresh-Token).
//   - POST /logout             : Revokes the refresh token (authenticated).
//   - GET  /internal/user/{id} : Trusted lookup behind X-Internal-Key.
func (handler *Handler) RegisterRoutes(router chi.Router, authenticate, internalAuth func(http.Handler) http.Handler) {
	router.Post("/login", handler.login)
	router.Get("/token/refresh", handler.refresh)

	router.Group(func(protected chi.Router) {
		protected.Use(authenticate)
		protected.Post("/logout", handler.logout)
	})

	router.Group(func(internal chi.Router) {
		internal.Use(internalAuth)
		internal.Get("/internal/user/{id}", handler.internalUser)
	})
}

// # Request Payloads

type loginRequest struct {
	Username string `json:"username"` // Accepts the username or the email
	Password string `json:"password"`
}

/*
login authenticates a user and establishes a session.

POST /api/v1/auth/login

Description: Verifies credentials through the lockout state machine and
returns a pre-authorization access token alongside the refresh token.

Request:
  - Body: loginRequest (Username, Password)

Response:
  - 200: Session payload (user, tokens {accessToken, refreshToken, expiresIn})
  - 400: Validation failure
  - 401: Invalid credentials or inactive account
  - 423: Account locked
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Login:     input.Username,
		Password:  input.Password,
		UserAgent: request.UserAgent(),
		IPAddress: middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Login successful", map[string]any{
		"user": session.User.Profile(),
		"tokens": map[string]any{
			"accessToken":  session.AccessToken,
			"refreshToken": session.RefreshToken,
			"expiresIn":    session.ExpiresIn,
		},
	})
}

/*
refresh mints a fresh pre-authorization access token.

GET /api/v1/auth/token/refresh

Description: Reads the refresh token from the X-Refresh-Token header. The
refresh token is not rotated; only a new access token is returned.

Response:
  - 200: New access token (accessToken, expiresIn)
  - 400: Missing header
  - 401: Invalid, revoked, or expired refresh token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	refreshToken := request.Header.Get(constants.HeaderRefreshToken)
	if refreshToken == "" {
		respond.Error(writer, request, validate.RequiredError(FieldToken, "refresh token header is required"))
		return
	}

	session, err := handler.authService.Refresh(request.Context(), refreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Token refreshed", map[string]any{
		"accessToken": session.AccessToken,
		"expiresIn":   session.ExpiresIn,
	})
}

/*
logout terminates the current user session.

POST /api/v1/auth/logout

Description: Revokes the refresh token carried in the X-Refresh-Token header.
A missing or unknown token is still a successful logout (idempotent).

Response:
  - 200: Session terminated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	refreshToken := request.Header.Get(constants.HeaderRefreshToken)

	if err := handler.authService.Logout(request.Context(), refreshToken); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Logged out successfully", nil)
}

/*
internalUser returns the sanitized account profile for trusted internal callers.

GET /api/v1/auth/internal/user/{id}

Description: Guarded by the X-Internal-Key shared secret, never exposed to
browsers. Used by sibling services to resolve user references.

Response:
  - 200: Sanitized user profile
  - 401: Missing or invalid internal key
  - 404: Unknown user
*/
func (handler *Handler) internalUser(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	validator.Required("id", userID).UUID("id", userID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.InternalLookup(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "User retrieved", user.Profile())
}
