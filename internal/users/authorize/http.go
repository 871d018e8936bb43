// Copyright (c) 2026 F-Students App. All rights reserved.

package authorize

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/f-students-app/auth-service/internal/platform/request"
	"github.com/f-students-app/auth-service/internal/platform/respond"
)

// Handler implements the authorization exchange HTTP endpoint.
type Handler struct {
	authorizeService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authorizeService: service}
}

// RegisterRoutes mounts the exchange endpoint onto the given router.
//
// The route must sit behind the session authenticator: its path suffix is
// the one opening in the stage gate that admits pre-authorization tokens.
func (handler *Handler) RegisterRoutes(router chi.Router, authenticate func(http.Handler) http.Handler) {
	router.Group(func(protected chi.Router) {
		protected.Use(authenticate)
		protected.Get("/authorize", handler.authorize)
	})
}

/*
authorize exchanges a pre-authorization token for the authorized session.

GET /api/v1/auth/authorize

Description: Requires an authenticated identity (either token stage is
accepted here). Returns the isAuthorized token and the permission map keyed
by module code.

Response:
  - 200: accessToken, expiresIn, permissions
  - 401: Missing or invalid token
*/
func (handler *Handler) authorize(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authorizeService.AuthorizeSession(request.Context(), identity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Authorization successful", map[string]any{
		"accessToken": session.AccessToken,
		"expiresIn":   session.ExpiresIn,
		"permissions": session.Permissions,
	})
}
