// Copyright (c) 2026 F-Students App. All rights reserved.

package password

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/f-students-app/auth-service/internal/platform/request"
	"github.com/f-students-app/auth-service/internal/platform/respond"
	"github.com/f-students-app/auth-service/internal/platform/validate"
)

// Handler implements the credential lifecycle HTTP endpoints.
type Handler struct {
	passwordService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{passwordService: service}
}

// RegisterRoutes mounts the credential endpoints onto the given router.
//
// # Endpoints
//   - POST /forgot-password : Issues a reset token (public).
//   - POST /reset-password  : Consumes a reset token (public).
//   - POST /change-password : Rotates the password (authenticated).
func (handler *Handler) RegisterRoutes(router chi.Router, authenticate func(http.Handler) http.Handler) {
	router.Post("/forgot-password", handler.forgot)
	router.Post("/reset-password", handler.reset)

	router.Group(func(protected chi.Router) {
		protected.Use(authenticate)
		protected.Post("/change-password", handler.change)
	})
}

// # Request Payloads

type forgotRequest struct {
	Email string `json:"email"`
}

type resetRequest struct {
	Token           string `json:"token"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type changeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

/*
forgot initiates the credential recovery flow.

POST /api/v1/auth/forgot-password

Description: Always answers with the same neutral message so the endpoint
cannot be used to enumerate registered emails.

Response:
  - 200: Neutral acknowledgement
  - 400: Missing or malformed email
*/
func (handler *Handler) forgot(writer http.ResponseWriter, request *http.Request) {
	var input forgotRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.passwordService.Forgot(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "If the email is registered, a password reset link has been sent", nil)
}

/*
reset completes the credential recovery flow.

POST /api/v1/auth/reset-password

Response:
  - 200: Password updated
  - 400: Mismatch, weak password, or invalid/expired/used token
*/
func (handler *Handler) reset(writer http.ResponseWriter, request *http.Request) {
	var input resetRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldToken, input.Token)
	validator.Required(FieldNewPassword, input.NewPassword)
	validator.Required(FieldConfirmPassword, input.ConfirmPassword)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.passwordService.Reset(request.Context(), input.Token, input.NewPassword, input.ConfirmPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Password has been reset successfully", nil)
}

/*
change rotates the password of the authenticated user.

POST /api/v1/auth/change-password

Response:
  - 200: Password updated
  - 400: Mismatch or weak password
  - 401: Wrong current password
*/
func (handler *Handler) change(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, input.CurrentPassword)
	validator.Required(FieldNewPassword, input.NewPassword)
	validator.Required(FieldConfirmPassword, input.ConfirmPassword)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.passwordService.Change(request.Context(), identity.ID, input.CurrentPassword, input.NewPassword, input.ConfirmPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Password changed successfully", nil)
}
