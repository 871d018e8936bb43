package role

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/f-students-app/auth-service/internal/platform/constants"
	"github.com/f-students-app/auth-service/internal/platform/middleware"
	requestutil "github.com/f-students-app/auth-service/internal/platform/request"
	"github.com/f-students-app/auth-service/internal/platform/respond"
	"github.com/f-students-app/auth-service/internal/platform/validate"
	"github.com/f-students-app/auth-service/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listRoles)
	router.Get("/{id}", handler.getRole)

	// Superadmin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(constants.RoleSuperadmin))

		adminRoute.Post("/", handler.createRole)
		adminRoute.Put("/{id}", handler.updateRole)
		adminRoute.Put("/{id}/access", handler.grantAccess)
		adminRoute.Delete("/{id}", handler.deleteRole)
	})
}

func (handler *Handler) listRoles(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query: paginationParams.Search,
	}

	roles, total, err := handler.service.ListRoles(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Roles retrieved", map[string]any{
		"roles":      roles,
		"pagination": pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total),
	})
}

func (handler *Handler) getRole(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	if err := validator.UUID("id", id).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	role, err := handler.service.GetRole(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Role retrieved", role)
}

func (handler *Handler) createRole(writer http.ResponseWriter, request *http.Request) {
	var input Role

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateRole(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "Role created", input)
}

func (handler *Handler) updateRole(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	if err := validator.UUID("id", id).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Role
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateRole(request.Context(), id, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Role updated", input)
}

func (handler *Handler) grantAccess(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	if err := validator.UUID("id", id).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Grants []AccessGrant `json:"grants"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if len(input.Grants) == 0 {
		respond.Error(writer, request, validate.RequiredError(FieldGrants, "at least one grant is required"))
		return
	}

	if err := handler.service.GrantAccess(request.Context(), id, input.Grants); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Role access updated", nil)
}

func (handler *Handler) deleteRole(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	if err := validator.UUID("id", id).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteRole(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Role deleted", nil)
}
