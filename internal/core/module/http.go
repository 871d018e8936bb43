package module

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/f-students-app/auth-service/internal/platform/constants"
	"github.com/f-students-app/auth-service/internal/platform/middleware"
	requestutil "github.com/f-students-app/auth-service/internal/platform/request"
	"github.com/f-students-app/auth-service/internal/platform/respond"
	"github.com/f-students-app/auth-service/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listModules)
	router.Get("/{id}", handler.getModule)

	// Superadmin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(constants.RoleSuperadmin))

		adminRoute.Post("/", handler.createModule)
		adminRoute.Put("/{id}", handler.updateModule)
		adminRoute.Delete("/{id}", handler.deleteModule)
	})
}

func (handler *Handler) listModules(writer http.ResponseWriter, request *http.Request) {
	queryParams := request.URL.Query()

	filter := Filter{
		IncludeInactive: queryParams.Get("includeInactive") == "true",
	}
	hierarchical := queryParams.Get("hierarchical") == "true"

	modules, err := handler.service.ListModules(request.Context(), filter, hierarchical)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Modules retrieved", modules)
}

func (handler *Handler) getModule(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	if err := validator.UUID("id", id).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	module, err := handler.service.GetModule(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Module retrieved", module)
}

func (handler *Handler) createModule(writer http.ResponseWriter, request *http.Request) {
	var input Module

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateModule(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "Module created", input)
}

func (handler *Handler) updateModule(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	if err := validator.UUID("id", id).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Module
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateModule(request.Context(), id, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Module updated", input)
}

func (handler *Handler) deleteModule(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	if err := validator.UUID("id", id).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteModule(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Module deleted", nil)
}
