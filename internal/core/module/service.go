package module

import (
	"context"
	"log/slog"

	"github.com/f-students-app/auth-service/internal/platform/apperr"
	"github.com/f-students-app/auth-service/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListModules(context context.Context, filter Filter, hierarchical bool) ([]*Module, error) {
	modules, err := service.repo.ListModules(context, filter)
	if err != nil {
		return nil, err
	}

	if hierarchical {
		return buildTree(modules), nil
	}
	return modules, nil
}

func (service *Service) GetModule(context context.Context, id string) (*Module, error) {
	return service.repo.GetModule(context, id)
}

func (service *Service) CreateModule(context context.Context, module *Module) error {
	validator := &validate.Validator{}
	validator.Required(FieldCode, module.Code).Code(FieldCode, module.Code).MaxLen(FieldCode, module.Code, 50)
	validator.Required(FieldName, module.Name).MaxLen(FieldName, module.Name, 100)
	validator.Custom(FieldSortOrder, module.SortOrder < 0, "Must not be negative")

	if module.ParentID != nil {
		validator.UUID(FieldParentID, *module.ParentID)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if _, err := service.repo.GetModuleByCode(context, module.Code); err == nil {
		return apperr.ValidationError("Module code already exists")
	}

	if module.ParentID != nil {
		if _, err := service.repo.GetModule(context, *module.ParentID); err != nil {
			return apperr.ValidationError("Parent module does not exist")
		}
	}

	module.IsActive = true

	if err := service.repo.CreateModule(context, module); err != nil {
		return err
	}

	service.logger.Info("module_created", slog.String("code", module.Code))
	return nil
}

func (service *Service) UpdateModule(context context.Context, id string, module *Module) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, module.Name).MaxLen(FieldName, module.Name, 100)
	validator.Custom(FieldSortOrder, module.SortOrder < 0, "Must not be negative")

	if module.ParentID != nil {
		validator.UUID(FieldParentID, *module.ParentID)
		validator.Custom(FieldParentID, *module.ParentID == id, "Module cannot be its own parent")
	}

	if err := validator.Err(); err != nil {
		return err
	}

	existing, err := service.repo.GetModule(context, id)
	if err != nil {
		return err
	}

	if module.ParentID != nil {
		if _, err := service.repo.GetModule(context, *module.ParentID); err != nil {
			return apperr.ValidationError("Parent module does not exist")
		}
	}

	// Code is immutable after creation.
	module.ID = existing.ID
	module.Code = existing.Code

	if err := service.repo.UpdateModule(context, module); err != nil {
		return err
	}

	service.logger.Info("module_updated", slog.String("module_id", module.ID))
	return nil
}

func (service *Service) DeleteModule(context context.Context, id string) error {
	if err := service.repo.DeleteModule(context, id); err != nil {
		return err
	}

	service.logger.Warn("module_deleted", slog.String("module_id", id))
	return nil
}

// buildTree nests modules under their parents. Rows pointing at a parent
// outside the result set are kept as roots so filtered listings stay complete.
func buildTree(modules []*Module) []*Module {
	byID := make(map[string]*Module, len(modules))
	for _, m := range modules {
		m.Children = make([]*Module, 0)
		byID[m.ID] = m
	}

	roots := make([]*Module, 0)
	for _, m := range modules {
		if m.ParentID != nil {
			if parent, ok := byID[*m.ParentID]; ok {
				parent.Children = append(parent.Children, m)
				continue
			}
		}
		roots = append(roots, m)
	}

	return roots
}
