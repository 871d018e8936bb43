package role

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

func (service *Service) ListRoles(context context.Context, filter Filter, limit, offset int) ([]*Role, int, error) {
	return service.repo.ListRoles(context, filter, limit, offset)
}

func (service *Service) GetRole(context context.Context, id string) (*Role, error) {
	return service.repo.GetRole(context, id)
}

func (service *Service) CreateRole(context context.Context, role *Role) error {
	validator := &validate.Validator{}
	validator.Required(FieldCode, role.Code).Code(FieldCode, role.Code).MaxLen(FieldCode, role.Code, 50)
	validator.Required(FieldName, role.Name).MaxLen(FieldName, role.Name, 100)
	validator.Custom(FieldLevel, role.Level < 0, "Must not be negative")

	if err := validator.Err(); err != nil {
		return err
	}

	if _, err := service.repo.GetRoleByCode(context, role.Code); err == nil {
		return apperr.ValidationError("Role code already exists")
	}

	role.IsSystem = false
	role.IsActive = true

	if err := service.repo.CreateRole(context, role); err != nil {
		return err
	}

	service.logger.Info("role_created", slog.String("code", role.Code))
	return nil
}

func (service *Service) UpdateRole(context context.Context, id string, role *Role) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, role.Name).MaxLen(FieldName, role.Name, 100)
	validator.Custom(FieldLevel, role.Level < 0, "Must not be negative")

	if err := validator.Err(); err != nil {
		return err
	}

	existing, err := service.repo.GetRole(context, id)
	if err != nil {
		return err
	}
	if existing.IsSystem {
		return apperr.Forbidden("System roles cannot be modified")
	}

	// Code is immutable after creation.
	role.ID = existing.ID
	role.Code = existing.Code
	role.IsSystem = existing.IsSystem

	if err := service.repo.UpdateRole(context, role); err != nil {
		return err
	}

	service.logger.Info("role_updated", slog.String("role_id", role.ID))
	return nil
}

func (service *Service) DeleteRole(context context.Context, id string) error {
	existing, err := service.repo.GetRole(context, id)
	if err != nil {
		return err
	}
	if existing.IsSystem {
		return apperr.Forbidden("System roles cannot be deleted")
	}

	if err := service.repo.DeleteRole(context, id); err != nil {
		return err
	}

	service.logger.Warn("role_deleted", slog.String("role_id", id), slog.String("code", existing.Code))
	return nil
}

func (service *Service) GrantAccess(context context.Context, roleID string, grants []AccessGrant) error {
	validator := &validate.Validator{}
	for _, grant := range grants {
		validator.UUID(FieldModuleID, grant.ModuleID)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if _, err := service.repo.GetRole(context, roleID); err != nil {
		return err
	}

	if err := service.repo.UpsertAccess(context, roleID, grants); err != nil {
		return err
	}

	service.logger.Info("role_access_granted",
		slog.String("role_id", roleID),
		slog.Int("grant_count", len(grants)),
	)
	return nil
}
