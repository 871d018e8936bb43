package role

import "context"

type Repository interface {
	ListRoles(context context.Context, f Filter, limit, offset int) ([]*Role, int, error)
	GetRole(context context.Context, id string) (*Role, error)
	GetRoleByCode(context context.Context, code string) (*Role, error)
	CreateRole(context context.Context, r *Role) error
	UpdateRole(context context.Context, r *Role) error
	DeleteRole(context context.Context, id string) error
	UpsertAccess(context context.Context, roleID string, grants []AccessGrant) error
}
