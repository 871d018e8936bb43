package module

import "context"

type Repository interface {
	ListModules(context context.Context, f Filter) ([]*Module, error)
	GetModule(context context.Context, id string) (*Module, error)
	GetModuleByCode(context context.Context, code string) (*Module, error)
	CreateModule(context context.Context, m *Module) error
	UpdateModule(context context.Context, m *Module) error
	DeleteModule(context context.Context, id string) error
}
