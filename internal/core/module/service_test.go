package module_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f-students-app/auth-service/internal/core/module"
	"github.com/f-students-app/auth-service/internal/platform/apperr"
	"github.com/f-students-app/auth-service/internal/platform/dberr"
	"github.com/f-students-app/auth-service/pkg/pointer"
)

type fakeRepository struct {
	modules map[string]*module.Module // keyed by ID
	byCode  map[string]*module.Module
	listed  []*module.Module
	created []*module.Module
	updated []*module.Module
	deleted []string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		modules: map[string]*module.Module{},
		byCode:  map[string]*module.Module{},
	}
}

func (r *fakeRepository) add(item *module.Module) {
	r.modules[item.ID] = item
	r.byCode[item.Code] = item
	r.listed = append(r.listed, item)
}

func (r *fakeRepository) ListModules(_ context.Context, _ module.Filter) ([]*module.Module, error) {
	return r.listed, nil
}

func (r *fakeRepository) GetModule(_ context.Context, id string) (*module.Module, error) {
	if item, ok := r.modules[id]; ok {
		return item, nil
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeRepository) GetModuleByCode(_ context.Context, code string) (*module.Module, error) {
	if item, ok := r.byCode[code]; ok {
		return item, nil
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeRepository) CreateModule(_ context.Context, item *module.Module) error {
	item.ID = "generated-id"
	r.created = append(r.created, item)
	return nil
}

func (r *fakeRepository) UpdateModule(_ context.Context, item *module.Module) error {
	r.updated = append(r.updated, item)
	return nil
}

func (r *fakeRepository) DeleteModule(_ context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	return nil
}

const (
	parentID  = "019235aa-0000-7000-8000-000000000001"
	childID   = "019235aa-0000-7000-8000-000000000002"
	orphanRef = "019235aa-0000-7000-8000-00000000ffff"
)

func newTestService(repo *fakeRepository) *module.Service {
	return module.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestListModules_Flat(t *testing.T) {
	repo := newFakeRepository()
	repo.add(&module.Module{ID: parentID, Code: "ACADEMICS", Name: "Academics"})
	repo.add(&module.Module{ID: childID, Code: "GRADES", Name: "Grades", ParentID: pointer.To(parentID)})
	service := newTestService(repo)

	modules, err := service.ListModules(context.Background(), module.Filter{}, false)
	require.NoError(t, err)
	assert.Len(t, modules, 2)
}

func TestListModules_Hierarchical(t *testing.T) {
	repo := newFakeRepository()
	repo.add(&module.Module{ID: parentID, Code: "ACADEMICS", Name: "Academics"})
	repo.add(&module.Module{ID: childID, Code: "GRADES", Name: "Grades", ParentID: pointer.To(parentID)})
	service := newTestService(repo)

	modules, err := service.ListModules(context.Background(), module.Filter{}, true)
	require.NoError(t, err)

	require.Len(t, modules, 1)
	assert.Equal(t, "ACADEMICS", modules[0].Code)
	require.Len(t, modules[0].Children, 1)
	assert.Equal(t, "GRADES", modules[0].Children[0].Code)
}

func TestListModules_OrphanStaysRoot(t *testing.T) {
	repo := newFakeRepository()
	repo.add(&module.Module{ID: childID, Code: "GRADES", Name: "Grades", ParentID: pointer.To(orphanRef)})
	service := newTestService(repo)

	modules, err := service.ListModules(context.Background(), module.Filter{}, true)
	require.NoError(t, err)

	require.Len(t, modules, 1)
	assert.Equal(t, "GRADES", modules[0].Code)
}

func TestCreateModule_DuplicateCode(t *testing.T) {
	repo := newFakeRepository()
	repo.add(&module.Module{ID: parentID, Code: "ACADEMICS", Name: "Academics"})
	service := newTestService(repo)

	err := service.CreateModule(context.Background(), &module.Module{Code: "ACADEMICS", Name: "Duplicate"})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 400, appError.HTTPStatus)
	assert.Equal(t, "Module code already exists", appError.Message)
	assert.Empty(t, repo.created)
}

func TestCreateModule_MissingParent(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	err := service.CreateModule(context.Background(), &module.Module{
		Code:     "GRADES",
		Name:     "Grades",
		ParentID: pointer.To(orphanRef),
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 400, appError.HTTPStatus)
	assert.Equal(t, "Parent module does not exist", appError.Message)
}

func TestCreateModule_Success(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	input := &module.Module{Code: "GRADES", Name: "Grades", SortOrder: 3}
	require.NoError(t, service.CreateModule(context.Background(), input))

	require.Len(t, repo.created, 1)
	assert.True(t, input.IsActive)
}

func TestUpdateModule_SelfParent(t *testing.T) {
	repo := newFakeRepository()
	repo.add(&module.Module{ID: parentID, Code: "ACADEMICS", Name: "Academics"})
	service := newTestService(repo)

	err := service.UpdateModule(context.Background(), parentID, &module.Module{
		Name:     "Academics",
		ParentID: pointer.To(parentID),
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 400, appError.HTTPStatus)
	assert.Empty(t, repo.updated)
}

func TestUpdateModule_CodeIsImmutable(t *testing.T) {
	repo := newFakeRepository()
	repo.add(&module.Module{ID: parentID, Code: "ACADEMICS", Name: "Academics"})
	service := newTestService(repo)

	input := &module.Module{Code: "HACKED", Name: "Academics Renamed", IsActive: true}
	require.NoError(t, service.UpdateModule(context.Background(), parentID, input))

	require.Len(t, repo.updated, 1)
	assert.Equal(t, "ACADEMICS", repo.updated[0].Code)
}

func TestDeleteModule(t *testing.T) {
	repo := newFakeRepository()
	repo.add(&module.Module{ID: parentID, Code: "ACADEMICS", Name: "Academics"})
	service := newTestService(repo)

	require.NoError(t, service.DeleteModule(context.Background(), parentID))
	assert.Equal(t, []string{parentID}, repo.deleted)
}
