package module

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/f-students-app/auth-service/internal/platform/constants"
)

const cacheTTL = 10 * time.Minute

// CachedRepository wraps a [Repository] with a cache-aside layer for the
// module listing. The catalogue changes rarely and is read on every admin
// screen load, so listings are served from Redis and every write invalidates
// the cached variants. Cache failures fall through to the database.
type CachedRepository struct {
	inner  Repository
	cache  *redis.Client
	logger *slog.Logger
}

func NewCachedRepository(inner Repository, cache *redis.Client, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{
		inner:  inner,
		cache:  cache,
		logger: logger,
	}
}

func cacheKey(f Filter) string {
	if f.IncludeInactive {
		return constants.RedisPrefixModuleList + "all"
	}
	return constants.RedisPrefixModuleList + "active"
}

func (repository *CachedRepository) ListModules(context context.Context, f Filter) ([]*Module, error) {
	key := cacheKey(f)

	cached, err := repository.cache.Get(context, key).Result()
	if err == nil {
		var modules []*Module
		if err := json.Unmarshal([]byte(cached), &modules); err == nil {
			return modules, nil
		}
		// Corrupt entry, drop it and fall through.
		repository.cache.Del(context, key)
	}

	modules, err := repository.inner.ListModules(context, f)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(modules)
	if err == nil {
		if err := repository.cache.Set(context, key, payload, cacheTTL).Err(); err != nil {
			repository.logger.Warn("module_cache_set_failed", slog.Any("error", err))
		}
	}

	return modules, nil
}

func (repository *CachedRepository) GetModule(context context.Context, id string) (*Module, error) {
	return repository.inner.GetModule(context, id)
}

func (repository *CachedRepository) GetModuleByCode(context context.Context, code string) (*Module, error) {
	return repository.inner.GetModuleByCode(context, code)
}

func (repository *CachedRepository) CreateModule(context context.Context, m *Module) error {
	if err := repository.inner.CreateModule(context, m); err != nil {
		return err
	}
	repository.invalidate(context)
	return nil
}

func (repository *CachedRepository) UpdateModule(context context.Context, m *Module) error {
	if err := repository.inner.UpdateModule(context, m); err != nil {
		return err
	}
	repository.invalidate(context)
	return nil
}

func (repository *CachedRepository) DeleteModule(context context.Context, id string) error {
	if err := repository.inner.DeleteModule(context, id); err != nil {
		return err
	}
	repository.invalidate(context)
	return nil
}

func (repository *CachedRepository) invalidate(context context.Context) {
	keys := []string{
		constants.RedisPrefixModuleList + "active",
		constants.RedisPrefixModuleList + "all",
	}
	if err := repository.cache.Del(context, keys...).Err(); err != nil {
		repository.logger.Warn("module_cache_invalidate_failed", slog.Any("error", err))
	}
}
