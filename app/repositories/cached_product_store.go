package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/shashiranjanraj/mayorista/app/models"
	"github.com/shashiranjanraj/mayorista/pkg/cache"
	"github.com/shashiranjanraj/mayorista/pkg/logger"
	"github.com/shashiranjanraj/mayorista/pkg/workerpool"
)

const (
	cachePrefix      = "products:v"
	cacheVersionKey  = "products:version"
	cacheFillTimeout = 5 * time.Second
)

// CachedProductStore is a read-through decorator over a ProductStore.
// Bulk listings and point lookups live under one version number; every
// write bumps it, so a fill that lands after the write is never read.
type CachedProductStore struct {
	next  ProductStore
	cache cache.Store
	pool  *workerpool.Pool
	ttl   time.Duration
}

// NewCachedProductStore wraps next. Cache fills run on pool; when the pool
// is saturated the fill is skipped.
func NewCachedProductStore(next ProductStore, c cache.Store, pool *workerpool.Pool, ttl time.Duration) *CachedProductStore {
	return &CachedProductStore{next: next, cache: c, pool: pool, ttl: ttl}
}

func (s *CachedProductStore) FindByID(ctx context.Context, id string) (models.Product, error) {
	key, ok := s.key(ctx, "id:"+id)
	if ok {
		var p models.Product
		if s.cache.Get(ctx, key, &p) {
			return p, nil
		}
	}

	p, err := s.next.FindByID(ctx, id)
	if err != nil {
		return p, err
	}
	if ok {
		s.fill(key, p)
	}
	return p, nil
}

func (s *CachedProductStore) FindBySKU(ctx context.Context, sku string) (models.Product, error) {
	return s.next.FindBySKU(ctx, sku)
}

func (s *CachedProductStore) ListAll(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	scope := "list:all"
	if activeOnly {
		scope = "list:active"
	}
	key, ok := s.key(ctx, scope)
	if ok {
		var items []models.Product
		if s.cache.Get(ctx, key, &items) {
			return items, nil
		}
	}

	items, err := s.next.ListAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	if ok {
		s.fill(key, items)
	}
	return items, nil
}

func (s *CachedProductStore) Create(ctx context.Context, in models.ProductInput) (string, error) {
	id, err := s.next.Create(ctx, in)
	if err != nil {
		return "", err
	}
	s.invalidate(ctx)
	return id, nil
}

func (s *CachedProductStore) Patch(ctx context.Context, id string, patch models.ProductPatch) error {
	if err := s.next.Patch(ctx, id, patch); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CachedProductStore) BatchSetSortOrder(ctx context.Context, orderedIDs []string, start int) error {
	if err := s.next.BatchSetSortOrder(ctx, orderedIDs, start); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CachedProductStore) Ping(ctx context.Context) error {
	if p, ok := s.next.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// key resolves the versioned cache key for name. A missing version is
// created; if that fails the read bypasses the cache.
func (s *CachedProductStore) key(ctx context.Context, name string) (string, bool) {
	var version int64
	if !s.cache.Get(ctx, cacheVersionKey, &version) || version == 0 {
		v, err := s.cache.Incr(ctx, cacheVersionKey)
		if err != nil {
			return "", false
		}
		version = v
	}
	return fmt.Sprintf("%s%d:%s", cachePrefix, version, name), true
}

// invalidate retires every cached listing and product at once. Old entries
// expire with their TTL.
func (s *CachedProductStore) invalidate(ctx context.Context) {
	if _, err := s.cache.Incr(ctx, cacheVersionKey); err != nil {
		logger.WithCtx(ctx).Warn("catalog cache: version bump failed", "error", err)
	}
}

func (s *CachedProductStore) fill(key string, value any) {
	task := func() {
		ctx, cancel := context.WithTimeout(context.Background(), cacheFillTimeout)
		defer cancel()
		if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
			logger.Warn("catalog cache: fill failed", "key", key, "error", err)
		}
	}

	if s.pool == nil {
		task()
		return
	}
	if err := s.pool.Submit(task); err != nil {
		logger.Debug("catalog cache: fill skipped", "key", key, "error", err)
	}
}
