package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/mayorista/app/models"
	"github.com/shashiranjanraj/mayorista/app/repositories"
	"github.com/shashiranjanraj/mayorista/pkg/cache"
	"github.com/shashiranjanraj/mayorista/pkg/workerpool"
)

type countingStore struct {
	repositories.ProductStore
	listCalls int
	findCalls int
	items     []models.Product
	patchErr  error
}

func (s *countingStore) ListAll(_ context.Context, activeOnly bool) ([]models.Product, error) {
	s.listCalls++
	var out []models.Product
	for _, p := range s.items {
		if !activeOnly || p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *countingStore) FindByID(_ context.Context, id string) (models.Product, error) {
	s.findCalls++
	for _, p := range s.items {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, repositories.ErrProductNotFound
}

func (s *countingStore) Patch(_ context.Context, id string, patch models.ProductPatch) error {
	if s.patchErr != nil {
		return s.patchErr
	}
	for i, p := range s.items {
		if p.ID == id {
			s.items[i] = patch.Apply(p)
			return nil
		}
	}
	return repositories.ErrProductNotFound
}

func (s *countingStore) BatchSetSortOrder(_ context.Context, ids []string, start int) error {
	for i, id := range ids {
		for j := range s.items {
			if s.items[j].ID == id {
				s.items[j].SortOrder = start + i
			}
		}
	}
	return nil
}

func newCached(inner *countingStore) *repositories.CachedProductStore {
	return repositories.NewCachedProductStore(inner, cache.NewMemory(), nil, time.Minute)
}

func TestCachedListAllServesFromCache(t *testing.T) {
	inner := &countingStore{items: []models.Product{{ID: "a", IsActive: true}, {ID: "b"}}}
	store := newCached(inner)
	ctx := context.Background()

	first, err := store.ListAll(ctx, true)
	require.NoError(t, err)
	second, err := store.ListAll(ctx, true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.listCalls)

	all, err := store.ListAll(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2, "active and full listings are cached separately")
	assert.Equal(t, 2, inner.listCalls)
}

func TestCachedWritesInvalidateListings(t *testing.T) {
	inner := &countingStore{items: []models.Product{{ID: "a", IsActive: true}, {ID: "b", IsActive: true}}}
	store := newCached(inner)
	ctx := context.Background()

	_, err := store.ListAll(ctx, true)
	require.NoError(t, err)

	off := false
	require.NoError(t, store.Patch(ctx, "b", models.ProductPatch{IsActive: &off}))

	items, err := store.ListAll(ctx, true)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 2, inner.listCalls)
}

func TestCachedBatchEvictsProducts(t *testing.T) {
	inner := &countingStore{items: []models.Product{{ID: "a", SortOrder: 1}, {ID: "b", SortOrder: 2}}}
	store := newCached(inner)
	ctx := context.Background()

	_, err := store.FindByID(ctx, "a")
	require.NoError(t, err)
	_, err = store.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.findCalls)

	require.NoError(t, store.BatchSetSortOrder(ctx, []string{"b", "a"}, 1))

	p, err := store.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, p.SortOrder)
	assert.Equal(t, 2, inner.findCalls)
}

func TestCachedFailedWriteKeepsCache(t *testing.T) {
	boom := errors.New("boom")
	inner := &countingStore{items: []models.Product{{ID: "a", IsActive: true}}, patchErr: boom}
	store := newCached(inner)
	ctx := context.Background()

	_, _ = store.ListAll(ctx, true)
	name := "x"
	assert.ErrorIs(t, store.Patch(ctx, "a", models.ProductPatch{Name: &name}), boom)

	_, _ = store.ListAll(ctx, true)
	assert.Equal(t, 1, inner.listCalls)
}

func TestCachedMissingProductIsNotCached(t *testing.T) {
	inner := &countingStore{}
	store := newCached(inner)

	_, err := store.FindByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	_, err = store.FindByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.Equal(t, 2, inner.findCalls)
}

func TestCachedLateFillAfterWriteIsNeverServed(t *testing.T) {
	inner := &countingStore{items: []models.Product{{ID: "a", Name: "old", IsActive: true}}}
	pool := workerpool.New("test", 1)
	defer pool.Shutdown()
	store := repositories.NewCachedProductStore(inner, cache.NewMemory(), pool, time.Minute)
	ctx := context.Background()

	blocker := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, pool.Submit(func() {
		close(started)
		<-blocker
	}))
	<-started

	// the fill for the old copy waits behind the blocker
	p, err := store.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "old", p.Name)

	name, off := "new", false
	require.NoError(t, store.Patch(ctx, "a", models.ProductPatch{Name: &name, IsActive: &off}))

	close(blocker)
	pool.Shutdown()

	p, err = store.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "new", p.Name)
	assert.False(t, p.IsActive)
	assert.Equal(t, 2, inner.findCalls)
}
