package services_test

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shashiranjanraj/mayorista/app/models"
	"github.com/shashiranjanraj/mayorista/app/repositories"
)

// memStore is an in-memory ProductStore with the same batch semantics as
// the real ones: an unknown id leaves every row untouched.
type memStore struct {
	mu      sync.Mutex
	items   map[string]models.Product
	seq     int
	listErr error
	dupSKU  bool
	batches int
}

func newMemStore(items ...models.Product) *memStore {
	s := &memStore{items: map[string]models.Product{}}
	for _, p := range items {
		s.items[p.ID] = p
	}
	return s
}

func (s *memStore) FindByID(_ context.Context, id string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return models.Product{}, repositories.ErrProductNotFound
	}
	return p, nil
}

func (s *memStore) FindBySKU(_ context.Context, sku string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if s.items[id].SKU == sku {
			return s.items[id], nil
		}
	}
	return models.Product{}, repositories.ErrProductNotFound
}

func (s *memStore) ListAll(_ context.Context, activeOnly bool) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]models.Product, 0, len(s.items))
	for _, p := range s.items {
		if !activeOnly || p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memStore) Create(_ context.Context, in models.ProductInput) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dupSKU {
		return "", fmt.Errorf("insert: %w", repositories.ErrDuplicateSKU)
	}
	max := 0
	for _, p := range s.items {
		if p.SortOrder > max {
			max = p.SortOrder
		}
	}
	s.seq++
	id := fmt.Sprintf("id-%03d", s.seq)
	s.items[id] = models.Product{
		ID: id, Name: in.Name, Description: in.Description, SKU: in.SKU,
		Gender: in.Gender, Type: in.Type, ImageURL: in.ImageURL,
		IsActive: in.IsActive, SortOrder: max + 1,
	}
	return id, nil
}

func (s *memStore) Patch(_ context.Context, id string, patch models.ProductPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return repositories.ErrProductNotFound
	}
	s.items[id] = patch.Apply(p)
	return nil
}

func (s *memStore) BatchSetSortOrder(_ context.Context, ids []string, start int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches++
	for _, id := range ids {
		if _, ok := s.items[id]; !ok {
			return fmt.Errorf("set sort order for %s: %w", id, repositories.ErrProductNotFound)
		}
	}
	for i, id := range ids {
		p := s.items[id]
		p.SortOrder = start + i
		s.items[id] = p
	}
	return nil
}

func (s *memStore) sortOrder(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[id].SortOrder
}

func product(id string, order int, active bool) models.Product {
	return models.Product{
		ID: id, Name: "Producto " + id, SKU: "SKU-" + id,
		Gender: models.GenderUnisex, Type: models.TypeCommon,
		IsActive: active, SortOrder: order,
	}
}
