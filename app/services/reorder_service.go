package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/mayorista/app/repositories"
	"github.com/shashiranjanraj/mayorista/pkg/collection"
	"github.com/shashiranjanraj/mayorista/pkg/event"
	"github.com/shashiranjanraj/mayorista/pkg/metrics"
)

// EventCatalogReordered fires after a reorder batch is persisted.
const EventCatalogReordered = "catalog.reordered"

// Reorderer persists a total ordering of product ids.
type Reorderer interface {
	Reorder(ctx context.Context, orderedIDs []string, start int) error
}

// ReorderService writes contiguous sort positions for an ordered id list.
type ReorderService struct {
	store repositories.ProductStore
}

func NewReorderService(store repositories.ProductStore) *ReorderService {
	return &ReorderService{store: store}
}

// Reorder assigns sortOrder = start+i to orderedIDs[i] in one batch. Ids
// not in the list keep their current sortOrder.
func (s *ReorderService) Reorder(ctx context.Context, orderedIDs []string, start int) error {
	if len(orderedIDs) == 0 {
		metrics.ReorderBatches.WithLabelValues("rejected").Inc()
		return fmt.Errorf("%w: no product ids", ErrInvalidOrder)
	}
	for _, id := range orderedIDs {
		if strings.TrimSpace(id) == "" {
			metrics.ReorderBatches.WithLabelValues("rejected").Inc()
			return fmt.Errorf("%w: empty product id", ErrInvalidOrder)
		}
	}
	if dup, ok := collection.FirstDuplicate(orderedIDs); ok {
		metrics.ReorderBatches.WithLabelValues("rejected").Inc()
		return fmt.Errorf("%w: duplicate id %s", ErrInvalidOrder, dup)
	}

	if err := s.store.BatchSetSortOrder(ctx, orderedIDs, start); err != nil {
		metrics.ReorderBatches.WithLabelValues("failed").Inc()
		return fmt.Errorf("reorder %d products: %w", len(orderedIDs), err)
	}

	metrics.ReorderBatches.WithLabelValues("ok").Inc()
	event.FireAsync(EventCatalogReordered, len(orderedIDs))
	return nil
}

// DefaultStartingSortOrder is the position given to the first id when the
// caller does not pick one.
const DefaultStartingSortOrder = 1

// CanReorder reports whether a query can show the full catalog order: no
// search text and no gender or type filter. Callers must also check that
// the listing was not paged.
func CanReorder(query, gender, typ string) bool {
	return strings.TrimSpace(query) == "" && NormalizeFilter(gender) == "" && NormalizeFilter(typ) == ""
}
