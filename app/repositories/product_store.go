package repositories

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/mayorista/app/models"
)

var (
	// ErrProductNotFound is returned by point lookups and writes against an
	// id (or sku) that does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrDuplicateSKU is returned when a write hits the unique SKU index.
	ErrDuplicateSKU = errors.New("duplicate sku")
)

// ProductStore is the persistence contract for the catalog. ListAll is
// unordered; ordering and filtering happen in the catalog service.
type ProductStore interface {
	FindByID(ctx context.Context, id string) (models.Product, error)
	FindBySKU(ctx context.Context, sku string) (models.Product, error)
	ListAll(ctx context.Context, activeOnly bool) ([]models.Product, error)
	Create(ctx context.Context, in models.ProductInput) (string, error)
	Patch(ctx context.Context, id string, patch models.ProductPatch) error
	// BatchSetSortOrder writes sortOrder = start+i for orderedIDs[i] as one
	// unit. An unknown id aborts the whole batch.
	BatchSetSortOrder(ctx context.Context, orderedIDs []string, start int) error
}

// Pinger is implemented by stores that can report backend reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
