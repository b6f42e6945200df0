package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/mayorista/app/models"
	"github.com/shashiranjanraj/mayorista/app/repositories"
	"github.com/shashiranjanraj/mayorista/pkg/event"
	"github.com/shashiranjanraj/mayorista/pkg/validate"
)

const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
)

// ProductService backs the admin product form: validation, SKU uniqueness
// and image rules on top of the store.
type ProductService struct {
	store repositories.ProductStore
}

func NewProductService(store repositories.ProductStore) *ProductService {
	return &ProductService{store: store}
}

func (s *ProductService) Get(ctx context.Context, id string) (models.Product, error) {
	return s.store.FindByID(ctx, id)
}

// Create validates in and appends a new product to the end of the catalog.
// The SKU check and the insert are not atomic; the store's unique index
// catches the race.
func (s *ProductService) Create(ctx context.Context, in models.ProductInput) (models.Product, error) {
	in.Trim()
	if errs := validate.Struct(&in); validate.HasErrors(errs) {
		return models.Product{}, ValidationErrors(errs)
	}
	if in.ImageURL == "" {
		return models.Product{}, ErrImageRequired
	}
	if err := s.ensureSKUFree(ctx, in.SKU, ""); err != nil {
		return models.Product{}, err
	}

	id, err := s.store.Create(ctx, in)
	if errors.Is(err, repositories.ErrDuplicateSKU) {
		return models.Product{}, ErrSKUTaken
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("create product: %w", err)
	}

	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return models.Product{}, fmt.Errorf("reload product %s: %w", id, err)
	}
	event.Fire(EventProductCreated, p)
	return p, nil
}

// Update applies a partial edit. A blank image URL keeps the current image.
// Keeping the product's own SKU is not a conflict.
func (s *ProductService) Update(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}

	trimPatch(&patch)
	if patch.ImageURL != nil && *patch.ImageURL == "" {
		patch.ImageURL = nil
	}
	if patch.Empty() {
		return current, nil
	}

	merged := patch.Apply(current)
	candidate := models.ProductInput{
		Name:        merged.Name,
		Description: merged.Description,
		SKU:         merged.SKU,
		Gender:      merged.Gender,
		Type:        merged.Type,
		ImageURL:    merged.ImageURL,
		IsActive:    merged.IsActive,
	}
	if errs := validate.Struct(&candidate); validate.HasErrors(errs) {
		return models.Product{}, ValidationErrors(errs)
	}

	if patch.SKU != nil && *patch.SKU != current.SKU {
		if err := s.ensureSKUFree(ctx, *patch.SKU, id); err != nil {
			return models.Product{}, err
		}
	}

	if err := s.store.Patch(ctx, id, patch); errors.Is(err, repositories.ErrDuplicateSKU) {
		return models.Product{}, ErrSKUTaken
	} else if err != nil {
		return models.Product{}, err
	}

	updated, err := s.store.FindByID(ctx, id)
	if err != nil {
		return models.Product{}, fmt.Errorf("reload product %s: %w", id, err)
	}
	event.Fire(EventProductUpdated, updated)
	return updated, nil
}

// SetActive toggles catalog visibility.
func (s *ProductService) SetActive(ctx context.Context, id string, active bool) (models.Product, error) {
	return s.Update(ctx, id, models.ProductPatch{IsActive: &active})
}

func (s *ProductService) ensureSKUFree(ctx context.Context, sku, ownerID string) error {
	existing, err := s.store.FindBySKU(ctx, sku)
	switch {
	case errors.Is(err, ErrProductNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check sku: %w", err)
	case existing.ID == ownerID:
		return nil
	default:
		return ErrSKUTaken
	}
}

func trimPatch(p *models.ProductPatch) {
	for _, f := range []*string{p.Name, p.Description, p.SKU, p.ImageURL} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}
