package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/mayorista/app/models"
	"github.com/shashiranjanraj/mayorista/pkg/metrics"
)

// GormProductRepository stores products in any gorm-supported SQL database.
type GormProductRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *GormProductRepository) FindByID(ctx context.Context, id string) (models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var p models.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("find product %s: %w", id, err)
	}
	return p, nil
}

// FindBySKU returns the product carrying sku. SKU has a unique index.
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var p models.Product
	err := r.db.WithContext(ctx).Where("sku = ?", sku).Order("id asc").First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("find product by sku: %w", err)
	}
	return p, nil
}

func (r *GormProductRepository) ListAll(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	q := r.db.WithContext(ctx).Model(&models.Product{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var items []models.Product
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}

// Create appends the product to the end of the display order.
// The max+1 read and the insert are not atomic.
func (r *GormProductRepository) Create(ctx context.Context, in models.ProductInput) (string, error) {
	defer metrics.ObserveDBQuery("insert", time.Now())

	db := r.db.WithContext(ctx)

	var maxOrder int
	if err := db.Model(&models.Product{}).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&maxOrder).Error; err != nil {
		return "", fmt.Errorf("read max sort order: %w", err)
	}

	now := r.now()
	p := models.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		SKU:         in.SKU,
		Gender:      in.Gender,
		Type:        in.Type,
		ImageURL:    in.ImageURL,
		IsActive:    in.IsActive,
		SortOrder:   maxOrder + 1,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}

	// Select("*") keeps is_active=false from being swapped for the column default.
	if err := db.Select("*").Create(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", fmt.Errorf("create product: %w", ErrDuplicateSKU)
		}
		return "", fmt.Errorf("create product: %w", err)
	}
	return p.ID, nil
}

func (r *GormProductRepository) Patch(ctx context.Context, id string, patch models.ProductPatch) error {
	defer metrics.ObserveDBQuery("update", time.Now())

	cols := patch.Columns()
	cols["updated_at"] = r.now()

	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(cols)
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("patch product %s: %w", id, ErrDuplicateSKU)
	}
	if res.Error != nil {
		return fmt.Errorf("patch product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *GormProductRepository) BatchSetSortOrder(ctx context.Context, orderedIDs []string, start int) error {
	defer metrics.ObserveDBQuery("update", time.Now())

	now := r.now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			res := tx.Model(&models.Product{}).
				Where("id = ?", id).
				Updates(map[string]any{"sort_order": start + i, "updated_at": now})
			if res.Error != nil {
				return fmt.Errorf("set sort order for %s: %w", id, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("set sort order for %s: %w", id, ErrProductNotFound)
			}
		}
		return nil
	})
}

func (r *GormProductRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
