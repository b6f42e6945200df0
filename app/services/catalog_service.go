package services

import (
	"cmp"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shashiranjanraj/mayorista/app/models"
	"github.com/shashiranjanraj/mayorista/app/repositories"
	"github.com/shashiranjanraj/mayorista/pkg/collection"
	"github.com/shashiranjanraj/mayorista/pkg/metrics"
)

const (
	DefaultPageSize = 200
	MaxPageSize     = 500
	FeaturedCount   = 6
)

// Cursor marks the last item of a page. The next page starts strictly
// after it in (sortOrder, id) order.
type Cursor struct {
	SortOrder int    `json:"s"`
	ID        string `json:"id"`
}

// ListParams describes one listing request. Gender and Type are raw filter
// values; "" and "all" mean no filter.
type ListParams struct {
	ActiveOnly bool
	Gender     string
	Type       string
	Query      string
	PageSize   int
	Cursor     *Cursor
}

// Page is one window of the ordered listing. Cursor is nil on an empty page.
// HasMore is set when the page size cut off further items.
type Page struct {
	Items   []models.Product
	Cursor  *Cursor
	HasMore bool
}

// CatalogService is the listing and filter engine. Only the active flag is
// pushed to storage; everything else runs in process over the bulk fetch.
type CatalogService struct {
	store repositories.ProductStore
}

func NewCatalogService(store repositories.ProductStore) *CatalogService {
	return &CatalogService{store: store}
}

// List returns one page of products ordered by (sortOrder, id).
// Text search narrows the already-truncated page; the cursor still points
// at the last item of the unsearched page.
func (s *CatalogService) List(ctx context.Context, p ListParams) (Page, error) {
	scope := "admin"
	if p.ActiveOnly {
		scope = "public"
	}
	defer metrics.ObserveCatalogList(scope, time.Now())

	items, err := s.store.ListAll(ctx, p.ActiveOnly)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}

	gender, typ := NormalizeFilter(p.Gender), NormalizeFilter(p.Type)
	items = collection.Filter(items, func(prod models.Product) bool {
		if gender != "" && string(prod.Gender) != gender {
			return false
		}
		if typ != "" && string(prod.Type) != typ {
			return false
		}
		return true
	})

	SortProducts(items)

	if c := p.Cursor; c != nil {
		items = collection.DropWhile(items, func(prod models.Product) bool {
			return compareKey(prod.SortOrder, prod.ID, c.SortOrder, c.ID) <= 0
		})
	}

	size := clampPageSize(p.PageSize)
	page := Page{HasMore: len(items) > size}
	items = collection.Take(items, size)
	page.Items = items
	if last, ok := collection.Last(items); ok {
		page.Cursor = &Cursor{SortOrder: last.SortOrder, ID: last.ID}
	}

	if q := strings.ToLower(strings.TrimSpace(p.Query)); q != "" {
		page.Items = collection.Filter(items, func(prod models.Product) bool {
			return strings.Contains(strings.ToLower(prod.Name), q) ||
				strings.Contains(strings.ToLower(prod.SKU), q)
		})
	}

	return page, nil
}

// Featured returns the first FeaturedCount active products in display order.
func (s *CatalogService) Featured(ctx context.Context) ([]models.Product, error) {
	page, err := s.List(ctx, ListParams{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	return collection.Take(page.Items, FeaturedCount), nil
}

// PublicProduct returns an active product. Inactive products read as missing.
func (s *CatalogService) PublicProduct(ctx context.Context, id string) (models.Product, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if !p.IsActive {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

// Counts reports how many products are active and inactive.
func (s *CatalogService) Counts(ctx context.Context) (active, inactive int, err error) {
	items, err := s.store.ListAll(ctx, false)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}
	active = collection.Count(items, func(p models.Product) bool { return p.IsActive })
	return active, len(items) - active, nil
}

// SortProducts orders items in place by sortOrder, then id.
func SortProducts(items []models.Product) {
	collection.SortStable(items, func(a, b models.Product) int {
		return compareKey(a.SortOrder, a.ID, b.SortOrder, b.ID)
	})
}

// NormalizeFilter trims and lowercases v and maps "all" to "" (no filter).
func NormalizeFilter(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "all" {
		return ""
	}
	return v
}

// EncodeCursor renders c as an opaque URL-safe token.
func EncodeCursor(c *Cursor) string {
	if c == nil {
		return ""
	}
	raw, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor parses a token from EncodeCursor. An empty token is no cursor.
func DecodeCursor(token string) (*Cursor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil || c.ID == "" {
		return nil, ErrInvalidCursor
	}
	return &c, nil
}

func compareKey(aOrder int, aID string, bOrder int, bID string) int {
	if c := cmp.Compare(aOrder, bOrder); c != 0 {
		return c
	}
	return strings.Compare(aID, bID)
}

func clampPageSize(n int) int {
	switch {
	case n <= 0:
		return DefaultPageSize
	case n > MaxPageSize:
		return MaxPageSize
	default:
		return n
	}
}
