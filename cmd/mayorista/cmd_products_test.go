package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/mayorista/app/models"
	"github.com/shashiranjanraj/mayorista/app/services"
)

// pagedCatalog serves a fixed, ordered catalog in pages of size.
type pagedCatalog struct {
	items []models.Product
	size  int
	calls int
	err   error
}

func (c *pagedCatalog) List(_ context.Context, p services.ListParams) (services.Page, error) {
	c.calls++
	if c.err != nil {
		return services.Page{}, c.err
	}
	start := 0
	if p.Cursor != nil {
		for i, it := range c.items {
			if it.ID == p.Cursor.ID {
				start = i + 1
			}
		}
	}
	end := min(start+c.size, len(c.items))
	page := services.Page{Items: c.items[start:end], HasMore: end < len(c.items)}
	if end > start {
		last := c.items[end-1]
		page.Cursor = &services.Cursor{SortOrder: last.SortOrder, ID: last.ID}
	}
	return page, nil
}

func TestListWholeCatalogFollowsCursor(t *testing.T) {
	var items []models.Product
	for i := 1; i <= 1203; i++ {
		items = append(items, models.Product{ID: fmt.Sprintf("p%04d", i), SortOrder: i})
	}
	catalog := &pagedCatalog{items: items, size: services.MaxPageSize}

	got, err := listWholeCatalog(context.Background(), catalog)
	require.NoError(t, err)
	require.Len(t, got, 1203)
	assert.Equal(t, "p0001", got[0].ID)
	assert.Equal(t, "p1203", got[1202].ID)
	assert.Equal(t, 4, catalog.calls, "three full or partial pages, then an empty one")
}

func TestListWholeCatalogStopsOnError(t *testing.T) {
	boom := errors.New("store down")
	_, err := listWholeCatalog(context.Background(), &pagedCatalog{size: 10, err: boom})
	assert.ErrorIs(t, err, boom)
}
