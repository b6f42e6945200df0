package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/shashiranjanraj/mayorista/app/repositories"
)

var (
	// ErrProductNotFound is the store's not-found error, re-exported so
	// callers only import services.
	ErrProductNotFound = repositories.ErrProductNotFound

	ErrSKUTaken      = errors.New("sku already in use")
	ErrImageRequired = errors.New("product image is required")
	ErrInvalidOrder  = errors.New("invalid product order")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrRetrieval     = errors.New("catalog retrieval failed")
	ErrInvalidCursor = errors.New("invalid cursor")
)

// ValidationErrors maps a JSON field name to its first failing rule message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + v[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
