// Package migrations registers the catalog's schema migrations. cmd/mayorista
// imports it for the init side effects.
package migrations
