// Package graphql serves graphql-go schemas over HTTP.
//
//	schema, err := graphql.NewSchema(rootQuery)
//	r.Post("/api/graphql", "graphql", graphql.Handler(schema))
package graphql

import (
	"github.com/graphql-go/graphql"
)

// NewSchema builds a read-only schema from a root query.
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}
