// Package graphql exposes the public catalog as a GraphQL schema:
//
//	{ products(gender: "men", pageSize: 20) { items { id name sku } nextCursor } }
//	{ product(id: "...") { name inquiryUrl } }
//	{ featured { id name imageUrl } }
//
// Only active products are visible.
package graphql

import (
	"context"
	"errors"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/mayorista/app/models"
	"github.com/shashiranjanraj/mayorista/app/services"
	gql "github.com/shashiranjanraj/mayorista/pkg/graphql"
	"github.com/shashiranjanraj/mayorista/pkg/logger"
)

// MaxPageSize caps products(pageSize:).
const MaxPageSize = 200

// Catalog is the read side the schema resolves against.
type Catalog interface {
	List(ctx context.Context, p services.ListParams) (services.Page, error)
	Featured(ctx context.Context) ([]models.Product, error)
	PublicProduct(ctx context.Context, id string) (models.Product, error)
}

type productPage struct {
	Items      []models.Product
	NextCursor string
}

func productField(typ graphql.Output, get func(models.Product) any) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			prod, ok := p.Source.(models.Product)
			if !ok {
				return nil, nil
			}
			return get(prod), nil
		},
	}
}

// NewCatalogSchema builds the storefront schema. whatsappNumber feeds the
// inquiryUrl field.
func NewCatalogSchema(catalog Catalog, whatsappNumber string) (graphql.Schema, error) {
	nonNullString := graphql.NewNonNull(graphql.String)

	product := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":          productField(graphql.NewNonNull(graphql.ID), func(p models.Product) any { return p.ID }),
			"name":        productField(nonNullString, func(p models.Product) any { return p.Name }),
			"description": productField(graphql.String, func(p models.Product) any { return p.Description }),
			"sku":         productField(nonNullString, func(p models.Product) any { return p.SKU }),
			"gender":      productField(nonNullString, func(p models.Product) any { return string(p.Gender) }),
			"type":        productField(nonNullString, func(p models.Product) any { return string(p.Type) }),
			"imageUrl":    productField(graphql.String, func(p models.Product) any { return p.ImageURL }),
			"sortOrder":   productField(graphql.Int, func(p models.Product) any { return p.SortOrder }),
			"inquiryUrl": productField(nonNullString, func(p models.Product) any {
				return services.WhatsAppLink(whatsappNumber, services.InquiryMessage(p.Name))
			}),
		},
	})

	page := graphql.NewObject(graphql.ObjectConfig{
		Name: "ProductPage",
		Fields: graphql.Fields{
			"items": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(product))),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(productPage).Items, nil
				},
			},
			"nextCursor": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if c := p.Source.(productPage).NextCursor; c != "" {
						return c, nil
					}
					return nil, nil
				},
			},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewNonNull(page),
				Args: graphql.FieldConfigArgument{
					"gender":   &graphql.ArgumentConfig{Type: graphql.String},
					"type":     &graphql.ArgumentConfig{Type: graphql.String},
					"q":        &graphql.ArgumentConfig{Type: graphql.String},
					"pageSize": &graphql.ArgumentConfig{Type: graphql.Int},
					"cursor":   &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					cursor, err := services.DecodeCursor(stringArg(p, "cursor"))
					if err != nil {
						return nil, err
					}
					size, _ := p.Args["pageSize"].(int)
					if size > MaxPageSize {
						size = MaxPageSize
					}
					res, err := catalog.List(p.Context, services.ListParams{
						ActiveOnly: true,
						Gender:     stringArg(p, "gender"),
						Type:       stringArg(p, "type"),
						Query:      stringArg(p, "q"),
						PageSize:   size,
						Cursor:     cursor,
					})
					if err != nil {
						return nil, unavailable(p.Context, err)
					}
					items := res.Items
					if items == nil {
						items = []models.Product{}
					}
					return productPage{Items: items, NextCursor: services.EncodeCursor(res.Cursor)}, nil
				},
			},
			"product": &graphql.Field{
				Type: product,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					prod, err := catalog.PublicProduct(p.Context, stringArg(p, "id"))
					if errors.Is(err, services.ErrProductNotFound) {
						return nil, nil
					}
					if err != nil {
						return nil, unavailable(p.Context, err)
					}
					return prod, nil
				},
			},
			"featured": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(product))),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					items, err := catalog.Featured(p.Context)
					if err != nil {
						return nil, unavailable(p.Context, err)
					}
					if items == nil {
						items = []models.Product{}
					}
					return items, nil
				},
			},
		},
	})

	return gql.NewSchema(query)
}

// errCatalogUnavailable is what clients see when the store fails.
var errCatalogUnavailable = errors.New("catalog is temporarily unavailable")

func unavailable(ctx context.Context, err error) error {
	logger.WithCtx(ctx).Error("graphql: catalog read failed", "error", err)
	return errCatalogUnavailable
}

func stringArg(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}
