package graphql_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appgraphql "github.com/shashiranjanraj/mayorista/app/graphql"
	"github.com/shashiranjanraj/mayorista/app/models"
	"github.com/shashiranjanraj/mayorista/app/services"
	"github.com/shashiranjanraj/mayorista/pkg/graphql"
)

type fakeCatalog struct {
	items   []models.Product
	gotList services.ListParams
	err     error
}

func (f *fakeCatalog) List(_ context.Context, p services.ListParams) (services.Page, error) {
	f.gotList = p
	if f.err != nil {
		return services.Page{}, f.err
	}
	last := f.items[len(f.items)-1]
	return services.Page{Items: f.items, Cursor: &services.Cursor{SortOrder: last.SortOrder, ID: last.ID}}, nil
}

func (f *fakeCatalog) Featured(context.Context) ([]models.Product, error) {
	return f.items[:1], f.err
}

func (f *fakeCatalog) PublicProduct(_ context.Context, id string) (models.Product, error) {
	for _, p := range f.items {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, services.ErrProductNotFound
}

func catalog() *fakeCatalog {
	return &fakeCatalog{items: []models.Product{
		{ID: "a", Name: "Guante PVC", SKU: "PVC-1", Gender: models.GenderMen, Type: models.TypePVC, SortOrder: 1, IsActive: true},
		{ID: "b", Name: "Guante Nitrilo", SKU: "NIT-1", Gender: models.GenderWomen, Type: models.TypeCommon, SortOrder: 2, IsActive: true},
	}}
}

type gqlResult struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func query(t *testing.T, cat appgraphql.Catalog, q string) gqlResult {
	t.Helper()
	schema, err := appgraphql.NewCatalogSchema(cat, "+5491100000000")
	require.NoError(t, err)

	body, _ := json.Marshal(graphql.Request{Query: q})
	rec := httptest.NewRecorder()
	graphql.Handler(schema)(rec, httptest.NewRequest(http.MethodPost, "/api/graphql", strings.NewReader(string(body))))
	require.Equal(t, http.StatusOK, rec.Code)

	var out gqlResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestProductsQueryPassesFilters(t *testing.T) {
	cat := catalog()
	res := query(t, cat, `{ products(gender: "men", type: "pvc", q: "guante", pageSize: 900) { items { id gender type } nextCursor } }`)
	require.Empty(t, res.Errors)

	assert.True(t, cat.gotList.ActiveOnly)
	assert.Equal(t, "men", cat.gotList.Gender)
	assert.Equal(t, "pvc", cat.gotList.Type)
	assert.Equal(t, "guante", cat.gotList.Query)
	assert.Equal(t, appgraphql.MaxPageSize, cat.gotList.PageSize)

	var page struct {
		Items []struct {
			ID     string `json:"id"`
			Gender string `json:"gender"`
		} `json:"items"`
		NextCursor string `json:"nextCursor"`
	}
	require.NoError(t, json.Unmarshal(res.Data["products"], &page))
	assert.Len(t, page.Items, 2)
	assert.Equal(t, "men", page.Items[0].Gender)

	c, err := services.DecodeCursor(page.NextCursor)
	require.NoError(t, err)
	assert.Equal(t, "b", c.ID)
}

func TestProductQueryIncludesInquiryLink(t *testing.T) {
	res := query(t, catalog(), `{ product(id: "a") { name inquiryUrl } }`)
	require.Empty(t, res.Errors)

	var p struct {
		Name       string `json:"name"`
		InquiryURL string `json:"inquiryUrl"`
	}
	require.NoError(t, json.Unmarshal(res.Data["product"], &p))
	assert.Equal(t, "Guante PVC", p.Name)
	assert.True(t, strings.HasPrefix(p.InquiryURL, "https://wa.me/5491100000000?text="))
}

func TestMissingProductIsNull(t *testing.T) {
	res := query(t, catalog(), `{ product(id: "zzz") { id } }`)
	require.Empty(t, res.Errors)
	assert.JSONEq(t, "null", string(res.Data["product"]))
}

func TestStoreErrorsAreNotLeaked(t *testing.T) {
	cat := catalog()
	cat.err = errors.New("pq: password authentication failed")

	res := query(t, cat, `{ featured { id } }`)
	require.NotEmpty(t, res.Errors)
	assert.NotContains(t, res.Errors[0].Message, "password")
}

func TestHandlerRejectsBadBody(t *testing.T) {
	schema, err := appgraphql.NewCatalogSchema(catalog(), "")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	graphql.Handler(schema)(rec, httptest.NewRequest(http.MethodPost, "/api/graphql", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
