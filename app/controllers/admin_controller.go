package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/mayorista/app/models"
	"github.com/shashiranjanraj/mayorista/app/services"
	"github.com/shashiranjanraj/mayorista/pkg/assets"
	"github.com/shashiranjanraj/mayorista/pkg/bind"
	"github.com/shashiranjanraj/mayorista/pkg/ctx"
)

// AdminPageSize caps page size on the admin listing.
const AdminPageSize = 500

// AdminController serves the gated product management API.
type AdminController struct {
	catalog  *services.CatalogService
	products *services.ProductService
	reorder  services.Reorderer
	uploader assets.Uploader
}

func NewAdminController(
	catalog *services.CatalogService,
	products *services.ProductService,
	reorder services.Reorderer,
	uploader assets.Uploader,
) *AdminController {
	return &AdminController{catalog: catalog, products: products, reorder: reorder, uploader: uploader}
}

func (h *AdminController) Dashboard(c *ctx.Context) {
	active, inactive, err := h.catalog.Counts(c.Context())
	if err != nil {
		fail(c, "admin: dashboard", err)
		return
	}
	c.Success(map[string]int{"active": active, "inactive": inactive, "total": active + inactive})
}

type adminPage struct {
	Items      []models.Product `json:"items"`
	NextCursor string           `json:"nextCursor,omitempty"`
	CanReorder bool             `json:"canReorder"`
}

// Index lists every product, active or not. canReorder is true only when
// the page is the whole catalog: first page, nothing cut off, no search text
// and no filter.
func (h *AdminController) Index(c *ctx.Context) {
	cursor, err := services.DecodeCursor(c.Query("cursor"))
	if err != nil {
		fail(c, "admin: list", err)
		return
	}

	q, gender, typ := c.Query("q"), c.Query("gender"), c.Query("type")
	page, err := h.catalog.List(c.Context(), services.ListParams{
		Gender:   gender,
		Type:     typ,
		Query:    q,
		PageSize: pageSize(c, AdminPageSize),
		Cursor:   cursor,
	})
	if err != nil {
		fail(c, "admin: list", err)
		return
	}
	if page.Items == nil {
		page.Items = []models.Product{}
	}
	c.Success(adminPage{
		Items:      page.Items,
		NextCursor: services.EncodeCursor(page.Cursor),
		CanReorder: cursor == nil && !page.HasMore && services.CanReorder(q, gender, typ),
	})
}

func (h *AdminController) Show(c *ctx.Context) {
	p, err := h.products.Get(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, "admin: show", err)
		return
	}
	c.Success(p)
}

func (h *AdminController) Store(c *ctx.Context) {
	var in models.ProductInput
	if _, err := c.ShouldBindJSON(&in); err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.products.Create(c.Context(), in)
	if err != nil {
		fail(c, "admin: create product", err)
		return
	}
	c.Log().Info("product created", "id", p.ID, "sku", p.SKU)
	c.Created(p)
}

func (h *AdminController) Update(c *ctx.Context) {
	var patch models.ProductPatch
	if _, err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.products.Update(c.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, "admin: update product", err)
		return
	}
	c.Success(p)
}

// SetActive toggles visibility in the public catalog.
func (h *AdminController) SetActive(c *ctx.Context) {
	var body struct {
		IsActive *bool `json:"isActive"`
	}
	if !c.BindJSON(&body) {
		return
	}
	if body.IsActive == nil {
		c.ValidationError(map[string]string{"isActive": "isActive is required"})
		return
	}
	p, err := h.products.SetActive(c.Context(), c.Param("id"), *body.IsActive)
	if err != nil {
		fail(c, "admin: set active", err)
		return
	}
	c.Success(p)
}

// Reorder persists a full display order in one batch.
func (h *AdminController) Reorder(c *ctx.Context) {
	var body struct {
		OrderedIDs        []string `json:"orderedIds"`
		StartingSortOrder *int     `json:"startingSortOrder"`
	}
	if !c.BindJSON(&body) {
		return
	}
	start := services.DefaultStartingSortOrder
	if body.StartingSortOrder != nil {
		start = *body.StartingSortOrder
	}
	if err := h.reorder.Reorder(c.Context(), body.OrderedIDs, start); err != nil {
		fail(c, "admin: reorder", err)
		return
	}
	c.Success(map[string]int{"updated": len(body.OrderedIDs)})
}

// Upload stores a product image and returns its public URL.
func (h *AdminController) Upload(c *ctx.Context) {
	file, header, err := c.FormFile("file", assets.MaxImageSize)
	switch {
	case errors.Is(err, bind.ErrBodyTooLarge):
		c.Error(http.StatusRequestEntityTooLarge, assets.ErrTooLarge.Error())
		return
	case errors.Is(err, bind.ErrMissingFile):
		c.ValidationError(map[string]string{"file": "file is required"})
		return
	case err != nil:
		c.Error(http.StatusBadRequest, err.Error())
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(c.Context(), assets.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	switch {
	case errors.Is(err, assets.ErrNotImage), errors.Is(err, assets.ErrTooLarge), errors.Is(err, assets.ErrEmptyFile):
		c.ValidationError(map[string]string{"file": err.Error()})
	case errors.Is(err, assets.ErrNotConfigured):
		c.Log().Error("admin: upload", "error", err)
		c.Error(http.StatusServiceUnavailable, "image uploads are not configured")
	case err != nil:
		c.ServerError("admin: upload", err)
	default:
		c.Created(map[string]string{"url": url})
	}
}
