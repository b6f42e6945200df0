package controllers

import (
	"github.com/shashiranjanraj/mayorista/app/models"
	"github.com/shashiranjanraj/mayorista/app/services"
	"github.com/shashiranjanraj/mayorista/pkg/ctx"
)

// PublicPageSize caps page size on the storefront listing.
const PublicPageSize = 200

// CatalogController serves the public storefront.
type CatalogController struct {
	catalog  *services.CatalogService
	whatsapp string
}

func NewCatalogController(catalog *services.CatalogService, whatsappNumber string) *CatalogController {
	return &CatalogController{catalog: catalog, whatsapp: whatsappNumber}
}

// productDetail is a product plus its WhatsApp inquiry link.
type productDetail struct {
	models.Product
	InquiryURL string `json:"inquiryUrl"`
}

// Index lists active products. Query: gender, type, q, pageSize, cursor.
func (h *CatalogController) Index(c *ctx.Context) {
	cursor, err := services.DecodeCursor(c.Query("cursor"))
	if err != nil {
		fail(c, "catalog: list", err)
		return
	}

	page, err := h.catalog.List(c.Context(), services.ListParams{
		ActiveOnly: true,
		Gender:     c.Query("gender"),
		Type:       c.Query("type"),
		Query:      c.Query("q"),
		PageSize:   pageSize(c, PublicPageSize),
		Cursor:     cursor,
	})
	if err != nil {
		fail(c, "catalog: list", err)
		return
	}
	if page.Items == nil {
		page.Items = []models.Product{}
	}
	c.Paginated(page.Items, services.EncodeCursor(page.Cursor))
}

func (h *CatalogController) Featured(c *ctx.Context) {
	items, err := h.catalog.Featured(c.Context())
	if err != nil {
		fail(c, "catalog: featured", err)
		return
	}
	c.Success(items)
}

// Show returns one active product. Inactive products are 404.
func (h *CatalogController) Show(c *ctx.Context) {
	p, err := h.catalog.PublicProduct(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, "catalog: show", err)
		return
	}
	c.Success(productDetail{
		Product:    p,
		InquiryURL: services.WhatsAppLink(h.whatsapp, services.InquiryMessage(p.Name)),
	})
}

// Contact returns the wholesale contact link and its message.
func (h *CatalogController) Contact(c *ctx.Context) {
	c.Success(map[string]string{
		"message": services.ContactTemplate,
		"url":     services.WhatsAppLink(h.whatsapp, services.ContactTemplate),
	})
}
