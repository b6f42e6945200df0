package routes

import (
	"net/http"

	"github.com/shashiranjanraj/mayorista/app/controllers"
	"github.com/shashiranjanraj/mayorista/pkg/ctx"
	"github.com/shashiranjanraj/mayorista/pkg/middleware"
	"github.com/shashiranjanraj/mayorista/pkg/router"
)

// Handlers groups everything the route table points at.
type Handlers struct {
	Session *controllers.SessionController
	Catalog *controllers.CatalogController
	Admin   *controllers.AdminController
	GraphQL http.Handler
}

// RegisterAPI mounts the storefront, session and admin endpoints. The admin
// gate runs as global middleware, so /admin routes need nothing extra here.
func RegisterAPI(r *router.Router, h Handlers) {
	auth := r.Group("/api/auth")
	auth.Post("/session", "session.create", ctx.Wrap(h.Session.Create))
	auth.Delete("/session", "session.destroy", ctx.Wrap(h.Session.Destroy))

	api := r.Group("/api")
	api.Get("/products", "products.index", ctx.Wrap(h.Catalog.Index))
	api.Get("/products/featured", "products.featured", ctx.Wrap(h.Catalog.Featured))
	api.Get("/products/{id}", "products.show", ctx.Wrap(h.Catalog.Show))
	api.Get("/contact", "contact", ctx.Wrap(h.Catalog.Contact))
	if h.GraphQL != nil {
		r.Handle(http.MethodPost, "/api/graphql", "graphql", h.GraphQL)
	}

	r.Get(middleware.LoginPath, "admin.login", ctx.Wrap(h.Session.Login))

	admin := r.Group("/admin/api")
	admin.Get("/dashboard", "admin.dashboard", ctx.Wrap(h.Admin.Dashboard))
	admin.Get("/products", "admin.products.index", ctx.Wrap(h.Admin.Index))
	admin.Post("/products", "admin.products.store", ctx.Wrap(h.Admin.Store))
	admin.Post("/products/reorder", "admin.products.reorder", ctx.Wrap(h.Admin.Reorder))
	admin.Get("/products/{id}", "admin.products.show", ctx.Wrap(h.Admin.Show))
	admin.Patch("/products/{id}", "admin.products.update", ctx.Wrap(h.Admin.Update))
	admin.Patch("/products/{id}/active", "admin.products.active", ctx.Wrap(h.Admin.SetActive))
	admin.Post("/uploads", "admin.uploads", ctx.Wrap(h.Admin.Upload))
}
