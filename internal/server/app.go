package server

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/mayorista/app/controllers"
	appgraphql "github.com/shashiranjanraj/mayorista/app/graphql"
	"github.com/shashiranjanraj/mayorista/app/repositories"
	"github.com/shashiranjanraj/mayorista/app/routes"
	"github.com/shashiranjanraj/mayorista/app/services"
	"github.com/shashiranjanraj/mayorista/config"
	"github.com/shashiranjanraj/mayorista/internal/kernel"
	"github.com/shashiranjanraj/mayorista/pkg/assets"
	"github.com/shashiranjanraj/mayorista/pkg/cache"
	"github.com/shashiranjanraj/mayorista/pkg/database"
	"github.com/shashiranjanraj/mayorista/pkg/event"
	"github.com/shashiranjanraj/mayorista/pkg/graphql"
	"github.com/shashiranjanraj/mayorista/pkg/identity"
	"github.com/shashiranjanraj/mayorista/pkg/logger"
	"github.com/shashiranjanraj/mayorista/pkg/middleware"
	"github.com/shashiranjanraj/mayorista/pkg/router"
	"github.com/shashiranjanraj/mayorista/pkg/session"
	"github.com/shashiranjanraj/mayorista/pkg/workerpool"
)

// cacheWorkers sizes the pool that fills the catalog cache.
const cacheWorkers = 4

// App holds the long-lived clients and services for one process.
type App struct {
	Store    repositories.ProductStore
	Catalog  *services.CatalogService
	Products *services.ProductService
	Reorder  *services.ReorderService
	Sessions *services.SessionService
	Uploader assets.Uploader

	closers []func()
}

// OpenStore connects the backend chosen by STORE_DRIVER and returns the
// bare product store. The returned func releases the connection.
func OpenStore(ctx context.Context) (repositories.ProductStore, func(), error) {
	switch config.StoreDriver() {
	case "mongo":
		if err := database.ConnectMongo(ctx); err != nil {
			return nil, nil, err
		}
		repo := repositories.NewMongoProductRepository(database.Mongo)
		if err := repo.EnsureIndexes(ctx); err != nil {
			database.Close(context.Background())
			return nil, nil, fmt.Errorf("server: mongo indexes: %w", err)
		}
		return repo, func() { database.Close(context.Background()) }, nil
	default:
		if err := database.Connect(ctx); err != nil {
			return nil, nil, err
		}
		return repositories.NewGormProductRepository(database.DB), func() { database.Close(context.Background()) }, nil
	}
}

// Boot connects every backend and builds the services. Redis and the
// asset uploader are optional: without them the catalog runs uncached
// and uploads answer 503.
func Boot(ctx context.Context) (*App, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}

	store, closeStore, err := OpenStore(ctx)
	if err != nil {
		return nil, err
	}
	a := &App{closers: []func(){closeStore}}

	var c cache.Store
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, using in-process catalog cache", "error", err)
		c = cache.NewMemory()
	} else {
		c = cache.Default()
		a.closers = append(a.closers, func() { _ = cache.Close() })
	}
	pool := workerpool.New("catalog-cache", cacheWorkers)
	a.closers = append(a.closers, pool.Shutdown)
	a.Store = repositories.NewCachedProductStore(store, c, pool, config.CatalogCacheTTL())

	uploader, err := assets.FromConfig(ctx)
	if err != nil {
		logger.Warn("image uploads disabled", "disk", config.AssetDisk(), "error", err)
		uploader = assets.Unconfigured(err)
	}
	a.Uploader = uploader

	a.Catalog = services.NewCatalogService(a.Store)
	a.Products = services.NewProductService(a.Store)
	a.Reorder = services.NewReorderService(a.Store)
	a.Sessions = services.NewSessionService(identity.FromConfig(), config.AdminEmail(), session.DefaultOptions().TTL)

	event.Listen(services.EventCatalogReordered, func(payload any) {
		logger.Info("catalog reordered", "products", payload)
	})

	return a, nil
}

// Ping reports whether the product store is reachable.
func (a *App) Ping(ctx context.Context) error {
	if p, ok := a.Store.(repositories.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close releases clients in reverse boot order.
func (a *App) Close() {
	event.Wait()
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// Router builds the full HTTP surface over a. A zero App is enough to
// list routes.
func Router(a *App, limiter *middleware.Limiter) (*router.Router, error) {
	schema, err := appgraphql.NewCatalogSchema(a.Catalog, config.WhatsAppNumber())
	if err != nil {
		return nil, fmt.Errorf("server: graphql schema: %w", err)
	}

	opts := kernel.Options{
		Session: session.DefaultOptions(),
		Limiter: limiter,
		CORS:    middleware.DefaultCORSOptions(),
		Routes: func(r *router.Router) {
			routes.RegisterAPI(r, routes.Handlers{
				Session: controllers.NewSessionController(a.Sessions, session.DefaultOptions()),
				Catalog: controllers.NewCatalogController(a.Catalog, config.WhatsAppNumber()),
				Admin:   controllers.NewAdminController(a.Catalog, a.Products, a.Reorder, a.Uploader),
				GraphQL: graphql.Handler(schema),
			})
		},
	}
	if a.Sessions != nil {
		opts.Gate = a.Sessions
	}
	if a.Store != nil {
		opts.Health = a.Ping
	}
	if config.AssetDisk() == "local" {
		opts.StorageRoot = config.StorageLocalRoot()
	}
	return kernel.NewHTTPKernel(opts), nil
}
