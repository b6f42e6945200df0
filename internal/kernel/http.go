// Package kernel assembles the HTTP handler: global middleware, ops
// endpoints and the application routes.
package kernel

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/mayorista/pkg/metrics"
	"github.com/shashiranjanraj/mayorista/pkg/middleware"
	"github.com/shashiranjanraj/mayorista/pkg/reqid"
	"github.com/shashiranjanraj/mayorista/pkg/response"
	"github.com/shashiranjanraj/mayorista/pkg/router"
	"github.com/shashiranjanraj/mayorista/pkg/session"
)

// Options configures NewHTTPKernel. Zero values are valid for listing
// routes without serving them.
type Options struct {
	// Gate verifies admin sessions. Nil lets /admin through unchecked and
	// is only meant for route listing.
	Gate    middleware.Verifier
	Session session.Options
	Limiter *middleware.Limiter
	CORS    middleware.CORSOptions

	// Health is pinged by /healthz.
	Health func(ctx context.Context) error

	// StorageRoot, when set, is served read-only under /storage.
	StorageRoot string

	Routes func(r *router.Router)
}

const healthTimeout = 2 * time.Second

// NewHTTPKernel returns the router so callers can both serve it and list it.
func NewHTTPKernel(opts Options) *router.Router {
	r := router.New()

	// outermost first
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(opts.CORS))
	if opts.Limiter != nil {
		r.Use(opts.Limiter.Middleware)
	}
	if opts.Gate != nil {
		r.Use(middleware.AdminGate(opts.Gate, opts.Session))
	}

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "healthz", healthz(opts.Health))
	if opts.StorageRoot != "" {
		r.Mount("/storage", http.StripPrefix("/storage", http.FileServer(http.Dir(opts.StorageRoot))))
	}

	if opts.Routes != nil {
		opts.Routes(r)
	}
	return r
}

func healthz(check func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(req.Context(), healthTimeout)
			defer cancel()
			if err := check(ctx); err != nil {
				response.Error(w, http.StatusServiceUnavailable, "catalog store unreachable")
				return
			}
		}
		response.Success(w, map[string]string{"status": "ok"})
	}
}
