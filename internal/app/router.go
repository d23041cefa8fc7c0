package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/balu-pos/balu-pos/internal/auth"
	"github.com/balu-pos/balu-pos/internal/catalog/categories"
	"github.com/balu-pos/balu-pos/internal/catalog/products"
	"github.com/balu-pos/balu-pos/internal/observability"
	"github.com/balu-pos/balu-pos/internal/reporting"
	"github.com/balu-pos/balu-pos/internal/sales"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	Auth              auth.Middleware
	SalesHandler      *sales.Handler
	ReportingHandler  *reporting.Handler
	ProductsHandler   *products.Handler
	CategoriesHandler *categories.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with service defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Auth:    params.Auth,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/sales", params.SalesHandler.MountRoutes)
	r.Route("/reports", params.ReportingHandler.MountRoutes)
	r.Route("/products", params.ProductsHandler.MountRoutes)
	r.Route("/categories", params.CategoriesHandler.MountRoutes)

	return r
}
