package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lalimite123/agital-shop/internal/service"
	"github.com/lalimite123/agital-shop/pkg/health"
	"github.com/lalimite123/agital-shop/pkg/middleware"
)

const serviceName = "catalog"

// RouterConfig bundles the dependencies for the catalog HTTP router.
type RouterConfig struct {
	Catalog       *service.CatalogService
	Reviews       *service.ReviewService
	Search        *service.SearchService
	Health        *health.Handler
	CORS          middleware.CORSConfig
	Logger        *slog.Logger
	TracingActive bool
}

// NewRouter creates a chi router with all catalog routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	if cfg.TracingActive {
		r.Use(middleware.Tracing(serviceName))
	}

	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	productHandler := NewProductHandler(cfg.Catalog, cfg.Logger)
	reviewHandler := NewReviewHandler(cfg.Reviews, cfg.Logger)
	searchHandler := NewSearchHandler(cfg.Search, cfg.Logger)

	r.Route("/products", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", productHandler.ListProducts)
		r.Get("/{id}", productHandler.GetProduct)
	})

	r.Route("/reviews", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", reviewHandler.ListReviews)
		r.Get("/average", reviewHandler.AverageRating)
		r.Post("/", reviewHandler.CreateReview)
	})

	r.Route("/search", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", searchHandler.Search)
		r.Get("/recent", searchHandler.RecentSearches)
	})

	return r
}
