package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/gamestore/internal/service"
	"github.com/utafrali/gamestore/pkg/health"
	"github.com/utafrali/gamestore/pkg/middleware"
)

// browseCacheTTL is the Cache-Control max-age in seconds for catalog read
// endpoints.
const browseCacheTTL = 60

// NewRouter creates a chi router with all catalog service routes registered.
func NewRouter(
	catalogService *service.CatalogService,
	reviewService *service.ReviewService,
	healthHandler *health.Handler,
	corsConfig CORSConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("catalog"))

	// Health and metrics endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	// Product API endpoints
	productHandler := NewProductHandler(catalogService, logger)

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.CacheControl(browseCacheTTL))

		r.Get("/", productHandler.ListProducts)
		r.Get("/category/{category}", productHandler.ListByCategory)
		r.Get("/{id}", productHandler.GetProduct)
	})

	// Review API endpoints
	reviewHandler := NewReviewHandler(reviewService, logger)

	r.Route("/api/v1/reviews", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/", reviewHandler.CreateReview)
		r.Get("/product/{productId}", reviewHandler.ListReviews)
	})

	return r
}
