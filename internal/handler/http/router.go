package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/show-show-way/TechCompare/internal/service"
	apperrors "github.com/show-show-way/TechCompare/pkg/errors"
	"github.com/show-show-way/TechCompare/pkg/health"
	"github.com/show-show-way/TechCompare/pkg/httputil"
	pkglogger "github.com/show-show-way/TechCompare/pkg/logger"
	"github.com/show-show-way/TechCompare/pkg/middleware"
)

// RouterConfig holds the cross-cutting settings of the HTTP surface.
type RouterConfig struct {
	ServiceName       string
	CORS              middleware.CORSConfig
	RateLimit         middleware.RateLimitConfig
	PprofAllowedCIDRs []string
}

// NewRouter creates a chi router with all routes registered. ctx bounds the
// lifetime of background middleware state such as the rate limiter.
func NewRouter(
	ctx context.Context,
	catalogService *service.CatalogService,
	reviewService *service.ReviewService,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.CORS(cfg.CORS))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, r, apperrors.NotFound("resource not found"), logger)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorResponse{
			Error:     "method not allowed",
			Code:      "METHOD_NOT_ALLOWED",
			RequestID: pkglogger.CorrelationIDFromContext(r.Context()),
		})
	})

	// Operational endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())
	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)

	catalogHandler := NewCatalogHandler(catalogService, logger)
	reviewHandler := NewReviewHandler(reviewService, logger)

	// Public API
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, cfg.RateLimit, logger))

		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/search", catalogHandler.SearchProducts)
		r.Get("/compare", catalogHandler.CompareProducts)

		r.Get("/reviews/{product_id}", reviewHandler.ListReviews)
		r.Post("/reviews", reviewHandler.AddReview)
	})

	return r
}
