package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/show-show-way/TechCompare/internal/domain"
	apperrors "github.com/show-show-way/TechCompare/pkg/errors"
	"github.com/show-show-way/TechCompare/pkg/httpclient"
)

const tracerName = "github.com/show-show-way/TechCompare/internal/catalog"

// FetchFailedMessage is the client-facing message for every catalog failure.
const FetchFailedMessage = "failed to fetch product catalog"

var fetchDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "catalog_fetch_duration_seconds",
		Help:    "Duration of product catalog fetches by outcome",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
	},
	[]string{"outcome"},
)

// Getter issues GET requests. *httpclient.CircuitBreakerClient satisfies it.
type Getter interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// Client reads the full product list from the external catalog API.
type Client struct {
	getter Getter
	url    string
	logger *slog.Logger
}

// NewClient creates a catalog client for url.
func NewClient(getter Getter, url string, logger *slog.Logger) *Client {
	return &Client{getter: getter, url: url, logger: logger}
}

// FetchProducts performs exactly one GET against the catalog. Any failure is
// reported as an upstream failure; the cause is logged, not returned to callers.
func (c *Client) FetchProducts(ctx context.Context) (products []domain.Product, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "catalog.FetchProducts",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("catalog.url", c.url)),
	)
	start := time.Now()
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, FetchFailedMessage)
		} else {
			span.SetAttributes(attribute.Int("catalog.products", len(products)))
		}
		fetchDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
		span.End()
	}()

	products, err = c.fetch(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "catalog fetch failed",
			slog.String("url", c.url),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.UpstreamFailure(FetchFailedMessage, err)
	}
	return products, nil
}

func (c *Client) fetch(ctx context.Context) ([]domain.Product, error) {
	resp, err := c.getter.Get(ctx, c.url)
	if err != nil {
		return nil, fmt.Errorf("get catalog: %w", err)
	}
	if !httpclient.IsSuccess(resp.StatusCode) {
		return nil, httpclient.ReadStatusError(resp)
	}
	defer resp.Body.Close()

	var products []domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}
