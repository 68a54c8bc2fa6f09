package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/show-show-way/TechCompare/internal/domain"
	"github.com/show-show-way/TechCompare/internal/service"
	"github.com/show-show-way/TechCompare/pkg/httputil"
)

// CatalogHandler handles HTTP requests for the catalog endpoints.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// ListProducts handles GET /products.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, products)
}

// SearchProducts handles GET /search?query=&category=&price_min=&price_max=&sort=.
func (h *CatalogHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.ProductFilter{
		Query:    q.Get("query"),
		Category: q.Get("category"),
		MinPrice: decimalParam(q, "price_min"),
		MaxPrice: decimalParam(q, "price_max"),
	}
	order := q.Get("sort")
	if order == "" {
		order = service.SortAsc
	}

	products, err := h.service.SearchProducts(r.Context(), filter, order)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, products)
}

// CompareProducts handles GET /compare?ids=1&ids=2&sort=price|rating.
func (h *CatalogHandler) CompareProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	mode := q.Get("sort")
	if mode == "" {
		mode = service.RankByRating
	}

	products, err := h.service.CompareProducts(r.Context(), intParams(q, "ids"), mode)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, products)
}

// decimalParam returns nil when key is absent or not a number.
func decimalParam(q url.Values, key string) *decimal.Decimal {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &d
}

// intParams returns every value of key that parses as an integer, in order.
func intParams(q url.Values, key string) []int {
	var out []int
	for _, raw := range q[key] {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}
