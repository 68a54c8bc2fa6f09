package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/show-show-way/TechCompare/internal/domain"
)

// ProductFetcher loads the full product catalog.
type ProductFetcher interface {
	FetchProducts(ctx context.Context) ([]domain.Product, error)
}

// CatalogService runs the listing, search and comparison pipelines. Each call
// fetches the catalog exactly once.
type CatalogService struct {
	fetcher ProductFetcher
	logger  *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(fetcher ProductFetcher, logger *slog.Logger) *CatalogService {
	return &CatalogService{fetcher: fetcher, logger: logger}
}

// ListProducts returns the catalog as fetched.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.fetcher.FetchProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// SearchProducts filters the catalog and sorts the matches by price.
func (s *CatalogService) SearchProducts(ctx context.Context, filter domain.ProductFilter, order string) ([]domain.Product, error) {
	products, err := s.fetcher.FetchProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	matched := FilterProducts(products, filter)
	s.logger.DebugContext(ctx, "products searched",
		slog.Int("catalog_size", len(products)),
		slog.Int("matched", len(matched)),
		slog.String("sort", order),
	)
	return SortByPrice(matched, order), nil
}

// CompareProducts ranks the requested products for comparison. The id count
// is checked before the catalog is fetched.
func (s *CatalogService) CompareProducts(ctx context.Context, ids []int, mode string) ([]domain.Product, error) {
	if err := checkComparisonSize(ids); err != nil {
		return nil, err
	}

	products, err := s.fetcher.FetchProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("compare products: %w", err)
	}

	selected, err := ValidateComparison(ids, products)
	if err != nil {
		return nil, err
	}
	return RankForComparison(selected, mode), nil
}
