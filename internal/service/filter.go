package service

import (
	"github.com/show-show-way/TechCompare/internal/domain"
)

// FilterProducts returns the products matching every predicate of f, in
// their original order. The input slice is not modified.
func FilterProducts(products []domain.Product, f domain.ProductFilter) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
