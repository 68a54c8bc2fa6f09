package service

import (
	"cmp"
	"slices"

	"github.com/show-show-way/TechCompare/internal/domain"
)

// Sort orders and comparison modes accepted by the search and compare pipelines.
const (
	SortAsc  = "asc"
	SortDesc = "desc"

	RankByPrice  = "price"
	RankByRating = "rating"
)

// SortByPrice returns a copy of products stably sorted by price, descending
// when order is "desc" and ascending otherwise.
func SortByPrice(products []domain.Product, order string) []domain.Product {
	out := append(make([]domain.Product, 0, len(products)), products...)
	desc := order == SortDesc
	slices.SortStableFunc(out, func(a, b domain.Product) int {
		c := a.Price.Cmp(b.Price)
		if desc {
			return -c
		}
		return c
	})
	return out
}

// RankForComparison orders products for side-by-side comparison. In "price"
// mode the cheapest comes first and higher score breaks ties; in any other
// mode the highest score comes first and lower price breaks ties. Products
// tied on both keys keep their input order.
func RankForComparison(products []domain.Product, mode string) []domain.Product {
	scored := make([]domain.ScoredProduct, 0, len(products))
	for _, p := range products {
		scored = append(scored, domain.NewScoredProduct(p))
	}

	byPrice := func(a, b domain.ScoredProduct) int { return a.Price.Cmp(b.Price) }
	byScoreDesc := func(a, b domain.ScoredProduct) int { return b.Score.Cmp(a.Score) }

	if mode == RankByPrice {
		slices.SortStableFunc(scored, func(a, b domain.ScoredProduct) int {
			return cmp.Or(byPrice(a, b), byScoreDesc(a, b))
		})
	} else {
		slices.SortStableFunc(scored, func(a, b domain.ScoredProduct) int {
			return cmp.Or(byScoreDesc(a, b), byPrice(a, b))
		})
	}

	out := make([]domain.Product, len(scored))
	for i, sp := range scored {
		out[i] = sp.Product
	}
	return out
}
