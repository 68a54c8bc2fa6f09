package service

import (
	"github.com/show-show-way/TechCompare/internal/domain"
	apperrors "github.com/show-show-way/TechCompare/pkg/errors"
)

// Messages returned by comparison validation.
const (
	MsgTooFewProducts   = "At least two product IDs are required for comparison"
	MsgNoProductsFound  = "No products found for the given IDs"
	MsgCategoryMismatch = "All products must be in the same category for comparison"
)

// DistinctIDs returns ids without repeats, keeping first occurrences in order.
func DistinctIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func checkComparisonSize(ids []int) error {
	if len(DistinctIDs(ids)) < 2 {
		return apperrors.InvalidInput(MsgTooFewProducts)
	}
	return nil
}

// ValidateComparison selects the requested products from catalog, in catalog
// order, and checks that they can be compared: at least two distinct ids, at
// least one match, and every match in the first match's category.
func ValidateComparison(ids []int, catalog []domain.Product) ([]domain.Product, error) {
	if err := checkComparisonSize(ids); err != nil {
		return nil, err
	}

	wanted := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	var matched []domain.Product
	for _, p := range catalog {
		if _, ok := wanted[p.ID]; ok {
			matched = append(matched, p)
		}
	}
	if len(matched) == 0 {
		return nil, apperrors.NotFound(MsgNoProductsFound)
	}

	category := matched[0].Category
	for _, p := range matched[1:] {
		if p.Category != category {
			return nil, apperrors.InvalidInput(MsgCategoryMismatch)
		}
	}
	return matched, nil
}
