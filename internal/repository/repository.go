package repository

import (
	"context"

	"github.com/show-show-way/TechCompare/internal/domain"
)

// ReviewRepository defines the persistence operations for reviews.
type ReviewRepository interface {
	// Create inserts review and sets its generated ID.
	Create(ctx context.Context, review *domain.Review) error

	// ListByProductID returns every review of a product in insertion order.
	// The result is never nil.
	ListByProductID(ctx context.Context, productID int) ([]domain.Review, error)
}
