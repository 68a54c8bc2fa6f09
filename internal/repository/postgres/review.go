package postgres

import (
	"context"
	"fmt"

	"github.com/show-show-way/TechCompare/internal/domain"
	"github.com/show-show-way/TechCompare/pkg/database"
)

const (
	insertReviewSQL = `
		INSERT INTO reviews (product_id, user_id, rating, comment, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING review_id`

	listReviewsSQL = `
		SELECT review_id, product_id, user_id, rating, comment, date
		FROM reviews
		WHERE product_id = $1
		ORDER BY review_id ASC`
)

// ReviewRepository implements review persistence operations using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create inserts review in its own transaction and sets review.ID.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (err error) {
	ctx, end := database.TraceQuery(ctx, "CreateReview", insertReviewSQL)
	defer func() { end(err) }()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin review tx: %w", err)
	}

	err = tx.QueryRow(ctx, insertReviewSQL,
		review.ProductID,
		review.UserID,
		review.Rating,
		review.Comment,
		review.Date,
	).Scan(&review.ID)
	if err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("insert review: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit review: %w", err)
	}
	return nil
}

// ListByProductID returns all reviews for a product in insertion order.
func (r *ReviewRepository) ListByProductID(ctx context.Context, productID int) (reviews []domain.Review, err error) {
	ctx, end := database.TraceQuery(ctx, "ListReviews", listReviewsSQL)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, listReviewsSQL, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews = []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		if err = rows.Scan(
			&rv.ID,
			&rv.ProductID,
			&rv.UserID,
			&rv.Rating,
			&rv.Comment,
			&rv.Date,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		rv.Date = rv.Date.UTC()
		reviews = append(reviews, rv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}
	return reviews, nil
}
