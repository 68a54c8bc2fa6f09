package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/show-show-way/TechCompare/internal/domain"
	"github.com/show-show-way/TechCompare/internal/repository"
	apperrors "github.com/show-show-way/TechCompare/pkg/errors"
	"github.com/show-show-way/TechCompare/pkg/validator"
)

// MsgMissingData is returned when a review is submitted without all its fields.
const MsgMissingData = "Missing data"

// DefaultPublishTimeout bounds the review.created publish after a review is stored.
const DefaultPublishTimeout = 3 * time.Second

// AddReviewInput is the body of a review submission. A nil field means the
// field was absent.
type AddReviewInput struct {
	ProductID *int    `json:"product_id" validate:"required"`
	UserID    *int    `json:"user_id" validate:"required"`
	Rating    *int    `json:"rating" validate:"required"`
	Comment   *string `json:"comment" validate:"required"`
}

// ReviewEventPublisher announces stored reviews.
type ReviewEventPublisher interface {
	PublishReviewCreated(ctx context.Context, review *domain.Review) error
}

// ReviewService implements the business logic for review operations.
type ReviewService struct {
	repo      repository.ReviewRepository
	publisher ReviewEventPublisher
	logger    *slog.Logger
	now       func() time.Time

	publishTimeout time.Duration
}

// NewReviewService creates a new review service.
func NewReviewService(repo repository.ReviewRepository, publisher ReviewEventPublisher, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,

		publishTimeout: DefaultPublishTimeout,
	}
}

// ListReviews returns all reviews of a product, oldest first.
func (s *ReviewService) ListReviews(ctx context.Context, productID int) ([]domain.Review, error) {
	reviews, err := s.repo.ListByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}

// AddReview stores a review dated now. Only presence of the four fields is
// checked; the ids are not looked up in the catalog.
func (s *ReviewService) AddReview(ctx context.Context, input AddReviewInput) (*domain.Review, error) {
	if err := validator.Validate(input); err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			s.logger.DebugContext(ctx, "review rejected", slog.Any("missing", verr.Missing()))
		}
		return nil, apperrors.Validation(MsgMissingData)
	}

	review := &domain.Review{
		ProductID: *input.ProductID,
		UserID:    *input.UserID,
		Rating:    *input.Rating,
		Comment:   *input.Comment,
		Date:      s.now().UTC(),
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("add review: %w", err)
	}

	s.logger.InfoContext(ctx, "review created",
		slog.Int64("review_id", review.ID),
		slog.Int("product_id", review.ProductID),
		slog.Int("user_id", review.UserID),
		slog.Int("rating", review.Rating),
	)

	s.publishCreated(ctx, review)

	return review, nil
}

// publishCreated announces a stored review. It runs on its own deadline and
// ignores cancellation of ctx, since the review is already committed.
func (s *ReviewService) publishCreated(ctx context.Context, review *domain.Review) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()

	if err := s.publisher.PublishReviewCreated(pubCtx, review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.created event",
			slog.Int64("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}
}
