package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/show-show-way/TechCompare/internal/domain"
	pkgkafka "github.com/show-show-way/TechCompare/pkg/kafka"
	"github.com/show-show-way/TechCompare/pkg/logger"
)

// Kafka topic for review domain events.
var TopicReviewCreated = pkgkafka.Topic("review", "created")

const (
	EventTypeReviewCreated = "review.created"
	AggregateTypeReview    = "review"
	SourceTechCompare      = "techcompare-api"
)

// ReviewCreatedData is the payload for a review.created event.
type ReviewCreatedData struct {
	ReviewID  int64     `json:"review_id"`
	ProductID int       `json:"product_id"`
	UserID    int       `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Date      time.Time `json:"date"`
}

// Publisher writes an event envelope to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes review domain events to Kafka.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishReviewCreated publishes a review.created event keyed by review id.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	data := ReviewCreatedData{
		ReviewID:  review.ID,
		ProductID: review.ProductID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		Date:      review.Date,
	}

	evt, err := pkgkafka.NewEvent(EventTypeReviewCreated, strconv.FormatInt(review.ID, 10), AggregateTypeReview, SourceTechCompare, data)
	if err != nil {
		return fmt.Errorf("create review.created event: %w", err)
	}
	evt.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, TopicReviewCreated, evt); err != nil {
		return fmt.Errorf("publish review.created event: %w", err)
	}
	return nil
}

// NoopPublisher drops every event. Used when Kafka is disabled.
type NoopPublisher struct{}

// PublishReviewCreated does nothing.
func (NoopPublisher) PublishReviewCreated(context.Context, *domain.Review) error { return nil }
