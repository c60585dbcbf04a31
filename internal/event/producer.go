package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lalimite123/agital-shop/internal/domain"
	pkgkafka "github.com/lalimite123/agital-shop/pkg/kafka"
	"github.com/lalimite123/agital-shop/pkg/logger"
)

// Kafka topic constants for catalog domain events.
const (
	TopicReviewCreated = "catalog.review.created"
)

// Aggregate type constant.
const AggregateTypeReview = "review"

// Source identifier for events originating from the catalog service.
const SourceCatalog = "catalog"

// ReviewCreatedData is the payload for a review.created event.
type ReviewCreatedData struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Name      string `json:"name"`
}

// Producer publishes catalog domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the catalog service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishReviewCreated publishes a review.created event keyed by the review id.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	data := ReviewCreatedData{
		ID:        review.ID,
		ProductID: review.ProductID,
		Rating:    review.Rating,
		Name:      review.Name,
	}

	event, err := pkgkafka.NewEvent(TopicReviewCreated, review.ID, AggregateTypeReview, SourceCatalog, data)
	if err != nil {
		return fmt.Errorf("create review.created event: %w", err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, TopicReviewCreated, event); err != nil {
		return fmt.Errorf("publish review.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.created event",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
	)

	return nil
}
