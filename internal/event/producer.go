package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/gamestore/internal/domain"
	pkgkafka "github.com/utafrali/gamestore/pkg/kafka"
)

// Kafka topic constants for catalog domain events.
const (
	TopicReviewCreated        = "catalog.review.created"
	TopicProductRatingUpdated = "catalog.product.rating_updated"
)

// Aggregate type constants.
const (
	AggregateTypeReview  = "review"
	AggregateTypeProduct = "product"
)

// Source identifier for events originating from the catalog service.
const SourceCatalogService = "catalog-service"

// ReviewCreatedData is the payload for a review.created event.
type ReviewCreatedData struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	UserName  string  `json:"user_name"`
	Rating    float64 `json:"rating"`
}

// RatingUpdatedData is the payload for a product.rating_updated event.
type RatingUpdatedData struct {
	ProductID   string  `json:"product_id"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
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

// PublishReviewCreated publishes a review.created event.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	data := ReviewCreatedData{
		ID:        review.ID,
		ProductID: review.ProductID,
		UserName:  review.UserName,
		Rating:    review.Rating,
	}

	event, err := pkgkafka.NewEvent(TopicReviewCreated, review.ID, AggregateTypeReview, SourceCatalogService, data)
	if err != nil {
		return fmt.Errorf("create review.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewCreated, event); err != nil {
		return fmt.Errorf("publish review.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.created event",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
	)

	return nil
}

// PublishRatingUpdated publishes a product.rating_updated event.
func (p *Producer) PublishRatingUpdated(ctx context.Context, productID string, rating float64, reviewCount int) error {
	data := RatingUpdatedData{
		ProductID:   productID,
		Rating:      rating,
		ReviewCount: reviewCount,
	}

	event, err := pkgkafka.NewEvent(TopicProductRatingUpdated, productID, AggregateTypeProduct, SourceCatalogService, data)
	if err != nil {
		return fmt.Errorf("create product.rating_updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductRatingUpdated, event); err != nil {
		return fmt.Errorf("publish product.rating_updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.rating_updated event",
		slog.String("product_id", productID),
		slog.Float64("rating", rating),
	)

	return nil
}
