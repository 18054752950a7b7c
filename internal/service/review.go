package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/gamestore/internal/domain"
	"github.com/utafrali/gamestore/internal/event"
	"github.com/utafrali/gamestore/internal/repository"
	apperrors "github.com/utafrali/gamestore/pkg/errors"
)

// DefaultReviewLimit is the page size for review listings.
const DefaultReviewLimit = 10

// CreateReviewInput holds the parameters for creating a review.
type CreateReviewInput struct {
	ProductID string
	UserName  string
	Rating    float64
	Comment   string
}

// ReviewListResult is one page of reviews with normalized pagination
// parameters and the product's total review count.
type ReviewListResult struct {
	Reviews []domain.Review
	Total   int
	Page    int
	Limit   int
}

// ReviewService implements the business logic for review operations,
// including the rating aggregation that follows every review write.
type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository, producer *event.Producer, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		products: products,
		producer: producer,
		logger:   logger,
	}
}

// CreateReview validates and persists a new review, then recomputes the
// product's aggregate rating from the full review set. Validation runs field
// presence first, then ID shape, then product existence, then rating range.
func (s *ReviewService) CreateReview(ctx context.Context, input *CreateReviewInput) (*domain.Review, error) {
	if input.ProductID == "" || input.UserName == "" || input.Rating == 0 || input.Comment == "" {
		return nil, apperrors.InvalidInput("Please provide productId, userName, rating and comment")
	}

	if err := uuid.Validate(input.ProductID); err != nil {
		return nil, apperrors.InvalidInput("Invalid product ID")
	}

	if _, err := s.products.GetByID(ctx, input.ProductID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundMsg("Product not found")
		}
		return nil, fmt.Errorf("check product: %w", err)
	}

	if !domain.IsValidRating(input.Rating) {
		return nil, apperrors.InvalidInput("Rating must be between 1 and 5 in half-point steps")
	}

	review := &domain.Review{
		ID:        uuid.New().String(),
		ProductID: input.ProductID,
		UserName:  input.UserName,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
		slog.Float64("rating", review.Rating),
	)

	if err := s.producer.PublishReviewCreated(ctx, review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.created event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.recomputeRating(ctx, review.ProductID)

	return review, nil
}

// ListReviews returns one page of a product's reviews, newest first. The
// product must exist.
func (s *ReviewService) ListReviews(ctx context.Context, productID string, page, limit int) (*ReviewListResult, error) {
	if err := uuid.Validate(productID); err != nil {
		return nil, apperrors.InvalidInput("Invalid product ID")
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundMsg("Product not found")
		}
		return nil, fmt.Errorf("check product: %w", err)
	}

	page, limit = normalizePage(page, limit, DefaultReviewLimit)

	reviews, total, err := s.reviews.ListByProductID(ctx, productID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return &ReviewListResult{
		Reviews: reviews,
		Total:   total,
		Page:    page,
		Limit:   limit,
	}, nil
}

// recomputeRating re-derives the product's aggregate rating from the full
// review set and writes it back. The recompute is best-effort: a failure
// leaves a stale aggregate that the next review write will repair.
func (s *ReviewService) recomputeRating(ctx context.Context, productID string) {
	summary, err := s.reviews.GetSummary(ctx, productID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to summarize reviews for rating recompute",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
		return
	}

	if summary.Count == 0 {
		return
	}

	rating := domain.RoundRating(summary.Average)

	if err := s.products.UpdateRating(ctx, productID, rating); err != nil {
		s.logger.ErrorContext(ctx, "failed to update product rating",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
		return
	}

	s.logger.InfoContext(ctx, "product rating recomputed",
		slog.String("product_id", productID),
		slog.Float64("rating", rating),
		slog.Int("review_count", summary.Count),
	)

	if err := s.producer.PublishRatingUpdated(ctx, productID, rating, summary.Count); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.rating_updated event",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
	}
}
