package postgres

import (
	"context"
	"fmt"

	"github.com/utafrali/gamestore/internal/domain"
	"github.com/utafrali/gamestore/internal/repository"
	"github.com/utafrali/gamestore/pkg/database"
)

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	db database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(db database.DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a new review.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, product_id, user_name, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.ProductID,
		review.UserName,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// ListByProductID returns one page of a product's reviews, newest first,
// along with the product's total review count.
func (r *ReviewRepository) ListByProductID(ctx context.Context, productID string, page, limit int) ([]domain.Review, int, error) {
	offset := 0
	if page > 1 {
		offset = (page - 1) * limit
	}

	query := `
		SELECT id, product_id, user_name, rating, comment, created_at,
			   count(*) OVER() AS total_count
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC, id ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var (
		reviews    []domain.Review
		totalCount int
	)

	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(
			&rev.ID,
			&rev.ProductID,
			&rev.UserName,
			&rev.Rating,
			&rev.Comment,
			&rev.CreatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, rev)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate review rows: %w", err)
	}

	if reviews == nil {
		reviews = []domain.Review{}
	}

	// Same fallback as the product listing: an out-of-range offset drops
	// the windowed count, so re-count to keep the page arithmetic honest.
	if len(reviews) == 0 && offset > 0 {
		countQuery := `SELECT count(*) FROM reviews WHERE product_id = $1`
		if err := r.db.QueryRow(ctx, countQuery, productID).Scan(&totalCount); err != nil {
			return nil, 0, fmt.Errorf("count reviews: %w", err)
		}
	}

	return reviews, totalCount, nil
}

// GetSummary returns the review count and unrounded average rating for a
// product. A product with no reviews yields count 0 and average 0.
func (r *ReviewRepository) GetSummary(ctx context.Context, productID string) (repository.RatingSummary, error) {
	query := `
		SELECT count(*), coalesce(avg(rating), 0)
		FROM reviews
		WHERE product_id = $1`

	var summary repository.RatingSummary
	err := r.db.QueryRow(ctx, query, productID).Scan(&summary.Count, &summary.Average)
	if err != nil {
		return repository.RatingSummary{}, fmt.Errorf("review summary: %w", err)
	}

	return summary, nil
}
