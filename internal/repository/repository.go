// Package repository defines the persistence contracts for the catalog.
package repository

import (
	"context"

	"github.com/utafrali/gamestore/internal/domain"
)

// ProductFilter carries the optional filtering, sorting, and pagination
// parameters for a catalog listing. Nil price bounds mean unbounded.
type ProductFilter struct {
	Search   string
	Category domain.Category
	Genre    []string
	Platform []string
	MinPrice *float64
	MaxPrice *float64
	Sort     string
	Page     int
	Limit    int
}

// Offset returns the number of rows to skip for the filter's page.
func (f ProductFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.Limit
}

// RatingSummary aggregates the reviews of a single product.
type RatingSummary struct {
	Count   int
	Average float64
}

// ProductRepository provides read access to the product catalog plus the
// single write path used by rating aggregation.
type ProductRepository interface {
	// List returns one page of products matching the filter, along with the
	// total number of matches before pagination.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int, error)
	// GetByID returns the product with the given ID or ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// UpdateRating writes a recomputed aggregate rating. A missing product
	// is a no-op, not an error.
	UpdateRating(ctx context.Context, id string, rating float64) error
}

// ReviewRepository persists and reads product reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	// ListByProductID returns one page of a product's reviews, newest first,
	// along with the total review count for the product.
	ListByProductID(ctx context.Context, productID string, page, limit int) ([]domain.Review, int, error)
	// GetSummary returns the review count and unrounded average rating for
	// a product. A product with no reviews yields a zero summary.
	GetSummary(ctx context.Context, productID string) (RatingSummary, error)
}
