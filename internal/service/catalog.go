// Package service implements the catalog business logic.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/utafrali/gamestore/internal/domain"
	"github.com/utafrali/gamestore/internal/repository"
	apperrors "github.com/utafrali/gamestore/pkg/errors"
)

// Pagination defaults for catalog listings.
const (
	DefaultProductLimit = 12
	MaxPageLimit        = 100
)

// ProductListResult is one page of products with normalized pagination
// parameters and the total match count.
type ProductListResult struct {
	Products []domain.Product
	Total    int
	Page     int
	Limit    int
}

// CatalogService implements the business logic for product browsing.
type CatalogService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.ProductRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger,
	}
}

// ListProducts returns one page of products matching the filter. Page and
// limit are normalized to their defaults; an explicitly named category must
// be valid. Genre and platform filters only apply to the game payload, so
// they are dropped unless the game category is requested.
func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) (*ProductListResult, error) {
	if filter.Category != "" && !domain.IsValidCategory(string(filter.Category)) {
		return nil, apperrors.InvalidInput("Invalid category")
	}

	if filter.Category != domain.CategoryGame {
		filter.Genre = nil
		filter.Platform = nil
	}

	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit, DefaultProductLimit)

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return &ProductListResult{
		Products: products,
		Total:    total,
		Page:     filter.Page,
		Limit:    filter.Limit,
	}, nil
}

// ListByCategory returns one page of products in the named category.
func (s *CatalogService) ListByCategory(ctx context.Context, category string, filter repository.ProductFilter) (*ProductListResult, error) {
	if !domain.IsValidCategory(category) {
		return nil, apperrors.InvalidInput("Invalid category")
	}

	filter.Category = domain.Category(category)
	return s.ListProducts(ctx, filter)
}

// GetProductByID returns a single product. A malformed UUID is an invalid
// input, distinct from a well-formed ID that matches nothing.
func (s *CatalogService) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := uuid.Validate(id); err != nil {
		return nil, apperrors.InvalidInput("Invalid product ID")
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundMsg("Product not found")
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

// normalizePage applies the pagination defaults and the upper limit cap.
func normalizePage(page, limit, defaultLimit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}
