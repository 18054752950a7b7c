// Package postgres implements the repository contracts on PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/gamestore/internal/domain"
	"github.com/utafrali/gamestore/internal/repository"
	"github.com/utafrali/gamestore/pkg/database"
	apperrors "github.com/utafrali/gamestore/pkg/errors"
)

const productColumns = "id, name, description, price, image_url, category, in_stock, rating, details, created_at, updated_at"

// ProductRepository implements repository.ProductRepository using PostgreSQL.
// Variant payloads live in the details JSONB column, keyed by category.
type ProductRepository struct {
	db database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db database.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// buildFilterConditions translates the filter into WHERE conditions and
// positional args. Genre and platform filters match any of the requested
// values against the JSONB arrays in the game payload.
func buildFilterConditions(filter repository.ProductFilter) ([]string, []any) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, string(filter.Category))
		argIndex++
	}

	if len(filter.Genre) > 0 {
		conditions = append(conditions, fmt.Sprintf("details->'genre' ?| $%d", argIndex))
		args = append(args, filter.Genre)
		argIndex++
	}

	if len(filter.Platform) > 0 {
		conditions = append(conditions, fmt.Sprintf("details->'platforms' ?| $%d", argIndex))
		args = append(args, filter.Platform)
		argIndex++
	}

	if filter.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price >= $%d", argIndex))
		args = append(args, *filter.MinPrice)
		argIndex++
	}

	if filter.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, *filter.MaxPrice)
		argIndex++
	}

	return conditions, args
}

// resolveSort maps a sort key to an ORDER BY clause. Every ordering carries
// an id tie-break so pagination stays stable across equal keys. Unknown keys
// fall back to the default newest-first ordering.
func resolveSort(sort string) string {
	switch sort {
	case domain.SortPriceAsc:
		return "price ASC, id ASC"
	case domain.SortPriceDesc:
		return "price DESC, id ASC"
	case domain.SortRating:
		return "rating DESC, id ASC"
	case domain.SortName:
		return "name ASC, id ASC"
	default:
		return "created_at DESC, id ASC"
	}
}

// List returns one page of products matching the filter along with the total
// match count, fetched in a single query via count(*) OVER().
func (r *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	conditions, args := buildFilterConditions(filter)

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	argIndex := len(args) + 1
	query := fmt.Sprintf(`
		SELECT %s,
			   count(*) OVER() AS total_count
		FROM products
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		productColumns, whereClause, resolveSort(filter.Sort), argIndex, argIndex+1,
	)

	args = append(args, filter.Limit, filter.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var (
		products   []domain.Product
		totalCount int
	)

	for rows.Next() {
		var (
			p           domain.Product
			detailsJSON []byte
		)

		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.ImageURL,
			&p.Category,
			&p.InStock,
			&p.Rating,
			&detailsJSON,
			&p.CreatedAt,
			&p.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}

		if err := attachDetails(&p, detailsJSON); err != nil {
			return nil, 0, err
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	// An offset past the last match returns zero rows, so the windowed count
	// never materializes. Re-count with the same predicate so callers can
	// still report the page arithmetic for an out-of-range page.
	if len(products) == 0 && filter.Offset() > 0 {
		countQuery := fmt.Sprintf("SELECT count(*) FROM products %s", whereClause)
		if err := r.db.QueryRow(ctx, countQuery, args[:len(args)-2]...).Scan(&totalCount); err != nil {
			return nil, 0, fmt.Errorf("count products: %w", err)
		}
	}

	return products, totalCount, nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE id = $1`, productColumns)

	var (
		p           domain.Product
		detailsJSON []byte
	)

	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ImageURL,
		&p.Category,
		&p.InStock,
		&p.Rating,
		&detailsJSON,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	if err := attachDetails(&p, detailsJSON); err != nil {
		return nil, err
	}

	return &p, nil
}

// UpdateRating writes a recomputed aggregate rating. A missing product is a
// no-op: the product may have been deleted between review write and
// recompute, and the stale aggregate is harmless.
func (r *ProductRepository) UpdateRating(ctx context.Context, id string, rating float64) error {
	query := `
		UPDATE products
		SET rating = $1, updated_at = $2
		WHERE id = $3`

	_, err := r.db.Exec(ctx, query, rating, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update product rating: %w", err)
	}

	return nil
}

// Create inserts a new product. Used by the seeder.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	detailsJSON, err := marshalDetails(p)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO products (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`, productColumns)

	_, err = r.db.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.Price,
		p.ImageURL,
		p.Category,
		p.InStock,
		p.Rating,
		detailsJSON,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// marshalDetails serializes the product's variant payload for the details
// column.
func marshalDetails(p *domain.Product) ([]byte, error) {
	details := p.Details()
	if details == nil {
		return nil, fmt.Errorf("product %s has no %s payload", p.ID, p.Category)
	}

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("marshal product details: %w", err)
	}
	return detailsJSON, nil
}

// attachDetails deserializes the details column into the variant payload
// selected by the row's category.
func attachDetails(p *domain.Product, detailsJSON []byte) error {
	if detailsJSON == nil {
		return nil
	}

	var target any
	switch p.Category {
	case domain.CategoryGame:
		p.Game = &domain.GameDetails{}
		target = p.Game
	case domain.CategoryHardware:
		p.Hardware = &domain.HardwareDetails{}
		target = p.Hardware
	case domain.CategoryMerchandise:
		p.Merchandise = &domain.MerchandiseDetails{}
		target = p.Merchandise
	default:
		return fmt.Errorf("product %s has unknown category %q", p.ID, p.Category)
	}

	if err := json.Unmarshal(detailsJSON, target); err != nil {
		return fmt.Errorf("unmarshal product details: %w", err)
	}

	return nil
}
