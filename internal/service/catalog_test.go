package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/gamestore/internal/domain"
	"github.com/utafrali/gamestore/internal/event"
	"github.com/utafrali/gamestore/internal/repository"
	apperrors "github.com/utafrali/gamestore/pkg/errors"
	pkgkafka "github.com/utafrali/gamestore/pkg/kafka"
)

// --- Mock repositories ---

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) UpdateRating(ctx context.Context, id string, rating float64) error {
	args := m.Called(ctx, id, rating)
	return args.Error(0)
}

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) ListByProductID(ctx context.Context, productID string, page, limit int) ([]domain.Review, int, error) {
	args := m.Called(ctx, productID, page, limit)
	return args.Get(0).([]domain.Review), args.Int(1), args.Error(2)
}

func (m *mockReviewRepository) GetSummary(ctx context.Context, productID string) (repository.RatingSummary, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(repository.RatingSummary), args.Error(1)
}

// --- Test helpers ---

const testProductID = "8c5f76f1-1f21-4f2b-96c5-8b1d83cb1e01"

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestProducer() *event.Producer {
	logger := newTestLogger()
	// No real broker behind this producer; publish failures are logged
	// and swallowed by the services.
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	return event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
}

func newCatalogService(repo *mockProductRepository) *CatalogService {
	return NewCatalogService(repo, newTestLogger())
}

func testGame() domain.Product {
	return domain.Product{
		ID:       testProductID,
		Name:     "Starfall Odyssey",
		Price:    59.99,
		Category: domain.CategoryGame,
		InStock:  true,
		Game: &domain.GameDetails{
			Genre:     []string{"rpg"},
			Platforms: []string{"pc"},
		},
	}
}

// --- Tests ---

func TestCatalogService_ListProducts_Defaults(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newCatalogService(repo)

	expected := repository.ProductFilter{Page: 1, Limit: 12}
	repo.On("List", mock.Anything, expected).
		Return([]domain.Product{testGame()}, 1, nil)

	result, err := svc.ListProducts(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 12, result.Limit)
	assert.Len(t, result.Products, 1)
	repo.AssertExpectations(t)
}

func TestCatalogService_ListProducts_CapsLimit(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newCatalogService(repo)

	expected := repository.ProductFilter{Page: 3, Limit: 100}
	repo.On("List", mock.Anything, expected).
		Return([]domain.Product{}, 0, nil)

	result, err := svc.ListProducts(context.Background(), repository.ProductFilter{Page: 3, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 100, result.Limit)
	repo.AssertExpectations(t)
}

func TestCatalogService_ListProducts_InvalidCategory(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newCatalogService(repo)

	_, err := svc.ListProducts(context.Background(), repository.ProductFilter{Category: "toys"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "List")
}

func TestCatalogService_ListProducts_DropsGenreForNonGameCategory(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newCatalogService(repo)

	expected := repository.ProductFilter{
		Category: domain.CategoryHardware,
		Page:     1,
		Limit:    12,
	}
	repo.On("List", mock.Anything, expected).
		Return([]domain.Product{}, 0, nil)

	_, err := svc.ListProducts(context.Background(), repository.ProductFilter{
		Category: domain.CategoryHardware,
		Genre:    []string{"rpg"},
		Platform: []string{"pc"},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCatalogService_ListProducts_DropsGenreWithoutCategory(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newCatalogService(repo)

	expected := repository.ProductFilter{Page: 1, Limit: 12}
	repo.On("List", mock.Anything, expected).
		Return([]domain.Product{testGame()}, 1, nil)

	_, err := svc.ListProducts(context.Background(), repository.ProductFilter{
		Genre:    []string{"rpg"},
		Platform: []string{"pc"},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCatalogService_ListProducts_KeepsGenreForGameCategory(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newCatalogService(repo)

	expected := repository.ProductFilter{
		Category: domain.CategoryGame,
		Genre:    []string{"rpg"},
		Platform: []string{"pc"},
		Page:     1,
		Limit:    12,
	}
	repo.On("List", mock.Anything, expected).
		Return([]domain.Product{testGame()}, 1, nil)

	_, err := svc.ListProducts(context.Background(), repository.ProductFilter{
		Category: domain.CategoryGame,
		Genre:    []string{"rpg"},
		Platform: []string{"pc"},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCatalogService_ListByCategory(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newCatalogService(repo)

	expected := repository.ProductFilter{
		Category: domain.CategoryGame,
		Page:     1,
		Limit:    12,
	}
	repo.On("List", mock.Anything, expected).
		Return([]domain.Product{testGame()}, 1, nil)

	result, err := svc.ListByCategory(context.Background(), "game", repository.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, result.Products, 1)
	repo.AssertExpectations(t)
}

func TestCatalogService_ListByCategory_Invalid(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newCatalogService(repo)

	_, err := svc.ListByCategory(context.Background(), "toys", repository.ProductFilter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "List")
}

func TestCatalogService_GetProductByID(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newCatalogService(repo)

	p := testGame()
	repo.On("GetByID", mock.Anything, testProductID).Return(&p, nil)

	result, err := svc.GetProductByID(context.Background(), testProductID)
	require.NoError(t, err)
	assert.Equal(t, testProductID, result.ID)
	repo.AssertExpectations(t)
}

func TestCatalogService_GetProductByID_MalformedID(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newCatalogService(repo)

	_, err := svc.GetProductByID(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "GetByID")
}

func TestCatalogService_GetProductByID_NotFound(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newCatalogService(repo)

	repo.On("GetByID", mock.Anything, testProductID).Return(nil, apperrors.ErrNotFound)

	_, err := svc.GetProductByID(context.Background(), testProductID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	repo.AssertExpectations(t)
}

func TestCatalogService_GetProductByID_RepositoryError(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newCatalogService(repo)

	repo.On("GetByID", mock.Anything, testProductID).Return(nil, errors.New("connection reset"))

	_, err := svc.GetProductByID(context.Background(), testProductID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	repo.AssertExpectations(t)
}
