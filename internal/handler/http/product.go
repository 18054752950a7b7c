// Package http exposes the catalog over a chi-routed REST API.
package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/gamestore/internal/domain"
	"github.com/utafrali/gamestore/internal/repository"
	"github.com/utafrali/gamestore/internal/service"
	"github.com/utafrali/gamestore/pkg/httputil"
)

// ProductHandler handles HTTP requests for product browsing endpoints.
type ProductHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// parseListFilter reads the shared listing query parameters. It fails the
// request itself and returns false when a numeric parameter is malformed.
func parseListFilter(w http.ResponseWriter, r *http.Request) (repository.ProductFilter, bool) {
	var filter repository.ProductFilter
	q := r.URL.Query()

	filter.Search = q.Get("search")
	filter.Sort = q.Get("sort")

	if v := q.Get("category"); v != "" {
		filter.Category = domain.Category(v)
	}
	if v := q.Get("genre"); v != "" {
		filter.Genre = splitCSV(v)
	}
	if v := q.Get("platform"); v != "" {
		filter.Platform = splitCSV(v)
	}

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Fail("page must be a positive integer"))
			return filter, false
		}
		filter.Page = page
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Fail("limit must be a positive integer"))
			return filter, false
		}
		filter.Limit = limit
	}

	if v := q.Get("minPrice"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Fail("minPrice must be a number"))
			return filter, false
		}
		filter.MinPrice = &price
	}
	if v := q.Get("maxPrice"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Fail("maxPrice must be a number"))
			return filter, false
		}
		filter.MaxPrice = &price
	}

	return filter, true
}

// splitCSV splits a comma-separated query value, dropping empty entries.
func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ListProducts handles GET /api/v1/products
// @Summary List products
// @Description Returns a paginated product listing with optional filtering and sorting
// @Tags products
// @Produce json
// @Param search query string false "Substring match against name and description"
// @Param category query string false "Filter by category" Enums(game,hardware,merchandise)
// @Param genre query string false "Comma-separated genres (games only, any-of)"
// @Param platform query string false "Comma-separated platforms (games only, any-of)"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param sort query string false "Sort order" Enums(createdAt,price_asc,price_desc,rating,name)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 100)" default(12)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseListFilter(w, r)
	if !ok {
		return
	}

	result, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK,
		httputil.NewPaginatedResponse(result.Products, result.Total, result.Page, result.Limit))
}

// ListByCategory handles GET /api/v1/products/category/{category}
// @Summary List products in a category
// @Tags products
// @Produce json
// @Param category path string true "Category" Enums(game,hardware,merchandise)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/products/category/{category} [get]
func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseListFilter(w, r)
	if !ok {
		return
	}

	result, err := h.service.ListByCategory(r.Context(), chi.URLParam(r, "category"), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK,
		httputil.NewPaginatedResponse(result.Products, result.Total, result.Page, result.Limit))
}

// GetProduct handles GET /api/v1/products/{id}
// @Summary Get a product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/products/{id} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	product, err := h.service.GetProductByID(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.OK(product))
}
