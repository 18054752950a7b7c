package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/gamestore/internal/service"
	"github.com/utafrali/gamestore/pkg/httputil"
	"github.com/utafrali/gamestore/pkg/validator"
)

// ReviewHandler handles HTTP requests for review endpoints.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateReviewRequest is the JSON request body for creating a review. The
// struct tags cover shape only; existence and rating-step checks live in the
// service so the error ordering stays consistent with the API contract.
type CreateReviewRequest struct {
	ProductID string  `json:"productId" validate:"required,uuid"`
	UserName  string  `json:"userName" validate:"required,max=100"`
	Rating    float64 `json:"rating" validate:"required"`
	Comment   string  `json:"comment" validate:"required,max=2000"`
}

// CreateReview handles POST /api/v1/reviews
// @Summary Create a review
// @Description Creates a review and recomputes the product's aggregate rating
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body CreateReviewRequest true "Review to create"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/reviews [post]
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Fail("invalid request body: "+err.Error()))
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := &service.CreateReviewInput{
		ProductID: req.ProductID,
		UserName:  req.UserName,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	review, err := h.service.CreateReview(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.OK(review))
}

// ListReviews handles GET /api/v1/reviews/product/{productId}
// @Summary List reviews for a product
// @Tags reviews
// @Produce json
// @Param productId path string true "Product UUID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 100)" default(10)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/reviews/product/{productId} [get]
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	var page, limit int
	q := r.URL.Query()

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Fail("page must be a positive integer"))
			return
		}
		page = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Fail("limit must be a positive integer"))
			return
		}
		limit = n
	}

	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	result, err := h.service.ListReviews(r.Context(), productID.String(), page, limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK,
		httputil.NewPaginatedResponse(result.Reviews, result.Total, result.Page, result.Limit))
}
