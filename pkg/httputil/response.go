package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	apperrors "github.com/utafrali/gamestore/pkg/errors"
	"github.com/utafrali/gamestore/pkg/logger"
	"github.com/utafrali/gamestore/pkg/validator"
)

// Response is the uniform JSON envelope for single-object and error responses.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK wraps data in a successful response envelope.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// Fail wraps an error message in a failed response envelope.
func Fail(message string) Response {
	return Response{Success: false, Error: message}
}

// PaginatedResponse is the envelope for paginated list responses. Count is the
// number of items on this page; Total is the full matching count independent
// of pagination.
type PaginatedResponse[T any] struct {
	Success    bool `json:"success"`
	Count      int  `json:"count"`
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	TotalPages int  `json:"totalPages"`
	Data       []T  `json:"data"`
}

// NewPaginatedResponse constructs a PaginatedResponse from the given data,
// total count, page, and limit. TotalPages is ceil(total/limit), 0 when the
// total is 0.
func NewPaginatedResponse[T any](data []T, total, page, limit int) PaginatedResponse[T] {
	totalPages := 0
	if limit > 0 {
		totalPages = total / limit
		if total%limit > 0 {
			totalPages++
		}
	}
	if data == nil {
		data = []T{}
	}
	return PaginatedResponse[T]{
		Success:    true,
		Count:      len(data),
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		Data:       data,
	}
}

// WriteJSON writes a JSON response with the given status code.
// If encoding fails, headers are already sent so nothing can be done.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the uniform error envelope based on the error type. It
// prefers the request-scoped logger from context (set by the RequestLogging
// middleware) over the fallback logger and logs internal server errors.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		WriteJSON(w, appErr.Status, Fail(appErr.Message))
		return
	}

	status := apperrors.HTTPStatus(err)
	message := "an internal error occurred"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		message = "resource not found"
	case errors.Is(err, apperrors.ErrInvalidInput):
		message = err.Error()
	}

	if status == http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, status, Fail(message))
}

// WriteValidationError writes a 400 envelope for a request-body validation failure.
func WriteValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, Fail(valErr.Error()))
		return
	}
	WriteJSON(w, http.StatusBadRequest, Fail(err.Error()))
}

// ParseUUID validates that the given string is a well-formed UUID. If invalid,
// it writes a 400 response and returns false, signaling the caller to return
// early. A malformed identifier is a validation error, never a not-found.
func ParseUUID(w http.ResponseWriter, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(param)
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, Fail("Invalid product ID"))
		return uuid.Nil, false
	}
	return id, true
}
