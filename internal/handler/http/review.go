package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/lalimite123/agital-shop/internal/repository"
	"github.com/lalimite123/agital-shop/internal/service"
	"github.com/lalimite123/agital-shop/pkg/httputil"
	"github.com/lalimite123/agital-shop/pkg/validator"
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

// CreateReviewRequest is the JSON request body for creating a review.
type CreateReviewRequest struct {
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Name      string `json:"name" validate:"required"`
	Text      string `json:"text" validate:"required"`
	ProductID string `json:"productId" validate:"required,len=24,hexadecimal"`
}

// ListReviews handles GET /reviews?productId=&rating=. Both filters are
// optional and combine with AND.
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	var filter repository.ReviewFilter

	if v := r.URL.Query().Get("productId"); v != "" {
		filter.ProductID = &v
	}
	if v := r.URL.Query().Get("rating"); v != "" {
		rating, err := strconv.Atoi(v)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "rating must be an integer"},
			})
			return
		}
		filter.Rating = &rating
	}

	reviews, err := h.service.ListReviews(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, reviews)
}

// AverageRating handles GET /reviews/average?productId=. The product id is
// required; a missing product answers zero/zero rather than 404.
func (h *ReviewHandler) AverageRating(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("productId")
	if productID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "productId is required"},
		})
		return
	}

	result, err := h.service.AverageRating(r.Context(), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// CreateReview handles POST /reviews.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := &service.CreateReviewInput{
		Rating:    req.Rating,
		Name:      req.Name,
		Text:      req.Text,
		ProductID: req.ProductID,
	}

	review, err := h.service.CreateReview(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, review)
}
