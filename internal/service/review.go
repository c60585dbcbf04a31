package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lalimite123/agital-shop/internal/domain"
	"github.com/lalimite123/agital-shop/internal/repository"
	apperrors "github.com/lalimite123/agital-shop/pkg/errors"
)

// CreateReviewInput holds the parameters for creating a review.
type CreateReviewInput struct {
	Rating    int
	Name      string
	Text      string
	ProductID string
}

// AverageResult is the aggregate rating for one product.
type AverageResult struct {
	ProductID string  `json:"productId"`
	Average   float64 `json:"average"`
	Count     int     `json:"count"`
}

// ReviewPublisher publishes review domain events.
type ReviewPublisher interface {
	PublishReviewCreated(ctx context.Context, review *domain.Review) error
}

// ReviewService implements the business logic for review operations.
type ReviewService struct {
	reviews   repository.ReviewRepository
	products  repository.ProductRepository
	publisher ReviewPublisher
	logger    *slog.Logger
}

// NewReviewService creates a new review service. The publisher may be nil
// when event publishing is not wired (tests, CLI).
func NewReviewService(
	reviews repository.ReviewRepository,
	products repository.ProductRepository,
	publisher ReviewPublisher,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:   reviews,
		products:  products,
		publisher: publisher,
		logger:    logger,
	}
}

// ListReviews returns reviews matching the optional filters, newest first,
// each with its parent product.
func (s *ReviewService) ListReviews(ctx context.Context, filter repository.ReviewFilter) ([]domain.Review, error) {
	reviews, err := s.reviews.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// AverageRating computes the aggregate rating for a product. A missing
// product and a product with no reviews both yield {average: 0, count: 0};
// the endpoint does not distinguish the two cases.
func (s *ReviewService) AverageRating(ctx context.Context, productID string) (*AverageResult, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("productId is required")
	}

	reviews, err := s.reviews.ListByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews for average: %w", err)
	}

	summary := domain.SummarizeRatings(reviews)
	return &AverageResult{
		ProductID: productID,
		Average:   summary.Average,
		Count:     summary.Count,
	}, nil
}

// CreateReview validates the input, verifies the target product exists, and
// persists a new review. The returned review carries its parent product.
// A review.created event is published after the insert; publish failures are
// logged and never fail the request.
func (s *ReviewService) CreateReview(ctx context.Context, input *CreateReviewInput) (*domain.Review, error) {
	if err := validateReviewInput(input); err != nil {
		return nil, err
	}

	exists, err := s.products.Exists(ctx, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("check product exists: %w", err)
	}
	if !exists {
		return nil, apperrors.NotFound("product", input.ProductID)
	}

	review := &domain.Review{
		ID:        domain.NewID(),
		ProductID: input.ProductID,
		Rating:    input.Rating,
		Name:      input.Name,
		Text:      input.Text,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	product, err := s.products.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("load parent product: %w", err)
	}
	product.Reviews = []domain.Review{}
	review.Product = product

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
		slog.Int("rating", review.Rating),
	)

	if s.publisher != nil {
		if err := s.publisher.PublishReviewCreated(ctx, review); err != nil {
			s.logger.WarnContext(ctx, "failed to publish review.created event",
				slog.String("review_id", review.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return review, nil
}

// validateReviewInput checks all fields and reports every violation at once.
func validateReviewInput(input *CreateReviewInput) error {
	var violations []string

	if input.Rating < 1 || input.Rating > 5 {
		violations = append(violations, "rating must be between 1 and 5")
	}
	if strings.TrimSpace(input.Name) == "" {
		violations = append(violations, "name is required")
	}
	if strings.TrimSpace(input.Text) == "" {
		violations = append(violations, "text is required")
	}
	if input.ProductID == "" {
		violations = append(violations, "productId is required")
	}

	if len(violations) > 0 {
		return apperrors.InvalidInput(strings.Join(violations, "; "))
	}
	return nil
}
