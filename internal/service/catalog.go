package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/lalimite123/agital-shop/internal/domain"
	"github.com/lalimite123/agital-shop/internal/repository"
	apperrors "github.com/lalimite123/agital-shop/pkg/errors"
)

// TopN is the truncation size for the latest and best-rated product views.
const TopN = 10

// CatalogService implements the product listing and ranking operations.
type CatalogService struct {
	products repository.ProductRepository
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(products repository.ProductRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		logger:   logger,
	}
}

// ListAll returns every product with reviews, newest first.
func (s *CatalogService) ListAll(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.ListWithReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	attachRatings(products)
	return products, nil
}

// ListLatest returns the newest products with reviews, at most TopN.
func (s *CatalogService) ListLatest(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.ListWithReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if len(products) > TopN {
		products = products[:TopN]
	}
	attachRatings(products)
	return products, nil
}

// ListBestRated returns at most TopN products ordered by descending average
// rating. The sort key is the unrounded mean so display rounding cannot
// reorder results. The sort is stable over the newest-first load order, so
// products with equal averages keep that order.
func (s *CatalogService) ListBestRated(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.ListWithReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	means := make([]float64, len(products))
	for i := range products {
		means[i] = domain.MeanRating(products[i].Reviews)
	}

	order := make([]int, len(products))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return means[order[a]] > means[order[b]]
	})

	ranked := make([]domain.Product, 0, min(len(products), TopN))
	for _, idx := range order {
		if len(ranked) == TopN {
			break
		}
		ranked = append(ranked, products[idx])
	}
	attachRatings(ranked)

	return ranked, nil
}

// GetProduct returns one product with its reviews. The id must look like a
// 24-character hex string; anything else fails before touching the store.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if !domain.IsValidID(id) {
		return nil, apperrors.InvalidInput("invalid product id")
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := product.RatingSummary()
	product.Rating = &summary
	return product, nil
}

// attachRatings computes and sets the aggregate rating on each product.
func attachRatings(products []domain.Product) {
	for i := range products {
		summary := products[i].RatingSummary()
		products[i].Rating = &summary
	}
}
