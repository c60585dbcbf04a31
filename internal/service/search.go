package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lalimite123/agital-shop/internal/domain"
	"github.com/lalimite123/agital-shop/internal/repository"
	apperrors "github.com/lalimite123/agital-shop/pkg/errors"
)

// SearchService implements the naive substring product search.
type SearchService struct {
	products repository.ProductRepository
	recent   repository.RecentSearchStore
	logger   *slog.Logger
}

// NewSearchService creates a new search service. The recent-search store may
// be nil when Redis is not wired.
func NewSearchService(
	products repository.ProductRepository,
	recent repository.RecentSearchStore,
	logger *slog.Logger,
) *SearchService {
	return &SearchService{
		products: products,
		recent:   recent,
		logger:   logger,
	}
}

// Search returns every product whose name, version, or descriptions contain
// the query, case-insensitively. No scoring; results keep the repository
// load order. The trimmed query is recorded in the recent-search store;
// store failures are logged and never fail the search.
func (s *SearchService) Search(ctx context.Context, query string) ([]domain.Product, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, apperrors.InvalidInput("search query must not be empty")
	}

	term := strings.ToLower(trimmed)

	products, err := s.products.ListWithReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products for search: %w", err)
	}

	matches := []domain.Product{}
	for _, p := range products {
		if matchesQuery(&p, term) {
			matches = append(matches, p)
		}
	}

	if s.recent != nil {
		if err := s.recent.Record(ctx, trimmed); err != nil {
			s.logger.WarnContext(ctx, "failed to record recent search",
				slog.String("query", trimmed),
				slog.String("error", err.Error()),
			)
		}
	}

	return matches, nil
}

// RecentSearches returns the most recent search queries, newest first.
func (s *SearchService) RecentSearches(ctx context.Context) ([]string, error) {
	if s.recent == nil {
		return []string{}, nil
	}

	queries, err := s.recent.Recent(ctx)
	if err != nil {
		return nil, fmt.Errorf("load recent searches: %w", err)
	}
	if queries == nil {
		queries = []string{}
	}
	return queries, nil
}

func matchesQuery(p *domain.Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Version), term) ||
		strings.Contains(strings.ToLower(p.ShortDescription), term) ||
		strings.Contains(strings.ToLower(p.LongDescription), term)
}
