package repository

import (
	"context"

	"github.com/lalimite123/agital-shop/internal/domain"
)

// ReviewFilter defines optional filter criteria for listing reviews. Both
// fields combine with logical AND when set.
type ReviewFilter struct {
	ProductID *string
	Rating    *int
}

// ProductRepository defines product persistence operations.
type ProductRepository interface {
	// ListWithReviews returns every product ordered by created_at DESC, each
	// with its reviews attached.
	ListWithReviews(ctx context.Context) ([]domain.Product, error)

	// GetByID retrieves a product with its reviews. Returns a NotFound error
	// when the id does not resolve.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// Exists reports whether a product with the given id exists.
	Exists(ctx context.Context, id string) (bool, error)

	// Create inserts a new product.
	Create(ctx context.Context, product *domain.Product) error

	// DeleteAll removes every product. Used by the seed routine only.
	DeleteAll(ctx context.Context) error
}

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	// List returns reviews matching the filter ordered by created_at DESC,
	// each with its parent product attached.
	List(ctx context.Context, filter ReviewFilter) ([]domain.Review, error)

	// ListByProductID returns the raw reviews for one product, no parent
	// attached.
	ListByProductID(ctx context.Context, productID string) ([]domain.Review, error)

	// Create inserts a new review.
	Create(ctx context.Context, review *domain.Review) error

	// DeleteAll removes every review. Used by the seed routine only.
	DeleteAll(ctx context.Context) error
}

// CustomerRepository defines customer persistence operations. Customers come
// from seed data only.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	DeleteAll(ctx context.Context) error
}

// RecentSearchStore records recently executed search queries,
// most-recent-first, de-duplicated, capped at a fixed size.
type RecentSearchStore interface {
	Record(ctx context.Context, query string) error
	Recent(ctx context.Context) ([]string, error)
}
