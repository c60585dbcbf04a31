package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lalimite123/agital-shop/internal/domain"
	"github.com/lalimite123/agital-shop/internal/repository"
	"github.com/lalimite123/agital-shop/pkg/database"
)

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// List returns reviews matching the filter ordered by created_at DESC, each
// joined with its parent product.
func (r *ReviewRepository) List(ctx context.Context, filter repository.ReviewFilter) ([]domain.Review, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.ProductID != nil {
		conditions = append(conditions, fmt.Sprintf("r.product_id = $%d", argIndex))
		args = append(args, *filter.ProductID)
		argIndex++
	}

	if filter.Rating != nil {
		conditions = append(conditions, fmt.Sprintf("r.rating = $%d", argIndex))
		args = append(args, *filter.Rating)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT r.id, r.product_id, r.rating, r.name, r.text, r.created_at,
		       p.id, p.name, p.version, p.short_description, p.long_description,
		       p.price_reseller, p.price_uvp, p.discount_percent, p.in_stock, p.images, p.created_at
		FROM reviews r
		JOIN products p ON p.id = r.product_id
		%s
		ORDER BY r.created_at DESC`, whereClause)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var (
			rv         domain.Review
			p          domain.Product
			imagesJSON []byte
		)

		if err := rows.Scan(
			&rv.ID,
			&rv.ProductID,
			&rv.Rating,
			&rv.Name,
			&rv.Text,
			&rv.CreatedAt,
			&p.ID,
			&p.Name,
			&p.Version,
			&p.ShortDescription,
			&p.LongDescription,
			&p.Price.Reseller,
			&p.Price.UVP,
			&p.Price.Discount,
			&p.InStock,
			&imagesJSON,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}

		if imagesJSON != nil {
			if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
				return nil, fmt.Errorf("unmarshal images: %w", err)
			}
		}

		rv.Product = &p
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	if reviews == nil {
		reviews = []domain.Review{}
	}

	return reviews, nil
}

// ListByProductID returns the reviews for one product, newest first, without
// the parent product attached.
func (r *ReviewRepository) ListByProductID(ctx context.Context, productID string) ([]domain.Review, error) {
	query := `
		SELECT id, product_id, rating, name, text, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews by product: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(
			&rv.ID,
			&rv.ProductID,
			&rv.Rating,
			&rv.Name,
			&rv.Text,
			&rv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	if reviews == nil {
		reviews = []domain.Review{}
	}

	return reviews, nil
}

// Create inserts a new review.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, product_id, rating, name, text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		review.ID,
		review.ProductID,
		review.Rating,
		review.Name,
		review.Text,
		review.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// DeleteAll removes every review.
func (r *ReviewRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, "DELETE FROM reviews"); err != nil {
		return fmt.Errorf("delete reviews: %w", err)
	}
	return nil
}
