package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lalimite123/agital-shop/internal/domain"
	"github.com/lalimite123/agital-shop/pkg/database"
	apperrors "github.com/lalimite123/agital-shop/pkg/errors"
)

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `id, name, version, short_description, long_description,
	price_reseller, price_uvp, discount_percent, in_stock, images, created_at`

// ListWithReviews returns all products ordered by created_at DESC, each with
// its reviews attached. Reads products and reviews in two queries and joins
// them in memory by product id.
func (r *ProductRepository) ListWithReviews(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		ORDER BY created_at DESC`, productColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		return []domain.Product{}, nil
	}

	if err := r.attachReviews(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

// GetByID retrieves one product with its reviews.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE id = $1`, productColumns)

	row := r.pool.QueryRow(ctx, query, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, err
	}

	products := []domain.Product{*p}
	if err := r.attachReviews(ctx, products); err != nil {
		return nil, err
	}

	return &products[0], nil
}

// Exists reports whether a product with the given id exists.
func (r *ProductRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)", id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check product exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	imagesJSON, err := json.Marshal(p.Images)
	if err != nil {
		return fmt.Errorf("marshal images: %w", err)
	}

	query := `
		INSERT INTO products (id, name, version, short_description, long_description,
			price_reseller, price_uvp, discount_percent, in_stock, images, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = r.pool.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Version,
		p.ShortDescription,
		p.LongDescription,
		p.Price.Reseller,
		p.Price.UVP,
		p.Price.Discount,
		p.InStock,
		imagesJSON,
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// DeleteAll removes every product.
func (r *ProductRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, "DELETE FROM products"); err != nil {
		return fmt.Errorf("delete products: %w", err)
	}
	return nil
}

// attachReviews loads the reviews for the given products in one query and
// assigns them by product id, newest first.
func (r *ProductRepository) attachReviews(ctx context.Context, products []domain.Product) error {
	ids := make([]string, len(products))
	index := make(map[string]int, len(products))
	for i := range products {
		ids[i] = products[i].ID
		index[products[i].ID] = i
		products[i].Reviews = []domain.Review{}
	}

	query := `
		SELECT id, product_id, rating, name, text, created_at
		FROM reviews
		WHERE product_id = ANY($1)
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list reviews for products: %w", err)
	}
	defer rows.Close()

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
			return fmt.Errorf("scan review row: %w", err)
		}
		if i, ok := index[rv.ProductID]; ok {
			products[i].Reviews = append(products[i].Reviews, rv)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate review rows: %w", err)
	}

	return nil
}

// scanProduct scans one product row including the JSONB images column.
func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p          domain.Product
		imagesJSON []byte
	)

	if err := row.Scan(
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
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan product row: %w", err)
	}

	if imagesJSON != nil {
		if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
			return nil, fmt.Errorf("unmarshal images: %w", err)
		}
	}

	return &p, nil
}
