package postgres

import (
	"context"
	"fmt"

	"github.com/lalimite123/agital-shop/internal/domain"
	"github.com/lalimite123/agital-shop/pkg/database"
)

// CustomerRepository implements repository.CustomerRepository using
// PostgreSQL. Customers only exist through the seed routine.
type CustomerRepository struct {
	pool database.DBTX
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool database.DBTX) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// Create inserts a new customer.
func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `
		INSERT INTO customers (id, name, birth)
		VALUES ($1, $2, $3)`

	_, err := r.pool.Exec(ctx, query, c.ID, c.Name, c.Birth)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}

	return nil
}

// DeleteAll removes every customer.
func (r *CustomerRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, "DELETE FROM customers"); err != nil {
		return fmt.Errorf("delete customers: %w", err)
	}
	return nil
}
