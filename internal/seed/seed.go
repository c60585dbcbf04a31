package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lalimite123/agital-shop/internal/domain"
	"github.com/lalimite123/agital-shop/internal/repository"
)

// Fixture is the JSON seed document with three top-level arrays.
type Fixture struct {
	Products  []ProductFixture  `json:"products"`
	Reviews   []ReviewFixture   `json:"reviews"`
	Customers []CustomerFixture `json:"customers"`
}

// ProductFixture is one product entry in the seed document.
type ProductFixture struct {
	Name             string         `json:"name"`
	Version          string         `json:"version"`
	ShortDescription string         `json:"shortDescription"`
	LongDescription  string         `json:"longDescription"`
	Price            domain.Price   `json:"price"`
	InStock          bool           `json:"inStock"`
	Images           []domain.Image `json:"images"`
	CreatedAt        *time.Time     `json:"createdAt"`
}

// ReviewFixture is one review entry. Reviews carry no product reference in
// the fixture; they are assigned to products cyclically by index.
type ReviewFixture struct {
	Rating int    `json:"rating"`
	Name   string `json:"name"`
	Text   string `json:"text"`
}

// CustomerFixture is one customer entry. Birth is an ISO-ish date string.
type CustomerFixture struct {
	Name  string `json:"name"`
	Birth string `json:"birth"`
}

// Seeder bulk-loads a fixture into the store.
type Seeder struct {
	products  repository.ProductRepository
	reviews   repository.ReviewRepository
	customers repository.CustomerRepository
	logger    *slog.Logger
}

// New creates a seeder.
func New(
	products repository.ProductRepository,
	reviews repository.ReviewRepository,
	customers repository.CustomerRepository,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		products:  products,
		reviews:   reviews,
		customers: customers,
		logger:    logger,
	}
}

// LoadFile reads and parses a fixture from the given path.
func LoadFile(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a fixture from r.
func Load(r io.Reader) (*Fixture, error) {
	var fixture Fixture
	if err := json.NewDecoder(r).Decode(&fixture); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &fixture, nil
}

// Run clears all existing data and loads the fixture. Reviews go first on
// the clear path because they reference products; inserts run in the
// opposite order. Reviews are assigned to products by index modulo product
// count, matching the fixture's implicit pairing.
func (s *Seeder) Run(ctx context.Context, fixture *Fixture) error {
	s.logger.InfoContext(ctx, "clearing existing data")
	if err := s.reviews.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear reviews: %w", err)
	}
	if err := s.products.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}
	if err := s.customers.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear customers: %w", err)
	}

	productIDs := make([]string, 0, len(fixture.Products))
	for _, pf := range fixture.Products {
		createdAt := time.Now().UTC()
		if pf.CreatedAt != nil {
			createdAt = pf.CreatedAt.UTC()
		}
		product := &domain.Product{
			ID:               domain.NewID(),
			Name:             pf.Name,
			Version:          pf.Version,
			ShortDescription: pf.ShortDescription,
			LongDescription:  pf.LongDescription,
			Price:            pf.Price,
			InStock:          pf.InStock,
			Images:           pf.Images,
			CreatedAt:        createdAt,
		}
		if err := s.products.Create(ctx, product); err != nil {
			return fmt.Errorf("seed product %q: %w", pf.Name, err)
		}
		productIDs = append(productIDs, product.ID)
	}
	s.logger.InfoContext(ctx, "seeded products", slog.Int("count", len(productIDs)))

	if len(fixture.Reviews) > 0 && len(productIDs) == 0 {
		return fmt.Errorf("fixture has reviews but no products")
	}

	for i, rf := range fixture.Reviews {
		review := &domain.Review{
			ID:        domain.NewID(),
			ProductID: productIDs[i%len(productIDs)],
			Rating:    rf.Rating,
			Name:      rf.Name,
			Text:      rf.Text,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.reviews.Create(ctx, review); err != nil {
			return fmt.Errorf("seed review by %q: %w", rf.Name, err)
		}
	}
	s.logger.InfoContext(ctx, "seeded reviews", slog.Int("count", len(fixture.Reviews)))

	for _, cf := range fixture.Customers {
		birth, err := parseBirth(cf.Birth)
		if err != nil {
			return fmt.Errorf("seed customer %q: %w", cf.Name, err)
		}
		customer := &domain.Customer{
			ID:    domain.NewID(),
			Name:  cf.Name,
			Birth: birth,
		}
		if err := s.customers.Create(ctx, customer); err != nil {
			return fmt.Errorf("seed customer %q: %w", cf.Name, err)
		}
	}
	s.logger.InfoContext(ctx, "seeded customers", slog.Int("count", len(fixture.Customers)))

	return nil
}

// parseBirth accepts a date-only string or a full RFC 3339 timestamp.
func parseBirth(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse birth date %q: %w", value, err)
	}
	return t, nil
}
