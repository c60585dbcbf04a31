package seed

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lalimite123/agital-shop/internal/domain"
	"github.com/lalimite123/agital-shop/internal/repository"
)

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) ListWithReviews(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepo) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockProductRepo) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepo) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockReviewRepo struct{ mock.Mock }

func (m *mockReviewRepo) List(ctx context.Context, f repository.ReviewFilter) ([]domain.Review, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepo) ListByProductID(ctx context.Context, productID string) ([]domain.Review, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepo) Create(ctx context.Context, r *domain.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockReviewRepo) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockCustomerRepo struct{ mock.Mock }

func (m *mockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCustomerRepo) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

const fixtureJSON = `{
	"products": [
		{"name": "Pro Suite", "version": "2.1", "shortDescription": "Planning", "longDescription": "Project planning toolkit.", "price": {"reseller": 4999, "uvp": 5999, "discount": 10}, "inStock": true, "images": [{"url": "https://cdn.example.com/a.png", "alt": "box"}]},
		{"name": "PhotoMax", "version": "5.0", "shortDescription": "Editing", "longDescription": "Photo editing.", "price": {"reseller": 2999, "uvp": 3499}, "inStock": false, "images": []}
	],
	"reviews": [
		{"rating": 5, "name": "Ada", "text": "Great."},
		{"rating": 3, "name": "Grace", "text": "Okay."},
		{"rating": 4, "name": "Edsger", "text": "Good."}
	],
	"customers": [
		{"name": "Linus", "birth": "1969-12-28"},
		{"name": "Margaret", "birth": "1936-08-17T00:00:00Z"}
	]
}`

func TestLoad(t *testing.T) {
	fixture, err := Load(strings.NewReader(fixtureJSON))
	require.NoError(t, err)

	require.Len(t, fixture.Products, 2)
	assert.Equal(t, "Pro Suite", fixture.Products[0].Name)
	assert.Equal(t, int64(4999), fixture.Products[0].Price.Reseller)
	require.NotNil(t, fixture.Products[0].Price.Discount)
	assert.Equal(t, 10, *fixture.Products[0].Price.Discount)
	assert.Nil(t, fixture.Products[1].Price.Discount)
	assert.Len(t, fixture.Reviews, 3)
	assert.Len(t, fixture.Customers, 2)
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(strings.NewReader("{not json"))
	assert.Error(t, err)
}

func TestRun_ClearsThenInserts(t *testing.T) {
	products := new(mockProductRepo)
	reviews := new(mockReviewRepo)
	customers := new(mockCustomerRepo)
	seeder := New(products, reviews, customers, newTestLogger())
	ctx := context.Background()

	fixture, err := Load(strings.NewReader(fixtureJSON))
	require.NoError(t, err)

	reviews.On("DeleteAll", ctx).Return(nil)
	products.On("DeleteAll", ctx).Return(nil)
	customers.On("DeleteAll", ctx).Return(nil)

	var productIDs []string
	products.On("Create", ctx, mock.AnythingOfType("*domain.Product")).
		Run(func(args mock.Arguments) {
			p := args.Get(1).(*domain.Product)
			assert.True(t, domain.IsValidID(p.ID))
			productIDs = append(productIDs, p.ID)
		}).
		Return(nil)

	var reviewProductIDs []string
	reviews.On("Create", ctx, mock.AnythingOfType("*domain.Review")).
		Run(func(args mock.Arguments) {
			rv := args.Get(1).(*domain.Review)
			reviewProductIDs = append(reviewProductIDs, rv.ProductID)
		}).
		Return(nil)

	customers.On("Create", ctx, mock.AnythingOfType("*domain.Customer")).Return(nil)

	require.NoError(t, seeder.Run(ctx, fixture))

	// Three reviews over two products: index modulo assignment gives the
	// third review back to the first product.
	require.Len(t, productIDs, 2)
	require.Len(t, reviewProductIDs, 3)
	assert.Equal(t, productIDs[0], reviewProductIDs[0])
	assert.Equal(t, productIDs[1], reviewProductIDs[1])
	assert.Equal(t, productIDs[0], reviewProductIDs[2])

	products.AssertExpectations(t)
	reviews.AssertExpectations(t)
	customers.AssertExpectations(t)
}

func TestRun_ReviewsWithoutProducts(t *testing.T) {
	products := new(mockProductRepo)
	reviews := new(mockReviewRepo)
	customers := new(mockCustomerRepo)
	seeder := New(products, reviews, customers, newTestLogger())
	ctx := context.Background()

	reviews.On("DeleteAll", ctx).Return(nil)
	products.On("DeleteAll", ctx).Return(nil)
	customers.On("DeleteAll", ctx).Return(nil)

	fixture := &Fixture{Reviews: []ReviewFixture{{Rating: 5, Name: "Ada", Text: "x"}}}
	err := seeder.Run(ctx, fixture)
	assert.Error(t, err)
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestParseBirth(t *testing.T) {
	dateOnly, err := parseBirth("1990-04-02")
	require.NoError(t, err)
	assert.Equal(t, 1990, dateOnly.Year())

	rfc, err := parseBirth("1990-04-02T12:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 12, rfc.Hour())

	_, err = parseBirth("02.04.1990")
	assert.Error(t, err)
}
