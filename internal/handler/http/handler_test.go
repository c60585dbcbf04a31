package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lalimite123/agital-shop/internal/domain"
	"github.com/lalimite123/agital-shop/internal/repository"
	"github.com/lalimite123/agital-shop/internal/service"
	apperrors "github.com/lalimite123/agital-shop/pkg/errors"
	"github.com/lalimite123/agital-shop/pkg/health"
	"github.com/lalimite123/agital-shop/pkg/middleware"
)

// =============================================================================
// Mocks
// =============================================================================

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) ListWithReviews(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepo) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) List(ctx context.Context, filter repository.ReviewFilter) ([]domain.Review, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepo) ListByProductID(ctx context.Context, productID string) ([]domain.Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepo) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockRecentStore struct {
	mock.Mock
}

func (m *mockRecentStore) Record(ctx context.Context, query string) error {
	args := m.Called(ctx, query)
	return args.Error(0)
}

func (m *mockRecentStore) Recent(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// =============================================================================
// Helpers
// =============================================================================

const testProductID = "68a1b2c3d4e5f60718293a4b"

type testEnv struct {
	products *mockProductRepo
	reviews  *mockReviewRepo
	recent   *mockRecentStore
	router   http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	products := new(mockProductRepo)
	reviews := new(mockReviewRepo)
	recent := new(mockRecentStore)

	router := NewRouter(RouterConfig{
		Catalog: service.NewCatalogService(products, logger),
		Reviews: service.NewReviewService(reviews, products, nil, logger),
		Search:  service.NewSearchService(products, recent, logger),
		Health:  health.NewHandler(),
		CORS:    middleware.DefaultCORSConfig(),
		Logger:  logger,
	})

	return &testEnv{products: products, reviews: reviews, recent: recent, router: router}
}

func (e *testEnv) request(t *testing.T, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func catalogProducts() []domain.Product {
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	products := make([]domain.Product, 12)
	for i := range products {
		products[i] = domain.Product{
			ID:        domain.NewID(),
			Name:      "Product",
			Version:   "1.0",
			CreatedAt: base.Add(-time.Duration(i) * time.Hour),
			Reviews:   []domain.Review{},
		}
	}
	// The second product carries the best rating.
	products[1].Reviews = []domain.Review{{ID: domain.NewID(), Rating: 5}}
	return products
}

// =============================================================================
// Product endpoints
// =============================================================================

func TestListProducts_All(t *testing.T) {
	env := newTestEnv(t)
	env.products.On("ListWithReviews", mock.Anything).Return(catalogProducts(), nil)

	rec := env.request(t, http.MethodGet, "/products", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 12)
}

func TestListProducts_SortLatest(t *testing.T) {
	env := newTestEnv(t)
	env.products.On("ListWithReviews", mock.Anything).Return(catalogProducts(), nil)

	rec := env.request(t, http.MethodGet, "/products?sort=latest", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 10)
}

func TestListProducts_SortRating(t *testing.T) {
	env := newTestEnv(t)
	products := catalogProducts()
	env.products.On("ListWithReviews", mock.Anything).Return(products, nil)

	rec := env.request(t, http.MethodGet, "/products?sort=rating", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 10)
	assert.Equal(t, products[1].ID, body[0].ID)
}

func TestListProducts_UnknownSortFallsBackToAll(t *testing.T) {
	env := newTestEnv(t)
	env.products.On("ListWithReviews", mock.Anything).Return(catalogProducts(), nil)

	rec := env.request(t, http.MethodGet, "/products?sort=price", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 12)
}

func TestGetProduct_Success(t *testing.T) {
	env := newTestEnv(t)
	p := domain.Product{ID: testProductID, Name: "Pro Suite", Reviews: []domain.Review{}}
	env.products.On("GetByID", mock.Anything, testProductID).Return(&p, nil)

	rec := env.request(t, http.MethodGet, "/products/"+testProductID, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Pro Suite", body.Name)
}

func TestGetProduct_InvalidID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/products/not-a-hex-id", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env.products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGetProduct_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.products.On("GetByID", mock.Anything, testProductID).
		Return(nil, apperrors.NotFound("product", testProductID))

	rec := env.request(t, http.MethodGet, "/products/"+testProductID, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// Review endpoints
// =============================================================================

func TestListReviews_NoFilters(t *testing.T) {
	env := newTestEnv(t)
	env.reviews.On("List", mock.Anything, repository.ReviewFilter{}).
		Return([]domain.Review{{ID: domain.NewID(), Rating: 5}}, nil)

	rec := env.request(t, http.MethodGet, "/reviews", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body []domain.Review
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 1)
}

func TestListReviews_WithFilters(t *testing.T) {
	env := newTestEnv(t)
	env.reviews.On("List", mock.Anything, mock.MatchedBy(func(f repository.ReviewFilter) bool {
		return f.ProductID != nil && *f.ProductID == testProductID &&
			f.Rating != nil && *f.Rating == 4
	})).Return([]domain.Review{}, nil)

	rec := env.request(t, http.MethodGet, "/reviews?productId="+testProductID+"&rating=4", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	env.reviews.AssertExpectations(t)
}

func TestListReviews_NonIntegerRating(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/reviews?rating=five", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env.reviews.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestAverageRating_Success(t *testing.T) {
	env := newTestEnv(t)
	env.reviews.On("ListByProductID", mock.Anything, testProductID).
		Return([]domain.Review{{Rating: 5}, {Rating: 3}}, nil)

	rec := env.request(t, http.MethodGet, "/reviews/average?productId="+testProductID, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, testProductID, body["productId"])
	assert.Equal(t, 4.0, body["average"])
	assert.Equal(t, 2.0, body["count"])
}

func TestAverageRating_MissingProductID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/reviews/average", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReview_Success(t *testing.T) {
	env := newTestEnv(t)
	env.products.On("Exists", mock.Anything, testProductID).Return(true, nil)
	env.reviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil)
	env.products.On("GetByID", mock.Anything, testProductID).
		Return(&domain.Product{ID: testProductID, Name: "Pro Suite"}, nil)

	payload, _ := json.Marshal(map[string]any{
		"rating":    5,
		"name":      "Ada",
		"text":      "Great tool.",
		"productId": testProductID,
	})

	rec := env.request(t, http.MethodPost, "/reviews", payload)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var body domain.Review
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 5, body.Rating)
	require.NotNil(t, body.Product)
	assert.Equal(t, "Pro Suite", body.Product.Name)
}

func TestCreateReview_ValidationFailure(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"rating zero", map[string]any{"rating": 0, "name": "Ada", "text": "x", "productId": testProductID}},
		{"rating six", map[string]any{"rating": 6, "name": "Ada", "text": "x", "productId": testProductID}},
		{"missing name", map[string]any{"rating": 3, "text": "x", "productId": testProductID}},
		{"missing text", map[string]any{"rating": 3, "name": "Ada", "productId": testProductID}},
		{"bad product id", map[string]any{"rating": 3, "name": "Ada", "text": "x", "productId": "nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, _ := json.Marshal(tt.payload)
			rec := env.request(t, http.MethodPost, "/reviews", payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	env.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReview_ProductNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.products.On("Exists", mock.Anything, testProductID).Return(false, nil)

	payload, _ := json.Marshal(map[string]any{
		"rating":    5,
		"name":      "Ada",
		"text":      "Great tool.",
		"productId": testProductID,
	})

	rec := env.request(t, http.MethodPost, "/reviews", payload)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReview_MalformedBody(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/reviews", []byte("{not json"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// Search endpoints
// =============================================================================

func TestSearch_Success(t *testing.T) {
	env := newTestEnv(t)
	env.products.On("ListWithReviews", mock.Anything).Return([]domain.Product{
		{ID: domain.NewID(), Name: "Pro Suite", Version: "2.1", Reviews: []domain.Review{}},
		{ID: domain.NewID(), Name: "PhotoMax", Version: "5.0", Reviews: []domain.Review{}},
	}, nil)
	env.recent.On("Record", mock.Anything, "PRO").Return(nil)

	rec := env.request(t, http.MethodGet, "/search?q=PRO", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Pro Suite", body[0].Name)
}

func TestSearch_EmptyQuery(t *testing.T) {
	env := newTestEnv(t)

	for _, target := range []string{"/search", "/search?q=", "/search?q=%20%20"} {
		rec := env.request(t, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
	env.products.AssertNotCalled(t, "ListWithReviews", mock.Anything)
}

func TestRecentSearches(t *testing.T) {
	env := newTestEnv(t)
	env.recent.On("Recent", mock.Anything).Return([]string{"photo", "pro"}, nil)

	rec := env.request(t, http.MethodGet, "/search/recent", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"photo", "pro"}, body)
}

// =============================================================================
// Ambient endpoints
// =============================================================================

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(t, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
