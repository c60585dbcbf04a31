package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lalimite123/agital-shop/internal/domain"
	"github.com/lalimite123/agital-shop/internal/service"
	"github.com/lalimite123/agital-shop/pkg/httputil"
)

// ProductHandler handles HTTP requests for product endpoints.
type ProductHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// ListProducts handles GET /products?sort=latest|rating.
// sort=latest returns the newest 10 products, sort=rating the 10 best rated.
// Any other value, including none, returns all products newest first.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	var (
		products []domain.Product
		err      error
	)

	switch r.URL.Query().Get("sort") {
	case "latest":
		products, err = h.service.ListLatest(r.Context())
	case "rating":
		products, err = h.service.ListBestRated(r.Context())
	default:
		products, err = h.service.ListAll(r.Context())
	}

	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /products/{id}. Malformed ids are rejected with 400
// before any lookup; unknown ids answer 404.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, product)
}
