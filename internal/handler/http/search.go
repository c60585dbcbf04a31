package http

import (
	"log/slog"
	"net/http"

	"github.com/lalimite123/agital-shop/internal/service"
	"github.com/lalimite123/agital-shop/pkg/httputil"
)

// SearchHandler handles HTTP requests for the search endpoints.
type SearchHandler struct {
	service *service.SearchService
	logger  *slog.Logger
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(svc *service.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service: svc,
		logger:  logger,
	}
}

// Search handles GET /search?q=. The query is required and must not be
// whitespace-only.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, results)
}

// RecentSearches handles GET /search/recent, returning up to five recent
// queries, newest first.
func (h *SearchHandler) RecentSearches(w http.ResponseWriter, r *http.Request) {
	queries, err := h.service.RecentSearches(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, queries)
}
