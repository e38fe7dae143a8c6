package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/news-library/internal/auth"
	"github.com/sakif/news-library/internal/service"
)

// SearchHandler exposes the external news search.
type SearchHandler struct {
	service *service.SearchService
	logger  *slog.Logger
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(svc *service.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{service: svc, logger: logger}
}

// HandleSearch runs a news search with the user's stored API key.
//
// HTTP: GET /api/search?q=ai
//
// STATUS CODES:
//   - 400 when q is missing
//   - 412 when the user has no API key configured (fix on the account page)
//   - 502 when the news API rejected the request (message passed through)
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	articles, err := h.service.Search(r.Context(), userID, r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, articles)
}
