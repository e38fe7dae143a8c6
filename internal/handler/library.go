package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/news-library/internal/auth"
	"github.com/sakif/news-library/internal/model"
	"github.com/sakif/news-library/internal/service"
)

// LibraryHandler exposes saved articles and collections over HTTP.
//
// Every route here sits behind auth.RequireAuth: the owning user always comes
// from the session, never from the request body, so one user cannot write into
// another user's library by forging an ID.
type LibraryHandler struct {
	service *service.LibraryService
	logger  *slog.Logger
}

// NewLibraryHandler creates a LibraryHandler.
func NewLibraryHandler(svc *service.LibraryService, logger *slog.Logger) *LibraryHandler {
	return &LibraryHandler{service: svc, logger: logger}
}

// HandleFetchLibrary returns the aggregated library view.
//
// HTTP: GET /api/library
//
// RESPONSE: {"savedArticles":[...],"collections":[...],"settings":{...}}
// with each article carrying a denormalized collectionName for display.
func (h *LibraryHandler) HandleFetchLibrary(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	library, err := h.service.FetchLibrary(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, library)
}

// saveArticleRequest is the body of POST /api/articles. The collectionId is
// optional — omitted or empty means quick-save.
type saveArticleRequest struct {
	Article      model.Article `json:"article"`
	CollectionID string        `json:"collectionId"`
}

// HandleSaveArticle persists a search result into the user's library.
//
// HTTP: POST /api/articles
// BODY: {"article":{...snapshot...},"collectionId":"..."}
func (h *LibraryHandler) HandleSaveArticle(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req saveArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	saved, err := h.service.SaveArticle(r.Context(), userID, &req.Article, req.CollectionID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, saved)
}

// HandleListArticles lists saved articles, optionally filtered by collection.
//
// HTTP: GET /api/articles?collectionId=xyz
func (h *LibraryHandler) HandleListArticles(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	articles, err := h.service.ListArticles(r.Context(), userID, r.URL.Query().Get("collectionId"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, articles)
}

// moveArticleRequest is the body of PUT /api/articles/{id}/collection.
// A null or empty collectionId unfiles the article.
type moveArticleRequest struct {
	CollectionID string `json:"collectionId"`
}

// HandleMoveArticle reassigns an article's collection membership.
//
// HTTP: PUT /api/articles/{id}/collection
func (h *LibraryHandler) HandleMoveArticle(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	var req moveArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	if err := h.service.MoveToCollection(r.Context(), userID, id, req.CollectionID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleRemoveArticle deletes a saved article.
//
// HTTP: DELETE /api/articles/{id}
func (h *LibraryHandler) HandleRemoveArticle(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := h.service.RemoveArticle(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// createCollectionRequest is the body of POST /api/collections.
type createCollectionRequest struct {
	Name string `json:"name"`
}

// HandleCreateCollection creates a named collection.
//
// HTTP: POST /api/collections
// BODY: {"name":"Tech"}
func (h *LibraryHandler) HandleCreateCollection(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req createCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	collection, err := h.service.CreateCollection(r.Context(), userID, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, collection)
}

// HandleListCollections lists the user's collections, newest first.
//
// HTTP: GET /api/collections
func (h *LibraryHandler) HandleListCollections(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	collections, err := h.service.ListCollections(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, collections)
}

// HandleDeleteCollection deletes a collection; its articles become quick-saves.
//
// HTTP: DELETE /api/collections/{id}
func (h *LibraryHandler) HandleDeleteCollection(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := h.service.DeleteCollection(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
