package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/news-library/internal/auth"
	"github.com/sakif/news-library/internal/model"
	"github.com/sakif/news-library/internal/service"
)

// SettingsHandler exposes user settings and the onboarding flow.
type SettingsHandler struct {
	service *service.SettingsService
	logger  *slog.Logger
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(svc *service.SettingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{service: svc, logger: logger}
}

// HandleGetSettings returns the user's settings document, or null when the
// user has never saved settings (absence is not an error).
//
// HTTP: GET /api/settings
func (h *SettingsHandler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	settings, err := h.service.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// HandleReplaceSettings overwrites the whole settings document.
//
// HTTP: PUT /api/settings
// BODY: {"newsApiKey":"...","favoriteTopics":["ai"],"onboardingCompleted":true}
//
// PUT is a full replace: fields left out of the body are cleared (except the
// onboarding flag, which never goes back to false). Clients that want
// field-wise updates use PATCH.
func (h *SettingsHandler) HandleReplaceSettings(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var settings model.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	stored, err := h.service.Replace(r.Context(), userID, &settings)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stored)
}

// HandleMergeSettings applies only the provided fields onto stored settings.
//
// HTTP: PATCH /api/settings
// BODY: {"newsApiKey":"new-key"}   ← topics stay untouched
func (h *SettingsHandler) HandleMergeSettings(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var patch model.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	merged, err := h.service.Merge(r.Context(), userID, &patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, merged)
}

// HandleCheckOnboarding reports whether the user finished onboarding.
//
// HTTP: GET /api/onboarding
// RESPONSE: {"completed":false} or {"completed":true,"settings":{...}}
func (h *SettingsHandler) HandleCheckOnboarding(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	status, err := h.service.CheckOnboarding(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// onboardingRequest is the body of POST /api/onboarding.
type onboardingRequest struct {
	APIKey string   `json:"apiKey"`
	Topics []string `json:"topics"`
}

// HandleCompleteOnboarding runs the one-time setup: store the news API key
// and initial topics, and flip the onboarding flag.
//
// HTTP: POST /api/onboarding
// BODY: {"apiKey":"key123","topics":["AI","Crypto"]}
func (h *SettingsHandler) HandleCompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req onboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	settings, err := h.service.CompleteOnboarding(r.Context(), userID, req.APIKey, req.Topics)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}
