// Package service — settings and onboarding business logic.
//
// SettingsService wraps the SettingsRepository with validation and the topic
// normalization rules. The store contract stays "documents in, documents out";
// everything about WHAT a valid document looks like lives here.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/news-library/internal/apperror"
	"github.com/sakif/news-library/internal/model"
	"github.com/sakif/news-library/internal/repository"
)

// SettingsService handles user settings and the one-time onboarding flow.
type SettingsService struct {
	settings repository.SettingsRepository
	logger   *slog.Logger
}

// NewSettingsService creates a SettingsService.
func NewSettingsService(settings repository.SettingsRepository, logger *slog.Logger) *SettingsService {
	return &SettingsService{
		settings: settings,
		logger:   logger,
	}
}

// Get returns the user's settings, or nil when none have been saved yet.
// Absence is a valid empty result, not an error.
func (s *SettingsService) Get(ctx context.Context, userID string) (*model.UserSettings, error) {
	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}
	return settings, nil
}

// Replace overwrites the user's settings document wholesale. Topics are
// normalized before storage. A replace cannot un-complete onboarding: the
// stored flag is OR-ed in, keeping the false→true transition one-way even for
// callers that forget to carry it over.
func (s *SettingsService) Replace(ctx context.Context, userID string, settings *model.UserSettings) (*model.UserSettings, error) {
	current, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reading settings before replace: %w", err)
	}

	next := &model.UserSettings{
		NewsAPIKey:          strings.TrimSpace(settings.NewsAPIKey),
		FavoriteTopics:      normalizeTopics(settings.FavoriteTopics),
		OnboardingCompleted: settings.OnboardingCompleted || (current != nil && current.OnboardingCompleted),
	}

	if err := s.settings.Replace(ctx, userID, next); err != nil {
		return nil, fmt.Errorf("replacing settings: %w", err)
	}

	s.logger.Info("settings replaced", slog.String("userID", userID))
	return next, nil
}

// Merge applies only the provided fields onto the stored settings, so a caller
// updating the API key cannot silently drop the topic list.
func (s *SettingsService) Merge(ctx context.Context, userID string, patch *model.UserSettings) (*model.UserSettings, error) {
	if patch.FavoriteTopics != nil {
		patch.FavoriteTopics = normalizeTopics(patch.FavoriteTopics)
	}
	patch.NewsAPIKey = strings.TrimSpace(patch.NewsAPIKey)

	merged, err := s.settings.Merge(ctx, userID, patch)
	if err != nil {
		return nil, fmt.Errorf("merging settings: %w", err)
	}

	s.logger.Info("settings merged", slog.String("userID", userID))
	return merged, nil
}

// CheckOnboarding reports whether the user finished onboarding, defaulting to
// false when no settings exist or the flag is unset.
func (s *SettingsService) CheckOnboarding(ctx context.Context, userID string) (*model.OnboardingStatus, error) {
	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("checking onboarding: %w", err)
	}

	status := &model.OnboardingStatus{Settings: settings}
	if settings != nil {
		status.Completed = settings.OnboardingCompleted
	}
	return status, nil
}

// CompleteOnboarding writes the initial settings document with the onboarding
// flag set.
//
// ONE-WAY GATE:
// Once completed, the dashboard stops rendering the onboarding flow. Later
// settings edits never re-run onboarding, and nothing sets the flag back to
// false.
//
// Validation: the API key and at least one topic are required. Topics are
// normalized (trim, lowercase, dedupe) preserving first-seen order.
func (s *SettingsService) CompleteOnboarding(ctx context.Context, userID, apiKey string, topics []string) (*model.UserSettings, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, apperror.ValidationFailed("apiKey", "news API key is required")
	}

	normalized := normalizeTopics(topics)
	if len(normalized) == 0 {
		return nil, apperror.ValidationFailed("topics", "at least one topic is required")
	}

	settings := &model.UserSettings{
		NewsAPIKey:          apiKey,
		FavoriteTopics:      normalized,
		OnboardingCompleted: true,
	}

	if err := s.settings.Replace(ctx, userID, settings); err != nil {
		s.logger.Error("failed to complete onboarding",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("completing onboarding: %w", err)
	}

	s.logger.Info("onboarding completed",
		slog.String("userID", userID),
		slog.Int("topics", len(normalized)),
	)

	return settings, nil
}

// normalizeTopics trims, lower-cases, and de-duplicates topics, preserving
// first-seen order (order matters for display, not for lookup).
func normalizeTopics(topics []string) []string {
	seen := make(map[string]struct{}, len(topics))
	normalized := make([]string, 0, len(topics))

	for _, topic := range topics {
		topic = strings.ToLower(strings.TrimSpace(topic))
		if topic == "" {
			continue
		}
		if _, dup := seen[topic]; dup {
			continue
		}
		seen[topic] = struct{}{}
		normalized = append(normalized, topic)
	}

	return normalized
}
