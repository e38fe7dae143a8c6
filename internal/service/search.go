// Package service — external news search.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/news-library/internal/apperror"
	"github.com/sakif/news-library/internal/model"
	"github.com/sakif/news-library/internal/repository"
)

// Searcher is the external news-search collaborator. Satisfied by
// *news.Client in production and by a stub in tests.
type Searcher interface {
	Search(ctx context.Context, apiKey, query string) ([]model.Article, error)
}

// SearchService runs searches against the external news API using the user's
// own API key from their settings.
type SearchService struct {
	settings repository.SettingsRepository
	client   Searcher
	logger   *slog.Logger
}

// NewSearchService creates a SearchService.
func NewSearchService(settings repository.SettingsRepository, client Searcher, logger *slog.Logger) *SearchService {
	return &SearchService{
		settings: settings,
		client:   client,
		logger:   logger,
	}
}

// Search looks up the user's API key and delegates to the external search
// collaborator, then normalizes results into article snapshots.
//
// MISSING KEY IS A CONFIGURATION ERROR:
// When the user has no stored API key, we fail with ErrConfiguration BEFORE
// making any external call. It is surfaced distinctly from storage errors
// because the remedy is user action (enter a key on the account page), not a
// retry.
//
// NORMALIZATION DEFAULTS:
// The external API can return articles with missing fields. Each result gets
// defaults (empty strings, source "Unknown", publishedAt now) and is tagged
// with the lower-cased query as its topic, so saved results are filterable by
// what found them.
func (s *SearchService) Search(ctx context.Context, userID, query string) ([]model.Article, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.ValidationFailed("q", "search query is required")
	}

	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reading settings for search: %w", err)
	}
	if settings == nil || settings.NewsAPIKey == "" {
		return nil, apperror.ConfigurationMissing("newsApiKey", "News API key not found")
	}

	articles, err := s.client.Search(ctx, settings.NewsAPIKey, query)
	if err != nil {
		s.logger.Error("news search failed",
			slog.String("userID", userID),
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	topic := strings.ToLower(query)
	for i := range articles {
		normalizeArticle(&articles[i], topic)
	}

	s.logger.Info("news search completed",
		slog.String("userID", userID),
		slog.String("query", query),
		slog.Int("results", len(articles)),
	)

	return articles, nil
}

// normalizeArticle fills the defaults for missing fields so every snapshot
// crossing into the presentation layer has the full shape.
func normalizeArticle(a *model.Article, topic string) {
	if a.Source.Name == "" {
		a.Source.Name = "Unknown"
	}
	if a.PublishedAt == "" {
		a.PublishedAt = time.Now().UTC().Format(time.RFC3339)
	}
	a.Topics = []string{topic}
}
