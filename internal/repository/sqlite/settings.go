package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/sakif/news-library/internal/apperror"
	"github.com/sakif/news-library/internal/model"
	"github.com/sakif/news-library/internal/repository"
)

// SettingsStore persists the per-user settings document (one row per user).
type SettingsStore struct {
	conn *sql.DB
}

// compile-time check that *SettingsStore implements repository.SettingsRepository
var _ repository.SettingsRepository = (*SettingsStore)(nil)

// Get returns the user's settings document, or (nil, nil) when the user has
// never saved settings. Absence is a valid "empty" result, NOT an error —
// callers default the onboarding flag to false in that case.
func (s *SettingsStore) Get(ctx context.Context, userID string) (*model.UserSettings, error) {
	var (
		doc       model.UserSettings
		topicsRaw string
	)

	err := s.conn.QueryRowContext(ctx,
		`SELECT news_api_key, favorite_topics, onboarding_completed
		 FROM user_settings
		 WHERE user_id = ?`,
		userID,
	).Scan(&doc.NewsAPIKey, &topicsRaw, &doc.OnboardingCompleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("sqlite: getting settings for %s: %w", userID, apperror.Unavailable(err))
	}

	// favoriteTopics is stored as a JSON array in a TEXT column.
	// Insertion order is preserved for display.
	if err := json.Unmarshal([]byte(topicsRaw), &doc.FavoriteTopics); err != nil {
		return nil, fmt.Errorf("sqlite: decoding favorite topics for %s: %w", userID, err)
	}

	return &doc, nil
}

// Replace overwrites the whole settings document, creating it if absent.
//
// FULL REPLACE, NOT MERGE:
// This is the store contract from the start — a Replace with a zero-value
// field clears that field. Callers who want to keep existing values use Merge.
// The write is a single INSERT OR REPLACE, so it is atomic and idempotent:
// writing identical content twice yields identical stored state.
func (s *SettingsStore) Replace(ctx context.Context, userID string, settings *model.UserSettings) error {
	topics := settings.FavoriteTopics
	if topics == nil {
		topics = []string{}
	}
	topicsRaw, err := json.Marshal(topics)
	if err != nil {
		return fmt.Errorf("sqlite: encoding favorite topics: %w", err)
	}

	_, err = s.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO user_settings
		 (user_id, news_api_key, favorite_topics, onboarding_completed)
		 VALUES (?, ?, ?, ?)`,
		userID,
		settings.NewsAPIKey,
		string(topicsRaw),
		settings.OnboardingCompleted,
	)
	if err != nil {
		return fmt.Errorf("sqlite: replacing settings for %s: %w", userID, apperror.Unavailable(err))
	}

	return nil
}

// Merge applies only the non-zero fields of patch onto the stored document,
// creating it when absent.
//
// Merge rules:
//   - NewsAPIKey:     applied when non-empty
//   - FavoriteTopics: applied when non-nil (an explicit empty slice clears them)
//   - OnboardingCompleted: applied when true — the flag is monotonic, a merge
//     can never un-complete onboarding
//
// Returns the merged document so callers see exactly what was stored.
func (s *SettingsStore) Merge(ctx context.Context, userID string, patch *model.UserSettings) (*model.UserSettings, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		current = &model.UserSettings{FavoriteTopics: []string{}}
	}

	if patch.NewsAPIKey != "" {
		current.NewsAPIKey = patch.NewsAPIKey
	}
	if patch.FavoriteTopics != nil {
		current.FavoriteTopics = patch.FavoriteTopics
	}
	if patch.OnboardingCompleted {
		current.OnboardingCompleted = true
	}

	if err := s.Replace(ctx, userID, current); err != nil {
		return nil, err
	}

	return current, nil
}
