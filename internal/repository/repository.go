// Package repository defines the storage interfaces the service layer depends on.
//
// The services are written against these interfaces, never against *sqlite.DB
// directly. Tests inject in-memory mocks; production injects the SQLite
// implementation. Absence of data is a valid result (nil, nil) for settings —
// only an unreachable store is an error.
package repository

import (
	"context"

	"github.com/sakif/news-library/internal/model"
)

// UserRepository stores account records. Users are never deleted here.
type UserRepository interface {
	// Upsert creates the user if absent (keyed by ID) and is a no-op update
	// otherwise — idempotent, so it's safe to call on every authentication.
	Upsert(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	// GetByEmail returns apperror.ErrNotFound when no account uses the email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// GetByGoogleID looks up the account linked to an OAuth subject.
	GetByGoogleID(ctx context.Context, googleID string) (*model.User, error)
}

// SettingsRepository stores the per-user settings document (1:1 by user ID).
type SettingsRepository interface {
	// Get returns (nil, nil) when the user has never saved settings.
	Get(ctx context.Context, userID string) (*model.UserSettings, error)
	// Replace overwrites the whole settings document, creating it if absent.
	// Writing identical content twice yields identical stored state.
	Replace(ctx context.Context, userID string, settings *model.UserSettings) error
	// Merge applies only the non-zero fields of patch onto the stored document
	// (creating it if absent), so callers can update one field without
	// re-supplying the rest. OnboardingCompleted merges true only — the flag
	// is monotonic.
	Merge(ctx context.Context, userID string, patch *model.UserSettings) (*model.UserSettings, error)
}

// CollectionRepository stores user-defined article collections.
type CollectionRepository interface {
	// Create assigns ID and timestamps. The name must already be validated.
	Create(ctx context.Context, collection *model.Collection) error
	GetByID(ctx context.Context, id string) (*model.Collection, error)
	// ListByUser returns the user's collections, most recently created first.
	ListByUser(ctx context.Context, userID string) ([]model.Collection, error)
	// Touch refreshes updatedAt to now. Best-effort: callers may ignore a
	// not-found error if the collection vanished concurrently.
	Touch(ctx context.Context, id string) error
	// Delete removes the collection, scoped to its owner — another user's ID
	// reports not-found. Articles filed under it are unfiled (collectionId
	// cleared), never deleted.
	Delete(ctx context.Context, userID, id string) error
}

// ArticleRepository stores saved articles.
type ArticleRepository interface {
	// Save persists the snapshot, assigning ID and savedAt/updatedAt. It does
	// not check for duplicates — the caller owns the "already saved?" check.
	Save(ctx context.Context, article *model.SavedArticle) error
	// ListByUser returns the user's saved articles, most recently saved first.
	// A non-empty collectionID filters to that collection only.
	ListByUser(ctx context.Context, userID, collectionID string) ([]model.SavedArticle, error)
	// MoveToCollection reassigns membership ("" = unfiled) and refreshes the
	// article's updatedAt. Scoped to the owner: another user's article ID
	// reports not-found.
	MoveToCollection(ctx context.Context, userID, articleID, collectionID string) error
	// Remove deletes the owner's article; a missing ID (or someone else's)
	// reports not-found, which callers treat as non-fatal.
	Remove(ctx context.Context, userID, articleID string) error
}
