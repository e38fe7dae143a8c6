// Package service — the library orchestration layer.
//
// LibraryService composes the collection store and the saved-article store
// into the user-facing operations and enforces the cross-entity rules no
// single store can enforce alone (membership moves touching the target
// collection, the read-side collectionName join).
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sakif/news-library/internal/apperror"
	"github.com/sakif/news-library/internal/model"
	"github.com/sakif/news-library/internal/repository"
)

// MaxCollectionNameLength bounds collection names. Long enough for any real
// label, short enough to keep list views sane.
const MaxCollectionNameLength = 100

// LibraryService handles saved articles and collections.
type LibraryService struct {
	articles    repository.ArticleRepository
	collections repository.CollectionRepository
	settings    repository.SettingsRepository
	logger      *slog.Logger
}

// NewLibraryService creates a LibraryService.
func NewLibraryService(
	articles repository.ArticleRepository,
	collections repository.CollectionRepository,
	settings repository.SettingsRepository,
	logger *slog.Logger,
) *LibraryService {
	return &LibraryService{
		articles:    articles,
		collections: collections,
		settings:    settings,
		logger:      logger,
	}
}

// Library is the aggregated read model returned by FetchLibrary: everything
// the saved-articles page needs in one response.
type Library struct {
	SavedArticles []model.SavedArticle `json:"savedArticles"`
	Collections   []model.Collection   `json:"collections"`
	Settings      *model.UserSettings  `json:"settings"`
}

// SaveArticle persists a snapshot of an external search result into the
// user's library. An empty collectionID means quick-save.
//
// The store keeps a defensive copy of the snapshot fields; it does NOT check
// for duplicates — the caller owns the "already saved?" pre-check by URL.
// A non-empty collectionID must name an existing collection owned by the
// caller; saving directly into it touches that collection's updatedAt.
func (s *LibraryService) SaveArticle(ctx context.Context, userID string, snapshot *model.Article, collectionID string) (*model.SavedArticle, error) {
	if snapshot == nil {
		return nil, apperror.ValidationFailed("article", "article snapshot is required")
	}
	if collectionID != "" {
		if err := s.checkCollectionOwner(ctx, userID, collectionID); err != nil {
			return nil, err
		}
	}

	saved := &model.SavedArticle{
		UserID:       userID,
		CollectionID: collectionID,
		Title:        snapshot.Title,
		Description:  snapshot.Description,
		URL:          snapshot.URL,
		URLToImage:   snapshot.URLToImage,
		Source:       snapshot.Source,
		PublishedAt:  snapshot.PublishedAt,
		Topics:       snapshot.Topics,
	}
	if saved.Source.Name == "" {
		saved.Source.Name = "Unknown"
	}

	if err := s.articles.Save(ctx, saved); err != nil {
		s.logger.Error("failed to save article",
			slog.String("userID", userID),
			slog.String("url", snapshot.URL),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("saving article: %w", err)
	}

	if collectionID != "" {
		s.touchCollection(ctx, collectionID)
	}

	s.logger.Info("article saved",
		slog.String("id", saved.ID),
		slog.String("userID", userID),
		slog.String("collectionID", collectionID),
	)

	return saved, nil
}

// FetchLibrary aggregates saved articles, collections, and settings in one
// call, and denormalizes each article with its collection's display name.
//
// PARALLEL GATHER:
// The three reads are independent, so they run concurrently in an errgroup.
// Each goroutine writes only its own result variable; the join happens after
// Wait, so there is no shared mutable state in flight.
//
// The collectionName join is performed HERE, not in the store — stores stay
// single-purpose, and the name is presentation-only (never persisted on the
// article).
func (s *LibraryService) FetchLibrary(ctx context.Context, userID string) (*Library, error) {
	var (
		articles    []model.SavedArticle
		collections []model.Collection
		settings    *model.UserSettings
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		articles, err = s.articles.ListByUser(gctx, userID, "")
		return err
	})
	g.Go(func() error {
		var err error
		collections, err = s.collections.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		settings, err = s.settings.Get(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching library: %w", err)
	}

	namesByID := make(map[string]string, len(collections))
	for _, c := range collections {
		namesByID[c.ID] = c.Name
	}
	for i := range articles {
		if articles[i].CollectionID != "" {
			articles[i].CollectionName = namesByID[articles[i].CollectionID]
		}
	}

	return &Library{
		SavedArticles: articles,
		Collections:   collections,
		Settings:      settings,
	}, nil
}

// ListArticles returns the user's saved articles, optionally filtered to one
// collection, most recently saved first.
func (s *LibraryService) ListArticles(ctx context.Context, userID, collectionID string) ([]model.SavedArticle, error) {
	articles, err := s.articles.ListByUser(ctx, userID, collectionID)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	return articles, nil
}

// MoveToCollection reassigns an article's membership. An empty collectionID
// unfiles the article (quick-save). Idempotent: repeating the same move
// succeeds and leaves the membership unchanged.
//
// CROSS-STORE SIDE EFFECT:
// Moving an article into a collection refreshes that collection's updatedAt.
// Detaching (collectionID == "") touches nothing.
//
// OWNERSHIP:
// Both sides of the move are checked against the caller. The article write is
// owner-scoped in the store (someone else's article reports not-found), and a
// non-empty target collection must exist and belong to the caller — filing
// into another user's collection is forbidden.
func (s *LibraryService) MoveToCollection(ctx context.Context, userID, articleID, collectionID string) error {
	articleID = strings.TrimSpace(articleID)
	if articleID == "" {
		return apperror.ValidationFailed("id", "article ID is required")
	}

	if collectionID != "" {
		if err := s.checkCollectionOwner(ctx, userID, collectionID); err != nil {
			return err
		}
	}

	if err := s.articles.MoveToCollection(ctx, userID, articleID, collectionID); err != nil {
		return err
	}

	if collectionID != "" {
		s.touchCollection(ctx, collectionID)
	}

	s.logger.Info("article moved",
		slog.String("id", articleID),
		slog.String("collectionID", collectionID),
	)

	return nil
}

// RemoveArticle deletes a saved article. The referenced collection keeps its
// timestamps and (non-existent) counters — deletion is unconditional with no
// cascade. Removing an ID that was already removed — or one belonging to a
// different user — reports not-found.
func (s *LibraryService) RemoveArticle(ctx context.Context, userID, articleID string) error {
	articleID = strings.TrimSpace(articleID)
	if articleID == "" {
		return apperror.ValidationFailed("id", "article ID is required")
	}

	if err := s.articles.Remove(ctx, userID, articleID); err != nil {
		return err
	}

	s.logger.Info("article removed", slog.String("id", articleID))
	return nil
}

// CreateCollection creates a named bucket for the user.
//
// The name must be non-empty after trimming; duplicates are allowed. ID and
// timestamps are store-assigned, with createdAt <= updatedAt always.
func (s *LibraryService) CreateCollection(ctx context.Context, userID, name string) (*model.Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "collection name is required")
	}
	if len(name) > MaxCollectionNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("collection name must be %d characters or less", MaxCollectionNameLength))
	}

	collection := &model.Collection{
		UserID: userID,
		Name:   name,
	}
	if err := s.collections.Create(ctx, collection); err != nil {
		s.logger.Error("failed to create collection",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating collection: %w", err)
	}

	s.logger.Info("collection created",
		slog.String("id", collection.ID),
		slog.String("name", collection.Name),
	)

	return collection, nil
}

// ListCollections returns the user's collections, most recently created first.
func (s *LibraryService) ListCollections(ctx context.Context, userID string) ([]model.Collection, error) {
	collections, err := s.collections.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	return collections, nil
}

// DeleteCollection removes one of the caller's collections. Its articles are
// unfiled (membership cleared), never deleted — quick-saves stay in the
// library. The delete is owner-scoped: another user's collection ID reports
// not-found, same as a missing one.
func (s *LibraryService) DeleteCollection(ctx context.Context, userID, collectionID string) error {
	collectionID = strings.TrimSpace(collectionID)
	if collectionID == "" {
		return apperror.ValidationFailed("id", "collection ID is required")
	}

	if err := s.collections.Delete(ctx, userID, collectionID); err != nil {
		return err
	}

	s.logger.Info("collection deleted", slog.String("id", collectionID))
	return nil
}

// checkCollectionOwner verifies that collectionID names an existing collection
// belonging to userID. A missing collection reports not-found (never a raw
// foreign-key failure from the store); a collection owned by someone else is
// forbidden.
func (s *LibraryService) checkCollectionOwner(ctx context.Context, userID, collectionID string) error {
	collection, err := s.collections.GetByID(ctx, collectionID)
	if err != nil {
		return err
	}
	if collection.UserID != userID {
		return apperror.Forbidden("collection belongs to another user")
	}
	return nil
}

// touchCollection refreshes a collection's updatedAt, best-effort. A vanished
// collection (deleted concurrently) is logged and ignored — the membership
// write already succeeded and must not be rolled back over a timestamp.
func (s *LibraryService) touchCollection(ctx context.Context, collectionID string) {
	if err := s.collections.Touch(ctx, collectionID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			s.logger.Warn("touched collection no longer exists", slog.String("id", collectionID))
			return
		}
		s.logger.Error("failed to touch collection",
			slog.String("id", collectionID),
			slog.String("error", err.Error()),
		)
	}
}
