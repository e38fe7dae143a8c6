package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/news-library/internal/apperror"
	"github.com/sakif/news-library/internal/model"
	"github.com/sakif/news-library/internal/repository"
)

// CollectionStore persists user-defined article collections.
type CollectionStore struct {
	conn *sql.DB
}

// compile-time check that *CollectionStore implements repository.CollectionRepository
var _ repository.CollectionRepository = (*CollectionStore)(nil)

// Create inserts a new collection. ID and timestamps are store-assigned; the
// caller (service layer) has already validated the name. Names are NOT unique —
// two collections called "Tech" are allowed.
func (s *CollectionStore) Create(ctx context.Context, collection *model.Collection) error {
	collection.ID = xid.New().String()

	now := time.Now()
	collection.CreatedAt = now
	collection.UpdatedAt = now

	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO article_collections (id, user_id, name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		collection.ID,
		collection.UserID,
		collection.Name,
		collection.CreatedAt,
		collection.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating collection: %w", apperror.Unavailable(err))
	}

	return nil
}

// GetByID retrieves a single collection.
func (s *CollectionStore) GetByID(ctx context.Context, id string) (*model.Collection, error) {
	var c model.Collection

	err := s.conn.QueryRowContext(ctx,
		`SELECT id, user_id, name, created_at, updated_at
		 FROM article_collections
		 WHERE id = ?`,
		id,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("collection", id)
		}
		return nil, fmt.Errorf("sqlite: getting collection %s: %w", id, apperror.Unavailable(err))
	}

	return &c, nil
}

// ListByUser returns the user's collections, most recently created first.
func (s *CollectionStore) ListByUser(ctx context.Context, userID string) ([]model.Collection, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, user_id, name, created_at, updated_at
		 FROM article_collections
		 WHERE user_id = ?
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing collections: %w", apperror.Unavailable(err))
	}
	defer rows.Close()

	collections := make([]model.Collection, 0, 8)
	for rows.Next() {
		var c model.Collection
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning collection row: %w", err)
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating collections: %w", err)
	}

	return collections, nil
}

// Touch refreshes updatedAt to now. Called whenever an article is filed into
// (or moved within) the collection, so "recently used" ordering stays accurate.
// Reports not-found for a vanished collection; callers treat that as best-effort.
func (s *CollectionStore) Touch(ctx context.Context, id string) error {
	result, err := s.conn.ExecContext(ctx,
		`UPDATE article_collections SET updated_at = ? WHERE id = ?`,
		time.Now(),
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: touching collection %s: %w", id, apperror.Unavailable(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("collection", id)
	}

	return nil
}

// Delete removes the collection. The ON DELETE SET NULL foreign key on
// saved_articles.collection_id unfiles its articles — they become quick-saves,
// nothing is cascade-deleted.
//
// OWNER-SCOPED:
// The DELETE carries `AND user_id = ?`, so another user's collection ID deletes
// zero rows and reports not-found. Whether the ID is missing or simply not
// yours is indistinguishable to the caller on purpose.
func (s *CollectionStore) Delete(ctx context.Context, userID, id string) error {
	result, err := s.conn.ExecContext(ctx,
		`DELETE FROM article_collections WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting collection %s: %w", id, apperror.Unavailable(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("collection", id)
	}

	return nil
}
