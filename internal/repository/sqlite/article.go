package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/news-library/internal/apperror"
	"github.com/sakif/news-library/internal/model"
	"github.com/sakif/news-library/internal/repository"
)

// ArticleStore persists saved articles.
type ArticleStore struct {
	conn *sql.DB
}

// compile-time check that *ArticleStore implements repository.ArticleRepository
var _ repository.ArticleRepository = (*ArticleStore)(nil)

// Save persists a saved article, assigning ID and timestamps.
//
// DEFENSIVE COPY AT SAVE TIME:
// Every article field is written out as a value — once the row exists, later
// changes to the search result the caller saved from cannot affect it.
//
// NO DUPLICATE CHECK:
// Saving the same URL twice creates two rows. The "already saved?" comparison
// by URL is the caller's job (it has the listing in hand anyway).
//
// NULLABLE MEMBERSHIP:
// CollectionID == "" means quick-save; we write SQL NULL so the foreign key
// (and its ON DELETE SET NULL) only applies to real memberships. The service
// layer verifies a non-empty target exists and belongs to the caller before
// this write.
func (s *ArticleStore) Save(ctx context.Context, article *model.SavedArticle) error {
	article.ID = xid.New().String()

	now := time.Now()
	article.SavedAt = now
	article.UpdatedAt = now

	topics := article.Topics
	if topics == nil {
		topics = []string{}
	}
	topicsRaw, err := json.Marshal(topics)
	if err != nil {
		return fmt.Errorf("sqlite: encoding article topics: %w", err)
	}

	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO saved_articles
		 (id, user_id, collection_id, title, description, url, url_to_image,
		  source_name, published_at, topics, saved_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		article.ID,
		article.UserID,
		nullableID(article.CollectionID),
		article.Title,
		article.Description,
		article.URL,
		article.URLToImage,
		article.Source.Name,
		article.PublishedAt,
		string(topicsRaw),
		article.SavedAt,
		article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: saving article: %w", apperror.Unavailable(err))
	}

	return nil
}

// ListByUser returns the user's saved articles, most recently saved first.
// A non-empty collectionID narrows the listing to that collection.
func (s *ArticleStore) ListByUser(ctx context.Context, userID, collectionID string) ([]model.SavedArticle, error) {
	query := `SELECT id, user_id, collection_id, title, description, url, url_to_image,
	                 source_name, published_at, topics, saved_at, updated_at
	          FROM saved_articles
	          WHERE user_id = ?`
	args := []any{userID}

	if collectionID != "" {
		query += ` AND collection_id = ?`
		args = append(args, collectionID)
	}
	query += ` ORDER BY saved_at DESC`

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing saved articles: %w", apperror.Unavailable(err))
	}
	defer rows.Close()

	articles := make([]model.SavedArticle, 0, 20)
	for rows.Next() {
		a, err := scanSavedArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating saved articles: %w", err)
	}

	return articles, nil
}

// MoveToCollection reassigns membership. collectionID == "" unfiles the
// article (back to quick-save). Idempotent: moving into the collection the
// article is already in succeeds and just refreshes updatedAt.
//
// OWNER-SCOPED:
// The UPDATE carries `AND user_id = ?`, so one user can never re-file another
// user's article — someone else's ID reports not-found, same as a missing one.
//
// The cross-store side effects (verifying the target collection's owner,
// touching its updatedAt) live in the library service, where both stores are
// visible.
func (s *ArticleStore) MoveToCollection(ctx context.Context, userID, articleID, collectionID string) error {
	result, err := s.conn.ExecContext(ctx,
		`UPDATE saved_articles SET collection_id = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		nullableID(collectionID),
		time.Now(),
		articleID,
		userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: moving article %s: %w", articleID, apperror.Unavailable(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("article", articleID)
	}

	return nil
}

// Remove deletes a saved article. The referenced collection is untouched —
// there are no cascading counters to maintain. Owner-scoped like
// MoveToCollection: a missing ID or another user's ID is reported as
// not-found; callers treat it as already-removed.
func (s *ArticleStore) Remove(ctx context.Context, userID, articleID string) error {
	result, err := s.conn.ExecContext(ctx,
		`DELETE FROM saved_articles WHERE id = ? AND user_id = ?`,
		articleID,
		userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: removing article %s: %w", articleID, apperror.Unavailable(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("article", articleID)
	}

	return nil
}

// scanSavedArticle reads one saved_articles row. Shared by ListByUser so the
// column order lives in one place next to the SELECT that produces it.
func scanSavedArticle(rows *sql.Rows) (*model.SavedArticle, error) {
	var (
		a            model.SavedArticle
		collectionID sql.NullString
		topicsRaw    string
	)

	if err := rows.Scan(
		&a.ID,
		&a.UserID,
		&collectionID,
		&a.Title,
		&a.Description,
		&a.URL,
		&a.URLToImage,
		&a.Source.Name,
		&a.PublishedAt,
		&topicsRaw,
		&a.SavedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("sqlite: scanning saved article row: %w", err)
	}

	if collectionID.Valid {
		a.CollectionID = collectionID.String
	}
	if err := json.Unmarshal([]byte(topicsRaw), &a.Topics); err != nil {
		return nil, fmt.Errorf("sqlite: decoding article topics: %w", err)
	}

	return &a, nil
}

// nullableID maps the empty string to SQL NULL for optional foreign keys.
func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}
