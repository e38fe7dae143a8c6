package model

import "time"

// ArticleSource identifies the publication an article came from.
// Kept as a nested object (not a flat string) because the persisted shape is
// source:{name}, matching what the news API returns.
type ArticleSource struct {
	Name string `json:"name"`
}

// Article is a snapshot of an external search result — the fields we capture
// at save time. It carries no ID or owner; it is input, not a stored record.
//
// Topics is a set of lower-cased strings used for filtering (the search flow
// tags each result with the query that found it).
type Article struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	URLToImage  string        `json:"urlToImage"`
	Source      ArticleSource `json:"source"`
	PublishedAt string        `json:"publishedAt"`
	Topics      []string      `json:"topics"`
}

// SavedArticle is one article persisted into a user's library.
//
// The article fields are a defensive copy taken at save time — later edits to
// the search result the user saved from never affect the stored record.
//
// CollectionID is nullable: empty string means "unfiled / quick-save". We use
// the empty string as the null value in Go and translate to SQL NULL at the
// repository boundary, so callers never juggle *string.
//
// The store does NOT enforce (userId, url) uniqueness — duplicate saves are
// possible if the caller skips the "already saved?" pre-check. CollectionName
// is a read-side denormalization filled in by the library service for display;
// it is never persisted.
type SavedArticle struct {
	ID             string        `json:"id"`
	UserID         string        `json:"userId"`
	CollectionID   string        `json:"collectionId,omitempty"`
	CollectionName string        `json:"collectionName,omitempty"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	URL            string        `json:"url"`
	URLToImage     string        `json:"urlToImage"`
	Source         ArticleSource `json:"source"`
	PublishedAt    string        `json:"publishedAt"`
	Topics         []string      `json:"topics"`
	SavedAt        time.Time     `json:"savedAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}
