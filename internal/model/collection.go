package model

import "time"

// Collection is a user-named bucket grouping zero or more saved articles.
//
// Every collection has exactly one owner. Names must be non-empty but are NOT
// required to be unique — two collections called "Tech" are fine. UpdatedAt is
// refreshed whenever an article is attached to or detached from the collection,
// so "recently used" sorting stays meaningful. A collection whose last article
// is removed is kept around (orphan collections are permitted).
type Collection struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
