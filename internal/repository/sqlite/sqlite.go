// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// WHY SQLITE?
// SQLite is an embedded database — it lives inside your Go binary as a single file.
// No separate database server to install, configure, or manage. Perfect for:
// - Single-server deployments (which is most apps, honestly)
// - Development and testing (use ":memory:" for an in-memory DB)
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo (calls C code from Go), which means you need a C compiler
// installed and cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of the SQLite C code — no C compiler needed, works everywhere Go works.
//
// DOCUMENT-STORE PARITY:
// The four stores here (users, settings, collections, saved articles) are built on
// four primitives only: get-by-id, replace-by-id, delete-by-id, and
// query-by-equality-filter-plus-order. Set-valued fields (favoriteTopics, topics)
// are stored as JSON-encoded TEXT rather than join tables, so each record stays a
// single document and every write is a single-row atomic statement.
package sqlite

import (
	"database/sql"
	"fmt"

	// BLANK IMPORT:
	// The underscore import `_ "modernc.org/sqlite"` is a "side-effect only" import.
	// The sqlite package's init() registers itself with database/sql as a driver
	// named "sqlite", after which sql.Open("sqlite", ...) knows how to talk to it.
	_ "modernc.org/sqlite"
)

// DB owns the sql.DB connection pool and the four stores built on it.
//
// Each store is its own type implementing one repository interface — method
// sets stay per-entity (a ListByUser for articles and one for collections can
// coexist), while all stores share the single pool. DB is constructed once at
// startup in server.New, injected store-by-store into the services, and closed
// during graceful shutdown — no ambient global connection state.
type DB struct {
	conn *sql.DB

	Users       *UserStore
	Settings    *SettingsStore
	Collections *CollectionStore
	Articles    *ArticleStore
}

// New creates a new SQLite database connection and runs migrations.
//
// dbPath examples:
//   - "data/library.db"  → file-based database (persistent)
//   - ":memory:"         → in-memory database (great for tests, lost on close)
//
// sql.Open() does NOT actually open a connection — it just creates a pool
// manager. We call Ping() to force an immediate connection so a bad path or
// permissions problem surfaces here, not on the first query.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is happening — important
	// for a web server where multiple requests hit the DB.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite. We need them ON for the
	// ON DELETE SET NULL behaviour of saved_articles.collection_id.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	db.Users = &UserStore{conn: conn}
	db.Settings = &SettingsStore{conn: conn}
	db.Collections = &CollectionStore{conn: conn}
	db.Articles = &ArticleStore{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool. Always defer this next to New().
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS is idempotent.
//
// REFERENTIAL INTEGRITY — DELIBERATELY PARTIAL:
// The user_id columns are plain TEXT carrying an identifier, not enforced
// foreign keys. Stores relate to each other only through IDs, and a user row
// always exists by the time any owned record is written (users are provisioned
// on first authentication).
//
// The ONE enforced constraint is saved_articles.collection_id → collections
// with ON DELETE SET NULL: deleting a collection unfiles its articles (they
// become quick-saves) rather than deleting them or blocking the delete.
//
// There is intentionally NO unique index on (user_id, url): duplicate saves are
// possible, and the "already saved?" check belongs to the caller.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			role          TEXT NOT NULL DEFAULT 'user',
			password_hash TEXT NOT NULL DEFAULT '',
			google_id     TEXT NOT NULL DEFAULT '',
			sign_up_date  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_google_id
			ON users(google_id) WHERE google_id != '';
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// One settings document per user, replaced wholesale on write.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS user_settings (
			user_id              TEXT PRIMARY KEY,
			news_api_key         TEXT NOT NULL DEFAULT '',
			favorite_topics      TEXT NOT NULL DEFAULT '[]',
			onboarding_completed INTEGER NOT NULL DEFAULT 0
		);
	`)
	if err != nil {
		return fmt.Errorf("creating user_settings table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS article_collections (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			name       TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_collections_user_id
			ON article_collections(user_id, created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating article_collections table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS saved_articles (
			id            TEXT PRIMARY KEY,
			user_id       TEXT NOT NULL,
			collection_id TEXT REFERENCES article_collections(id) ON DELETE SET NULL,
			title         TEXT NOT NULL DEFAULT '',
			description   TEXT NOT NULL DEFAULT '',
			url           TEXT NOT NULL DEFAULT '',
			url_to_image  TEXT NOT NULL DEFAULT '',
			source_name   TEXT NOT NULL DEFAULT 'Unknown',
			published_at  TEXT NOT NULL DEFAULT '',
			topics        TEXT NOT NULL DEFAULT '[]',
			saved_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_saved_articles_user_id
			ON saved_articles(user_id, saved_at);
		CREATE INDEX IF NOT EXISTS idx_saved_articles_collection_id
			ON saved_articles(collection_id);
	`)
	if err != nil {
		return fmt.Errorf("creating saved_articles table: %w", err)
	}

	return nil
}
