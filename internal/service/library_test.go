package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sakif/news-library/internal/apperror"
	"github.com/sakif/news-library/internal/model"
)

// =========================================================================
// MOCK REPOSITORIES
// =========================================================================
//
// WHAT IS A MOCK?
// A mock is a fake implementation of an interface used in tests.
// Instead of talking to a real database, it stores data in memory.
//
// WHY MOCK?
// 1. SPEED: No database setup, no disk I/O, tests run in microseconds
// 2. ISOLATION: Tests only test the service logic, not the database
// 3. CONTROL: You can simulate errors (database down, connection timeout)
//    that would be hard to trigger with a real database
//
// The mocks implement the same repository interfaces as the SQLite store.
// The service doesn't know or care which one it gets — that's the power
// of interfaces: swappable implementations.

type mockArticleRepo struct {
	articles map[string]*model.SavedArticle
	order    []string // insertion order, newest list results come from the back
	nextID   int
}

func newMockArticleRepo() *mockArticleRepo {
	return &mockArticleRepo{articles: make(map[string]*model.SavedArticle)}
}

func (m *mockArticleRepo) Save(_ context.Context, article *model.SavedArticle) error {
	m.nextID++
	article.ID = fmt.Sprintf("article-%d", m.nextID)
	now := time.Now()
	article.SavedAt = now
	article.UpdatedAt = now
	stored := *article
	m.articles[article.ID] = &stored
	m.order = append(m.order, article.ID)
	return nil
}

func (m *mockArticleRepo) ListByUser(_ context.Context, userID, collectionID string) ([]model.SavedArticle, error) {
	result := make([]model.SavedArticle, 0, len(m.order))
	// Walk backwards: most recently saved first
	for i := len(m.order) - 1; i >= 0; i-- {
		a := m.articles[m.order[i]]
		if a == nil || a.UserID != userID {
			continue
		}
		if collectionID != "" && a.CollectionID != collectionID {
			continue
		}
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockArticleRepo) MoveToCollection(_ context.Context, userID, articleID, collectionID string) error {
	a, ok := m.articles[articleID]
	if !ok || a.UserID != userID {
		return apperror.NotFound("article", articleID)
	}
	a.CollectionID = collectionID
	a.UpdatedAt = time.Now()
	return nil
}

func (m *mockArticleRepo) Remove(_ context.Context, userID, articleID string) error {
	a, ok := m.articles[articleID]
	if !ok || a.UserID != userID {
		return apperror.NotFound("article", articleID)
	}
	delete(m.articles, articleID)
	return nil
}

type mockCollectionRepo struct {
	collections map[string]*model.Collection
	order       []string
	touched     []string // IDs passed to Touch, in call order
	nextID      int
}

func newMockCollectionRepo() *mockCollectionRepo {
	return &mockCollectionRepo{collections: make(map[string]*model.Collection)}
}

func (m *mockCollectionRepo) Create(_ context.Context, c *model.Collection) error {
	m.nextID++
	c.ID = fmt.Sprintf("collection-%d", m.nextID)
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	stored := *c
	m.collections[c.ID] = &stored
	m.order = append(m.order, c.ID)
	return nil
}

func (m *mockCollectionRepo) GetByID(_ context.Context, id string) (*model.Collection, error) {
	c, ok := m.collections[id]
	if !ok {
		return nil, apperror.NotFound("collection", id)
	}
	result := *c
	return &result, nil
}

func (m *mockCollectionRepo) ListByUser(_ context.Context, userID string) ([]model.Collection, error) {
	result := make([]model.Collection, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		c := m.collections[m.order[i]]
		if c == nil || c.UserID != userID {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCollectionRepo) Touch(_ context.Context, id string) error {
	c, ok := m.collections[id]
	if !ok {
		return apperror.NotFound("collection", id)
	}
	c.UpdatedAt = time.Now()
	m.touched = append(m.touched, id)
	return nil
}

func (m *mockCollectionRepo) Delete(_ context.Context, userID, id string) error {
	c, ok := m.collections[id]
	if !ok || c.UserID != userID {
		return apperror.NotFound("collection", id)
	}
	delete(m.collections, id)
	return nil
}

type mockSettingsRepo struct {
	docs map[string]*model.UserSettings
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{docs: make(map[string]*model.UserSettings)}
}

func (m *mockSettingsRepo) Get(_ context.Context, userID string) (*model.UserSettings, error) {
	s, ok := m.docs[userID]
	if !ok {
		return nil, nil // absence is a valid empty result
	}
	result := *s
	return &result, nil
}

func (m *mockSettingsRepo) Replace(_ context.Context, userID string, settings *model.UserSettings) error {
	stored := *settings
	m.docs[userID] = &stored
	return nil
}

func (m *mockSettingsRepo) Merge(ctx context.Context, userID string, patch *model.UserSettings) (*model.UserSettings, error) {
	current, _ := m.Get(ctx, userID)
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
	if err := m.Replace(ctx, userID, current); err != nil {
		return nil, err
	}
	return current, nil
}

// =========================================================================
// TEST HELPERS
// =========================================================================

// testLogger returns a logger that only prints errors, so passing tests
// stay quiet.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestLibraryService wires a LibraryService with fresh mocks.
// This is dependency injection in action — we inject mocks instead of SQLite.
func newTestLibraryService(t *testing.T) (*LibraryService, *mockArticleRepo, *mockCollectionRepo, *mockSettingsRepo) {
	t.Helper()
	articles := newMockArticleRepo()
	collections := newMockCollectionRepo()
	settings := newMockSettingsRepo()
	svc := NewLibraryService(articles, collections, settings, testLogger())
	return svc, articles, collections, settings
}

func testSnapshot(url string) *model.Article {
	return &model.Article{
		Title:       "Test article",
		URL:         url,
		Source:      model.ArticleSource{Name: "Test Source"},
		PublishedAt: "2026-01-01T00:00:00Z",
		Topics:      []string{"test"},
	}
}

// =========================================================================
// SAVE ARTICLE TESTS
// =========================================================================

func TestSaveArticle_QuickSave(t *testing.T) {
	svc, _, collections, _ := newTestLibraryService(t)

	saved, err := svc.SaveArticle(context.Background(), "u1", testSnapshot("https://example.com/a"), "")
	if err != nil {
		t.Fatalf("SaveArticle() error = %v", err)
	}

	if saved.ID == "" {
		t.Error("SaveArticle() did not assign an ID")
	}
	if saved.CollectionID != "" {
		t.Errorf("CollectionID = %q, want unfiled", saved.CollectionID)
	}
	// A quick-save must not touch any collection
	if len(collections.touched) != 0 {
		t.Errorf("quick-save touched collections %v, want none", collections.touched)
	}
}

func TestSaveArticle_IntoCollectionTouchesIt(t *testing.T) {
	svc, _, collections, _ := newTestLibraryService(t)
	ctx := context.Background()

	c, err := svc.CreateCollection(ctx, "u1", "Tech")
	if err != nil {
		t.Fatalf("CreateCollection() error = %v", err)
	}

	if _, err := svc.SaveArticle(ctx, "u1", testSnapshot("https://example.com/a"), c.ID); err != nil {
		t.Fatalf("SaveArticle() error = %v", err)
	}

	if len(collections.touched) != 1 || collections.touched[0] != c.ID {
		t.Errorf("touched = %v, want [%s]", collections.touched, c.ID)
	}
}

func TestSaveArticle_DefaultsSourceName(t *testing.T) {
	svc, _, _, _ := newTestLibraryService(t)

	snapshot := testSnapshot("https://example.com/a")
	snapshot.Source.Name = ""

	saved, err := svc.SaveArticle(context.Background(), "u1", snapshot, "")
	if err != nil {
		t.Fatalf("SaveArticle() error = %v", err)
	}
	if saved.Source.Name != "Unknown" {
		t.Errorf("Source.Name = %q, want %q", saved.Source.Name, "Unknown")
	}
}

func TestSaveArticle_NilSnapshot(t *testing.T) {
	svc, _, _, _ := newTestLibraryService(t)

	_, err := svc.SaveArticle(context.Background(), "u1", nil, "")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("SaveArticle(nil) error = %v, want ErrValidation", err)
	}
}

func TestSaveArticle_MissingCollection(t *testing.T) {
	svc, articles, _, _ := newTestLibraryService(t)

	// The target collection is checked up front, so a bogus collectionId is a
	// clean not-found — never a raw constraint failure bubbling out of the
	// store as unavailable.
	_, err := svc.SaveArticle(context.Background(), "u1", testSnapshot("https://example.com/a"), "no-such-collection")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("SaveArticle() into missing collection error = %v, want ErrNotFound", err)
	}
	if len(articles.articles) != 0 {
		t.Error("SaveArticle() persisted an article despite the missing collection")
	}
}

func TestSaveArticle_ForeignCollection(t *testing.T) {
	svc, articles, _, _ := newTestLibraryService(t)
	ctx := context.Background()

	c, err := svc.CreateCollection(ctx, "owner", "Tech")
	if err != nil {
		t.Fatalf("CreateCollection() error = %v", err)
	}

	// Saving into a collection you don't own is forbidden — the ID being
	// guessable must not let one user file articles into another's buckets.
	_, err = svc.SaveArticle(ctx, "intruder", testSnapshot("https://example.com/a"), c.ID)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("SaveArticle() into foreign collection error = %v, want ErrForbidden", err)
	}
	if len(articles.articles) != 0 {
		t.Error("SaveArticle() persisted an article despite the foreign collection")
	}
}

// =========================================================================
// FETCH LIBRARY TESTS
// =========================================================================

func TestFetchLibrary_JoinsCollectionNames(t *testing.T) {
	svc, _, _, settings := newTestLibraryService(t)
	ctx := context.Background()

	if err := settings.Replace(ctx, "u1", &model.UserSettings{NewsAPIKey: "k"}); err != nil {
		t.Fatalf("seeding settings: %v", err)
	}

	c, err := svc.CreateCollection(ctx, "u1", "Tech")
	if err != nil {
		t.Fatalf("CreateCollection() error = %v", err)
	}
	if _, err := svc.SaveArticle(ctx, "u1", testSnapshot("https://example.com/filed"), c.ID); err != nil {
		t.Fatalf("SaveArticle() error = %v", err)
	}
	if _, err := svc.SaveArticle(ctx, "u1", testSnapshot("https://example.com/quick"), ""); err != nil {
		t.Fatalf("SaveArticle() error = %v", err)
	}

	lib, err := svc.FetchLibrary(ctx, "u1")
	if err != nil {
		t.Fatalf("FetchLibrary() error = %v", err)
	}

	if len(lib.SavedArticles) != 2 {
		t.Fatalf("SavedArticles = %d, want 2", len(lib.SavedArticles))
	}
	if len(lib.Collections) != 1 {
		t.Fatalf("Collections = %d, want 1", len(lib.Collections))
	}
	if lib.Settings == nil || lib.Settings.NewsAPIKey != "k" {
		t.Errorf("Settings = %+v, want the seeded document", lib.Settings)
	}

	// The filed article carries its collection's display name; the quick-save
	// carries none.
	for _, a := range lib.SavedArticles {
		switch a.CollectionID {
		case c.ID:
			if a.CollectionName != "Tech" {
				t.Errorf("filed article CollectionName = %q, want %q", a.CollectionName, "Tech")
			}
		case "":
			if a.CollectionName != "" {
				t.Errorf("quick-save CollectionName = %q, want empty", a.CollectionName)
			}
		default:
			t.Errorf("unexpected CollectionID %q", a.CollectionID)
		}
	}
}

func TestFetchLibrary_EmptyLibrary(t *testing.T) {
	svc, _, _, _ := newTestLibraryService(t)

	lib, err := svc.FetchLibrary(context.Background(), "u1")
	if err != nil {
		t.Fatalf("FetchLibrary() error = %v", err)
	}
	if len(lib.SavedArticles) != 0 || len(lib.Collections) != 0 {
		t.Errorf("FetchLibrary() for a new user = %+v, want empty", lib)
	}
	// No settings saved yet -> nil, the frontend treats that as "not onboarded"
	if lib.Settings != nil {
		t.Errorf("Settings = %+v, want nil", lib.Settings)
	}
}

// =========================================================================
// MOVE TESTS
// =========================================================================

func TestMoveToCollection_TouchesTarget(t *testing.T) {
	svc, _, collections, _ := newTestLibraryService(t)
	ctx := context.Background()

	saved, err := svc.SaveArticle(ctx, "u1", testSnapshot("https://example.com/a"), "")
	if err != nil {
		t.Fatalf("SaveArticle() error = %v", err)
	}
	c, err := svc.CreateCollection(ctx, "u1", "Tech")
	if err != nil {
		t.Fatalf("CreateCollection() error = %v", err)
	}

	if err := svc.MoveToCollection(ctx, "u1", saved.ID, c.ID); err != nil {
		t.Fatalf("MoveToCollection() error = %v", err)
	}

	if len(collections.touched) != 1 || collections.touched[0] != c.ID {
		t.Errorf("touched = %v, want [%s]", collections.touched, c.ID)
	}

	got, err := svc.ListArticles(ctx, "u1", c.ID)
	if err != nil {
		t.Fatalf("ListArticles() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != saved.ID {
		t.Fatalf("article did not land in the collection: %v", got)
	}
}

func TestMoveToCollection_DetachTouchesNothing(t *testing.T) {
	svc, _, collections, _ := newTestLibraryService(t)
	ctx := context.Background()

	c, err := svc.CreateCollection(ctx, "u1", "Tech")
	if err != nil {
		t.Fatalf("CreateCollection() error = %v", err)
	}
	saved, err := svc.SaveArticle(ctx, "u1", testSnapshot("https://example.com/a"), c.ID)
	if err != nil {
		t.Fatalf("SaveArticle() error = %v", err)
	}
	touchesBefore := len(collections.touched)

	// Unfiling touches no collection — there is no target to bump
	if err := svc.MoveToCollection(ctx, "u1", saved.ID, ""); err != nil {
		t.Fatalf("MoveToCollection(\"\") error = %v", err)
	}
	if len(collections.touched) != touchesBefore {
		t.Errorf("detach touched a collection: %v", collections.touched)
	}
}

func TestMoveToCollection_Idempotent(t *testing.T) {
	svc, _, _, _ := newTestLibraryService(t)
	ctx := context.Background()

	c, err := svc.CreateCollection(ctx, "u1", "Tech")
	if err != nil {
		t.Fatalf("CreateCollection() error = %v", err)
	}
	saved, err := svc.SaveArticle(ctx, "u1", testSnapshot("https://example.com/a"), c.ID)
	if err != nil {
		t.Fatalf("SaveArticle() error = %v", err)
	}

	// Repeating the same move succeeds and leaves membership unchanged
	if err := svc.MoveToCollection(ctx, "u1", saved.ID, c.ID); err != nil {
		t.Fatalf("repeat MoveToCollection() error = %v", err)
	}

	got, err := svc.ListArticles(ctx, "u1", c.ID)
	if err != nil {
		t.Fatalf("ListArticles() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("ListArticles() = %d articles, want 1", len(got))
	}
}

func TestMoveToCollection_EmptyArticleID(t *testing.T) {
	svc, _, _, _ := newTestLibraryService(t)

	err := svc.MoveToCollection(context.Background(), "u1", "  ", "collection-1")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("MoveToCollection() error = %v, want ErrValidation", err)
	}
}

func TestMoveToCollection_MissingArticle(t *testing.T) {
	svc, _, _, _ := newTestLibraryService(t)

	err := svc.MoveToCollection(context.Background(), "u1", "no-such-article", "")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("MoveToCollection() error = %v, want ErrNotFound", err)
	}
}

func TestMoveToCollection_MissingTarget(t *testing.T) {
	svc, _, _, _ := newTestLibraryService(t)
	ctx := context.Background()

	saved, err := svc.SaveArticle(ctx, "u1", testSnapshot("https://example.com/a"), "")
	if err != nil {
		t.Fatalf("SaveArticle() error = %v", err)
	}

	err = svc.MoveToCollection(ctx, "u1", saved.ID, "no-such-collection")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("MoveToCollection() into missing collection error = %v, want ErrNotFound", err)
	}
}

func TestMoveToCollection_ForeignTarget(t *testing.T) {
	svc, _, _, _ := newTestLibraryService(t)
	ctx := context.Background()

	saved, err := svc.SaveArticle(ctx, "u1", testSnapshot("https://example.com/a"), "")
	if err != nil {
		t.Fatalf("SaveArticle() error = %v", err)
	}
	c, err := svc.CreateCollection(ctx, "u2", "Theirs")
	if err != nil {
		t.Fatalf("CreateCollection() error = %v", err)
	}

	err = svc.MoveToCollection(ctx, "u1", saved.ID, c.ID)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("MoveToCollection() into foreign collection error = %v, want ErrForbidden", err)
	}

	// The article must still be unfiled
	got, err := svc.ListArticles(ctx, "u1", "")
	if err != nil {
		t.Fatalf("ListArticles() error = %v", err)
	}
	if len(got) != 1 || got[0].CollectionID != "" {
		t.Errorf("article membership changed by a forbidden move: %+v", got)
	}
}

func TestMoveToCollection_OtherUsersArticle(t *testing.T) {
	svc, _, _, _ := newTestLibraryService(t)
	ctx := context.Background()

	saved, err := svc.SaveArticle(ctx, "u1", testSnapshot("https://example.com/a"), "")
	if err != nil {
		t.Fatalf("SaveArticle() error = %v", err)
	}

	// Someone else's article ID behaves exactly like a missing one
	err = svc.MoveToCollection(ctx, "u2", saved.ID, "")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("MoveToCollection() on foreign article error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// REMOVE TESTS
// =========================================================================

func TestRemoveArticle(t *testing.T) {
	svc, _, _, _ := newTestLibraryService(t)
	ctx := context.Background()

	saved, err := svc.SaveArticle(ctx, "u1", testSnapshot("https://example.com/a"), "")
	if err != nil {
		t.Fatalf("SaveArticle() error = %v", err)
	}

	if err := svc.RemoveArticle(ctx, "u1", saved.ID); err != nil {
		t.Fatalf("RemoveArticle() error = %v", err)
	}

	got, err := svc.ListArticles(ctx, "u1", "")
	if err != nil {
		t.Fatalf("ListArticles() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListArticles() after remove = %d articles, want 0", len(got))
	}

	// Removing again reports not-found; callers treat it as already-done
	if err := svc.RemoveArticle(ctx, "u1", saved.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second RemoveArticle() error = %v, want ErrNotFound", err)
	}
}

func TestRemoveArticle_OtherUsersArticle(t *testing.T) {
	svc, _, _, _ := newTestLibraryService(t)
	ctx := context.Background()

	saved, err := svc.SaveArticle(ctx, "u1", testSnapshot("https://example.com/a"), "")
	if err != nil {
		t.Fatalf("SaveArticle() error = %v", err)
	}

	if err := svc.RemoveArticle(ctx, "u2", saved.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("RemoveArticle() as another user error = %v, want ErrNotFound", err)
	}

	got, err := svc.ListArticles(ctx, "u1", "")
	if err != nil {
		t.Fatalf("ListArticles() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("article was deleted by another user's remove")
	}
}

// =========================================================================
// COLLECTION TESTS
// =========================================================================

func TestCreateCollection_TrimsName(t *testing.T) {
	svc, _, _, _ := newTestLibraryService(t)

	c, err := svc.CreateCollection(context.Background(), "u1", "  Tech  ")
	if err != nil {
		t.Fatalf("CreateCollection() error = %v", err)
	}
	if c.Name != "Tech" {
		t.Errorf("Name = %q, want %q", c.Name, "Tech")
	}
	if c.CreatedAt.After(c.UpdatedAt) {
		t.Errorf("createdAt %v is after updatedAt %v", c.CreatedAt, c.UpdatedAt)
	}
}

func TestCreateCollection_Validation(t *testing.T) {
	svc, _, _, _ := newTestLibraryService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "too long", input: strings.Repeat("x", MaxCollectionNameLength+1), wantErr: true},
		{name: "max length ok", input: strings.Repeat("x", MaxCollectionNameLength), wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCollection(ctx, "u1", tt.input)
			if tt.wantErr && !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("CreateCollection(%q) error = %v, want ErrValidation", tt.input, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("CreateCollection(%q) unexpected error = %v", tt.input, err)
			}
		})
	}
}

func TestDeleteCollection_EmptyID(t *testing.T) {
	svc, _, _, _ := newTestLibraryService(t)

	err := svc.DeleteCollection(context.Background(), "u1", " ")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("DeleteCollection() error = %v, want ErrValidation", err)
	}
}

func TestDeleteCollection_OtherUsersCollection(t *testing.T) {
	svc, _, _, _ := newTestLibraryService(t)
	ctx := context.Background()

	c, err := svc.CreateCollection(ctx, "u1", "Tech")
	if err != nil {
		t.Fatalf("CreateCollection() error = %v", err)
	}

	if err := svc.DeleteCollection(ctx, "u2", c.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("DeleteCollection() as another user error = %v, want ErrNotFound", err)
	}

	got, err := svc.ListCollections(ctx, "u1")
	if err != nil {
		t.Fatalf("ListCollections() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("collection was deleted by another user's delete")
	}
}

// =========================================================================
// END-TO-END SCENARIO
// =========================================================================

func TestLibraryScenario_QuickSaveThenFile(t *testing.T) {
	// The canonical flow: quick-save a search result, later create a
	// collection, file the article into it, and load the library page.
	svc, _, _, _ := newTestLibraryService(t)
	ctx := context.Background()

	saved, err := svc.SaveArticle(ctx, "u1", testSnapshot("https://example.com/go"), "")
	if err != nil {
		t.Fatalf("SaveArticle() error = %v", err)
	}

	tech, err := svc.CreateCollection(ctx, "u1", "Tech")
	if err != nil {
		t.Fatalf("CreateCollection() error = %v", err)
	}

	if err := svc.MoveToCollection(ctx, "u1", saved.ID, tech.ID); err != nil {
		t.Fatalf("MoveToCollection() error = %v", err)
	}

	lib, err := svc.FetchLibrary(ctx, "u1")
	if err != nil {
		t.Fatalf("FetchLibrary() error = %v", err)
	}
	if len(lib.SavedArticles) != 1 {
		t.Fatalf("SavedArticles = %d, want 1", len(lib.SavedArticles))
	}
	a := lib.SavedArticles[0]
	if a.CollectionID != tech.ID {
		t.Errorf("CollectionID = %q, want %q", a.CollectionID, tech.ID)
	}
	if a.CollectionName != "Tech" {
		t.Errorf("CollectionName = %q, want %q", a.CollectionName, "Tech")
	}
}
