// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer — it connects handlers, middleware, and
// routes. It decides which URL patterns map to which handlers, what middleware
// runs where, and how the server starts and stops gracefully.
//
// DEPENDENCY INJECTION FLOW:
// main.go provides the Config; New() assembles the whole chain in one place:
//
//	sqlite.DB → services (auth, settings, library, search) → handlers → routes
//
// This is the "composition root" pattern — all dependencies are wired here,
// not scattered across the codebase. There is no ambient global state: the
// DB handle is owned by the Server and closed on shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/news-library/internal/auth"
	"github.com/sakif/news-library/internal/handler"
	"github.com/sakif/news-library/internal/middleware"
	"github.com/sakif/news-library/internal/news"
	sqliteRepo "github.com/sakif/news-library/internal/repository/sqlite"
	"github.com/sakif/news-library/internal/service"
)

// Config holds server configuration, loaded from the environment in main.go.
type Config struct {
	Port               int
	DBPath             string // path to the SQLite database file
	JWTSecret          string // HMAC key for session tokens (required)
	GoogleClientID     string // optional — Google login disabled when empty
	GoogleClientSecret string
	GoogleCallbackURL  string
	NewsAPIBaseURL     string // optional override, defaults to newsapi.org
}

// Server owns the router and the process-wide resources (the DB handle).
// Start() runs until shutdown and closes those resources on the way out.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server: opens the database, builds the service layer, wires
// the routes. On any wiring failure the DB is closed before returning.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	POST /auth/signup                    → credentials sign-up
//	POST /auth/login                     → credentials login
//	POST /auth/logout                    → clear session cookie
//	GET  /auth/google/login              → redirect to Google (when configured)
//	GET  /auth/google/callback           → OAuth callback
//	GET  /api/me                         → current user profile
//	GET  /api/onboarding                 → onboarding status
//	POST /api/onboarding                 → complete onboarding
//	GET/PUT/PATCH /api/settings          → read / replace / merge settings
//	GET  /api/library                    → aggregated library view
//	GET  /api/search?q=                  → external news search
//	GET/POST /api/articles               → list / save articles
//	PUT  /api/articles/{id}/collection   → move article
//	DELETE /api/articles/{id}            → remove article
//	GET/POST /api/collections            → list / create collections
//	DELETE /api/collections/{id}         → delete collection (articles unfiled)
//
// Everything under /api requires a valid session; the /auth routes are public.
func (s *Server) setupRoutes() error {
	// Global middleware, in order: request ID for tracing, real client IP
	// behind proxies, panic recovery, then our structured request logging.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	var google *auth.GoogleProvider
	if s.config.GoogleClientID != "" && s.config.GoogleClientSecret != "" {
		google = auth.NewGoogleProvider(
			s.config.GoogleClientID,
			s.config.GoogleClientSecret,
			s.config.GoogleCallbackURL,
		)
	}

	// DEPENDENCY CHAIN:
	// s.db carries one store per repository interface; each service receives
	// only the stores it needs, each handler only its service.
	authService := service.NewAuthService(s.db.Users, tokens, passwords, s.logger)
	settingsService := service.NewSettingsService(s.db.Settings, s.logger)
	libraryService := service.NewLibraryService(s.db.Articles, s.db.Collections, s.db.Settings, s.logger)
	searchService := service.NewSearchService(s.db.Settings, news.New(s.config.NewsAPIBaseURL), s.logger)

	authHandler := handler.NewAuthHandler(authService, google, s.logger)
	settingsHandler := handler.NewSettingsHandler(settingsService, s.logger)
	libraryHandler := handler.NewLibraryHandler(libraryService, s.logger)
	searchHandler := handler.NewSearchHandler(searchService, s.logger)

	s.router.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.HandleSignUp)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)
		if google != nil {
			r.Get("/google/login", authHandler.HandleGoogleLogin)
			r.Get("/google/callback", authHandler.HandleGoogleCallback)
		}
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))

		r.Get("/me", authHandler.HandleMe)

		r.Get("/onboarding", settingsHandler.HandleCheckOnboarding)
		r.Post("/onboarding", settingsHandler.HandleCompleteOnboarding)
		r.Get("/settings", settingsHandler.HandleGetSettings)
		r.Put("/settings", settingsHandler.HandleReplaceSettings)
		r.Patch("/settings", settingsHandler.HandleMergeSettings)

		r.Get("/library", libraryHandler.HandleFetchLibrary)
		r.Get("/search", searchHandler.HandleSearch)

		r.Get("/articles", libraryHandler.HandleListArticles)
		r.Post("/articles", libraryHandler.HandleSaveArticle)
		r.Put("/articles/{id}/collection", libraryHandler.HandleMoveArticle)
		r.Delete("/articles/{id}", libraryHandler.HandleRemoveArticle)

		r.Get("/collections", libraryHandler.HandleListCollections)
		r.Post("/collections", libraryHandler.HandleCreateCollection)
		r.Delete("/collections/{id}", libraryHandler.HandleDeleteCollection)
	})

	return nil
}

// Start starts the HTTP server and handles graceful shutdown:
//  1. Stop accepting new connections on SIGINT/SIGTERM
//  2. Wait up to 30s for in-flight requests
//  3. Close the database (flushes WAL, releases the file lock)
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
