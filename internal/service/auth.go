// Package service — authentication business logic.
//
// AuthService is the business logic layer for authentication. It sits between
// the HTTP handlers and the repository/auth utilities:
//
//	AuthHandler (HTTP) → AuthService (business rules) → UserRepository (DB)
//	                   ↘ TokenService (JWT), PasswordService (bcrypt)
//
// KEY RESPONSIBILITIES:
//   - Credentials sign-up and login (email + bcrypt-hashed password)
//   - Google OAuth callback: provision the user, issue tokens
//   - Idempotent user provisioning: an account record is created on first
//     successful authentication and never deleted here
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/news-library/internal/apperror"
	"github.com/sakif/news-library/internal/auth"
	"github.com/sakif/news-library/internal/model"
	"github.com/sakif/news-library/internal/repository"
)

const minPasswordLength = 8

// AuthService handles the authentication business logic.
//
// DEPENDENCIES (injected via NewAuthService):
//   - users      repository.UserRepository  → read/write account records
//   - tokens     *auth.TokenService         → generate/validate JWTs
//   - passwords  *auth.PasswordService      → bcrypt hashing
//   - logger     *slog.Logger               → structured logging
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
// Called from server.go when wiring the dependency graph.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult is returned by authentication operations. It bundles the user
// record and the issued JWT so the handler can set the cookie and respond in
// one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// SignUp registers a new account with email and password.
//
// Validation: plausible email, password of at least 8 characters. A duplicate
// email is a Conflict — the account already exists and sign-up must not
// silently become login.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperror.ValidationFailed("email", "a valid email address is required")
	}
	if len(password) < minPasswordLength {
		return nil, apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	if existing, err := s.users.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperror.Conflict("user", email)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Email:        email,
		Role:         "user",
		PasswordHash: hash,
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: creating user (email=%s): %w", email, err)
	}

	s.logger.Info("user signed up",
		slog.String("userID", user.ID),
		slog.String("email", user.Email),
	)

	return s.issueToken(user)
}

// Login authenticates an existing account with email and password.
//
// A missing account and a wrong password both surface as the same Forbidden
// error — the response must not reveal which emails have accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Forbidden("invalid email or password")
	}
	if user.PasswordHash == "" {
		// OAuth-only account — no password to check.
		return nil, apperror.Forbidden("invalid email or password")
	}
	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.Forbidden("invalid email or password")
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))

	return s.issueToken(user)
}

// LoginOrRegisterGoogle handles the Google OAuth callback.
//
// After the handler exchanges the authorization code for a GoogleUser profile,
// this method:
//
//  1. Upserts the account (create on first login; subsequent logins keep the
//     stored ID, role, and signUpDate — provisioning is idempotent)
//  2. Issues a JWT access token
//
// An existing credentials account with the same email is linked to the Google
// subject rather than duplicated.
func (s *AuthService) LoginOrRegisterGoogle(ctx context.Context, gUser *auth.GoogleUser) (*AuthResult, error) {
	if gUser == nil {
		return nil, fmt.Errorf("service/auth: Google user must not be nil")
	}

	// Prefer the subject link; fall back to email-based upsert for accounts
	// that haven't used Google before.
	user, err := s.users.GetByGoogleID(ctx, gUser.Sub)
	if err != nil {
		user = &model.User{
			Email:    strings.ToLower(gUser.Email),
			Role:     "user",
			GoogleID: gUser.Sub,
		}
		if err := s.users.Upsert(ctx, user); err != nil {
			return nil, fmt.Errorf("service/auth: upserting user (sub=%s): %w", gUser.Sub, err)
		}
	}

	s.logger.Info("user authenticated via Google",
		slog.String("userID", user.ID),
		slog.String("email", user.Email),
	)

	return s.issueToken(user)
}

// GetUserByID returns the user for the given internal ID.
//
// Used by the /api/me handler after the middleware validates the JWT and
// extracts the userID from the token's Subject claim.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, fmt.Errorf("service/auth: user ID must not be empty")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/auth: fetching user %s: %w", id, err)
	}

	return user, nil
}

// ValidateToken validates a JWT string and returns the userID it encodes.
// Thin delegation to TokenService.Validate so callers only need this package.
func (s *AuthService) ValidateToken(tokenStr string) (string, error) {
	userID, err := s.tokens.Validate(tokenStr)
	if err != nil {
		return "", fmt.Errorf("service/auth: %w", err)
	}
	return userID, nil
}

func (s *AuthService) issueToken(user *model.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}
	return &AuthResult{User: user, Token: token}, nil
}
