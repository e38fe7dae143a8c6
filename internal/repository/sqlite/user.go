package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/news-library/internal/apperror"
	"github.com/sakif/news-library/internal/model"
	"github.com/sakif/news-library/internal/repository"
)

// UserStore persists account records in the users table.
type UserStore struct {
	conn *sql.DB
}

// compile-time check that *UserStore implements repository.UserRepository
var _ repository.UserRepository = (*UserStore)(nil)

// Upsert creates the user if absent, keyed by ID (or by email when no ID is
// set yet, which is the first-login path).
//
// IDEMPOTENT PROVISIONING:
// Authentication calls this on every login. If the account already exists we
// keep the stored ID, role, and signUpDate untouched and only refresh the
// linkable fields (google_id, password_hash when newly provided). Users are
// never deleted by this layer.
func (s *UserStore) Upsert(ctx context.Context, user *model.User) error {
	existing, err := s.GetByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return err
	}

	if existing != nil {
		// Already provisioned — keep identity fields stable.
		user.ID = existing.ID
		user.Role = existing.Role
		user.SignUpDate = existing.SignUpDate
		if user.PasswordHash == "" {
			user.PasswordHash = existing.PasswordHash
		}
		if user.GoogleID == "" {
			user.GoogleID = existing.GoogleID
		}

		_, err = s.conn.ExecContext(ctx,
			`UPDATE users SET password_hash = ?, google_id = ? WHERE id = ?`,
			user.PasswordHash,
			user.GoogleID,
			user.ID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: updating user %s: %w", user.ID, apperror.Unavailable(err))
		}
		return nil
	}

	// New account — generate an ID and INSERT.
	if user.ID == "" {
		user.ID = xid.New().String()
	}
	if user.Role == "" {
		user.Role = "user"
	}
	user.SignUpDate = time.Now()

	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO users (id, email, role, password_hash, google_id, sign_up_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Email,
		user.Role,
		user.PasswordHash,
		user.GoogleID,
		user.SignUpDate,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user (email=%s): %w", user.Email, err)
	}

	return nil
}

// GetByID retrieves a user by their internal ID.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (s *UserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.getUser(ctx, `WHERE id = ?`, id)
}

// GetByEmail retrieves a user by email (the credentials login path).
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getUser(ctx, `WHERE email = ?`, email)
}

// GetByGoogleID retrieves the user linked to an OAuth subject.
func (s *UserStore) GetByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	return s.getUser(ctx, `WHERE google_id = ? AND google_id != ''`, googleID)
}

func (s *UserStore) getUser(ctx context.Context, where, key string) (*model.User, error) {
	var u model.User

	err := s.conn.QueryRowContext(ctx,
		`SELECT id, email, role, password_hash, google_id, sign_up_date
		 FROM users `+where,
		key,
	).Scan(
		&u.ID,
		&u.Email,
		&u.Role,
		&u.PasswordHash,
		&u.GoogleID,
		&u.SignUpDate,
	)
	if err != nil {
		// sql.ErrNoRows is a sentinel — database/sql doesn't wrap it, so == is fine.
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", key)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", key, apperror.Unavailable(err))
	}

	return &u, nil
}
