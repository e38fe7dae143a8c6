// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Users sign up with email+password or arrive through Google OAuth. We generate
// our own internal string ID (xid) rather than reusing the identity provider's
// subject, so primary keys are never tied to a third party's numbering scheme.
//
// WHY PasswordHash `json:"-"`?
// The dash tag tells encoding/json to NEVER serialize this field. A user record
// is returned by /api/me, and a bcrypt hash must not leak into API responses.
//
// GoogleID is empty for credentials-only accounts. The UNIQUE index on google_id
// in the DB (for non-empty values) maps one Google account to one app account.
type User struct {
	ID           string    `json:"id"         db:"id"`
	Email        string    `json:"email"      db:"email"`
	Role         string    `json:"role"       db:"role"` // "user" for self-service signups
	PasswordHash string    `json:"-"          db:"password_hash"`
	GoogleID     string    `json:"-"          db:"google_id"` // OAuth subject, empty for password accounts
	SignUpDate   time.Time `json:"signUpDate" db:"sign_up_date"`
}
