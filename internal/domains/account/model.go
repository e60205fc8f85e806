package account

import (
	"time"
)

// Account is the identity unit. PasswordHash never leaves the domain: the
// outward representation is AccountResponse, which has no hash field.
type Account struct {
	ID           int64      `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"` // unique, lowercase, login only
	PasswordHash string     `db:"password_hash" json:"-"`
	Nickname     string     `db:"nickname" json:"nickname"`
	Email        *string    `db:"email" json:"email,omitempty"` // unique when present
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Session is what a successful login yields: the account id plus the role
// labels to embed in the access token.
type Session struct {
	AccountID int64
	Roles     []string
}

// CredentialCodec is the one-way credential capability. Verify must be a
// constant-time comparison.
type CredentialCodec interface {
	Encode(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}
