package account

import (
	"context"
)

// MaxListLimit is the hard ceiling on admin listings, preventing unbounded
// scans regardless of what the client asks for.
const MaxListLimit = 1000

// Service is the business-logic contract for account operations. Every
// method returns either a domain value or a taxonomy-tagged failure; no raw
// store or codec error escapes it.
type Service interface {
	// Get returns the account, gated by the authorization policy.
	Get(ctx context.Context, p Principal, id int64) (*AccountResponse, error)

	// List returns up to limit accounts, admin only.
	List(ctx context.Context, p Principal, limit int) ([]AccountResponse, error)

	// Create registers a new account and returns its id.
	Create(ctx context.Context, req CreateAccountRequest) (int64, error)

	// Login verifies credentials and returns the session identity.
	Login(ctx context.Context, req LoginRequest) (*Session, error)

	// ChangeNickname updates the display label. Idempotent when the
	// normalized value equals the current one.
	ChangeNickname(ctx context.Context, p Principal, id int64, nickname string) error

	// ChangePassword rejects reuse of the current password.
	ChangePassword(ctx context.Context, p Principal, id int64, password string) error

	// ChangeEmail sets or clears the optional email.
	ChangeEmail(ctx context.Context, p Principal, id int64, email *string) error

	// GrantRole adds a role label to the account, admin only. Granting a
	// role the account already holds is a no-op.
	GrantRole(ctx context.Context, p Principal, id int64, role string) error

	// Delete removes the account.
	Delete(ctx context.Context, p Principal, id int64) error
}
