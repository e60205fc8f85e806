package account

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is the store-level "no such row" signal. The service layer
// translates it into the taxonomy; it never crosses the transport boundary.
var ErrNotFound = errors.New("account not found")

// ConflictError is the store-level uniqueness-violation signal. Constraint
// carries the offending constraint or column name when the driver provides
// one, so the service can pick a specific client message. It may be empty
// when only opaque error text was available.
type ConflictError struct {
	Constraint string
	cause      error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("unique constraint violated (%s): %v", e.Constraint, e.cause)
}

func (e *ConflictError) Unwrap() error { return e.cause }

// NewConflictError builds the structured violation signal.
func NewConflictError(constraint string, cause error) *ConflictError {
	return &ConflictError{Constraint: constraint, cause: cause}
}

// Repository is the persistence boundary for account records. Update and
// delete operations report rows affected so the service can detect races
// (deleted between fetch and update) without any cross-call locking.
type Repository interface {
	// FindByID returns the account or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*Account, error)

	// FindByUsername returns the account or ErrNotFound. Used by login;
	// expects an already-normalized username.
	FindByUsername(ctx context.Context, username string) (*Account, error)

	// Save inserts a new account (with the default USER role) and returns
	// the generated id. Returns *ConflictError on a uniqueness violation.
	Save(ctx context.Context, a *Account) (int64, error)

	// UpdateNickname returns the number of rows affected.
	UpdateNickname(ctx context.Context, id int64, nickname string) (int64, error)

	// UpdateEmail returns rows affected; *ConflictError on a duplicate email.
	UpdateEmail(ctx context.Context, id int64, email *string) (int64, error)

	// UpdatePassword returns the number of rows affected.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) (int64, error)

	// DeleteByID returns the number of rows affected.
	DeleteByID(ctx context.Context, id int64) (int64, error)

	// FindAll returns up to limit accounts, newest first. The limit is
	// already clamped by the service.
	FindAll(ctx context.Context, limit int) ([]Account, error)

	// FindRolesByAccountID returns the role labels granted to the account.
	FindRolesByAccountID(ctx context.Context, id int64) ([]string, error)

	// AddRole grants a role label to the account.
	AddRole(ctx context.Context, id int64, role string) error
}
