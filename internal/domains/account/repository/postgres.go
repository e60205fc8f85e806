package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"community-backend/internal/domains/account"
	"community-backend/pkg/cache"
)

const (
	uniqueViolationCode = "23505"
	cacheTTL            = 15 * time.Minute
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository returns the pgx-backed account store. Reads by id go
// through the cache (cache-aside); every mutation invalidates the entry.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) account.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func cacheKey(id int64) string {
	return fmt.Sprintf("account:%d", id)
}

// ========================================
// LOOKUPS
// ========================================

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*account.Account, error) {
	var a account.Account

	found, err := r.cache.Get(ctx, cacheKey(id), &a)
	if err == nil && found {
		return &a, nil
	}

	query := `
		SELECT id, username, password_hash, nickname, email, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	err = r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Username,
		&a.PasswordHash,
		&a.Nickname,
		&a.Email,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrNotFound
		}
		return nil, fmt.Errorf("find account by id: %w", err)
	}

	// Ignore cache errors; a request must not fail because Redis is down.
	_ = r.cache.Set(ctx, cacheKey(id), &a, cacheTTL)

	return &a, nil
}

func (r *postgresRepository) FindByUsername(ctx context.Context, username string) (*account.Account, error) {
	query := `
		SELECT id, username, password_hash, nickname, email, created_at, updated_at
		FROM accounts
		WHERE username = $1
	`

	var a account.Account
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&a.ID,
		&a.Username,
		&a.PasswordHash,
		&a.Nickname,
		&a.Email,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrNotFound
		}
		return nil, fmt.Errorf("find account by username: %w", err)
	}

	return &a, nil
}

// ========================================
// MUTATIONS
// ========================================

// Save inserts the account and its default role in one statement, so a crash
// cannot leave an account without a role row.
func (r *postgresRepository) Save(ctx context.Context, a *account.Account) (int64, error) {
	query := `
		WITH new_account AS (
			INSERT INTO accounts (username, password_hash, nickname, email, created_at, updated_at)
			VALUES ($1, $2, $3, $4, now(), now())
			RETURNING id
		), default_role AS (
			INSERT INTO account_roles (account_id, role)
			SELECT id, $5 FROM new_account
		)
		SELECT id FROM new_account
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		a.Username,
		a.PasswordHash,
		a.Nickname,
		a.Email,
		account.RoleUser,
	).Scan(&id)
	if err != nil {
		if conflict := uniqueViolation(err); conflict != nil {
			return 0, conflict
		}
		return 0, fmt.Errorf("save account: %w", err)
	}

	return id, nil
}

func (r *postgresRepository) UpdateNickname(ctx context.Context, id int64, nickname string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE accounts SET nickname = $2, updated_at = now() WHERE id = $1`,
		id, nickname,
	)
	if err != nil {
		return 0, fmt.Errorf("update nickname: %w", err)
	}

	_ = r.cache.Delete(ctx, cacheKey(id))
	return tag.RowsAffected(), nil
}

func (r *postgresRepository) UpdateEmail(ctx context.Context, id int64, email *string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE accounts SET email = $2, updated_at = now() WHERE id = $1`,
		id, email,
	)
	if err != nil {
		if conflict := uniqueViolation(err); conflict != nil {
			return 0, conflict
		}
		return 0, fmt.Errorf("update email: %w", err)
	}

	_ = r.cache.Delete(ctx, cacheKey(id))
	return tag.RowsAffected(), nil
}

func (r *postgresRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE accounts SET password_hash = $2, updated_at = now() WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return 0, fmt.Errorf("update password: %w", err)
	}

	_ = r.cache.Delete(ctx, cacheKey(id))
	return tag.RowsAffected(), nil
}

func (r *postgresRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete account: %w", err)
	}

	_ = r.cache.Delete(ctx, cacheKey(id))
	return tag.RowsAffected(), nil
}

// ========================================
// LISTING & ROLES
// ========================================

func (r *postgresRepository) FindAll(ctx context.Context, limit int) ([]account.Account, error) {
	query := `
		SELECT id, username, password_hash, nickname, email, created_at, updated_at
		FROM accounts
		ORDER BY id DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]account.Account, 0, limit)
	for rows.Next() {
		var a account.Account
		if err := rows.Scan(
			&a.ID,
			&a.Username,
			&a.PasswordHash,
			&a.Nickname,
			&a.Email,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

func (r *postgresRepository) FindRolesByAccountID(ctx context.Context, id int64) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT role FROM account_roles WHERE account_id = $1 ORDER BY role`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("find roles: %w", err)
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("scan role row: %w", err)
		}
		roles = append(roles, role)
	}

	return roles, rows.Err()
}

func (r *postgresRepository) AddRole(ctx context.Context, id int64, role string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO account_roles (account_id, role) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		id, role,
	)
	if err != nil {
		return fmt.Errorf("add role: %w", err)
	}
	return nil
}

// ========================================
// ERROR TRANSLATION
// ========================================

// uniqueViolation turns a driver unique-constraint error into the structured
// conflict signal. pgx reports the constraint name directly; for errors
// surfaced through lib/pq the Constraint field is used, and as a last resort
// the key name is sniffed from the message text (best effort, format is
// driver-specific).
func uniqueViolation(err error) *account.ConflictError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		constraint := pgErr.ConstraintName
		if constraint == "" {
			constraint = sniffConstraint(pgErr.Message)
		}
		return account.NewConflictError(constraint, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode {
		constraint := pqErr.Constraint
		if constraint == "" {
			constraint = sniffConstraint(pqErr.Message)
		}
		return account.NewConflictError(constraint, err)
	}

	return nil
}

func sniffConstraint(message string) string {
	for _, key := range []string{"username", "email"} {
		if strings.Contains(message, key) {
			return key
		}
	}
	return ""
}
