package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"community-backend/internal/domains/comment"
	"community-backend/internal/shared/pagination"
)

const foreignKeyViolationCode = "23503"

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) comment.Repository {
	return &postgresRepository{pool: pool}
}

// Save inserts the comment and bumps the parent's counter in one statement;
// there is no cross-call transaction to lose half of.
func (r *postgresRepository) Save(ctx context.Context, c *comment.Comment) (int64, error) {
	query := `
		WITH new_comment AS (
			INSERT INTO comments (post_id, author_id, content, created_at, updated_at)
			VALUES ($1, $2, $3, now(), now())
			RETURNING id, post_id
		), bump AS (
			UPDATE posts SET comments_cnt = comments_cnt + 1
			WHERE id = (SELECT post_id FROM new_comment)
		)
		SELECT id FROM new_comment
	`

	var id int64
	err := r.pool.QueryRow(ctx, query, c.PostID, c.AuthorID, c.Content).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
			return 0, comment.ErrPostNotFound
		}
		return 0, fmt.Errorf("save comment: %w", err)
	}

	return id, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*comment.Comment, error) {
	query := `
		SELECT id, post_id, author_id, content, created_at, updated_at
		FROM comments
		WHERE id = $1
	`

	var c comment.Comment
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.PostID,
		&c.AuthorID,
		&c.Content,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, comment.ErrNotFound
		}
		return nil, fmt.Errorf("find comment by id: %w", err)
	}

	return &c, nil
}

// FindAllByPostID pages newest-first with the id as ordering key. The
// strict `id < before` bound keeps a page from ever containing an item at
// or past the cursor, no matter what is inserted concurrently.
func (r *postgresRepository) FindAllByPostID(ctx context.Context, postID int64, cur pagination.Cursor) ([]comment.Comment, error) {
	query := `
		SELECT id, post_id, author_id, content, created_at, updated_at
		FROM comments
		WHERE post_id = $1
		  AND ($2::bigint IS NULL OR id < $2)
		ORDER BY id DESC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, postID, cur.Before, cur.Limit)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]comment.Comment, 0, cur.Limit)
	for rows.Next() {
		var c comment.Comment
		if err := rows.Scan(
			&c.ID,
			&c.PostID,
			&c.AuthorID,
			&c.Content,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

func (r *postgresRepository) UpdateContent(ctx context.Context, id int64, content string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE comments SET content = $2, updated_at = now() WHERE id = $1`,
		id, content,
	)
	if err != nil {
		return 0, fmt.Errorf("update comment: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *postgresRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	query := `
		WITH deleted AS (
			DELETE FROM comments WHERE id = $1
			RETURNING post_id
		), drop_count AS (
			UPDATE posts SET comments_cnt = comments_cnt - 1
			WHERE id IN (SELECT post_id FROM deleted)
		)
		SELECT count(*) FROM deleted
	`

	var deleted int64
	if err := r.pool.QueryRow(ctx, query, id).Scan(&deleted); err != nil {
		return 0, fmt.Errorf("delete comment: %w", err)
	}
	return deleted, nil
}
