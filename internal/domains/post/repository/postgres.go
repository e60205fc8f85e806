package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"community-backend/internal/domains/post"
	"community-backend/internal/shared/pagination"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) post.Repository {
	return &postgresRepository{pool: pool}
}

const postColumns = `id, author_id, title, content, view_count, comments_cnt, created_at, updated_at`

func scanPost(row pgx.Row) (*post.Post, error) {
	var p post.Post
	err := row.Scan(
		&p.ID,
		&p.AuthorID,
		&p.Title,
		&p.Content,
		&p.ViewCount,
		&p.CommentsCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) Save(ctx context.Context, p *post.Post) (int64, error) {
	query := `
		INSERT INTO posts (author_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING id
	`

	var id int64
	if err := r.pool.QueryRow(ctx, query, p.AuthorID, p.Title, p.Content).Scan(&id); err != nil {
		return 0, fmt.Errorf("save post: %w", err)
	}
	return id, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*post.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	p, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// ViewAndFind counts the view and reads the post in one statement, so two
// concurrent reads cannot lose an increment.
func (r *postgresRepository) ViewAndFind(ctx context.Context, id int64) (*post.Post, error) {
	query := `
		UPDATE posts
		SET view_count = view_count + 1
		WHERE id = $1
		RETURNING ` + postColumns

	p, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("view post: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) FindAll(ctx context.Context, cur pagination.Cursor) ([]post.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE ($1::bigint IS NULL OR id < $1)
		ORDER BY id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, cur.Before, cur.Limit)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]post.Post, 0, cur.Limit)
	for rows.Next() {
		var p post.Post
		if err := rows.Scan(
			&p.ID,
			&p.AuthorID,
			&p.Title,
			&p.Content,
			&p.ViewCount,
			&p.CommentsCount,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan post row: %w", err)
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

func (r *postgresRepository) UpdateContent(ctx context.Context, id int64, title, content string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE posts SET title = $2, content = $3, updated_at = now() WHERE id = $1`,
		id, title, content,
	)
	if err != nil {
		return 0, fmt.Errorf("update post: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *postgresRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete post: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ReconcileCommentCounts heals drift between comments_cnt and the comments
// table. Run periodically by the worker.
func (r *postgresRepository) ReconcileCommentCounts(ctx context.Context) (int64, error) {
	query := `
		UPDATE posts p
		SET comments_cnt = c.actual
		FROM (
			SELECT p2.id, COUNT(cm.id) AS actual
			FROM posts p2
			LEFT JOIN comments cm ON cm.post_id = p2.id
			GROUP BY p2.id
		) c
		WHERE p.id = c.id AND p.comments_cnt <> c.actual
	`

	tag, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("reconcile comment counts: %w", err)
	}
	return tag.RowsAffected(), nil
}
