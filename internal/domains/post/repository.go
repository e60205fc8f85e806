package post

import (
	"context"
	"errors"

	"community-backend/internal/shared/pagination"
)

// ErrNotFound is the store-level "no such row" signal for posts.
var ErrNotFound = errors.New("post not found")

type Repository interface {
	// Save inserts a new post and returns the generated id.
	Save(ctx context.Context, p *Post) (int64, error)

	// FindByID returns the post or ErrNotFound. It does not touch the view
	// counter; ViewAndFind does.
	FindByID(ctx context.Context, id int64) (*Post, error)

	// ViewAndFind bumps the view counter and returns the updated post in
	// one atomic statement, or ErrNotFound.
	ViewAndFind(ctx context.Context, id int64) (*Post, error)

	// FindAll returns one cursor page of posts, newest first.
	FindAll(ctx context.Context, cur pagination.Cursor) ([]Post, error)

	// UpdateContent returns the number of rows affected.
	UpdateContent(ctx context.Context, id int64, title, content string) (int64, error)

	// DeleteByID returns the number of rows affected. Child comments go
	// with the post (ON DELETE CASCADE).
	DeleteByID(ctx context.Context, id int64) (int64, error)

	// ReconcileCommentCounts recomputes comments_cnt from the comments
	// table and returns how many posts were corrected. Used by the worker.
	ReconcileCommentCounts(ctx context.Context) (int64, error)
}
