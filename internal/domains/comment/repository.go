package comment

import (
	"context"
	"errors"

	"community-backend/internal/shared/pagination"
)

// Store-level signals, translated by the service layer.
var (
	ErrNotFound     = errors.New("comment not found")
	ErrPostNotFound = errors.New("post not found")
)

type Repository interface {
	// Save inserts the comment and bumps the parent's comment counter in
	// one atomic statement. Returns the generated id, or ErrPostNotFound
	// when the parent does not exist.
	Save(ctx context.Context, c *Comment) (int64, error)

	// FindByID returns the comment or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*Comment, error)

	// FindAllByPostID returns one cursor page of the post's comments,
	// newest first, ids strictly below cur.Before when set.
	FindAllByPostID(ctx context.Context, postID int64, cur pagination.Cursor) ([]Comment, error)

	// UpdateContent returns the number of rows affected.
	UpdateContent(ctx context.Context, id int64, content string) (int64, error)

	// DeleteByID removes the comment and decrements the parent's counter
	// in one atomic statement. Returns the number of rows affected.
	DeleteByID(ctx context.Context, id int64) (int64, error)
}
