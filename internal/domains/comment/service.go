package comment

import (
	"context"

	"community-backend/internal/domains/account"
	"community-backend/internal/shared/pagination"
)

type Service interface {
	// Create adds a comment under a post for the acting principal.
	Create(ctx context.Context, p account.Principal, postID int64, req CreateCommentRequest) (int64, error)

	// List returns one cursor page of a post's comments, newest first.
	List(ctx context.Context, postID int64, cur pagination.Cursor) ([]Comment, error)

	// Update edits the content; author only.
	Update(ctx context.Context, p account.Principal, id int64, req UpdateCommentRequest) error

	// Delete removes the comment; author or admin.
	Delete(ctx context.Context, p account.Principal, id int64) error
}
