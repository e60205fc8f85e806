package post

import (
	"context"

	"community-backend/internal/domains/account"
	"community-backend/internal/shared/pagination"
)

// MaxPageSize caps one page of post or comment listings.
const MaxPageSize = 100

type Service interface {
	// Create publishes a new post for the acting principal.
	Create(ctx context.Context, p account.Principal, req CreatePostRequest) (int64, error)

	// Get returns the post and counts the view.
	Get(ctx context.Context, id int64) (*Post, error)

	// List returns one cursor page of posts, newest first.
	List(ctx context.Context, cur pagination.Cursor) ([]Post, error)

	// Update edits title/content; author or admin only.
	Update(ctx context.Context, p account.Principal, id int64, req UpdatePostRequest) error

	// Delete removes the post; author or admin only.
	Delete(ctx context.Context, p account.Principal, id int64) error
}
