package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"community-backend/internal/domains/account"
	"community-backend/internal/domains/comment"
	"community-backend/internal/shared/apperr"
	"community-backend/internal/shared/pagination"
)

type fakeRepo struct {
	comments map[int64]*comment.Comment
	posts    map[int64]bool
	nextID   int64
}

func newFakeRepo(postIDs ...int64) *fakeRepo {
	r := &fakeRepo{
		comments: make(map[int64]*comment.Comment),
		posts:    make(map[int64]bool),
		nextID:   1,
	}
	for _, id := range postIDs {
		r.posts[id] = true
	}
	return r
}

func (r *fakeRepo) Save(_ context.Context, c *comment.Comment) (int64, error) {
	if !r.posts[c.PostID] {
		return 0, comment.ErrPostNotFound
	}
	id := r.nextID
	r.nextID++
	stored := *c
	stored.ID = id
	stored.CreatedAt = time.Now()
	r.comments[id] = &stored
	return id, nil
}

func (r *fakeRepo) FindByID(_ context.Context, id int64) (*comment.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, comment.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) FindAllByPostID(_ context.Context, postID int64, cur pagination.Cursor) ([]comment.Comment, error) {
	var all []comment.Comment
	for _, c := range r.comments {
		if c.PostID != postID {
			continue
		}
		if cur.Before != nil && c.ID >= *cur.Before {
			continue
		}
		all = append(all, *c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if len(all) > cur.Limit {
		all = all[:cur.Limit]
	}
	return all, nil
}

func (r *fakeRepo) UpdateContent(_ context.Context, id int64, content string) (int64, error) {
	c, ok := r.comments[id]
	if !ok {
		return 0, nil
	}
	c.Content = content
	return 1, nil
}

func (r *fakeRepo) DeleteByID(_ context.Context, id int64) (int64, error) {
	if _, ok := r.comments[id]; !ok {
		return 0, nil
	}
	delete(r.comments, id)
	return 1, nil
}

func author(id int64) account.Principal {
	return account.Principal{AccountID: id, Roles: []string{account.RoleUser}}
}

var admin = account.Principal{AccountID: 999, Roles: []string{account.RoleAdmin}}

func seedComments(t *testing.T, svc comment.Service, postID int64, n int) []int64 {
	t.Helper()
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		id, err := svc.Create(context.Background(), author(1), postID, comment.CreateCommentRequest{Content: "comment"})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func commentIDs(comments []comment.Comment) []int64 {
	ids := make([]int64, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}
	return ids
}

// ========================================
// CURSOR PAGINATION
// ========================================

func TestListPagesNewestFirstStrictlyBeforeCursor(t *testing.T) {
	repo := newFakeRepo(10)
	svc := NewCommentService(repo)
	seedComments(t, svc, 10, 5) // ids 1..5

	ctx := context.Background()

	t.Run("no cursor returns the most recent page", func(t *testing.T) {
		got, err := svc.List(ctx, 10, pagination.Cursor{Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, []int64{5, 4}, commentIDs(got))
	})

	t.Run("cursor bounds the page exclusively", func(t *testing.T) {
		before := int64(4)
		got, err := svc.List(ctx, 10, pagination.Cursor{Before: &before, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 2}, commentIDs(got))
	})

	t.Run("page never reaches the cursor even after inserts", func(t *testing.T) {
		before := int64(4)
		seedComments(t, svc, 10, 3) // concurrent newer comments

		got, err := svc.List(ctx, 10, pagination.Cursor{Before: &before, Limit: 10})
		require.NoError(t, err)
		for _, id := range commentIDs(got) {
			assert.Less(t, id, before)
		}
	})

	t.Run("default limit applies when unset", func(t *testing.T) {
		got, err := svc.List(ctx, 10, pagination.Cursor{})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(got), pagination.DefaultLimit)
	})

	t.Run("non-positive limit is rejected", func(t *testing.T) {
		_, err := svc.List(ctx, 10, pagination.Cursor{Limit: -1})
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))
	})
}

// ========================================
// CREATE
// ========================================

func TestCreateUnderMissingPostIsNotFound(t *testing.T) {
	svc := NewCommentService(newFakeRepo(10))

	_, err := svc.Create(context.Background(), author(1), 404, comment.CreateCommentRequest{Content: "hello"})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCreateRejectsEmptyContent(t *testing.T) {
	svc := NewCommentService(newFakeRepo(10))

	_, err := svc.Create(context.Background(), author(1), 10, comment.CreateCommentRequest{})
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))
}

// ========================================
// OWNERSHIP
// ========================================

func TestUpdateIsAuthorOnly(t *testing.T) {
	repo := newFakeRepo(10)
	svc := NewCommentService(repo)
	id := seedComments(t, svc, 10, 1)[0]

	ctx := context.Background()
	req := comment.UpdateCommentRequest{Content: "edited"}

	assert.True(t, apperr.IsKind(svc.Update(ctx, author(2), id, req), apperr.KindForbidden))
	// Admins moderate by deletion, not by rewriting someone's words.
	assert.True(t, apperr.IsKind(svc.Update(ctx, admin, id, req), apperr.KindForbidden))

	require.NoError(t, svc.Update(ctx, author(1), id, req))
	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)
}

func TestDeleteIsAuthorOrAdmin(t *testing.T) {
	repo := newFakeRepo(10)
	svc := NewCommentService(repo)
	ids := seedComments(t, svc, 10, 2)

	ctx := context.Background()

	assert.True(t, apperr.IsKind(svc.Delete(ctx, author(2), ids[0]), apperr.KindForbidden))
	require.NoError(t, svc.Delete(ctx, author(1), ids[0]))
	require.NoError(t, svc.Delete(ctx, admin, ids[1]))

	err := svc.Delete(ctx, admin, ids[1])
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
