package service

import (
	"context"
	"errors"

	"community-backend/internal/domains/account"
	"community-backend/internal/domains/post"
	"community-backend/internal/shared/apperr"
	"community-backend/internal/shared/pagination"
)

type postService struct {
	repo post.Repository
}

func NewPostService(repo post.Repository) post.Service {
	return &postService{repo: repo}
}

func (s *postService) Create(ctx context.Context, p account.Principal, req post.CreatePostRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, apperr.Wrap(apperr.KindInvalidRequest, err.Error(), err)
	}

	id, err := s.repo.Save(ctx, &post.Post{
		AuthorID: p.AccountID,
		Title:    req.Title,
		Content:  req.Content,
	})
	if err != nil {
		return 0, apperr.Internal(err)
	}

	return id, nil
}

func (s *postService) Get(ctx context.Context, id int64) (*post.Post, error) {
	found, err := s.repo.ViewAndFind(ctx, id)
	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "post not found")
		}
		return nil, apperr.Internal(err)
	}
	return found, nil
}

func (s *postService) List(ctx context.Context, cur pagination.Cursor) ([]post.Post, error) {
	cur, err := cur.Normalize(pagination.DefaultLimit, post.MaxPageSize)
	if err != nil {
		return nil, err
	}

	posts, err := s.repo.FindAll(ctx, cur)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return posts, nil
}

func (s *postService) Update(ctx context.Context, p account.Principal, id int64, req post.UpdatePostRequest) error {
	if err := req.Validate(); err != nil {
		return apperr.Wrap(apperr.KindInvalidRequest, err.Error(), err)
	}

	current, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}

	// Same rule as account mutations: admin, or the author itself.
	if !account.CanAct(p, current.AuthorID) {
		return apperr.New(apperr.KindForbidden, "not allowed to modify this post")
	}

	rows, err := s.repo.UpdateContent(ctx, id, req.Title, req.Content)
	if err != nil {
		return apperr.Internal(err)
	}
	if rows == 0 {
		return apperr.New(apperr.KindNotFound, "post not found")
	}

	return nil
}

func (s *postService) Delete(ctx context.Context, p account.Principal, id int64) error {
	current, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}

	if !account.CanAct(p, current.AuthorID) {
		return apperr.New(apperr.KindForbidden, "not allowed to modify this post")
	}

	rows, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if rows == 0 {
		return apperr.New(apperr.KindNotFound, "post not found")
	}

	return nil
}

func (s *postService) fetch(ctx context.Context, id int64) (*post.Post, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "post not found")
		}
		return nil, apperr.Internal(err)
	}
	return found, nil
}
