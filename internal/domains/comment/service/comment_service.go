package service

import (
	"context"
	"errors"

	"community-backend/internal/domains/account"
	"community-backend/internal/domains/comment"
	"community-backend/internal/domains/post"
	"community-backend/internal/shared/apperr"
	"community-backend/internal/shared/pagination"
)

type commentService struct {
	repo comment.Repository
}

func NewCommentService(repo comment.Repository) comment.Service {
	return &commentService{repo: repo}
}

func (s *commentService) Create(ctx context.Context, p account.Principal, postID int64, req comment.CreateCommentRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, apperr.Wrap(apperr.KindInvalidRequest, err.Error(), err)
	}

	id, err := s.repo.Save(ctx, &comment.Comment{
		PostID:   postID,
		AuthorID: p.AccountID,
		Content:  req.Content,
	})
	if err != nil {
		if errors.Is(err, comment.ErrPostNotFound) {
			return 0, apperr.New(apperr.KindNotFound, "post not found")
		}
		return 0, apperr.Internal(err)
	}

	return id, nil
}

func (s *commentService) List(ctx context.Context, postID int64, cur pagination.Cursor) ([]comment.Comment, error) {
	cur, err := cur.Normalize(pagination.DefaultLimit, post.MaxPageSize)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.FindAllByPostID(ctx, postID, cur)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return comments, nil
}

func (s *commentService) Update(ctx context.Context, p account.Principal, id int64, req comment.UpdateCommentRequest) error {
	if err := req.Validate(); err != nil {
		return apperr.Wrap(apperr.KindInvalidRequest, err.Error(), err)
	}

	current, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}

	// Editing another author's words is off limits even for admins;
	// admins moderate by deletion.
	if current.AuthorID != p.AccountID {
		return apperr.New(apperr.KindForbidden, "not allowed to edit this comment")
	}

	rows, err := s.repo.UpdateContent(ctx, id, req.Content)
	if err != nil {
		return apperr.Internal(err)
	}
	if rows == 0 {
		return apperr.New(apperr.KindNotFound, "comment not found")
	}

	return nil
}

func (s *commentService) Delete(ctx context.Context, p account.Principal, id int64) error {
	current, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}

	if !account.CanAct(p, current.AuthorID) {
		return apperr.New(apperr.KindForbidden, "not allowed to delete this comment")
	}

	rows, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if rows == 0 {
		return apperr.New(apperr.KindNotFound, "comment not found")
	}

	return nil
}

func (s *commentService) fetch(ctx context.Context, id int64) (*comment.Comment, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, comment.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "comment not found")
		}
		return nil, apperr.Internal(err)
	}
	return found, nil
}
