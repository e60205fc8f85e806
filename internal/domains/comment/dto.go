package comment

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateCommentRequest - POST /posts/:id/comments
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(1, 2000),
		),
	)
}

// UpdateCommentRequest - PUT /comments/:id
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (r UpdateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(1, 2000),
		),
	)
}
