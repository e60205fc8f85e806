package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"community-backend/internal/domains/comment"
	"community-backend/internal/shared/request"
	"community-backend/internal/shared/response"
)

// CommentHandler is the HTTP layer over the comment service.
type CommentHandler struct {
	service comment.Service
}

func NewCommentHandler(service comment.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

// Create handles POST /posts/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	p, postID, ok := request.PrincipalAndPathID(c, "id", "invalid post id")
	if !ok {
		return
	}

	var req comment.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	id, err := h.service.Create(c.Request.Context(), p, postID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"id": id})
}

// List handles GET /posts/:id/comments?before=n&limit=n
func (h *CommentHandler) List(c *gin.Context) {
	postID, ok := request.PathID(c, "id", "invalid post id")
	if !ok {
		return
	}

	cur, ok := request.CursorFromQuery(c)
	if !ok {
		return
	}

	comments, err := h.service.List(c.Request.Context(), postID, cur)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, comments, &response.Meta{
		Limit:  cur.Limit,
		Before: cur.Before,
		Count:  len(comments),
	})
}

// Update handles PUT /comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	p, id, ok := request.PrincipalAndPathID(c, "id", "invalid comment id")
	if !ok {
		return
	}

	var req comment.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.service.Update(c.Request.Context(), p, id, req); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, nil)
}

// Delete handles DELETE /comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	p, id, ok := request.PrincipalAndPathID(c, "id", "invalid comment id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), p, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, nil)
}
