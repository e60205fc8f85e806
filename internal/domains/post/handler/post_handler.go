package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"community-backend/internal/domains/post"
	"community-backend/internal/shared/middleware"
	"community-backend/internal/shared/request"
	"community-backend/internal/shared/response"
)

// PostHandler is the HTTP layer over the post service.
type PostHandler struct {
	service post.Service
}

func NewPostHandler(service post.Service) *PostHandler {
	return &PostHandler{service: service}
}

// Create handles POST /posts
func (h *PostHandler) Create(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req post.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	id, err := h.service.Create(c.Request.Context(), p, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Location", "/api/v1/posts/"+strconv.FormatInt(id, 10))
	response.Success(c, http.StatusCreated, gin.H{"id": id})
}

// Get handles GET /posts/:id and records the view.
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := request.PathID(c, "id", "invalid post id")
	if !ok {
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, found)
}

// List handles GET /posts?before=n&limit=n
func (h *PostHandler) List(c *gin.Context) {
	cur, ok := request.CursorFromQuery(c)
	if !ok {
		return
	}

	posts, err := h.service.List(c.Request.Context(), cur)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, posts, &response.Meta{
		Limit:  cur.Limit,
		Before: cur.Before,
		Count:  len(posts),
	})
}

// Update handles PUT /posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	p, id, ok := request.PrincipalAndPathID(c, "id", "invalid post id")
	if !ok {
		return
	}

	var req post.UpdatePostRequest
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

// Delete handles DELETE /posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	p, id, ok := request.PrincipalAndPathID(c, "id", "invalid post id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), p, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, nil)
}
