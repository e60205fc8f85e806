package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"community-backend/internal/domains/account"
	"community-backend/internal/shared/middleware"
	"community-backend/internal/shared/request"
	"community-backend/internal/shared/response"
	"community-backend/pkg/jwt"
)

// AccountHandler is the thin HTTP layer over the account service: bind,
// validate, resolve the principal, delegate, shape the response.
type AccountHandler struct {
	service    account.Service
	jwtManager *jwt.Manager
	tokenTTL   time.Duration
}

func NewAccountHandler(service account.Service, jwtManager *jwt.Manager, tokenExpiryMinutes int) *AccountHandler {
	return &AccountHandler{
		service:    service,
		jwtManager: jwtManager,
		tokenTTL:   time.Duration(tokenExpiryMinutes) * time.Minute,
	}
}

// ========================================
// PUBLIC ENDPOINTS
// ========================================

// Signup handles POST /auth/signup
func (h *AccountHandler) Signup(c *gin.Context) {
	var req account.CreateAccountRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	id, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Location", "/api/v1/users/"+strconv.FormatInt(id, 10))
	response.Success(c, http.StatusCreated, gin.H{"id": id})
}

// Login handles POST /auth/login
func (h *AccountHandler) Login(c *gin.Context) {
	var req account.LoginRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	sess, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(sess.AccountID, sess.Roles)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, account.LoginResponse{
		AccountID:   sess.AccountID,
		AccessToken: token,
		ExpiresAt:   time.Now().Add(h.tokenTTL),
	})
}

// ========================================
// AUTHENTICATED ENDPOINTS
// ========================================

// Get handles GET /users/:id
func (h *AccountHandler) Get(c *gin.Context) {
	p, id, ok := h.principalAndTarget(c)
	if !ok {
		return
	}

	acc, err := h.service.Get(c.Request.Context(), p, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, acc)
}

// List handles GET /users?limit=n (admin only)
func (h *AccountHandler) List(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil {
		response.BadRequest(c, "limit must be an integer")
		return
	}

	accounts, svcErr := h.service.List(c.Request.Context(), p, limit)
	if svcErr != nil {
		response.FromError(c, svcErr)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, accounts, &response.Meta{
		Limit: limit,
		Count: len(accounts),
	})
}

// ChangeNickname handles PUT /users/:id/nickname
func (h *AccountHandler) ChangeNickname(c *gin.Context) {
	p, id, ok := h.principalAndTarget(c)
	if !ok {
		return
	}

	var req account.ChangeNicknameRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	if err := h.service.ChangeNickname(c.Request.Context(), p, id, req.Nickname); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, nil)
}

// ChangePassword handles PUT /users/:id/password
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	p, id, ok := h.principalAndTarget(c)
	if !ok {
		return
	}

	var req account.ChangePasswordRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), p, id, req.Password); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, nil)
}

// ChangeEmail handles PUT /users/:id/email
func (h *AccountHandler) ChangeEmail(c *gin.Context) {
	p, id, ok := h.principalAndTarget(c)
	if !ok {
		return
	}

	var req account.ChangeEmailRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	if err := h.service.ChangeEmail(c.Request.Context(), p, id, req.Email); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, nil)
}

// GrantRole handles PUT /users/:id/role (admin only)
func (h *AccountHandler) GrantRole(c *gin.Context) {
	p, id, ok := h.principalAndTarget(c)
	if !ok {
		return
	}

	var req account.GrantRoleRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	if err := h.service.GrantRole(c.Request.Context(), p, id, req.Role); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, nil)
}

// Delete handles DELETE /users/:id
func (h *AccountHandler) Delete(c *gin.Context) {
	p, id, ok := h.principalAndTarget(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), p, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, nil)
}

// ========================================
// HELPERS
// ========================================

type validatable interface {
	Validate() error
}

func (h *AccountHandler) bindAndValidate(c *gin.Context, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "invalid request body")
		return false
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "validation failed", err)
		return false
	}
	return true
}

func (h *AccountHandler) principalAndTarget(c *gin.Context) (account.Principal, int64, bool) {
	return request.PrincipalAndPathID(c, "id", "invalid account id")
}
