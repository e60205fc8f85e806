package request

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"community-backend/internal/domains/account"
	"community-backend/internal/shared/middleware"
	"community-backend/internal/shared/pagination"
	"community-backend/internal/shared/response"
)

// PathID parses an int64 path parameter, writing a 400 on failure.
func PathID(c *gin.Context, param, msg string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		response.BadRequest(c, msg)
		return 0, false
	}
	return id, true
}

// PrincipalAndPathID resolves the acting principal and an int64 path
// parameter in one step, writing the appropriate error response on failure.
func PrincipalAndPathID(c *gin.Context, param, msg string) (account.Principal, int64, bool) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return account.Principal{}, 0, false
	}

	id, ok := PathID(c, param, msg)
	if !ok {
		return account.Principal{}, 0, false
	}

	return p, id, true
}

// CursorFromQuery reads ?before and ?limit into a cursor. An absent limit
// stays zero and falls back to the default downstream; a present limit must
// be positive. Range capping happens in the service so every caller gets the
// same rules.
func CursorFromQuery(c *gin.Context) (pagination.Cursor, bool) {
	var cur pagination.Cursor

	if raw := c.Query("before"); raw != "" {
		before, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(c, "before must be an integer")
			return cur, false
		}
		cur.Before = &before
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "limit must be an integer")
			return cur, false
		}
		if limit <= 0 {
			response.BadRequest(c, "limit must be at least 1")
			return cur, false
		}
		cur.Limit = limit
	}

	return cur, true
}
