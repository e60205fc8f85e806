package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"community-backend/internal/shared/middleware"
	"community-backend/internal/shared/response"
	"community-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupPostRoutes(v1, c)
		setupCommentRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", c.AccountHandler.Signup)
		auth.POST("/login", c.AccountHandler.Login)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.Auth(c.JWTManager))
	{
		users.GET("", middleware.AdminOnly(), c.AccountHandler.List)
		users.PUT("/:id/role", middleware.AdminOnly(), c.AccountHandler.GrantRole)
		users.GET("/:id", c.AccountHandler.Get)
		users.PUT("/:id/nickname", c.AccountHandler.ChangeNickname)
		users.PUT("/:id/password", c.AccountHandler.ChangePassword)
		users.PUT("/:id/email", c.AccountHandler.ChangeEmail)
		users.DELETE("/:id", c.AccountHandler.Delete)
	}
}

// ========================================
// POST ROUTES
// ========================================
func setupPostRoutes(v1 *gin.RouterGroup, c *container.Container) {
	posts := v1.Group("/posts")
	{
		// Reads are public
		posts.GET("", c.PostHandler.List)
		posts.GET("/:id", c.PostHandler.Get)
		posts.GET("/:id/comments", c.CommentHandler.List)

		// Writes require a principal
		authed := posts.Group("")
		authed.Use(middleware.Auth(c.JWTManager))
		{
			authed.POST("", c.PostHandler.Create)
			authed.PUT("/:id", c.PostHandler.Update)
			authed.DELETE("/:id", c.PostHandler.Delete)
			authed.POST("/:id/comments", c.CommentHandler.Create)
		}
	}
}

// ========================================
// COMMENT ROUTES
// ========================================
func setupCommentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	comments := v1.Group("/comments")
	comments.Use(middleware.Auth(c.JWTManager))
	{
		comments.PUT("/:id", c.CommentHandler.Update)
		comments.DELETE("/:id", c.CommentHandler.Delete)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := gin.H{
			"status":      "ok",
			"version":     c.Config.App.Version,
			"environment": c.Config.App.Environment,
		}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "UNAVAILABLE", "database unreachable")
			return
		}

		response.Success(ctx, http.StatusOK, status)
	}
}
