package container

import (
	"context"
	"fmt"
	"time"

	"community-backend/internal/config"

	"community-backend/internal/domains/account"
	accountHandler "community-backend/internal/domains/account/handler"
	accountRepo "community-backend/internal/domains/account/repository"
	accountService "community-backend/internal/domains/account/service"

	"community-backend/internal/domains/post"
	postHandler "community-backend/internal/domains/post/handler"
	postRepo "community-backend/internal/domains/post/repository"
	postService "community-backend/internal/domains/post/service"

	"community-backend/internal/domains/comment"
	commentHandler "community-backend/internal/domains/comment/handler"
	commentRepo "community-backend/internal/domains/comment/repository"
	commentService "community-backend/internal/domains/comment/service"

	infraCache "community-backend/internal/infrastructure/cache"
	"community-backend/internal/infrastructure/database"
	"community-backend/internal/infrastructure/hash"
	"community-backend/pkg/cache"
	"community-backend/pkg/jwt"
	"community-backend/pkg/logger"
)

// Container holds the full dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config,
// infrastructure, repositories, services, handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	AccountRepo account.Repository
	PostRepo    post.Repository
	CommentRepo comment.Repository

	AccountService account.Service
	PostService    post.Service
	CommentService comment.Service

	AccountHandler *accountHandler.AccountHandler
	PostHandler    *postHandler.PostHandler
	CommentHandler *commentHandler.CommentHandler
}

func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	logger.Init(cfg.App.Environment)

	c := &Container{Config: cfg}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	c.DB = db
	logger.Info("database connected", map[string]interface{}{
		"host": cfg.Database.Host,
		"name": cfg.Database.Database,
	})

	redisCache := infraCache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(ctx); err != nil {
		// Cache is an optimization; the app degrades to DB reads without it.
		logger.Warn("redis unreachable, running without cache", map[string]interface{}{
			"addr":  cfg.Redis.Addr,
			"error": err.Error(),
		})
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.AccountRepo = accountRepo.NewPostgresRepository(pool, c.Cache)
	c.PostRepo = postRepo.NewPostgresRepository(pool)
	c.CommentRepo = commentRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.AccountService = accountService.NewAccountService(c.AccountRepo, hash.NewBcryptCodec())
	c.PostService = postService.NewPostService(c.PostRepo)
	c.CommentService = commentService.NewCommentService(c.CommentRepo)
}

func (c *Container) initHandlers() {
	c.AccountHandler = accountHandler.NewAccountHandler(c.AccountService, c.JWTManager, c.Config.JWT.AccessTokenExpiry)
	c.PostHandler = postHandler.NewPostHandler(c.PostService)
	c.CommentHandler = commentHandler.NewCommentHandler(c.CommentService)
}

// Cleanup releases infrastructure connections. Call on shutdown.
func (c *Container) Cleanup() {
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Error("close redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
