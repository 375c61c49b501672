package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"reviewhub/database"
	"reviewhub/internal/config"
	"reviewhub/internal/http-api/cache"
	"reviewhub/internal/http-api/handler"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/http-api/service"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// Connect to the database
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", slog.Any("error", err))
		os.Exit(1)
	}

	// Redis backs the vote-count cache; the service degrades to the
	// database when it is unavailable
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	voteCounts := cache.NewVoteCountCache(redisClient, cfg.VoteCacheTTL)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Services
	authSvc := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userSvc := service.NewUserService(userRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	reviewSvc := service.NewReviewService(reviewRepo, voteRepo, commentRepo, categoryRepo)
	voteSvc := service.NewVoteService(voteRepo, reviewRepo, voteCounts, logger)
	commentSvc := service.NewCommentService(commentRepo, reviewRepo)
	adminReviewSvc := service.NewAdminReviewService(reviewRepo, voteRepo, commentRepo, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc, authSvc)
	categoryHandler := handler.NewCategoryHandler(categorySvc, authSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc, authSvc)
	voteHandler := handler.NewVoteHandler(voteSvc, authSvc)
	commentHandler := handler.NewCommentHandler(commentSvc, authSvc)
	adminReviewHandler := handler.NewAdminReviewHandler(adminReviewSvc, authSvc)

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	r.Use(rateLimiter.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	authHandler.RegisterRoutes(api.Group("/auth"))
	userHandler.RegisterRoutes(api.Group("/users"))
	categoryHandler.RegisterRoutes(api.Group("/categories"))

	reviews := api.Group("/reviews")
	reviewHandler.RegisterRoutes(reviews)
	voteHandler.RegisterRoutes(reviews)
	commentHandler.RegisterReviewRoutes(reviews)
	commentHandler.RegisterRoutes(api.Group("/comments"))

	adminReviewHandler.RegisterRoutes(api.Group("/admin/reviews"))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server starting", slog.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
