package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/config"
	"github.com/pageza/pantrychef/backend/internal/api"
	"github.com/pageza/pantrychef/backend/internal/common"
	"github.com/pageza/pantrychef/backend/internal/database"
	"github.com/pageza/pantrychef/backend/internal/generation"
	"github.com/pageza/pantrychef/backend/internal/middleware"
	"github.com/pageza/pantrychef/backend/internal/router"
	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/migrations"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
}

// New connects every backing service, migrates the database and builds the router.
// Redis and object storage are optional.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	gin.SetMode(cfg.Env.GinMode())

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(ctx, db, migrations.FS()); err != nil {
		return nil, err
	}

	s := &Server{db: db}

	var counter service.GenerationCounter
	var limiter *middleware.RateLimiter
	if cfg.Redis.URL != "" {
		client, err := database.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			common.LogWarn("Redis unavailable, continuing without rate limiting", zap.Error(err))
		} else {
			s.redis = client
			counter = service.NewRedisGenerationCounter(client)
			limiter = middleware.NewGenerationRateLimiter(client, cfg.RateLimit)
		}
	}

	generator, err := generation.New(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}
	embedder := generation.NewEmbedder(ctx, cfg.LLM.GeminiAPIKey, cfg.LLM.EmbeddingModel)

	var exporter service.IRecipeExporter
	if cfg.Storage.Enabled() {
		s3Config, err := config.NewS3Config(ctx, cfg.Storage)
		if err != nil {
			common.LogWarn("Object storage unavailable, recipe export disabled", zap.Error(err))
		} else {
			exporter = service.NewS3RecipeExporter(s3Config)
		}
	}

	authService := service.NewAuthService(db, cfg.JWT.Secret, cfg.JWT.AccessTokenTTL())
	profileService := service.NewTasteProfileService(db)
	pantryService := service.NewPantryService(db)
	leftoverService := service.NewLeftoverService(db)

	s.router = router.SetupRouter(cfg.Server, api.Services{
		DB:                db,
		Auth:              authService,
		Profiles:          profileService,
		Pantry:            pantryService,
		Leftovers:         leftoverService,
		Recipes:           service.NewSavedRecipeService(db, embedder),
		Suggestions:       service.NewSuggestionService(profileService, pantryService, leftoverService, generator, counter),
		Dashboard:         service.NewDashboardService(db, counter),
		Exporter:          exporter,
		GenerationLimiter: limiter,
	})
	s.http = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	common.LogInfo("Starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and closes backing connections.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if s.redis != nil {
		err = errors.Join(err, s.redis.Close())
	}
	if sqlDB, dbErr := s.db.DB(); dbErr == nil {
		err = errors.Join(err, sqlDB.Close())
	}
	return err
}
