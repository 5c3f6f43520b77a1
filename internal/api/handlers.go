package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/config"
	"github.com/pageza/pantrychef/backend/internal/common"
	"github.com/pageza/pantrychef/backend/internal/database"
	"github.com/pageza/pantrychef/backend/internal/middleware"
	"github.com/pageza/pantrychef/backend/internal/service"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	DB          *gorm.DB
	Auth        service.IAuthService
	Profiles    service.ITasteProfileService
	Pantry      service.IPantryService
	Leftovers   service.ILeftoverService
	Recipes     service.ISavedRecipeService
	Suggestions service.ISuggestionService
	Dashboard   service.IDashboardService
	// Exporter is nil when object storage is not configured.
	Exporter service.IRecipeExporter
	// GenerationLimiter is nil when Redis is not configured.
	GenerationLimiter *middleware.RateLimiter
}

// HealthCheck reports whether the API and its database are reachable.
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := database.HealthCheck(ctx, db); err != nil {
			common.LogError("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "database": "ok"})
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, svc Services) {
	router.GET("/health", HealthCheck(svc.DB))

	v1 := router.Group("/api/v1")
	NewAuthHandler(svc.Auth).RegisterRoutes(v1)

	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(svc.Auth))

	generationLimit := func(c *gin.Context) { c.Next() }
	if svc.GenerationLimiter != nil {
		generationLimit = svc.GenerationLimiter.RateLimitMiddleware()
	} else {
		common.LogWarn("Redis not configured, generation rate limiting disabled")
	}

	NewProfileHandler(svc.Auth, svc.Profiles).RegisterRoutes(authed)
	NewPantryHandler(svc.Pantry).RegisterRoutes(authed)
	NewLeftoverHandler(svc.Leftovers, svc.Suggestions).RegisterRoutes(authed, generationLimit)
	NewRecipeHandler(svc.Recipes, svc.Suggestions, svc.Exporter).RegisterRoutes(authed, generationLimit)
	NewDashboardHandler(svc.Dashboard).RegisterRoutes(authed)

	if svc.GenerationLimiter != nil {
		RegisterRateLimitRoutes(authed, svc.GenerationLimiter)
	}
}

// RegisterRateLimitRoutes registers endpoints for checking rate limit status
func RegisterRateLimitRoutes(router *gin.RouterGroup, limiter *middleware.RateLimiter) {
	router.GET("/rate-limits/generation", func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}

		remaining, resetTime, err := limiter.GetRemainingRequests(c.Request.Context(), userID.String())
		if err != nil {
			common.LogError("Failed to check rate limit", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check rate limit"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"limit":      limiter.Limit(),
			"remaining":  remaining,
			"reset_time": resetTime.Unix(),
		})
	})
}

// currentUser returns the authenticated user or writes a 401.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
	}
	return userID, ok
}

// pathID parses a uuid path parameter or writes a 400.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// bindOptionalJSON binds the body into v but accepts an empty body.
func bindOptionalJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// respondError maps a service error to a status code and JSON body.
func respondError(c *gin.Context, err error) {
	status := common.HTTPStatus(err)
	body := gin.H{"error": err.Error()}

	switch {
	case errors.Is(err, service.ErrUserExists):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrInvalidTasteProfile), errors.Is(err, service.ErrInvalidRecipe):
		status = http.StatusBadRequest
	case errors.Is(err, config.ErrStorageNotConfigured):
		status = http.StatusServiceUnavailable
	case errors.Is(err, common.ErrNotFound):
		body["error"] = "not found"
	}

	if kind := common.Kind(err); kind != "" {
		body["kind"] = kind
		var genErr *common.GenerationError
		if errors.Is(err, common.ErrUnexpectedResultCardinality) && errors.As(err, &genErr) {
			body["count"] = genErr.Count
		}
	} else if status == http.StatusInternalServerError {
		common.LogError("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		body["error"] = "internal server error"
	}

	_ = c.Error(err)
	c.JSON(status, body)
}
