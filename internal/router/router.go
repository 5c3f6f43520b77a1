package router

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/pageza/pantrychef/backend/config"
	"github.com/pageza/pantrychef/backend/internal/api"
	"github.com/pageza/pantrychef/backend/internal/middleware"
)

// SetupRouter builds the engine with the global middleware chain and every route.
func SetupRouter(cfg config.ServerConfig, svc api.Services) *gin.Engine {
	router := gin.New()

	router.Use(
		requestid.New(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSOrigins),
	)

	api.RegisterRoutes(router, svc)
	return router
}
