package routes

import (
	"net/http"
	"time"

	"fleetops/internal/config"
	"fleetops/internal/delivery/http/handler"
	domainScenario "fleetops/internal/domain/scenario"
	"fleetops/internal/events"
	"fleetops/internal/infrastructure/cache"
	"fleetops/internal/infrastructure/database/postgres"
	"fleetops/internal/logger"
	"fleetops/internal/middleware"
	"fleetops/internal/usecase/catalog"
	"fleetops/internal/usecase/scenario"
	"fleetops/internal/usecase/tracker"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB, publisher events.Publisher, loc *time.Location) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware order: request ID, logging, security headers, CORS, request size limit, rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(10 << 20))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	fleetRepository := postgres.NewFleetRepository(db)
	stoppageRepository := postgres.NewStoppageRepository(db)
	scenarioRepository := postgres.NewScenarioRepository(db)

	// Keep the interface nil when no replica is configured; a typed nil
	// *RedisReplica inside the interface would defeat the nil checks in the
	// scenario service.
	var replica domainScenario.ReplicaStore
	if cfg.Redis.Addr != "" {
		replica = cache.NewRedisReplica(&cfg.Redis)
	}

	trackerService := tracker.NewService(stoppageRepository, fleetRepository, publisher, loc)
	trackerHandler := handler.NewTrackerHandler(trackerService)

	scenarioService := scenario.NewService(scenarioRepository, replica, fleetRepository)
	scenarioHandler := handler.NewScenarioHandler(scenarioService)

	catalogService := catalog.NewService(fleetRepository)
	catalogHandler := handler.NewCatalogHandler(catalogService)

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			trackerHandler.RegisterRoutes(protected)
			scenarioHandler.RegisterRoutes(protected)
			catalogHandler.RegisterRoutes(protected)

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				catalogHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
