// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"stagedoor/internal/events"
	"stagedoor/internal/layouts"
	"stagedoor/internal/notifications"
	"stagedoor/internal/requests"
	"stagedoor/internal/seating"
	"stagedoor/internal/shared/config"
	"stagedoor/internal/shared/database"
	"stagedoor/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	producer notifications.Producer

	// Shared across route groups for dependency injection
	cacheService   cache.Service
	layoutService  layouts.Service
	layoutRepo     layouts.Repository
	eventRepo      events.Repository
	requestService requests.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// Prefer the shared cache client; fall back to the database pool's
	// client when Init failed at startup
	redisClient := cache.Client()
	if redisClient == nil {
		redisClient = r.db.GetRedisClient()
	}
	r.cacheService = cache.NewService(redisClient)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Layout routes first: events and seating depend on the layout service
		r.setupLayoutRoutes(api)

		r.setupEventRoutes(api)

		// Request routes before seating: the renderer pulls availability
		// from the request service
		r.setupRequestRoutes(api)

		r.setupSeatingRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "stagedoor-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "stagedoor-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupLayoutRoutes configures seating layout editor routes
func (r *Router) setupLayoutRoutes(rg *gin.RouterGroup) {
	r.layoutRepo = layouts.NewRepository(r.db.GetPostgreSQL())
	r.layoutService = layouts.NewService(r.layoutRepo, r.cacheService)
	layoutController := layouts.NewController(r.layoutService)

	layouts.SetupLayoutRoutes(rg, layoutController)
}

// setupEventRoutes configures event management routes
func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	r.eventRepo = events.NewRepository(r.db.GetPostgreSQL())
	eventService := events.NewService(r.eventRepo, r.layoutService, r.cacheService)
	eventController := events.NewController(eventService)

	events.SetupEventRoutes(rg, eventController)
}

// setupRequestRoutes configures seat request and hold routes
func (r *Router) setupRequestRoutes(rg *gin.RouterGroup) {
	requestRepo := requests.NewRepository(r.db.GetPostgreSQL())
	atomicRedis := requests.NewAtomicRedisOperations(r.db.GetRedisClient())
	r.requestService = requests.NewService(requestRepo, atomicRedis, r.producer, r.cacheService, r.config.Redis.SeatHoldTTL)
	requestController := requests.NewController(r.requestService)

	requests.SetupRequestRoutes(rg, requestController)
}

// setupSeatingRoutes configures the public seating surface routes
func (r *Router) setupSeatingRoutes(rg *gin.RouterGroup) {
	seatingService := seating.NewService(r.eventRepo, r.layoutRepo, r.requestService, r.cacheService)
	seatingController := seating.NewController(seatingService)

	seating.SetupSeatingRoutes(rg, seatingController)
}
