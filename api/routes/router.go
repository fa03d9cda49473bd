// api/routes/router.go
package routes

import (
	"errors"
	"net/http"
	"time"

	"livelens/internal/events"
	"livelens/internal/identity"
	"livelens/internal/ratings"
	"livelens/internal/reviews"
	"livelens/internal/search"
	"livelens/internal/seats"
	"livelens/internal/shared/config"
	"livelens/internal/shared/database"
	"livelens/internal/shared/middleware"
	"livelens/internal/shared/utils/response"
	"livelens/internal/uploads"
	"livelens/internal/venues"
	"livelens/pkg/cache"
	"livelens/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies are the collaborators built in main and shared with
// background workers. Any of them may be nil.
type Dependencies struct {
	Identity  identity.Identity
	Publisher ratings.Publisher
	BlobStore uploads.BlobStore
	Logger    *logger.Logger
}

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB
	deps   Dependencies
	engine *search.Engine
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, deps Dependencies) *Router {
	if db == nil {
		db = &database.DB{}
	}
	if deps.Logger == nil {
		deps.Logger = logger.GetDefault()
	}
	response.UseJSONFieldNames()

	opts := []search.Option{search.WithLogger(deps.Logger)}
	if cfg.Search.CacheEnabled && db.GetRedisClient() != nil {
		opts = append(opts, search.WithCache(cache.NewService(db.GetRedisClient()), cfg.Search.CacheTTL))
	}
	if db.GetPostgreSQL() != nil && db.GetPostgreSQL().Dialector.Name() == "postgres" {
		opts = append(opts, search.WithTxOptions(database.SearchTxOptions()))
	}

	return &Router{
		config: cfg,
		db:     db,
		deps:   deps,
		engine: search.NewEngine(db.GetPostgreSQL(), opts...),
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group(r.config.GetAPIBasePath())
	authed := api.Group("", middleware.RequireIdentity(r.deps.Identity, r.deps.Logger))
	admin := authed.Group("/admin", middleware.RequireAdmin(r.config.AdminUserIDs))

	pg := r.db.GetPostgreSQL()

	// Repositories stay nil without a store so services report NotConfigured
	var (
		venueRepo  venues.Repository
		eventRepo  events.Repository
		seatRepo   seats.Repository
		reviewRepo reviews.Repository
	)
	if pg != nil {
		venueRepo = venues.NewRepository(pg)
		eventRepo = events.NewRepository(pg)
		seatRepo = seats.NewRepository(pg)
		reviewRepo = reviews.NewRepository(pg)
	}
	aggregator := ratings.NewAggregator(pg, r.deps.Logger)

	venues.SetupVenueRoutes(api, admin, venues.NewController(venues.NewService(venueRepo, r.engine)))
	events.SetupEventRoutes(api, admin, events.NewController(events.NewService(pg, eventRepo, venueRepo, r.engine)))
	seats.SetupSeatRoutes(api, seats.NewController(seats.NewService(seatRepo, aggregator, r.engine)))

	reviewService := reviews.NewService(reviews.Deps{
		DB:               pg,
		Repo:             reviewRepo,
		Venues:           venueRepo,
		Events:           eventRepo,
		Resolver:         seats.NewResolver(pg),
		Aggregator:       aggregator,
		Publisher:        r.deps.Publisher,
		Engine:           r.engine,
		Logger:           r.deps.Logger,
		DeferAggregation: r.aggregationMode() == config.AggregationDeferred,
	})
	reviews.SetupReviewRoutes(api, authed, reviews.NewController(reviewService))

	uploads.SetupUploadRoutes(authed, uploads.NewController(uploads.NewService(r.deps.BlobStore, r.config.Upload.MaxSize)))
	ratings.SetupRatingRoutes(admin, ratings.NewController(aggregator, r.engine))
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		err := r.db.HealthCheck(c.Request.Context())
		switch {
		case errors.Is(err, database.ErrNotConfigured):
			c.JSON(http.StatusOK, gin.H{
				"status":    "degraded",
				"database":  "Not Configured",
				"redis":     r.redisStatus(),
				"timestamp": time.Now(),
				"service":   "livelens-api",
			})
		case err != nil:
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "livelens-api",
			})
		default:
			c.JSON(http.StatusOK, gin.H{
				"status":    "healthy",
				"database":  "Connected",
				"redis":     r.redisStatus(),
				"timestamp": time.Now(),
				"service":   "livelens-api",
			})
		}
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":           "operational",
			"api_version":      r.config.APIVersion,
			"aggregation_mode": r.aggregationMode(),
			"search_cache":     r.config.Search.CacheEnabled && r.db.GetRedisClient() != nil,
			"image_uploads":    r.deps.BlobStore != nil,
			"timestamp":        time.Now(),
		})
	})
}

// aggregationMode is the mode in effect, which is sync when deferred
// aggregation was requested but could not start
func (r *Router) aggregationMode() string {
	if r.config.IsDeferredAggregation() && r.deps.Publisher != nil {
		return config.AggregationDeferred
	}
	return config.AggregationSync
}

func (r *Router) redisStatus() string {
	if r.db.GetRedisClient() == nil {
		return "Not Configured"
	}
	return "Connected"
}
