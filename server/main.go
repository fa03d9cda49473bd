package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"livelens/api/routes"
	_ "livelens/docs"
	"livelens/internal/identity"
	"livelens/internal/ratings"
	"livelens/internal/shared/config"
	"livelens/internal/shared/database"
	"livelens/internal/shared/middleware"
	"livelens/internal/uploads"
	"livelens/pkg/logger"
	"livelens/pkg/metrics"
	"livelens/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// @title LiveLens API
// @version 1.0
// @description Venue, event and seat reviews with filtered search.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	// Set Gin mode (debug/release)
	gin.SetMode(cfg.GinMode)

	appLogger := logger.New(cfg.LogLevel)
	logger.SetDefault(appLogger)

	if envErr != nil {
		if cfg.IsProduction() || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	metrics.Register(prometheus.DefaultRegisterer)

	// The API keeps serving without a store; data endpoints report NotConfigured
	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect to database, continuing without it", slog.Any("error", err))
		db = &database.DB{}
	}
	defer db.Close()

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	var id identity.Identity
	if cfg.JWT.Secret != "" {
		id = identity.NewJWTVerifier(cfg.JWT.Secret, cfg.JWT.Issuer)
	} else {
		appLogger.Warn("JWT_SECRET not set, authenticated routes will report not configured")
	}

	var blobStore uploads.BlobStore
	if cfg.AWS.S3Bucket != "" {
		store, err := uploads.NewS3Store(rootCtx, cfg.AWS, cfg.Upload.PresignExpiry)
		if err != nil {
			appLogger.Error("Failed to initialize S3 store", slog.Any("error", err))
		} else {
			blobStore = store
		}
	}

	// Deferred aggregation: publish after commit, recompute in a consumer group.
	// Without a running consumer and repair job reviews stay on the sync path.
	pg := db.GetPostgreSQL()
	var publisher ratings.Publisher
	if cfg.IsDeferredAggregation() && pg != nil {
		deferred, err := ratings.StartDeferred(rootCtx, ratings.DeferredOptions{
			NewPublisher: func() (ratings.Publisher, error) {
				return ratings.NewKafkaPublisher(ratings.DefaultKafkaProducerConfig(cfg.Kafka.Brokers, cfg.Kafka.Topic))
			},
			NewConsumer: func() (ratings.EventConsumer, error) {
				return ratings.NewConsumer(
					ratings.DefaultConsumerConfig(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic),
					ratings.NewAggregator(pg, appLogger),
					appLogger,
				)
			},
			Aggregator:    ratings.NewAggregator(pg, appLogger),
			BatchInterval: cfg.Aggregation.BatchInterval,
			Log:           appLogger,
		})
		if err != nil {
			appLogger.Error("Deferred aggregation unavailable, falling back to sync aggregation", slog.Any("error", err))
		} else {
			publisher = deferred.Publisher
			defer func() {
				appLogger.Info("Stopping deferred aggregation...")
				deferred.Stop()
			}()
		}
	}

	if publisher == nil && cfg.Aggregation.BatchInterval > 0 && pg != nil {
		job := ratings.NewBatchJob(ratings.NewAggregator(pg, appLogger), cfg.Aggregation.BatchInterval, appLogger)
		job.Start(rootCtx)
		defer job.Stop()
	}

	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiter = ratelimit.NewRateLimiter(db.GetRedisClient(), &ratelimit.Config{
			Enabled:         cfg.RateLimit.Enabled,
			WindowDuration:  cfg.RateLimit.WindowDuration,
			DefaultRequests: cfg.RateLimit.DefaultRequests,
			SearchRequests:  cfg.RateLimit.SearchRequests,
			ReviewRequests:  cfg.RateLimit.ReviewRequests,
			UploadRequests:  cfg.RateLimit.UploadRequests,
			AdminRequests:   cfg.RateLimit.AdminRequests,
			HealthRequests:  cfg.RateLimit.HealthRequests,
			WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Bool("redis_backed", db.GetRedisClient() != nil),
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	router := setupRouter(cfg, db, limiter, routes.Dependencies{
		Identity:  id,
		Publisher: publisher,
		BlobStore: blobStore,
		Logger:    appLogger,
	})

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("🚀 Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("api_status", fmt.Sprintf("http://localhost:%s/status", cfg.Port)),
			slog.String("version", Version),
			slog.String("commit", GitCommit),
			slog.String("built", BuildTime),
			slog.Bool("database", pg != nil),
			slog.Bool("redis_cache", db.GetRedisClient() != nil),
			slog.String("aggregation", aggregationMode(publisher)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}
	rootCancel()

	appLogger.Info("Server exited gracefully")
}

func setupRouter(cfg *config.Config, db *database.DB, limiter ratelimit.Limiter, deps routes.Dependencies) *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.RequestLogger(deps.Logger), middleware.Metrics(), gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if limiter != nil {
		engine.Use(ratelimit.Middleware(limiter, deps.Logger))
	}

	routes.NewRouter(cfg, db, deps).SetupRoutes(engine)

	return engine
}

func aggregationMode(publisher ratings.Publisher) string {
	if publisher != nil {
		return config.AggregationDeferred
	}
	return config.AggregationSync
}
