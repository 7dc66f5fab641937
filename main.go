package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/apperrors"
	"storefront-service/clients"
	"storefront-service/controllers"
	"storefront-service/database"
	"storefront-service/handlers"
	"storefront-service/logger"
	"storefront-service/middleware"
	"storefront-service/repository"
	"storefront-service/routes"
	"storefront-service/services"

	aws_pkg "storefront-service/pkg/aws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const serviceName = "storefront-service"

func main() {
	_ = godotenv.Load()

	logger.Initialize(getEnv("APP_ENV", "development"))
	defer logger.Sync()

	cfg, err := LoadConfig()
	if err != nil {
		logger.Log.Fatal("Config load failed", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- AWS setup (optional) ---
	var (
		metricsClient *aws_pkg.MetricsClient
		snsClient     aws_pkg.SNSPublisher
	)
	if cfg.CloudWatchEnabled || cfg.CartEventsTopicARN != "" {
		awsCfg, err := aws_pkg.LoadAWSConfig(ctx)
		if err != nil {
			logger.Log.Warn("Failed to load AWS config, AWS integrations disabled", zap.Error(err))
		} else {
			if cfg.CloudWatchEnabled {
				cwWriter, err := aws_pkg.NewCloudWatchLogsClient(ctx, awsCfg, serviceName, "/ecommerce/"+serviceName)
				if err != nil {
					logger.Log.Warn("CloudWatch Logs init failed (non-fatal)", zap.Error(err))
				} else {
					logger.InitializeWithWriter(cfg.Env, cwWriter)
				}
				metricsClient = aws_pkg.NewMetricsClient(awsCfg, "ECommerce/"+serviceName, true)
			}
			if cfg.CartEventsTopicARN != "" {
				snsClient = aws_pkg.NewSNSClient(awsCfg)
			}
		}
	}

	// --- Redis (optional) ---
	var (
		redisClient *redis.Client
		locker      services.CartLocker = services.NewLocalCartLocker()
		idemStore   middleware.IdempotencyStore
	)
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Log.Fatal("Redis connection failed", zap.Error(err))
		}
		locker = services.NewRedisCartLocker(redisClient, cfg.CartLockTTL)
		idemStore = database.NewIdempotencyStore(redisClient, cfg.IdempotencyTTL)
		logger.Log.Info("Connected to Redis")
	}

	// --- Dependency injection ---
	storeClient := clients.NewStoreClient(cfg.StoreBaseURL, cfg.StoreAPIToken, cfg.StoreTimeout)

	productRepo := repository.NewStoreProductRepository(storeClient)
	cartRepo := repository.NewStoreCartRepository(storeClient)

	events := services.NewCartEventPublisher(snsClient, cfg.CartEventsTopicARN, logger.Log)
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(cartRepo, locker, events, cfg.DefaultUserID, logger.Log)

	productHandler := handlers.NewProductHandler(controllers.NewProductController(productService))
	cartHandler := handlers.NewCartHandler(controllers.NewCartController(cartService), cfg.DefaultCartID)

	// --- HTTP router ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MetricsMiddleware(metricsClient, serviceName))
	r.Use(middleware.RequestLogger(logger.Log))
	r.Use(middleware.RateLimitMiddleware(ctx, cfg.RateLimitPerMinute, cfg.RateLimitBurst))
	r.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	r.Use(apperrors.ErrorMiddleware())
	r.Use(middleware.Identity(cfg.DefaultCartID, cfg.DefaultUserID))

	var idempotency gin.HandlerFunc
	if idemStore != nil {
		idempotency = middleware.Idempotency(idemStore, cfg.DefaultCartID)
	}

	routes.RegisterProductRoutes(r, productHandler)
	routes.RegisterCartRoutes(r, cartHandler, idempotency)
	routes.RegisterHealthRoute(r, serviceName)

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Log.Info("Storefront Service started",
			zap.String("port", cfg.Port),
			zap.String("store", cfg.StoreBaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Initiating graceful shutdown...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server shutdown error", zap.Error(err))
	}
	cancel()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Log.Error("Redis close error", zap.Error(err))
		}
	}

	logger.Log.Info("Storefront Service stopped gracefully")
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Authorization",
			middleware.CartIDHeader, middleware.UserIDHeader,
			middleware.IdempotencyKeyHeader, middleware.RequestIDHeader,
		},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader, middleware.IdempotentReplayedHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
