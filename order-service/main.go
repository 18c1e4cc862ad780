package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hktjayaranga/CoreBookingPlatform-Backend/order-service/cache"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/order-service/clients"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/order-service/config"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/order-service/database"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/order-service/handlers"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/order-service/repository"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/order-service/service"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/pkg/httpclient"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg := config.LoadConfig()

	// Prices go out as JSON numbers, matching the cart and product services.
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize database
	db, err := database.InitDB(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Initialize Redis
	rdb, err := cache.InitRedis(cfg.RedisAddr, cfg.RedisPassword, logger)
	if err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer rdb.Close()

	// Initialize OpenTelemetry
	shutdown, err := middleware.InitTracing("order-service", cfg.JaegerEndpoint)
	if err != nil {
		logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer shutdown()

	// Collaborator clients
	cartClient := clients.NewCartClient(
		httpclient.New("cart-service", cfg.CartServiceURL, cfg.HTTPClientTimeout, logger))
	productClient := clients.NewProductClient(
		httpclient.New("product-service", cfg.ProductServiceURL, cfg.HTTPClientTimeout, logger))
	adapterClient := clients.NewAdapterClient(
		httpclient.New("adapter-service", cfg.AdapterServiceURL, cfg.HTTPClientTimeout, logger))

	orderService := service.NewOrderService(
		cartClient,
		cache.NewProductCache(rdb, productClient, cfg.ProductCacheTTL, logger),
		adapterClient,
		repository.NewOrderRepository(db),
		logger,
		service.WithUserLocker(cache.NewUserLock(rdb, cfg.OrderLockTTL, logger)),
	)

	// Setup REST API with Gin
	router := gin.New()
	router.Use(gin.Recovery())
	// OpenTelemetry middleware must be first to extract trace context
	router.Use(otelgin.Middleware("order-service"))
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.MetricsMiddleware())

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", middleware.PrometheusHandler())

	handlers.NewOrderHandler(orderService, logger).RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start REST server", zap.Error(err))
		}
	}()

	logger.Info("Order Service REST API started", zap.String("addr", cfg.HTTPAddr))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
