package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hktjayaranga/CoreBookingPlatform-Backend/adapter-service/adapters"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/adapter-service/config"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/adapter-service/handlers"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/adapter-service/importer"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/pkg/httpclient"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg := config.LoadConfig()
	decimal.MarshalJSONWithoutQuotes = true

	shutdown, err := middleware.InitTracing("adapter-service", cfg.JaegerEndpoint)
	if err != nil {
		logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer shutdown()

	catalog := adapters.NewCatalogClient(
		httpclient.New("product-service", cfg.ProductServiceURL, cfg.HTTPClientTimeout, logger))

	registry := adapters.NewRegistry(
		adapters.NewABCAdapter(httpclient.New("abc-api", cfg.ABCAPIURL, cfg.HTTPClientTimeout, logger), catalog, logger),
		adapters.NewCDEAdapter(httpclient.New("cde-api", cfg.CDEAPIURL, cfg.HTTPClientTimeout, logger), catalog, logger),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if cfg.ImportOnStartup {
		startup := importer.NewStartup(registry.All(), cfg.ImportRetryAttempts, cfg.ImportRetryDelay, logger)
		go func() {
			if err := startup.Run(ctx); err != nil {
				logger.Error("Startup catalog import did not complete", zap.Error(err))
			}
		}()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("adapter-service"))
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.MetricsMiddleware())

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", middleware.PrometheusHandler())

	handlers.NewImportHandler(registry, logger).RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start REST server", zap.Error(err))
		}
	}()

	logger.Info("Adapter Service REST API started",
		zap.String("addr", cfg.HTTPAddr),
		zap.Strings("systems", registry.Names()),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
