package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hktjayaranga/CoreBookingPlatform-Backend/partner-api/config"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/partner-api/fixtures"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/partner-api/handlers"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/pkg/middleware"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
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

	shutdown, err := middleware.InitTracing("partner-api", cfg.JaegerEndpoint)
	if err != nil {
		logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer shutdown()

	if cfg.MockDataPath != "" {
		logger.Info("Serving fixtures from disk", zap.String("path", cfg.MockDataPath))
	}
	router := handlers.NewRouter(fixtures.New(cfg.MockDataPath), logger)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      otelhttp.NewHandler(router, "partner-api"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start mock partner server", zap.Error(err))
		}
	}()

	logger.Info("Mock partner APIs started", zap.String("addr", cfg.HTTPAddr))

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
