package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func setupRouter(logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(LoggerMiddleware(logger))
	router.Use(MetricsMiddleware())
	router.GET("/metrics", PrometheusHandler())
	router.GET("/things/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	return router
}

func TestLoggerMiddleware_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	router := setupRouter(zap.New(core))

	for _, target := range []string{"/things/1?verbose=true", "/boom"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Level != zap.InfoLevel {
		t.Errorf("Expected info for 200, got %s", entries[0].Level)
	}
	if got := entries[0].ContextMap()["query"]; got != "verbose=true" {
		t.Errorf("Expected query verbose=true, got %v", got)
	}
	if entries[1].Level != zap.WarnLevel {
		t.Errorf("Expected warn for 500, got %s", entries[1].Level)
	}
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	router := setupRouter(zap.NewNop())

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/things/42", nil))
	RecordCatalogImport("ABC", "imported")
	RecordOrderOperation("cancel", false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	body := w.Body.String()
	for _, want := range []string{
		`http_requests_total{endpoint="/things/:id",method="GET",status="200"}`,
		`catalog_imports_total{result="imported",system="ABC"}`,
		`order_operations_total{operation="cancel",status="error"}`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected metrics to contain %s", want)
		}
	}
}

func TestGetTraceID(t *testing.T) {
	if id := GetTraceID(context.Background()); id != "" {
		t.Errorf("Expected empty trace id without a span, got %s", id)
	}

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	if id := GetTraceID(ctx); id != span.SpanContext().TraceID().String() {
		t.Errorf("Expected trace id %s, got %s", span.SpanContext().TraceID(), id)
	}
}
