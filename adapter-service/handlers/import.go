package handlers

import (
	"errors"
	"net/http"

	"github.com/hktjayaranga/CoreBookingPlatform-Backend/adapter-service/adapters"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/adapter-service/models"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/pkg/httpclient"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type AdapterRegistry interface {
	Get(system string) (adapters.Adapter, error)
	Names() []string
}

// ImportHandler exposes the adapter contract over HTTP. Every endpoint that
// acts on a partner takes it from the externalSystemName query parameter.
type ImportHandler struct {
	registry AdapterRegistry
	logger   *zap.Logger
}

func NewImportHandler(registry AdapterRegistry, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{registry: registry, logger: logger}
}

func (h *ImportHandler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/api/Import")
	g.GET("/availability", h.CheckAvailability)
	g.POST("/bookings", h.CreateBookings)
	g.POST("/bookings/cancel", h.CancelBookings)
	g.POST("/products", h.ImportProducts)
	g.GET("/systems", h.ListSystems)
}

// adapter resolves the partner named in the request, writing the error
// response itself when it cannot.
func (h *ImportHandler) adapter(c *gin.Context) (adapters.Adapter, bool) {
	system := c.Query("externalSystemName")
	if system == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "externalSystemName is required"})
		return nil, false
	}
	a, err := h.registry.Get(system)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No adapter found for external system " + system})
		return nil, false
	}
	return a, true
}

func (h *ImportHandler) CheckAvailability(c *gin.Context) {
	ctx, span := otel.Tracer("adapter-service").Start(c.Request.Context(), "CheckAvailability")
	defer span.End()

	externalID := c.Query("externalId")
	if externalID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "externalId is required"})
		return
	}
	a, ok := h.adapter(c)
	if !ok {
		return
	}
	span.SetAttributes(
		attribute.String("external.system", a.Name()),
		attribute.String("external.id", externalID),
	)

	availability, err := a.CheckAvailability(ctx, externalID)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, httpclient.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found in external system"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to check availability"})
		return
	}

	c.JSON(http.StatusOK, availability)
}

func (h *ImportHandler) CreateBookings(c *gin.Context) {
	ctx, span := otel.Tracer("adapter-service").Start(c.Request.Context(), "CreateBookings")
	defer span.End()

	a, ok := h.adapter(c)
	if !ok {
		return
	}

	var items []models.BookingItem
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking request"})
		return
	}
	span.SetAttributes(attribute.String("external.system", a.Name()), attribute.Int("items", len(items)))

	c.JSON(http.StatusOK, a.CreateBookings(ctx, items))
}

func (h *ImportHandler) CancelBookings(c *gin.Context) {
	ctx, span := otel.Tracer("adapter-service").Start(c.Request.Context(), "CancelBookings")
	defer span.End()

	a, ok := h.adapter(c)
	if !ok {
		return
	}

	var bookingIDs []string
	if err := c.ShouldBindJSON(&bookingIDs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cancellation request"})
		return
	}
	span.SetAttributes(attribute.String("external.system", a.Name()), attribute.Int("bookings", len(bookingIDs)))

	c.JSON(http.StatusOK, a.CancelBookings(ctx, bookingIDs))
}

func (h *ImportHandler) ImportProducts(c *gin.Context) {
	ctx, span := otel.Tracer("adapter-service").Start(c.Request.Context(), "ImportProducts")
	defer span.End()

	a, ok := h.adapter(c)
	if !ok {
		return
	}

	summary, err := a.ImportCatalog(ctx)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("Catalog import failed", zap.String("system", a.Name()), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to import products"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *ImportHandler) ListSystems(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.Names())
}
