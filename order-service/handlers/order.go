package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/hktjayaranga/CoreBookingPlatform-Backend/order-service/models"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/order-service/service"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type OrderService interface {
	CreateOrder(ctx context.Context, userID string) (*models.Order, error)
	CancelOrder(ctx context.Context, orderID int) (bool, error)
	CheckAvailability(ctx context.Context, userID string) (*models.AvailabilityCheckResult, error)
	GetOrder(ctx context.Context, orderID int) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error)
}

type OrderHandler struct {
	orders OrderService
	logger *zap.Logger
}

func NewOrderHandler(orders OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

func (h *OrderHandler) RegisterRoutes(r gin.IRouter) {
	orders := r.Group("/api/orders")
	orders.POST("", h.CreateOrder)
	orders.POST("/check-availability", h.CheckAvailability)
	orders.GET("/:id", h.GetOrder)
	orders.GET("/user/:userId", h.ListOrdersByUser)
	orders.PUT("/:id/cancel", h.CancelOrder)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	ctx, span := otel.Tracer("order-service").Start(c.Request.Context(), "CreateOrder")
	defer span.End()

	userID := c.Query("userId")
	span.SetAttributes(attribute.String("user_id", userID))

	order, err := h.orders.CreateOrder(ctx, userID)
	middleware.RecordOrderOperation("create", err == nil)
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrOrderInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to create order", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		}
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) CheckAvailability(c *gin.Context) {
	ctx, span := otel.Tracer("order-service").Start(c.Request.Context(), "CheckAvailability")
	defer span.End()

	userID := c.Query("userId")
	result, err := h.orders.CheckAvailability(ctx, userID)
	middleware.RecordOrderOperation("check_availability", err == nil)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to check availability", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check availability"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	ctx, span := otel.Tracer("order-service").Start(c.Request.Context(), "GetOrder")
	defer span.End()

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}
	span.SetAttributes(attribute.Int("order.id", orderID))

	order, err := h.orders.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		span.RecordError(err)
		h.logger.Error("Failed to get order", zap.Int("order_id", orderID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListOrdersByUser(c *gin.Context) {
	ctx, span := otel.Tracer("order-service").Start(c.Request.Context(), "ListOrdersByUser")
	defer span.End()

	userID := c.Param("userId")
	orders, err := h.orders.ListOrdersByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		span.RecordError(err)
		h.logger.Error("Failed to list orders", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	ctx, span := otel.Tracer("order-service").Start(c.Request.Context(), "CancelOrder")
	defer span.End()

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}
	span.SetAttributes(attribute.Int("order.id", orderID))

	canceled, err := h.orders.CancelOrder(ctx, orderID)
	middleware.RecordOrderOperation("cancel", err == nil)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("Failed to cancel order", zap.Int("order_id", orderID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		return
	}
	if !canceled {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found or already canceled"})
		return
	}

	c.Status(http.StatusNoContent)
}
