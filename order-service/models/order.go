package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusConfirmed          OrderStatus = "Confirmed"
	OrderStatusPartiallyConfirmed OrderStatus = "PartiallyConfirmed"
	OrderStatusCanceled           OrderStatus = "Canceled"
)

// NoBookingID is stored on an item when no booking result matched its product.
const NoBookingID = "N/A"

type Order struct {
	OrderID    int             `json:"orderId"`
	UserID     string          `json:"userId"`
	Status     OrderStatus     `json:"status"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	Items      []OrderItem     `json:"items"`
}

type OrderItem struct {
	OrderItemID       int             `json:"orderItemId"`
	OrderID           int             `json:"-"`
	ProductID         int             `json:"productId"`
	Quantity          int             `json:"quantity"`
	Price             decimal.Decimal `json:"price"`
	ExternalBookingID string          `json:"externalBookingId"`
}

type UnavailableItem struct {
	ProductID int    `json:"productId"`
	Reason    string `json:"reason"`
}

type AvailabilityCheckResult struct {
	IsAvailable      bool              `json:"isAvailable"`
	UnavailableItems []UnavailableItem `json:"unavailableItems"`
}
