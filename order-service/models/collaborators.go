package models

import "github.com/shopspring/decimal"

// Cart is the snapshot returned by the cart service.
type Cart struct {
	CartID     int             `json:"cartId"`
	UserID     string          `json:"userId"`
	Items      []CartItem      `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

type CartItem struct {
	CartItemID int             `json:"cartItemId"`
	ProductID  int             `json:"productId"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
}

// Product carries the fields of the catalog entry the order workflow needs.
type Product struct {
	ProductID          int             `json:"productId"`
	ProductName        string          `json:"productName"`
	BasePrice          decimal.Decimal `json:"basePrice"`
	Currency           string          `json:"currency"`
	ExternalID         string          `json:"externalId"`
	ExternalSystemName string          `json:"externalSystemName"`
}

type ProductAvailability struct {
	ExternalID   string          `json:"externalId"`
	IsAvailable  bool            `json:"isAvailable"`
	Quantity     int             `json:"quantity"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
}

type BookingItem struct {
	ExternalProductID string `json:"externalProductId"`
	Quantity          int    `json:"quantity"`
}

type BookingResult struct {
	ExternalProductID string `json:"externalProductId,omitempty"`
	BookingID         string `json:"bookingId"`
	Success           bool   `json:"success"`
	ErrorMessage      string `json:"errorMessage,omitempty"`
}
