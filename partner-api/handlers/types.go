package handlers

import "github.com/shopspring/decimal"

type Product struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       decimal.Decimal   `json:"price"`
	Currency    string            `json:"currency"`
	SKU         string            `json:"sku"`
	Categories  map[string]string `json:"categories"`
	Attributes  map[string]string `json:"attributes"`
}

type Content struct {
	ProductID   string `json:"productId"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	MediaURL    string `json:"mediaUrl,omitempty"`
	Order       int    `json:"order"`
}

type Availability struct {
	ProductID   string          `json:"productId"`
	IsAvailable bool            `json:"isAvailable"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}
