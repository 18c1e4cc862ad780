package models

import "github.com/shopspring/decimal"

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
	ExternalProductID string `json:"externalProductId"`
	BookingID         string `json:"bookingId"`
	Success           bool   `json:"success"`
	ErrorMessage      string `json:"errorMessage,omitempty"`
}

// ImportSummary counts per-product outcomes of one catalog import.
type ImportSummary struct {
	System   string `json:"externalSystemName"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Failed   int    `json:"failed"`
}
