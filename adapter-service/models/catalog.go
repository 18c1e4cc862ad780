package models

import "github.com/shopspring/decimal"

// CreateProduct is the product service's catalog creation request.
type CreateProduct struct {
	ProductName        string            `json:"productName"`
	ProductDescription string            `json:"productDescription"`
	BasePrice          decimal.Decimal   `json:"basePrice"`
	Currency           string            `json:"currency"`
	SKU                string            `json:"sku"`
	AdapterID          int               `json:"adapterId"`
	ExternalSystemName string            `json:"externalSystemName"`
	ExternalID         string            `json:"externalId"`
	Categories         []CreateCategory  `json:"categories"`
	Attributes         []CreateAttribute `json:"attributes"`
	Contents           []CreateContent   `json:"contents"`
}

type CreateCategory struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type CreateContent struct {
	ContentType string `json:"contentType"`
	Title       string `json:"title"`
	Description string `json:"description"`
	MediaURL    string `json:"mediaUrl"`
	SortOrder   int    `json:"sortOrder"`
}
