package adapters

import (
	"context"
	"net/url"

	"github.com/hktjayaranga/CoreBookingPlatform-Backend/pkg/httpclient"

	"github.com/shopspring/decimal"
)

type partnerProduct struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       decimal.Decimal   `json:"price"`
	Currency    string            `json:"currency"`
	SKU         string            `json:"sku"`
	Categories  map[string]string `json:"categories"`
	Attributes  map[string]string `json:"attributes"`
}

type partnerContent struct {
	ProductID   string `json:"productId"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	MediaURL    string `json:"mediaUrl"`
	Order       int    `json:"order"`
}

type partnerAvailability struct {
	ProductID   string          `json:"productId"`
	IsAvailable bool            `json:"isAvailable"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// partnerAPI wraps the product, content and availability endpoints a
// partner exposes under its path prefix, e.g. "api/abc".
type partnerAPI struct {
	http   *httpclient.Client
	prefix string
}

func (p *partnerAPI) products(ctx context.Context) ([]partnerProduct, error) {
	var products []partnerProduct
	if err := p.http.Get(ctx, p.prefix+"/Products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (p *partnerAPI) content(ctx context.Context, productID string) ([]partnerContent, error) {
	var content []partnerContent
	if err := p.http.Get(ctx, p.prefix+"/products/"+url.PathEscape(productID)+"/content", nil, &content); err != nil {
		return nil, err
	}
	return content, nil
}

func (p *partnerAPI) availability(ctx context.Context, productID string) (*partnerAvailability, error) {
	var availability partnerAvailability
	if err := p.http.Get(ctx, p.prefix+"/products/"+url.PathEscape(productID)+"/availability", nil, &availability); err != nil {
		return nil, err
	}
	return &availability, nil
}
