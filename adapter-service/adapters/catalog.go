package adapters

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/hktjayaranga/CoreBookingPlatform-Backend/adapter-service/models"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/pkg/httpclient"
)

// Catalog is the product service as seen by catalog import.
type Catalog interface {
	Exists(ctx context.Context, externalID, system string) (bool, error)
	CreateProduct(ctx context.Context, product models.CreateProduct) error
}

type CatalogClient struct {
	http *httpclient.Client
}

func NewCatalogClient(c *httpclient.Client) *CatalogClient {
	return &CatalogClient{http: c}
}

func (c *CatalogClient) Exists(ctx context.Context, externalID, system string) (bool, error) {
	query := url.Values{"externalId": {externalID}, "externalSystemName": {system}}
	err := c.http.Get(ctx, "api/products/external", query, nil)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, httpclient.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("look up product %s in %s: %w", externalID, system, err)
	}
}

func (c *CatalogClient) CreateProduct(ctx context.Context, product models.CreateProduct) error {
	if err := c.http.Post(ctx, "api/products", nil, product, nil); err != nil {
		return fmt.Errorf("create product %s: %w", product.ExternalID, err)
	}
	return nil
}
