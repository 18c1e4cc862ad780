package clients

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/hktjayaranga/CoreBookingPlatform-Backend/order-service/models"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/pkg/circuitbreaker"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/pkg/httpclient"
)

type CartClient struct {
	http *httpclient.Client
}

func NewCartClient(c *httpclient.Client) *CartClient {
	return &CartClient{http: c}
}

func (c *CartClient) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := c.http.Get(ctx, "api/cart", url.Values{"userId": {userID}}, &cart); err != nil {
		return nil, fmt.Errorf("get cart for user %s: %w", userID, err)
	}
	return &cart, nil
}

func (c *CartClient) ClearCart(ctx context.Context, userID string) error {
	if err := c.http.Delete(ctx, "api/cart", url.Values{"userId": {userID}}); err != nil {
		return fmt.Errorf("clear cart for user %s: %w", userID, err)
	}
	return nil
}

type ProductClient struct {
	http *httpclient.Client
}

func NewProductClient(c *httpclient.Client) *ProductClient {
	return &ProductClient{http: c}
}

func (c *ProductClient) GetProduct(ctx context.Context, productID int) (*models.Product, error) {
	var product models.Product
	if err := c.http.Get(ctx, "api/products/"+strconv.Itoa(productID), nil, &product); err != nil {
		return nil, fmt.Errorf("get product %d: %w", productID, err)
	}
	if product.ProductID == 0 {
		product.ProductID = productID
	}
	return &product, nil
}

// AdapterClient talks to the adapter service's Import surface. Each external
// system gets its own circuit breaker, so one partner's outage does not block
// calls for the others.
type AdapterClient struct {
	http *httpclient.Client

	mu      sync.Mutex
	systems map[string]*httpclient.Client
}

func NewAdapterClient(c *httpclient.Client) *AdapterClient {
	return &AdapterClient{http: c, systems: map[string]*httpclient.Client{}}
}

func (c *AdapterClient) forSystem(system string) *httpclient.Client {
	key := strings.ToUpper(strings.TrimSpace(system))

	c.mu.Lock()
	defer c.mu.Unlock()
	if hc, ok := c.systems[key]; ok {
		return hc
	}
	hc := c.http.WithBreaker(circuitbreaker.NewCircuitBreaker(
		c.http.Name()+"/"+key, httpclient.DefaultMaxFailures, httpclient.DefaultResetTimeout))
	c.systems[key] = hc
	return hc
}

func (c *AdapterClient) CheckAvailability(ctx context.Context, externalID, system string) (*models.ProductAvailability, error) {
	var availability models.ProductAvailability
	query := url.Values{"externalId": {externalID}, "externalSystemName": {system}}
	if err := c.forSystem(system).Get(ctx, "api/Import/availability", query, &availability); err != nil {
		return nil, fmt.Errorf("availability of %s in %s: %w", externalID, system, err)
	}
	return &availability, nil
}

func (c *AdapterClient) CreateBookings(ctx context.Context, system string, items []models.BookingItem) ([]models.BookingResult, error) {
	var results []models.BookingResult
	query := url.Values{"externalSystemName": {system}}
	if err := c.forSystem(system).Post(ctx, "api/Import/bookings", query, items, &results); err != nil {
		return nil, fmt.Errorf("create bookings in %s: %w", system, err)
	}
	return results, nil
}

func (c *AdapterClient) CancelBookings(ctx context.Context, system string, bookingIDs []string) ([]models.BookingResult, error) {
	var results []models.BookingResult
	query := url.Values{"externalSystemName": {system}}
	if err := c.forSystem(system).Post(ctx, "api/Import/bookings/cancel", query, bookingIDs, &results); err != nil {
		return nil, fmt.Errorf("cancel bookings in %s: %w", system, err)
	}
	return results, nil
}
