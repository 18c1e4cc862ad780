package service

import (
	"context"
	"time"

	"github.com/hktjayaranga/CoreBookingPlatform-Backend/order-service/models"
)

type CartProvider interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	ClearCart(ctx context.Context, userID string) error
}

type ProductLookup interface {
	GetProduct(ctx context.Context, productID int) (*models.Product, error)
}

// ProductInvalidator is implemented by product lookups that cache. A product
// resolved without an external identity is dropped from the cache so a
// corrected catalog entry is picked up by the next lookup.
type ProductInvalidator interface {
	Invalidate(ctx context.Context, productID int) error
}

// AdapterDispatcher routes calls to the adapter registered for an external system.
type AdapterDispatcher interface {
	CheckAvailability(ctx context.Context, externalID, system string) (*models.ProductAvailability, error)
	CreateBookings(ctx context.Context, system string, items []models.BookingItem) ([]models.BookingResult, error)
	CancelBookings(ctx context.Context, system string, bookingIDs []string) ([]models.BookingResult, error)
}

type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, orderID int) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error)
	MarkCanceled(ctx context.Context, orderID int, at time.Time) (bool, error)
}

type UserLocker interface {
	Acquire(ctx context.Context, userID string) (release func(), acquired bool, err error)
}
