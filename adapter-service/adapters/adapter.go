package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hktjayaranga/CoreBookingPlatform-Backend/adapter-service/models"
)

var ErrAdapterNotFound = errors.New("adapter not found")

// Adapter translates the booking contract into one partner's API.
//
// CreateBookings and CancelBookings never fail as a whole: every item gets
// its own result, successful or not.
type Adapter interface {
	Name() string
	CheckAvailability(ctx context.Context, externalProductID string) (*models.ProductAvailability, error)
	CreateBookings(ctx context.Context, items []models.BookingItem) []models.BookingResult
	CancelBookings(ctx context.Context, bookingIDs []string) []models.BookingResult
	ImportCatalog(ctx context.Context) (models.ImportSummary, error)
}

// Registry looks adapters up by external system name, ignoring case.
type Registry struct {
	adapters map[string]Adapter
	ordered  []Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		key := normalizeName(a.Name())
		if _, dup := r.adapters[key]; dup {
			continue
		}
		r.adapters[key] = a
		r.ordered = append(r.ordered, a)
	}
	return r
}

func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

func (r *Registry) Get(system string) (Adapter, error) {
	a, ok := r.adapters[normalizeName(system)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAdapterNotFound, system)
	}
	return a, nil
}

// All returns the adapters in registration order.
func (r *Registry) All() []Adapter {
	return append([]Adapter(nil), r.ordered...)
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ordered))
	for _, a := range r.ordered {
		names = append(names, a.Name())
	}
	return names
}
