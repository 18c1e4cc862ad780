package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hktjayaranga/CoreBookingPlatform-Backend/order-service/models"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/order-service/repository"
)

type fakeCarts struct {
	mu       sync.Mutex
	carts    map[string]*models.Cart
	getErr   error
	clearErr error
	cleared  []string
}

func (f *fakeCarts) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.carts[userID], nil
}

func (f *fakeCarts) ClearCart(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared = append(f.cleared, userID)
	return f.clearErr
}

type fakeProducts struct {
	products map[int]*models.Product
	errs     map[int]error

	mu          sync.Mutex
	invalidated []int
}

func (f *fakeProducts) Invalidate(ctx context.Context, productID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, productID)
	return nil
}

func (f *fakeProducts) GetProduct(ctx context.Context, productID int) (*models.Product, error) {
	if err := f.errs[productID]; err != nil {
		return nil, err
	}
	p, ok := f.products[productID]
	if !ok {
		return nil, errors.New("product not found")
	}
	return p, nil
}

type bookingCall struct {
	system string
	items  []models.BookingItem
}

type cancelCall struct {
	system string
	ids    []string
}

type fakeAdapters struct {
	mu sync.Mutex

	availability    map[string]int
	availabilityErr map[string]error
	book            func(system string, items []models.BookingItem) ([]models.BookingResult, error)
	cancelErr       map[string]error

	availabilityCalls []string
	bookingCalls      []bookingCall
	cancelCalls       []cancelCall
}

func (f *fakeAdapters) CheckAvailability(ctx context.Context, externalID, system string) (*models.ProductAvailability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.availabilityCalls = append(f.availabilityCalls, externalID)
	if err := f.availabilityErr[externalID]; err != nil {
		return nil, err
	}
	qty := f.availability[externalID]
	return &models.ProductAvailability{ExternalID: externalID, IsAvailable: qty > 0, Quantity: qty}, nil
}

func (f *fakeAdapters) CreateBookings(ctx context.Context, system string, items []models.BookingItem) ([]models.BookingResult, error) {
	f.mu.Lock()
	f.bookingCalls = append(f.bookingCalls, bookingCall{system: system, items: items})
	f.mu.Unlock()
	if f.book != nil {
		return f.book(system, items)
	}
	return bookAll(system, items), nil
}

func (f *fakeAdapters) CancelBookings(ctx context.Context, system string, ids []string) ([]models.BookingResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelCalls = append(f.cancelCalls, cancelCall{system: system, ids: ids})
	if err := f.cancelErr[system]; err != nil {
		return nil, err
	}
	results := make([]models.BookingResult, 0, len(ids))
	for _, id := range ids {
		results = append(results, models.BookingResult{BookingID: id, Success: true})
	}
	return results, nil
}

func bookAll(system string, items []models.BookingItem) []models.BookingResult {
	results := make([]models.BookingResult, 0, len(items))
	for _, item := range items {
		results = append(results, models.BookingResult{
			ExternalProductID: item.ExternalProductID,
			BookingID:         system + "-" + item.ExternalProductID,
			Success:           true,
		})
	}
	return results
}

type fakeStore struct {
	mu        sync.Mutex
	orders    map[int]*models.Order
	nextID    int
	createErr error
	cancelErr error
	// raceCancel makes MarkCanceled behave as if another request won.
	raceCancel bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{orders: map[int]*models.Order{}, nextID: 1}
}

func (f *fakeStore) CreateOrder(ctx context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	order.OrderID = f.nextID
	f.nextID++
	for i := range order.Items {
		order.Items[i].OrderID = order.OrderID
		order.Items[i].OrderItemID = i + 1
	}
	stored := *order
	stored.Items = append([]models.OrderItem(nil), order.Items...)
	f.orders[order.OrderID] = &stored
	return nil
}

func (f *fakeStore) GetOrder(ctx context.Context, orderID int) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	cp := *o
	cp.Items = append([]models.OrderItem(nil), o.Items...)
	return &cp, nil
}

func (f *fakeStore) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeStore) MarkCanceled(ctx context.Context, orderID int, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancelErr != nil {
		return false, f.cancelErr
	}
	o, ok := f.orders[orderID]
	if !ok || o.Status == models.OrderStatusCanceled || f.raceCancel {
		return false, nil
	}
	o.Status = models.OrderStatusCanceled
	o.UpdatedAt = at
	return true, nil
}

type fakeLocker struct {
	held     map[string]bool
	err      error
	released int
}

func (f *fakeLocker) Acquire(ctx context.Context, userID string) (func(), bool, error) {
	if f.err != nil {
		return func() {}, false, f.err
	}
	if f.held[userID] {
		return func() {}, false, nil
	}
	if f.held == nil {
		f.held = map[string]bool{}
	}
	f.held[userID] = true
	return func() {
		f.released++
		delete(f.held, userID)
	}, true, nil
}
