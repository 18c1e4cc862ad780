package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hktjayaranga/CoreBookingPlatform-Backend/order-service/models"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/order-service/repository"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/pkg/middleware"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	unknownSystem       = "Unknown"
	defaultParallelism  = 8
	compensationTimeout = 10 * time.Second
)

var errNoExternalIdentity = errors.New("product has no external identity")

// OrderService runs the order creation and cancellation workflows against the
// cart, product and adapter services.
type OrderService struct {
	carts    CartProvider
	products ProductLookup
	adapters AdapterDispatcher
	store    OrderStore
	locker   UserLocker
	logger   *zap.Logger
	tracer   trace.Tracer

	parallelism int
	now         func() time.Time
}

type Option func(*OrderService)

// WithUserLocker serializes CreateOrder per user.
func WithUserLocker(l UserLocker) Option {
	return func(s *OrderService) { s.locker = l }
}

// WithParallelism bounds concurrent product lookups and availability checks.
func WithParallelism(n int) Option {
	return func(s *OrderService) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

func NewOrderService(
	carts CartProvider,
	products ProductLookup,
	adapters AdapterDispatcher,
	store OrderStore,
	logger *zap.Logger,
	opts ...Option,
) *OrderService {
	s := &OrderService{
		carts:       carts,
		products:    products,
		adapters:    adapters,
		store:       store,
		logger:      logger,
		tracer:      otel.Tracer("order-service"),
		parallelism: defaultParallelism,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// productCheck is the per-product outcome of resolution and availability lookup.
type productCheck struct {
	productID       int
	requested       int
	product         *models.Product
	resolveErr      error
	availability    *models.ProductAvailability
	availabilityErr error
}

type bookingGroup struct {
	system string
	items  []models.BookingItem
}

type bookedGroup struct {
	system  string
	results []models.BookingResult
}

type cancelGroup struct {
	system     string
	bookingIDs []string
}

func (s *OrderService) CreateOrder(ctx context.Context, userID string) (_ *models.Order, err error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder")
	defer span.End()
	defer recordSpanError(span, &err)

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	span.SetAttributes(attribute.String("user_id", userID))

	release, err := s.lockUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	checks := s.resolveProducts(ctx, cartChecks(cart.Items))
	products := make(map[int]*models.Product, len(checks))
	for _, c := range checks {
		if c.resolveErr != nil {
			return nil, fmt.Errorf("%w: product %d: %w", ErrNotFound, c.productID, c.resolveErr)
		}
		products[c.productID] = c.product
	}

	s.fetchAvailability(ctx, checks)
	for _, c := range checks {
		if c.availabilityErr != nil {
			return nil, fmt.Errorf("%w: product %d: %w", ErrAvailability, c.productID, c.availabilityErr)
		}
		if c.availability.Quantity < c.requested {
			return nil, fmt.Errorf("%w: insufficient quantity for product %d: requested %d, available %d",
				ErrAvailability, c.productID, c.requested, c.availability.Quantity)
		}
	}

	booked, err := s.submitBookings(ctx, groupBookings(cart.Items, products))
	if err != nil {
		return nil, err
	}

	order := buildOrder(userID, cart, products, booked, s.now().UTC())
	if err := s.store.CreateOrder(ctx, order); err != nil {
		s.logger.Error("Failed to persist order, canceling bookings",
			zap.String("user_id", userID), zap.Error(err))
		s.compensate(ctx, booked)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	middleware.RecordOrderCreated(string(order.Status))
	span.SetAttributes(attribute.Int("order.id", order.OrderID), attribute.String("order.status", string(order.Status)))
	s.logger.Info("Order created",
		zap.Int("order_id", order.OrderID),
		zap.String("user_id", userID),
		zap.String("status", string(order.Status)),
	)

	if err := s.carts.ClearCart(ctx, userID); err != nil {
		s.logger.Warn("Failed to clear cart", zap.String("user_id", userID), zap.Error(err))
	}

	return order, nil
}

// CancelOrder reports false without error when the order is missing or
// already canceled.
func (s *OrderService) CancelOrder(ctx context.Context, orderID int) (_ bool, err error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CancelOrder")
	defer span.End()
	defer recordSpanError(span, &err)
	span.SetAttributes(attribute.Int("order.id", orderID))

	order, err := s.store.GetOrder(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: load order %d: %w", ErrPersistence, orderID, err)
	}
	if order.Status == models.OrderStatusCanceled {
		return false, nil
	}

	checks := s.resolveProducts(ctx, orderChecks(order.Items))
	systems := make(map[int]string, len(checks))
	for _, c := range checks {
		if c.resolveErr != nil && !errors.Is(c.resolveErr, errNoExternalIdentity) {
			return false, fmt.Errorf("%w: product %d: %w", ErrNotFound, c.productID, c.resolveErr)
		}
		system := unknownSystem
		if c.product != nil && strings.TrimSpace(c.product.ExternalSystemName) != "" {
			system = c.product.ExternalSystemName
		}
		systems[c.productID] = system
	}

	for _, g := range groupBookingIDs(order.Items, systems) {
		s.cancelBookings(ctx, g.system, g.bookingIDs)
	}

	changed, err := s.store.MarkCanceled(ctx, orderID, s.now().UTC())
	if err != nil {
		return false, fmt.Errorf("%w: cancel order %d: %w", ErrPersistence, orderID, err)
	}
	if !changed {
		s.logger.Info("Order was canceled concurrently", zap.Int("order_id", orderID))
		return false, nil
	}

	middleware.RecordOrderCanceled()
	s.logger.Info("Order canceled", zap.Int("order_id", orderID))
	return true, nil
}

// CheckAvailability is a read-only pre-flight of the user's cart. Products
// that cannot be resolved or checked are reported instead of failing.
func (s *OrderService) CheckAvailability(ctx context.Context, userID string) (_ *models.AvailabilityCheckResult, err error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CheckAvailability")
	defer span.End()
	defer recordSpanError(span, &err)

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}

	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	checks := s.resolveProducts(ctx, cartChecks(cart.Items))
	s.fetchAvailability(ctx, checks)

	result := &models.AvailabilityCheckResult{UnavailableItems: []models.UnavailableItem{}}
	for _, c := range checks {
		var reason string
		switch {
		case c.resolveErr != nil:
			reason = "product could not be resolved"
		case c.availabilityErr != nil:
			reason = "availability could not be retrieved"
		case c.availability.Quantity < c.requested:
			reason = fmt.Sprintf("insufficient quantity: requested %d, available %d", c.requested, c.availability.Quantity)
		default:
			continue
		}
		result.UnavailableItems = append(result.UnavailableItems, models.UnavailableItem{ProductID: c.productID, Reason: reason})
	}
	result.IsAvailable = len(result.UnavailableItems) == 0
	return result, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID int) (*models.Order, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return order, nil
}

func (s *OrderService) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	orders, err := s.store.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (s *OrderService) lockUser(ctx context.Context, userID string) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	release, acquired, err := s.locker.Acquire(ctx, userID)
	if err != nil {
		s.logger.Warn("Order lock unavailable, continuing without it", zap.String("user_id", userID), zap.Error(err))
		return func() {}, nil
	}
	if !acquired {
		return nil, fmt.Errorf("%w: user %s", ErrOrderInProgress, userID)
	}
	return release, nil
}

func (s *OrderService) loadCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: cart of user %s: %w", ErrNotFound, userID, err)
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, fmt.Errorf("%w: cart of user %s is empty", ErrNotFound, userID)
	}
	for _, item := range cart.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cart item for product %d has quantity %d", ErrValidation, item.ProductID, item.Quantity)
		}
	}
	return cart, nil
}

// resolveProducts looks up every product concurrently.
func (s *OrderService) resolveProducts(ctx context.Context, checks []*productCheck) []*productCheck {
	ctx, span := s.tracer.Start(ctx, "OrderService.resolveProducts")
	defer span.End()

	s.fanOut(len(checks), func(i int) {
		c := checks[i]
		product, err := s.products.GetProduct(ctx, c.productID)
		switch {
		case err != nil:
			c.resolveErr = err
		case product == nil:
			c.resolveErr = errors.New("empty product response")
		default:
			c.product = product
			if strings.TrimSpace(product.ExternalID) == "" || strings.TrimSpace(product.ExternalSystemName) == "" {
				c.resolveErr = errNoExternalIdentity
				s.invalidateProduct(ctx, c.productID)
			}
		}
	})
	return checks
}

func (s *OrderService) invalidateProduct(ctx context.Context, productID int) {
	inv, ok := s.products.(ProductInvalidator)
	if !ok {
		return
	}
	if err := inv.Invalidate(ctx, productID); err != nil {
		s.logger.Warn("Failed to invalidate cached product", zap.Int("product_id", productID), zap.Error(err))
	}
}

// fetchAvailability queries availability for every resolved product.
func (s *OrderService) fetchAvailability(ctx context.Context, checks []*productCheck) {
	ctx, span := s.tracer.Start(ctx, "OrderService.fetchAvailability")
	defer span.End()

	s.fanOut(len(checks), func(i int) {
		c := checks[i]
		if c.resolveErr != nil {
			return
		}
		availability, err := s.adapters.CheckAvailability(ctx, c.product.ExternalID, c.product.ExternalSystemName)
		switch {
		case err != nil:
			c.availabilityErr = err
		case availability == nil:
			c.availabilityErr = errors.New("empty availability response")
		default:
			c.availability = availability
		}
	})
}

func (s *OrderService) fanOut(n int, fn func(i int)) {
	var g errgroup.Group
	g.SetLimit(s.parallelism)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

// submitBookings books each system group in turn. A transport failure
// cancels what earlier groups already booked before returning.
func (s *OrderService) submitBookings(ctx context.Context, groups []bookingGroup) ([]bookedGroup, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.submitBookings")
	defer span.End()

	booked := make([]bookedGroup, 0, len(groups))
	for _, g := range groups {
		results, err := s.adapters.CreateBookings(ctx, g.system, g.items)
		if err != nil {
			s.logger.Error("Booking request failed",
				zap.String("system", g.system),
				zap.Int("items", len(g.items)),
				zap.Error(err),
			)
			s.compensate(ctx, booked)
			return nil, fmt.Errorf("%w: %s: %w", ErrBookingTransport, g.system, err)
		}
		for _, r := range results {
			middleware.RecordBooking(g.system, r.Success)
			if !r.Success {
				s.logger.Warn("Booking rejected by partner",
					zap.String("system", g.system),
					zap.String("external_product_id", r.ExternalProductID),
					zap.String("reason", r.ErrorMessage),
				)
			}
		}
		booked = append(booked, bookedGroup{system: g.system, results: results})
	}
	return booked, nil
}

// compensate releases successful bookings of an order that will not be
// persisted. It runs detached from the caller's cancellation.
func (s *OrderService) compensate(ctx context.Context, booked []bookedGroup) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()

	for _, g := range booked {
		var ids []string
		for _, r := range g.results {
			if r.Success && r.BookingID != "" {
				ids = append(ids, r.BookingID)
			}
		}
		if len(ids) > 0 {
			s.cancelBookings(ctx, g.system, ids)
		}
	}
}

// cancelBookings never fails; partner problems are logged and counted.
func (s *OrderService) cancelBookings(ctx context.Context, system string, bookingIDs []string) {
	results, err := s.adapters.CancelBookings(ctx, system, bookingIDs)
	if err != nil {
		middleware.RecordPartnerCancellationFailed(system)
		s.logger.Warn("Failed to cancel bookings",
			zap.String("system", system),
			zap.Strings("booking_ids", bookingIDs),
			zap.Error(err),
		)
		return
	}
	for _, r := range results {
		if !r.Success {
			middleware.RecordPartnerCancellationFailed(system)
			s.logger.Warn("Partner rejected booking cancellation",
				zap.String("system", system),
				zap.String("booking_id", r.BookingID),
				zap.String("reason", r.ErrorMessage),
			)
		}
	}
}

// productChecks collects distinct products in first-seen order and sums the
// requested quantity per product.
type productChecks struct {
	list  []*productCheck
	index map[int]*productCheck
}

func (pc *productChecks) add(productID, quantity int) {
	if pc.index == nil {
		pc.index = map[int]*productCheck{}
	}
	c, ok := pc.index[productID]
	if !ok {
		c = &productCheck{productID: productID}
		pc.index[productID] = c
		pc.list = append(pc.list, c)
	}
	c.requested += quantity
}

func cartChecks(items []models.CartItem) []*productCheck {
	var pc productChecks
	for _, item := range items {
		pc.add(item.ProductID, item.Quantity)
	}
	return pc.list
}

func orderChecks(items []models.OrderItem) []*productCheck {
	var pc productChecks
	for _, item := range items {
		pc.add(item.ProductID, item.Quantity)
	}
	return pc.list
}

// groupBookings partitions cart items by external system, keeping the order
// in which systems first appear in the cart.
func groupBookings(items []models.CartItem, products map[int]*models.Product) []bookingGroup {
	var groups []bookingGroup
	index := map[string]int{}
	for _, item := range items {
		p, ok := products[item.ProductID]
		if !ok {
			continue
		}
		i, ok := index[p.ExternalSystemName]
		if !ok {
			i = len(groups)
			index[p.ExternalSystemName] = i
			groups = append(groups, bookingGroup{system: p.ExternalSystemName})
		}
		groups[i].items = append(groups[i].items, models.BookingItem{
			ExternalProductID: p.ExternalID,
			Quantity:          item.Quantity,
		})
	}
	return groups
}

func groupBookingIDs(items []models.OrderItem, systems map[int]string) []cancelGroup {
	var groups []cancelGroup
	index := map[string]int{}
	for _, item := range items {
		id := strings.TrimSpace(item.ExternalBookingID)
		if id == "" || id == models.NoBookingID {
			continue
		}
		system := systems[item.ProductID]
		if system == "" {
			system = unknownSystem
		}
		i, ok := index[system]
		if !ok {
			i = len(groups)
			index[system] = i
			groups = append(groups, cancelGroup{system: system})
		}
		groups[i].bookingIDs = append(groups[i].bookingIDs, id)
	}
	return groups
}

func buildOrder(userID string, cart *models.Cart, products map[int]*models.Product, booked []bookedGroup, now time.Time) *models.Order {
	status := models.OrderStatusConfirmed
	bySystem := make(map[string][]models.BookingResult, len(booked))
	for _, g := range booked {
		bySystem[g.system] = append(bySystem[g.system], g.results...)
		for _, r := range g.results {
			if !r.Success {
				status = models.OrderStatusPartiallyConfirmed
			}
		}
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, ci := range cart.Items {
		bookingID := models.NoBookingID
		if p := products[ci.ProductID]; p != nil {
			for _, r := range bySystem[p.ExternalSystemName] {
				if r.ExternalProductID == p.ExternalID {
					bookingID = r.BookingID
					break
				}
			}
		}
		items = append(items, models.OrderItem{
			ProductID:         ci.ProductID,
			Quantity:          ci.Quantity,
			Price:             ci.Price,
			ExternalBookingID: bookingID,
		})
	}

	return &models.Order{
		UserID:     userID,
		Status:     status,
		TotalPrice: cart.TotalPrice,
		CreatedAt:  now,
		UpdatedAt:  now,
		Items:      items,
	}
}

func recordSpanError(span trace.Span, err *error) {
	if *err != nil {
		span.RecordError(*err)
		span.SetStatus(codes.Error, (*err).Error())
	}
}
