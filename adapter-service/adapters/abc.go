package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/hktjayaranga/CoreBookingPlatform-Backend/adapter-service/models"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/pkg/httpclient"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	abcSystemName = "ABC"
	abcAdapterID  = 1
)

// ABCAdapter re-checks availability of every item before booking it.
type ABCAdapter struct {
	partner *partnerAPI
	catalog Catalog
	logger  *zap.Logger
}

func NewABCAdapter(client *httpclient.Client, catalog Catalog, logger *zap.Logger) *ABCAdapter {
	return &ABCAdapter{
		partner: &partnerAPI{http: client, prefix: "api/abc"},
		catalog: catalog,
		logger:  logger.With(zap.String("adapter", abcSystemName)),
	}
}

func (a *ABCAdapter) Name() string { return abcSystemName }

func (a *ABCAdapter) CheckAvailability(ctx context.Context, externalProductID string) (*models.ProductAvailability, error) {
	availability, err := a.partner.availability(ctx, externalProductID)
	if err != nil {
		a.logger.Error("Availability check failed", zap.String("external_id", externalProductID), zap.Error(err))
		return nil, fmt.Errorf("ABC availability of %s: %w", externalProductID, err)
	}
	return &models.ProductAvailability{
		ExternalID:   externalProductID,
		IsAvailable:  availability.IsAvailable,
		Quantity:     availability.Quantity,
		CurrentPrice: availability.Price,
	}, nil
}

func (a *ABCAdapter) CreateBookings(ctx context.Context, items []models.BookingItem) []models.BookingResult {
	results := make([]models.BookingResult, 0, len(items))
	for _, item := range items {
		results = append(results, a.book(ctx, item))
	}
	return results
}

func (a *ABCAdapter) book(ctx context.Context, item models.BookingItem) models.BookingResult {
	result := models.BookingResult{ExternalProductID: item.ExternalProductID}

	availability, err := a.partner.availability(ctx, item.ExternalProductID)
	if err != nil {
		a.logger.Error("Failed to create booking", zap.String("external_product_id", item.ExternalProductID), zap.Error(err))
		result.ErrorMessage = err.Error()
		return result
	}
	if !availability.IsAvailable || availability.Quantity < item.Quantity {
		result.ErrorMessage = "Insufficient quantity or not available"
		return result
	}

	result.BookingID = uuid.NewString()
	result.Success = true
	a.logger.Info("Booking created",
		zap.String("external_product_id", item.ExternalProductID),
		zap.String("booking_id", result.BookingID),
	)
	return result
}

// CancelBookings acknowledges cancellation locally; the partner has no
// cancellation endpoint.
func (a *ABCAdapter) CancelBookings(ctx context.Context, bookingIDs []string) []models.BookingResult {
	return acknowledgeCancellations(a.logger, bookingIDs)
}

func (a *ABCAdapter) ImportCatalog(ctx context.Context) (models.ImportSummary, error) {
	im := &catalogImport{
		system:    abcSystemName,
		adapterID: abcAdapterID,
		partner:   a.partner,
		catalog:   a.catalog,
		logger:    a.logger,
	}
	return im.run(ctx)
}

func acknowledgeCancellations(logger *zap.Logger, bookingIDs []string) []models.BookingResult {
	results := make([]models.BookingResult, 0, len(bookingIDs))
	for _, id := range bookingIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			results = append(results, models.BookingResult{ErrorMessage: "booking id is required"})
			continue
		}
		logger.Info("Booking canceled", zap.String("booking_id", id))
		results = append(results, models.BookingResult{BookingID: id, Success: true})
	}
	return results
}
