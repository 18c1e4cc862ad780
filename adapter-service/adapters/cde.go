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
	cdeSystemName = "CDE"
	cdeAdapterID  = 2
)

// CDEAdapter trusts the order service's availability check and books
// without a second partner round trip.
type CDEAdapter struct {
	partner *partnerAPI
	catalog Catalog
	logger  *zap.Logger
}

func NewCDEAdapter(client *httpclient.Client, catalog Catalog, logger *zap.Logger) *CDEAdapter {
	return &CDEAdapter{
		partner: &partnerAPI{http: client, prefix: "api/cde"},
		catalog: catalog,
		logger:  logger.With(zap.String("adapter", cdeSystemName)),
	}
}

func (a *CDEAdapter) Name() string { return cdeSystemName }

func (a *CDEAdapter) CheckAvailability(ctx context.Context, externalProductID string) (*models.ProductAvailability, error) {
	availability, err := a.partner.availability(ctx, externalProductID)
	if err != nil {
		a.logger.Error("Availability check failed", zap.String("external_id", externalProductID), zap.Error(err))
		return nil, fmt.Errorf("CDE availability of %s: %w", externalProductID, err)
	}
	return &models.ProductAvailability{
		ExternalID:   externalProductID,
		IsAvailable:  availability.IsAvailable,
		Quantity:     availability.Quantity,
		CurrentPrice: availability.Price,
	}, nil
}

func (a *CDEAdapter) CreateBookings(ctx context.Context, items []models.BookingItem) []models.BookingResult {
	results := make([]models.BookingResult, 0, len(items))
	for _, item := range items {
		result := models.BookingResult{ExternalProductID: item.ExternalProductID}
		switch {
		case strings.TrimSpace(item.ExternalProductID) == "":
			result.ErrorMessage = "external product id is required"
		case item.Quantity <= 0:
			result.ErrorMessage = fmt.Sprintf("invalid quantity %d", item.Quantity)
		default:
			result.BookingID = "CDE-" + uuid.NewString()
			result.Success = true
			a.logger.Info("Booking created",
				zap.String("external_product_id", item.ExternalProductID),
				zap.String("booking_id", result.BookingID),
			)
		}
		results = append(results, result)
	}
	return results
}

func (a *CDEAdapter) CancelBookings(ctx context.Context, bookingIDs []string) []models.BookingResult {
	return acknowledgeCancellations(a.logger, bookingIDs)
}

func (a *CDEAdapter) ImportCatalog(ctx context.Context) (models.ImportSummary, error) {
	im := &catalogImport{
		system:    cdeSystemName,
		adapterID: cdeAdapterID,
		partner:   a.partner,
		catalog:   a.catalog,
		logger:    a.logger,
	}
	return im.run(ctx)
}
