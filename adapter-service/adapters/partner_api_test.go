package adapters

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hktjayaranga/CoreBookingPlatform-Backend/adapter-service/models"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/partner-api/fixtures"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/partner-api/handlers"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/pkg/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// Runs both adapters against the mock partner APIs with their bundled fixtures.
func TestAdapters_AgainstMockPartners(t *testing.T) {
	logger := zaptest.NewLogger(t)
	srv := httptest.NewServer(handlers.NewRouter(fixtures.New(""), logger))
	t.Cleanup(srv.Close)

	client := httpclient.New("partner-api", srv.URL, time.Second, logger)
	ctx := context.Background()

	t.Run("ABC", func(t *testing.T) {
		catalog := &fakeCatalog{}
		abc := NewABCAdapter(client, catalog, logger)

		summary, err := abc.ImportCatalog(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.ImportSummary{System: "ABC", Imported: 3}, summary)

		results := abc.CreateBookings(ctx, []models.BookingItem{
			{ExternalProductID: "ABC-1002", Quantity: 3},
			{ExternalProductID: "ABC-1003", Quantity: 1},
		})
		require.Len(t, results, 2)
		assert.True(t, results[0].Success)
		assert.False(t, results[1].Success)
	})

	t.Run("CDE", func(t *testing.T) {
		catalog := &fakeCatalog{}
		cde := NewCDEAdapter(client, catalog, logger)

		summary, err := cde.ImportCatalog(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.ImportSummary{System: "CDE", Imported: 2}, summary)
		require.Len(t, catalog.created, 2)
		assert.Equal(t, "USD", catalog.created[1].Currency)

		availability, err := cde.CheckAvailability(ctx, "cde-501")
		require.NoError(t, err)
		assert.Equal(t, 50, availability.Quantity)
	})
}
