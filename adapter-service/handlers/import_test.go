package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hktjayaranga/CoreBookingPlatform-Backend/adapter-service/adapters"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/adapter-service/models"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/pkg/httpclient"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap/zaptest"
)

type fakeAdapter struct {
	name      string
	importErr error
	canceled  []string
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) CheckAvailability(ctx context.Context, externalProductID string) (*models.ProductAvailability, error) {
	switch externalProductID {
	case "missing":
		return nil, fmt.Errorf("lookup: %w", httpclient.ErrNotFound)
	case "down":
		return nil, fmt.Errorf("lookup: %w", httpclient.ErrTransport)
	}
	return &models.ProductAvailability{
		ExternalID:   externalProductID,
		IsAvailable:  true,
		Quantity:     4,
		CurrentPrice: decimal.NewFromInt(12),
	}, nil
}

func (f *fakeAdapter) CreateBookings(ctx context.Context, items []models.BookingItem) []models.BookingResult {
	results := make([]models.BookingResult, 0, len(items))
	for i, item := range items {
		results = append(results, models.BookingResult{
			ExternalProductID: item.ExternalProductID,
			BookingID:         fmt.Sprintf("%s-%d", f.name, i),
			Success:           true,
		})
	}
	return results
}

func (f *fakeAdapter) CancelBookings(ctx context.Context, bookingIDs []string) []models.BookingResult {
	f.canceled = append(f.canceled, bookingIDs...)
	results := make([]models.BookingResult, 0, len(bookingIDs))
	for _, id := range bookingIDs {
		results = append(results, models.BookingResult{BookingID: id, Success: true})
	}
	return results
}

func (f *fakeAdapter) ImportCatalog(ctx context.Context) (models.ImportSummary, error) {
	if f.importErr != nil {
		return models.ImportSummary{System: f.name}, f.importErr
	}
	return models.ImportSummary{System: f.name, Imported: 3, Skipped: 1}, nil
}

func setupImportTest(t *testing.T) (*fakeAdapter, *fakeAdapter, *gin.Engine) {
	abc := &fakeAdapter{name: "ABC"}
	cde := &fakeAdapter{name: "CDE", importErr: errors.New("partner down")}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", HealthCheck)
	NewImportHandler(adapters.NewRegistry(abc, cde), zaptest.NewLogger(t)).RegisterRoutes(router)
	return abc, cde, router
}

func serve(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestImportHandler_CheckAvailability(t *testing.T) {
	_, _, router := setupImportTest(t)

	w := serve(router, http.MethodGet, "/api/Import/availability?externalId=P1&externalSystemName=abc", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var availability models.ProductAvailability
	if err := json.Unmarshal(w.Body.Bytes(), &availability); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if availability.ExternalID != "P1" || availability.Quantity != 4 || !availability.IsAvailable {
		t.Errorf("Unexpected availability %+v", availability)
	}
}

func TestImportHandler_CheckAvailability_Errors(t *testing.T) {
	_, _, router := setupImportTest(t)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"missing external id", "/api/Import/availability?externalSystemName=ABC", http.StatusBadRequest},
		{"missing system", "/api/Import/availability?externalId=P1", http.StatusBadRequest},
		{"unknown system", "/api/Import/availability?externalId=P1&externalSystemName=XYZ", http.StatusNotFound},
		{"unknown product", "/api/Import/availability?externalId=missing&externalSystemName=ABC", http.StatusNotFound},
		{"partner down", "/api/Import/availability?externalId=down&externalSystemName=ABC", http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, http.MethodGet, tt.target, "")
			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
		})
	}
}

func TestImportHandler_CreateBookings(t *testing.T) {
	_, _, router := setupImportTest(t)

	w := serve(router, http.MethodPost, "/api/Import/bookings?externalSystemName=CDE",
		`[{"externalProductId":"C1","quantity":2},{"externalProductId":"C2","quantity":1}]`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var results []models.BookingResult
	if err := json.Unmarshal(w.Body.Bytes(), &results); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[1].ExternalProductID != "C2" || results[1].BookingID != "CDE-1" {
		t.Errorf("Unexpected result %+v", results[1])
	}
}

func TestImportHandler_CreateBookings_BadRequest(t *testing.T) {
	_, _, router := setupImportTest(t)

	w := serve(router, http.MethodPost, "/api/Import/bookings?externalSystemName=ABC", `{"not":"a list"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	w = serve(router, http.MethodPost, "/api/Import/bookings?externalSystemName=XYZ", `[]`)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestImportHandler_CancelBookings(t *testing.T) {
	abc, _, router := setupImportTest(t)

	w := serve(router, http.MethodPost, "/api/Import/bookings/cancel?externalSystemName=ABC", `["b1","b2"]`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if len(abc.canceled) != 2 || abc.canceled[0] != "b1" {
		t.Errorf("Expected b1 and b2 to be canceled, got %v", abc.canceled)
	}
}

func TestImportHandler_ImportProducts(t *testing.T) {
	_, _, router := setupImportTest(t)

	w := serve(router, http.MethodPost, "/api/Import/products?externalSystemName=ABC", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var summary models.ImportSummary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if summary.Imported != 3 || summary.Skipped != 1 {
		t.Errorf("Unexpected summary %+v", summary)
	}

	w = serve(router, http.MethodPost, "/api/Import/products?externalSystemName=CDE", "")
	if w.Code != http.StatusBadGateway {
		t.Errorf("Expected status %d, got %d", http.StatusBadGateway, w.Code)
	}
}

func TestImportHandler_ListSystems(t *testing.T) {
	_, _, router := setupImportTest(t)

	w := serve(router, http.MethodGet, "/api/Import/systems", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `["ABC","CDE"]` {
		t.Errorf("Expected [\"ABC\",\"CDE\"], got %s", got)
	}
}

func TestHealthCheck(t *testing.T) {
	_, _, router := setupImportTest(t)

	w := serve(router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), "adapter-service") {
		t.Errorf("Expected service name in body, got %s", w.Body.String())
	}
}
