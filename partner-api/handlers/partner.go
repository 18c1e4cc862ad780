package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/hktjayaranga/CoreBookingPlatform-Backend/partner-api/fixtures"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Partner describes how one mock partner stores and matches its fixtures.
type Partner struct {
	Name string
	// Prefix of the fixture file names, e.g. "abc" for abc-products.json.
	Prefix string
	// ContentByProduct means the content fixture is an object keyed by
	// product id rather than a flat list.
	ContentByProduct bool
	// FoldAvailabilityID matches availability entries ignoring case.
	FoldAvailabilityID bool
}

var (
	ABC = Partner{Name: "ABC", Prefix: "abc"}
	CDE = Partner{Name: "CDE", Prefix: "cde", ContentByProduct: true, FoldAvailabilityID: true}
)

type PartnerHandler struct {
	partner  Partner
	fixtures *fixtures.Store
	logger   *zap.Logger
}

func NewPartnerHandler(partner Partner, store *fixtures.Store, logger *zap.Logger) *PartnerHandler {
	return &PartnerHandler{
		partner:  partner,
		fixtures: store,
		logger:   logger.With(zap.String("partner", partner.Name)),
	}
}

// Routes mounts under /api/<prefix>.
func (h *PartnerHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/Products", h.GetProducts)
	r.Get("/products/{productId}/content", h.GetProductContent)
	r.Get("/products/{productId}/availability", h.GetProductAvailability)
	return r
}

func (h *PartnerHandler) file(kind string) string {
	return h.partner.Prefix + "-" + kind + ".json"
}

func (h *PartnerHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	var products []Product
	if err := h.fixtures.Decode(h.file("products"), &products); err != nil {
		h.fixtureError(w, err, "Mock data file not found")
		return
	}
	if products == nil {
		products = []Product{}
	}

	h.logger.Info("Returning products", zap.Int("count", len(products)))
	respondJSON(w, http.StatusOK, products)
}

func (h *PartnerHandler) GetProductContent(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	content, err := h.content(productID)
	if err != nil {
		h.fixtureError(w, err, "Mock data file not found")
		return
	}
	if len(content) == 0 {
		h.logger.Warn("No content for product", zap.String("product_id", productID))
		respondError(w, http.StatusNotFound, "No content for product "+productID)
		return
	}

	respondJSON(w, http.StatusOK, content)
}

func (h *PartnerHandler) content(productID string) ([]Content, error) {
	if h.partner.ContentByProduct {
		var byProduct map[string][]Content
		if err := h.fixtures.Decode(h.file("product-content"), &byProduct); err != nil {
			return nil, err
		}
		return byProduct[productID], nil
	}

	var all []Content
	if err := h.fixtures.Decode(h.file("product-content"), &all); err != nil {
		return nil, err
	}
	id := strings.TrimSpace(productID)
	var matched []Content
	for _, c := range all {
		if strings.EqualFold(strings.TrimSpace(c.ProductID), id) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (h *PartnerHandler) GetProductAvailability(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	var all []Availability
	if err := h.fixtures.Decode(h.file("product-availability"), &all); err != nil {
		h.fixtureError(w, err, "Availability data not found")
		return
	}

	for _, a := range all {
		if a.ProductID == productID || (h.partner.FoldAvailabilityID && strings.EqualFold(a.ProductID, productID)) {
			respondJSON(w, http.StatusOK, a)
			return
		}
	}

	h.logger.Warn("No availability for product", zap.String("product_id", productID))
	respondError(w, http.StatusNotFound, "No availability data for product "+productID)
}

func (h *PartnerHandler) fixtureError(w http.ResponseWriter, err error, missing string) {
	if errors.Is(err, fixtures.ErrMissing) {
		h.logger.Warn("Fixture missing", zap.Error(err))
		respondError(w, http.StatusNotFound, missing)
		return
	}
	h.logger.Error("Failed to load fixture", zap.Error(err))
	respondError(w, http.StatusInternalServerError, "Internal server error")
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
