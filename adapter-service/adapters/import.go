package adapters

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hktjayaranga/CoreBookingPlatform-Backend/adapter-service/models"
	"github.com/hktjayaranga/CoreBookingPlatform-Backend/pkg/middleware"

	"go.uber.org/zap"
)

type catalogImport struct {
	system    string
	adapterID int
	partner   *partnerAPI
	catalog   Catalog
	logger    *zap.Logger
}

// run imports every partner product missing from the catalog. Only a failure
// to list the partner's products fails the import; a single product's
// problems are logged and it is skipped.
func (im *catalogImport) run(ctx context.Context) (models.ImportSummary, error) {
	summary := models.ImportSummary{System: im.system}

	im.logger.Info("Fetching partner products", zap.String("system", im.system))
	products, err := im.partner.products(ctx)
	if err != nil {
		return summary, fmt.Errorf("fetch %s products: %w", im.system, err)
	}
	if len(products) == 0 {
		im.logger.Warn("Partner returned no products", zap.String("system", im.system))
		return summary, nil
	}

	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		result := im.importProduct(ctx, p)
		middleware.RecordCatalogImport(im.system, result)
		switch result {
		case "imported":
			summary.Imported++
		case "skipped":
			summary.Skipped++
		default:
			summary.Failed++
		}
	}

	im.logger.Info("Catalog import finished",
		zap.String("system", im.system),
		zap.Int("imported", summary.Imported),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

func (im *catalogImport) importProduct(ctx context.Context, p partnerProduct) string {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		im.logger.Warn("Skipping partner product with empty id", zap.String("system", im.system))
		return "skipped"
	}
	log := im.logger.With(zap.String("system", im.system), zap.String("external_id", id))

	exists, err := im.catalog.Exists(ctx, id, im.system)
	if err != nil {
		log.Warn("Could not check for existing product", zap.Error(err))
		return "failed"
	}
	if exists {
		log.Info("Product already imported")
		return "skipped"
	}

	content, err := im.partner.content(ctx, id)
	if err != nil {
		log.Warn("Content not available for product", zap.Error(err))
		return "failed"
	}

	if err := im.catalog.CreateProduct(ctx, im.buildProduct(id, p, content)); err != nil {
		log.Warn("Failed to create product", zap.Error(err))
		return "failed"
	}

	log.Info("Product imported", zap.Int("contents", len(content)))
	return "imported"
}

func (im *catalogImport) buildProduct(id string, p partnerProduct, content []partnerContent) models.CreateProduct {
	currency := p.Currency
	if currency == "" {
		currency = "USD"
	}

	product := models.CreateProduct{
		ProductName:        p.Name,
		ProductDescription: p.Description,
		BasePrice:          p.Price,
		Currency:           currency,
		SKU:                p.SKU,
		AdapterID:          im.adapterID,
		ExternalSystemName: im.system,
		ExternalID:         id,
		Categories:         []models.CreateCategory{},
		Attributes:         []models.CreateAttribute{},
		Contents:           make([]models.CreateContent, 0, len(content)),
	}

	for _, k := range sortedKeys(p.Categories) {
		product.Categories = append(product.Categories, models.CreateCategory{Name: k, Description: p.Categories[k]})
	}
	for _, k := range sortedKeys(p.Attributes) {
		product.Attributes = append(product.Attributes, models.CreateAttribute{Name: k, Value: p.Attributes[k]})
	}
	for _, c := range content {
		product.Contents = append(product.Contents, models.CreateContent{
			ContentType: c.Type,
			Title:       c.Title,
			Description: c.Description,
			MediaURL:    c.MediaURL,
			SortOrder:   c.Order,
		})
	}
	return product
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
