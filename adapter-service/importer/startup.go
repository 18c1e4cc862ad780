package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hktjayaranga/CoreBookingPlatform-Backend/adapter-service/models"

	"go.uber.org/zap"
)

type CatalogImporter interface {
	Name() string
	ImportCatalog(ctx context.Context) (models.ImportSummary, error)
}

// Startup imports every partner catalog once at boot. A failed pass is
// retried as a whole, after a fixed delay, up to retries more times.
type Startup struct {
	importers []CatalogImporter
	retries   int
	delay     time.Duration
	logger    *zap.Logger
}

func NewStartup[T CatalogImporter](importers []T, retries int, delay time.Duration, logger *zap.Logger) *Startup {
	s := &Startup{retries: retries, delay: delay, logger: logger}
	for _, im := range importers {
		s.importers = append(s.importers, im)
	}
	return s
}

// Run blocks until a pass succeeds, retries are exhausted or ctx is done.
func (s *Startup) Run(ctx context.Context) error {
	for attempt := 0; ; attempt++ {
		err := s.pass(ctx)
		if err == nil {
			s.logger.Info("Startup catalog import completed", zap.Int("attempt", attempt+1))
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt >= s.retries {
			s.logger.Error("Startup catalog import gave up", zap.Int("attempts", attempt+1), zap.Error(err))
			return err
		}

		s.logger.Warn("Startup catalog import failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", s.delay),
			zap.Error(err),
		)

		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (s *Startup) pass(ctx context.Context) error {
	var errs []error
	for _, im := range s.importers {
		summary, err := im.ImportCatalog(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", im.Name(), err))
			continue
		}
		s.logger.Info("Imported partner catalog",
			zap.String("system", summary.System),
			zap.Int("imported", summary.Imported),
			zap.Int("skipped", summary.Skipped),
			zap.Int("failed", summary.Failed),
		)
	}
	return errors.Join(errs...)
}
