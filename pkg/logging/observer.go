package logging

import (
	"time"

	"github.com/goliatone/go-tzcatalog/components/timezones"
	"go.uber.org/zap"
)

// CatalogObserver logs every catalog build. Skipped identifiers are logged
// at warn level, one line each.
func CatalogObserver(logger *zap.Logger) timezones.Observer {
	logger = OrNop(logger)
	return timezones.ObserverFunc(func(report timezones.Report, elapsed time.Duration) {
		if report.ListErr != nil {
			logger.Warn("reference list unavailable", zap.Error(report.ListErr))
		}
		for _, skipped := range report.Skipped {
			logger.Warn("timezone skipped", zap.String("zone", skipped.Zone), zap.Error(skipped.Err))
		}
		logger.Debug("catalog built",
			zap.Int("entries", len(report.Catalog)),
			zap.Int("skipped", len(report.Skipped)),
			zap.Time("instant", report.BuiltAt),
			zap.Duration("elapsed", elapsed),
		)
	})
}
