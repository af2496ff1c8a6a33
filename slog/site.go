package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/edgardoc"
)

// Ensure LoggingSiteGenerator implements edgardoc.SiteGenerator.
var _ edgardoc.SiteGenerator = (*LoggingSiteGenerator)(nil)

// LoggingSiteGenerator wraps a SiteGenerator with logging.
type LoggingSiteGenerator struct {
	next   edgardoc.SiteGenerator
	logger *slog.Logger
}

// NewLoggingSiteGenerator creates a new LoggingSiteGenerator.
func NewLoggingSiteGenerator(next edgardoc.SiteGenerator, logger *slog.Logger) *LoggingSiteGenerator {
	return &LoggingSiteGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs the operation.
func (g *LoggingSiteGenerator) Generate(ctx context.Context, root string) (err error) {
	defer func(begin time.Time) {
		if err != nil {
			g.logger.Warn("generate site", "root", root, "duration", time.Since(begin), "err", err)
			return
		}
		g.logger.Debug("generate site", "root", root, "duration", time.Since(begin))
	}(time.Now())
	return g.next.Generate(ctx, root)
}
