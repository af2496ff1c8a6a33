package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/edgardoc"
)

// Ensure LoggingCatalogService implements edgardoc.CatalogService.
var _ edgardoc.CatalogService = (*LoggingCatalogService)(nil)

// LoggingCatalogService wraps a CatalogService with debug logging.
type LoggingCatalogService struct {
	next   edgardoc.CatalogService
	logger *slog.Logger
}

// NewLoggingCatalogService creates a new LoggingCatalogService.
func NewLoggingCatalogService(next edgardoc.CatalogService, logger *slog.Logger) *LoggingCatalogService {
	return &LoggingCatalogService{next: next, logger: logger}
}

// RecordArchive delegates to the wrapped service and logs the operation.
func (s *LoggingCatalogService) RecordArchive(ctx context.Context, entry *edgardoc.CatalogEntry) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("record archive",
			"accession", entry.Accession,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.RecordArchive(ctx, entry)
}

// FindEntryByAccession delegates to the wrapped service and logs the operation.
func (s *LoggingCatalogService) FindEntryByAccession(ctx context.Context, accession string) (entry *edgardoc.CatalogEntry, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find catalog entry",
			"accession", accession,
			"found", entry != nil,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindEntryByAccession(ctx, accession)
}

// FindEntries delegates to the wrapped service and logs the operation.
func (s *LoggingCatalogService) FindEntries(ctx context.Context, filter edgardoc.CatalogFilter) (entries []*edgardoc.CatalogEntry, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find catalog entries",
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindEntries(ctx, filter)
}
