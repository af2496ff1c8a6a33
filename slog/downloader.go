package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/edgardoc"
)

// Ensure LoggingDownloader implements edgardoc.Downloader.
var _ edgardoc.Downloader = (*LoggingDownloader)(nil)

// LoggingDownloader wraps a Downloader with logging.
type LoggingDownloader struct {
	next   edgardoc.Downloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next edgardoc.Downloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Download delegates to the wrapped downloader and logs the operation.
func (d *LoggingDownloader) Download(ctx context.Context, req edgardoc.DownloadRequest) (filings []*edgardoc.Filing, err error) {
	defer func(begin time.Time) {
		d.logger.Info("download filings",
			"symbol", req.Symbol,
			"form", req.FormType,
			"count", len(filings),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Download(ctx, req)
}
