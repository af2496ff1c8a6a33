// Package slog provides log/slog decorators for the edgardoc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/edgardoc"
)

// Ensure LoggingArchiveParser implements edgardoc.ArchiveParser.
var _ edgardoc.ArchiveParser = (*LoggingArchiveParser)(nil)

// LoggingArchiveParser wraps an ArchiveParser with logging. Successful parses
// are logged at debug level, failures at warn level.
type LoggingArchiveParser struct {
	next   edgardoc.ArchiveParser
	logger *slog.Logger
}

// NewLoggingArchiveParser creates a new LoggingArchiveParser.
func NewLoggingArchiveParser(next edgardoc.ArchiveParser, logger *slog.Logger) *LoggingArchiveParser {
	return &LoggingArchiveParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the operation.
func (p *LoggingArchiveParser) Parse(ctx context.Context, raw string) (archive *edgardoc.Archive, err error) {
	defer func(begin time.Time) {
		if err != nil {
			p.logger.Warn("parse archive",
				"bytes", len(raw),
				"code", edgardoc.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		p.logger.Debug("parse archive",
			"bytes", len(raw),
			"documents", len(archive.Documents),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return p.next.Parse(ctx, raw)
}

// Ensure LoggingArchiveWriter implements edgardoc.ArchiveWriter.
var _ edgardoc.ArchiveWriter = (*LoggingArchiveWriter)(nil)

// LoggingArchiveWriter wraps an ArchiveWriter with logging.
type LoggingArchiveWriter struct {
	next   edgardoc.ArchiveWriter
	logger *slog.Logger
}

// NewLoggingArchiveWriter creates a new LoggingArchiveWriter.
func NewLoggingArchiveWriter(next edgardoc.ArchiveWriter, logger *slog.Logger) *LoggingArchiveWriter {
	return &LoggingArchiveWriter{next: next, logger: logger}
}

// WriteArchive delegates to the wrapped writer and logs the operation.
func (w *LoggingArchiveWriter) WriteArchive(ctx context.Context, archive *edgardoc.Archive, dir string) (err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		w.logger.Log(ctx, level, "write archive",
			"dir", dir,
			"documents", len(archive.Documents),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteArchive(ctx, archive, dir)
}
