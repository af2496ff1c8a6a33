package mock

import (
	"context"

	"github.com/fwojciec/edgardoc"
)

var _ edgardoc.ArchiveParser = (*ArchiveParser)(nil)

// ArchiveParser is a mock implementation of edgardoc.ArchiveParser.
type ArchiveParser struct {
	ParseFn func(ctx context.Context, raw string) (*edgardoc.Archive, error)
}

func (p *ArchiveParser) Parse(ctx context.Context, raw string) (*edgardoc.Archive, error) {
	return p.ParseFn(ctx, raw)
}

var _ edgardoc.ArchiveWriter = (*ArchiveWriter)(nil)

// ArchiveWriter is a mock implementation of edgardoc.ArchiveWriter.
type ArchiveWriter struct {
	WriteArchiveFn func(ctx context.Context, archive *edgardoc.Archive, dir string) error
}

func (w *ArchiveWriter) WriteArchive(ctx context.Context, archive *edgardoc.Archive, dir string) error {
	return w.WriteArchiveFn(ctx, archive, dir)
}
