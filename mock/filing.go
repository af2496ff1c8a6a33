package mock

import (
	"context"

	"github.com/fwojciec/edgardoc"
)

var _ edgardoc.FilingStore = (*FilingStore)(nil)

// FilingStore is a mock implementation of edgardoc.FilingStore.
type FilingStore struct {
	FindFilingsFn func(ctx context.Context) ([]*edgardoc.Filing, error)
	ReadFilingFn  func(ctx context.Context, f *edgardoc.Filing) (string, error)
	WriteFilingFn func(ctx context.Context, f *edgardoc.Filing, content []byte) error
}

func (s *FilingStore) FindFilings(ctx context.Context) ([]*edgardoc.Filing, error) {
	return s.FindFilingsFn(ctx)
}

func (s *FilingStore) ReadFiling(ctx context.Context, f *edgardoc.Filing) (string, error) {
	return s.ReadFilingFn(ctx, f)
}

func (s *FilingStore) WriteFiling(ctx context.Context, f *edgardoc.Filing, content []byte) error {
	return s.WriteFilingFn(ctx, f, content)
}

var _ edgardoc.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of edgardoc.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, req edgardoc.DownloadRequest) ([]*edgardoc.Filing, error)
}

func (d *Downloader) Download(ctx context.Context, req edgardoc.DownloadRequest) ([]*edgardoc.Filing, error) {
	return d.DownloadFn(ctx, req)
}

var _ edgardoc.SiteGenerator = (*SiteGenerator)(nil)

// SiteGenerator is a mock implementation of edgardoc.SiteGenerator.
type SiteGenerator struct {
	GenerateFn func(ctx context.Context, root string) error
}

func (g *SiteGenerator) Generate(ctx context.Context, root string) error {
	return g.GenerateFn(ctx, root)
}
