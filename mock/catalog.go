package mock

import (
	"context"

	"github.com/fwojciec/edgardoc"
)

var _ edgardoc.CatalogService = (*CatalogService)(nil)

// CatalogService is a mock implementation of edgardoc.CatalogService.
type CatalogService struct {
	RecordArchiveFn        func(ctx context.Context, entry *edgardoc.CatalogEntry) error
	FindEntryByAccessionFn func(ctx context.Context, accession string) (*edgardoc.CatalogEntry, error)
	FindEntriesFn          func(ctx context.Context, filter edgardoc.CatalogFilter) ([]*edgardoc.CatalogEntry, error)
}

func (s *CatalogService) RecordArchive(ctx context.Context, entry *edgardoc.CatalogEntry) error {
	return s.RecordArchiveFn(ctx, entry)
}

func (s *CatalogService) FindEntryByAccession(ctx context.Context, accession string) (*edgardoc.CatalogEntry, error) {
	return s.FindEntryByAccessionFn(ctx, accession)
}

func (s *CatalogService) FindEntries(ctx context.Context, filter edgardoc.CatalogFilter) ([]*edgardoc.CatalogEntry, error) {
	return s.FindEntriesFn(ctx, filter)
}
