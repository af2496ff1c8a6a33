package edgardoc

import (
	"context"
	"time"
)

// CatalogEntry records one processed archive.
type CatalogEntry struct {
	ID            string    `json:"id"`
	Symbol        string    `json:"symbol"`
	FormType      string    `json:"formType"`
	Accession     string    `json:"accession"`
	CompanyName   string    `json:"companyName"`
	FiledAt       time.Time `json:"filedAt"`
	SourcePath    string    `json:"sourcePath"`
	SourceHash    string    `json:"sourceHash"`
	TargetPath    string    `json:"targetPath"`
	DocumentCount int       `json:"documentCount"`
	ProcessedAt   time.Time `json:"processedAt"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *CatalogEntry) Validate() error {
	if e.Accession == "" {
		return Errorf(EINVALID, "catalog entry accession required")
	}
	if e.SourceHash == "" {
		return Errorf(EINVALID, "catalog entry source hash required")
	}
	return nil
}

// CatalogService records which archives have been extracted.
type CatalogService interface {
	// RecordArchive creates or replaces the entry for the entry's accession.
	RecordArchive(ctx context.Context, entry *CatalogEntry) error

	// FindEntryByAccession retrieves an entry by accession number.
	// Returns ENOTFOUND if the archive has not been recorded.
	FindEntryByAccession(ctx context.Context, accession string) (*CatalogEntry, error)

	// FindEntries retrieves entries matching the filter, newest filing first.
	FindEntries(ctx context.Context, filter CatalogFilter) ([]*CatalogEntry, error)
}

// CatalogFilter represents a filter for FindEntries.
type CatalogFilter struct {
	Symbol   *string `json:"symbol"`
	FormType *string `json:"formType"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
