package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/edgardoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ edgardoc.CatalogService = (*CatalogService)(nil)

// CatalogService implements edgardoc.CatalogService using SQLite.
type CatalogService struct {
	db *DB
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(db *DB) *CatalogService {
	return &CatalogService{db: db}
}

const catalogColumns = `id, symbol, form_type, accession, company_name, filed_at,
	source_path, source_hash, target_path, document_count, processed_at`

// RecordArchive creates or replaces the entry for the entry's accession.
// A re-recorded archive keeps its original ID.
func (s *CatalogService) RecordArchive(ctx context.Context, entry *edgardoc.CatalogEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if entry.ProcessedAt.IsZero() {
		entry.ProcessedAt = time.Now().UTC()
	}

	return s.db.QueryRowContext(ctx, `
		INSERT INTO archives (`+catalogColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(accession) DO UPDATE SET
			symbol = excluded.symbol,
			form_type = excluded.form_type,
			company_name = excluded.company_name,
			filed_at = excluded.filed_at,
			source_path = excluded.source_path,
			source_hash = excluded.source_hash,
			target_path = excluded.target_path,
			document_count = excluded.document_count,
			processed_at = excluded.processed_at
		RETURNING id
	`, uuid.New().String(), entry.Symbol, entry.FormType, entry.Accession, entry.CompanyName,
		formatFiledAt(entry.FiledAt), entry.SourcePath, entry.SourceHash, entry.TargetPath,
		entry.DocumentCount, entry.ProcessedAt.UTC().Format(time.RFC3339)).Scan(&entry.ID)
}

// FindEntryByAccession retrieves an entry by accession number.
func (s *CatalogService) FindEntryByAccession(ctx context.Context, accession string) (*edgardoc.CatalogEntry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+catalogColumns+` FROM archives WHERE accession = ?`, accession)
	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, edgardoc.Errorf(edgardoc.ENOTFOUND, "catalog entry not found")
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// FindEntries retrieves entries matching the filter, newest filing first.
func (s *CatalogService) FindEntries(ctx context.Context, filter edgardoc.CatalogFilter) ([]*edgardoc.CatalogEntry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + catalogColumns + " FROM archives WHERE 1=1")

	if filter.Symbol != nil {
		query.WriteString(" AND symbol = ?")
		args = append(args, *filter.Symbol)
	}
	if filter.FormType != nil {
		query.WriteString(" AND form_type = ?")
		args = append(args, *filter.FormType)
	}

	query.WriteString(" ORDER BY filed_at DESC, accession DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*edgardoc.CatalogEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*edgardoc.CatalogEntry, error) {
	var entry edgardoc.CatalogEntry
	var filedAt, processedAt string

	if err := row.Scan(&entry.ID, &entry.Symbol, &entry.FormType, &entry.Accession, &entry.CompanyName,
		&filedAt, &entry.SourcePath, &entry.SourceHash, &entry.TargetPath, &entry.DocumentCount,
		&processedAt); err != nil {
		return nil, err
	}

	var err error
	if entry.FiledAt, err = parseFiledAt(filedAt); err != nil {
		return nil, err
	}
	if entry.ProcessedAt, err = parseRFC3339(processedAt, "processed_at"); err != nil {
		return nil, err
	}
	return &entry, nil
}
