// Package batch provides extraction orchestration over a source tree of raw
// filings. It coordinates reading, parsing, writing and cataloging of every
// filing found, and keeps going when individual filings fail.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/edgardoc"
	"golang.org/x/sync/errgroup"
)

// Processor extracts every filing of a source tree into a target tree.
type Processor struct {
	Filings edgardoc.FilingStore
	Parser  edgardoc.ArchiveParser
	Writer  edgardoc.ArchiveWriter

	// Catalog, when set, records every extracted archive.
	Catalog edgardoc.CatalogService

	// Incremental skips filings whose source is unchanged since they were
	// last recorded in the Catalog.
	Incremental bool

	Concurrency int
	Now         func() time.Time
}

// Result holds the outcome of a batch run.
type Result struct {
	Found     int
	Processed int
	Skipped   int
	Failed    int
	Failures  []*Failure
}

// Failure records one filing that could not be extracted.
type Failure struct {
	Filing *edgardoc.Filing
	Err    error
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Filing    *edgardoc.Filing
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

type outcome struct {
	position int
	filing   *edgardoc.Filing
	skipped  bool
	err      error
}

// ProcessTree extracts every filing into target/SYMBOL/FORM/ACCESSION.
//
// A failing filing is recorded in the result and reported through progress;
// it never stops the batch. An error is returned only when the filings cannot
// be listed or the context is cancelled.
func (p *Processor) ProcessTree(ctx context.Context, target string, progress ProgressFunc) (*Result, error) {
	filings, err := p.Filings.FindFilings(ctx)
	if err != nil {
		return nil, fmt.Errorf("find filings: %w", err)
	}

	result := &Result{Found: len(filings)}
	if len(filings) == 0 {
		return result, nil
	}

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	total := len(filings)
	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	outcomes := make(chan outcome, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, filing := range filings {
			g.Go(func() error {
				outcomes <- p.processFiling(gctx, i, filing, target)
				return nil
			})
		}
		_ = g.Wait()
		close(outcomes)
	}()

	// Collect outcomes as they arrive, then order failures by position.
	ordered := make([]outcome, total)
	var completed atomic.Int64
	for o := range outcomes {
		ordered[o.position] = o
		event := ProgressEvent{
			Completed: int(completed.Add(1)),
			Total:     total,
			Filing:    o.filing,
		}
		switch {
		case o.err != nil:
			result.Failed++
			event.Type = ProgressFailed
			event.Error = o.err
		case o.skipped:
			result.Skipped++
			event.Type = ProgressSkipped
		default:
			result.Processed++
			event.Type = ProgressCompleted
		}
		if progress != nil {
			progress(event)
		}
	}

	for _, o := range ordered {
		if o.err != nil {
			result.Failures = append(result.Failures, &Failure{Filing: o.filing, Err: o.err})
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// processFiling reads, parses and writes a single filing.
func (p *Processor) processFiling(ctx context.Context, position int, filing *edgardoc.Filing, target string) outcome {
	o := outcome{
		position: position,
		filing:   filing,
	}

	if err := ctx.Err(); err != nil {
		o.err = err
		return o
	}

	raw, err := p.Filings.ReadFiling(ctx, filing)
	if err != nil {
		o.err = err
		return o
	}
	hash := computeHash(raw)

	dir := filing.TargetDir(target)
	if p.Incremental && p.Catalog != nil {
		unchanged, err := p.unchanged(ctx, filing, hash, dir)
		if err != nil {
			o.err = err
			return o
		}
		if unchanged {
			o.skipped = true
			return o
		}
	}

	archive, err := p.Parser.Parse(ctx, raw)
	if err != nil {
		o.err = err
		return o
	}

	if err := p.Writer.WriteArchive(ctx, archive, dir); err != nil {
		o.err = err
		return o
	}

	if p.Catalog != nil {
		if err := p.Catalog.RecordArchive(ctx, p.newEntry(filing, archive, hash, dir)); err != nil {
			o.err = fmt.Errorf("record archive: %w", err)
			return o
		}
	}

	return o
}

// unchanged reports whether the catalog already holds the filing with the
// same source fingerprint, extracted into dir, and the archive is still on
// disk.
func (p *Processor) unchanged(ctx context.Context, filing *edgardoc.Filing, hash, dir string) (bool, error) {
	entry, err := p.Catalog.FindEntryByAccession(ctx, filing.Accession)
	if edgardoc.ErrorCode(err) == edgardoc.ENOTFOUND {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("find catalog entry: %w", err)
	}
	if entry.SourceHash != hash || entry.TargetPath != dir {
		return false, nil
	}
	if _, err := os.Stat(filepath.Join(dir, edgardoc.MetadataFilename)); err != nil {
		return false, nil
	}
	return true, nil
}

func (p *Processor) newEntry(filing *edgardoc.Filing, archive *edgardoc.Archive, hash, dir string) *edgardoc.CatalogEntry {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	filedAt, _ := archive.Header.FiledAsOf()
	return &edgardoc.CatalogEntry{
		Symbol:        filing.Symbol,
		FormType:      filing.FormType,
		Accession:     filing.Accession,
		CompanyName:   archive.Header.CompanyName(),
		FiledAt:       filedAt,
		SourcePath:    filing.Path,
		SourceHash:    hash,
		TargetPath:    dir,
		DocumentCount: len(archive.Documents),
		ProcessedAt:   now().UTC(),
	}
}

// computeHash returns the fingerprint of a raw filing.
func computeHash(content string) string {
	h := xxhash.Sum64String(content)
	return fmt.Sprintf("%x", h)
}
