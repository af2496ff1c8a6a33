package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/edgardoc"
)

// filingExt is the extension of a raw full-text submission.
const filingExt = ".txt"

// Ensure FilingStore implements edgardoc.FilingStore at compile time.
var _ edgardoc.FilingStore = (*FilingStore)(nil)

// FilingStore implements edgardoc.FilingStore over a source tree laid out as
// root/sec_edgar_filings/SYMBOL/FORM/ACCESSION.txt.
type FilingStore struct {
	root string
}

// NewFilingStore creates a new FilingStore rooted at root.
func NewFilingStore(root string) *FilingStore {
	return &FilingStore{root: root}
}

// Root returns the source tree root.
func (s *FilingStore) Root() string {
	return s.root
}

// FindFilings lists every raw filing in the tree, ordered by path.
// A missing filings directory yields no filings.
func (s *FilingStore) FindFilings(ctx context.Context) ([]*edgardoc.Filing, error) {
	pattern := filepath.Join(s.root, edgardoc.FilingsDir, "*", "*", "*"+filingExt)
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	filings := make([]*edgardoc.Filing, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
			continue
		}
		form := filepath.Dir(path)
		filings = append(filings, &edgardoc.Filing{
			Symbol:    filepath.Base(filepath.Dir(form)),
			FormType:  filepath.Base(form),
			Accession: strings.TrimSuffix(filepath.Base(path), filingExt),
			Path:      path,
		})
	}
	return filings, nil
}

// ReadFiling returns the raw submission text of f.
func (s *FilingStore) ReadFiling(ctx context.Context, f *edgardoc.Filing) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := f.Path
	if path == "" {
		var err error
		if path, err = s.filingPath(f); err != nil {
			return "", err
		}
	}
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", edgardoc.Errorf(edgardoc.ENOTFOUND, "filing %s not found", f.Accession)
	} else if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteFiling stores content as the raw submission of f. The file is written
// next to its final path and renamed into place.
func (s *FilingStore) WriteFiling(ctx context.Context, f *edgardoc.Filing, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.filingPath(f)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := writeFile(tmp, content); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	f.Path = path
	return nil
}

func (s *FilingStore) filingPath(f *edgardoc.Filing) (string, error) {
	if err := f.Validate(); err != nil {
		return "", err
	}
	for _, part := range []string{f.Symbol, f.FormType, f.Accession} {
		if !filepath.IsLocal(part) || strings.ContainsAny(part, `/\`) {
			return "", edgardoc.Errorf(edgardoc.EINVALID, "path traversal in filing %q", part)
		}
	}
	return filepath.Join(s.root, edgardoc.FilingsDir, f.Symbol, f.FormType, f.Accession+filingExt), nil
}

// FindArchives lists every extracted archive under an output root laid out
// as root/SYMBOL/FORM/ACCESSION, ordered by path. The returned filings point
// at the archive directories.
func FindArchives(root string) ([]*edgardoc.Filing, error) {
	pattern := filepath.Join(root, "*", "*", "*", edgardoc.MetadataFilename)
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	archives := make([]*edgardoc.Filing, 0, len(paths))
	for _, path := range paths {
		dir := filepath.Dir(path)
		if strings.HasSuffix(dir, ".tmp") {
			continue
		}
		form := filepath.Dir(dir)
		archives = append(archives, &edgardoc.Filing{
			Symbol:    filepath.Base(filepath.Dir(form)),
			FormType:  filepath.Base(form),
			Accession: filepath.Base(dir),
			Path:      dir,
		})
	}
	return archives, nil
}
