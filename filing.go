package edgardoc

import (
	"context"
	"path/filepath"
)

// FilingsDir is the directory under a source root that holds downloaded
// filings laid out as SYMBOL/FORM/ACCESSION.txt.
const FilingsDir = "sec_edgar_filings"

// Filing locates one downloaded full-text submission on disk.
type Filing struct {
	Symbol    string `json:"symbol"`
	FormType  string `json:"formType"`
	Accession string `json:"accession"`
	Path      string `json:"path"`
}

// Validate returns an error if the filing locator is incomplete.
func (f *Filing) Validate() error {
	if f.Symbol == "" {
		return Errorf(EINVALID, "filing symbol required")
	}
	if f.FormType == "" {
		return Errorf(EINVALID, "filing form type required")
	}
	if f.Accession == "" {
		return Errorf(EINVALID, "filing accession required")
	}
	return nil
}

// TargetDir returns the directory the filing is extracted into under root.
func (f *Filing) TargetDir(root string) string {
	return filepath.Join(root, f.Symbol, f.FormType, f.Accession)
}

// FilingStore reads and writes raw filings in a source tree.
type FilingStore interface {
	// FindFilings lists every filing in the tree, ordered by path.
	FindFilings(ctx context.Context) ([]*Filing, error)

	// ReadFiling returns the raw submission text of f.
	ReadFiling(ctx context.Context, f *Filing) (string, error)

	// WriteFiling stores content as the raw submission of f and sets f.Path.
	WriteFiling(ctx context.Context, f *Filing, content []byte) error
}

// DownloadRequest describes which filings to fetch for one company.
type DownloadRequest struct {
	Symbol   string
	FormType string

	// Limit caps the number of most recent filings fetched. Zero means all.
	Limit int
}

// Downloader fetches raw filings into a source tree.
type Downloader interface {
	// Download saves the requested filings under the downloader's root and
	// returns the locators of the files written.
	Download(ctx context.Context, req DownloadRequest) ([]*Filing, error)
}

// SiteGenerator renders index pages over an extracted output tree.
type SiteGenerator interface {
	Generate(ctx context.Context, root string) error
}
