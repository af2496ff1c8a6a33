package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/edgardoc"
	"golang.org/x/sync/errgroup"
)

// MarkdownSuffix is appended to the filename of an HTML document to name its
// Markdown rendition.
const MarkdownSuffix = ".md"

// Ensure ArchiveStore implements edgardoc.ArchiveWriter at compile time.
var _ edgardoc.ArchiveWriter = (*ArchiveStore)(nil)

// ArchiveStore implements edgardoc.ArchiveWriter with atomic update
// semantics. Documents are saved to a temporary directory next to the target,
// which replaces the target only once every file has been written.
type ArchiveStore struct {
	// Converter, when set, adds a Markdown rendition of every HTML document.
	Converter edgardoc.Converter

	// Concurrency bounds parallel document writes. Defaults to 4.
	Concurrency int
}

// NewArchiveStore creates a new ArchiveStore.
func NewArchiveStore() *ArchiveStore {
	return &ArchiveStore{}
}

// WriteArchive writes every document and the metadata record into dir.
func (s *ArchiveStore) WriteArchive(ctx context.Context, archive *edgardoc.Archive, dir string) (err error) {
	if err := archive.Validate(); err != nil {
		return err
	}

	st := newStage(dir)
	if err := st.begin(); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = st.abort()
		}
	}()

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	docs := uniqueDocuments(archive.Documents)
	names := make(map[string]bool, len(docs))
	for _, doc := range docs {
		names[strings.ToLower(doc.Filename())] = true
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return s.save(st.tempDir(), doc, names)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := WriteMetadata(st.tempDir(), archive.Metadata()); err != nil {
		return err
	}
	return st.commit()
}

// save writes doc and, for HTML documents, its Markdown rendition. names
// holds the lowercased filenames of every document in the archive; a
// rendition that would replace one of them is skipped, as is one for a
// payload the converter rejects as empty.
func (s *ArchiveStore) save(dir string, doc *edgardoc.Document, names map[string]bool) error {
	if err := SaveDocument(dir, doc); err != nil {
		return err
	}
	if s.Converter == nil || !doc.IsHTML() {
		return nil
	}
	if names[strings.ToLower(doc.Filename()+MarkdownSuffix)] {
		return nil
	}

	path, err := DocumentPath(dir, doc)
	if err != nil {
		return err
	}
	md, err := s.Converter.Convert(doc.Text)
	if edgardoc.ErrorCode(err) == edgardoc.EINVALID {
		return nil
	} else if err != nil {
		return err
	}
	return writeFile(path+MarkdownSuffix, []byte(md))
}

// uniqueDocuments drops documents whose filename is reused by a later
// document, so that the last one wins regardless of write order.
func uniqueDocuments(docs []*edgardoc.Document) []*edgardoc.Document {
	last := make(map[string]int, len(docs))
	for i, doc := range docs {
		last[doc.Filename()] = i
	}
	out := make([]*edgardoc.Document, 0, len(last))
	for i, doc := range docs {
		if last[doc.Filename()] == i {
			out = append(out, doc)
		}
	}
	return out
}

// stage is a temporary directory that is moved into place on commit.
type stage struct {
	dir string
}

func newStage(dir string) *stage {
	return &stage{dir: filepath.Clean(dir)}
}

func (s *stage) tempDir() string {
	return s.dir + ".tmp"
}

// begin creates an empty temp directory, discarding leftovers of an earlier
// interrupted run.
func (s *stage) begin() error {
	if err := os.RemoveAll(s.tempDir()); err != nil {
		return err
	}
	return os.MkdirAll(s.tempDir(), 0755)
}

func (s *stage) commit() error {
	// Remove existing final directory if present
	if err := os.RemoveAll(s.dir); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.dir)
}

func (s *stage) abort() error {
	return os.RemoveAll(s.tempDir())
}
