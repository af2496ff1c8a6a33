package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/edgardoc"
	"github.com/fwojciec/edgardoc/fs"
	"github.com/fwojciec/edgardoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArchive() *edgardoc.Archive {
	return &edgardoc.Archive{
		Header: edgardoc.Header{edgardoc.HeaderFiledAsOfDate: "20201030"},
		Documents: []*edgardoc.Document{
			{
				Attrs: edgardoc.Attributes{edgardoc.AttrType: "10-K", edgardoc.AttrSequence: "1", edgardoc.AttrFilename: "report.htm"},
				Text:  "<html><h1>Report</h1></html>",
			},
			{
				Attrs: edgardoc.Attributes{edgardoc.AttrType: "EX-21", edgardoc.AttrSequence: "2"},
				Text:  "subsidiaries",
			},
		},
	}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// Story: Atomic Archive Storage
// The store writes into a temp directory and moves it into place

func TestArchiveStore_WritesDocumentsAndMetadata(t *testing.T) {
	t.Parallel()

	// Given a store and a target directory
	dir := filepath.Join(t.TempDir(), "AAPL", "10-K", "0000320193-20-000096")
	store := fs.NewArchiveStore()

	// When I write an archive
	err := store.WriteArchive(context.Background(), newArchive(), dir)

	// Then every document and the metadata record exist
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"report.htm", "EX-21.2", edgardoc.MetadataFilename}, listDir(t, dir))

	// And the temp directory is gone
	_, err = os.Stat(dir + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after commit")

	// And the metadata lists every document
	meta, err := fs.ReadMetadata(dir)
	require.NoError(t, err)
	assert.Len(t, meta.Documents, 2)
	assert.Equal(t, "20201030", meta.Header.String(edgardoc.HeaderFiledAsOfDate))
}

func TestArchiveStore_ReplacesExistingTarget(t *testing.T) {
	t.Parallel()

	// Given a target that already holds a stale file
	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stale.txt"), []byte("old"), 0644))
	store := fs.NewArchiveStore()

	// When I write the archive twice
	require.NoError(t, store.WriteArchive(context.Background(), newArchive(), dir))
	require.NoError(t, store.WriteArchive(context.Background(), newArchive(), dir))

	// Then the target holds exactly the archive's files
	assert.ElementsMatch(t, []string{"report.htm", "EX-21.2", edgardoc.MetadataFilename}, listDir(t, dir))
}

func TestArchiveStore_LastDocumentWinsOnFilenameCollision(t *testing.T) {
	t.Parallel()

	// Given two documents sharing a filename
	dir := filepath.Join(t.TempDir(), "out")
	archive := &edgardoc.Archive{
		Header: edgardoc.Header{"A": "b"},
		Documents: []*edgardoc.Document{
			{Attrs: edgardoc.Attributes{edgardoc.AttrFilename: "dup.txt", edgardoc.AttrSequence: "1"}, Text: "first"},
			{Attrs: edgardoc.Attributes{edgardoc.AttrFilename: "dup.txt", edgardoc.AttrSequence: "2"}, Text: "second"},
		},
	}

	// When I write the archive
	err := fs.NewArchiveStore().WriteArchive(context.Background(), archive, dir)

	// Then the later document is on disk and in the metadata
	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join(dir, "dup.txt"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	meta, err := fs.ReadMetadata(dir)
	require.NoError(t, err)
	assert.Equal(t, "2", meta.Documents["dup.txt"][edgardoc.AttrSequence])
}

func TestArchiveStore_LeavesNoPartialTargetOnFailure(t *testing.T) {
	t.Parallel()

	// Given an archive with a document that cannot be written
	base := t.TempDir()
	dir := filepath.Join(base, "out")
	archive := newArchive()
	archive.Documents = append(archive.Documents, &edgardoc.Document{
		Attrs: edgardoc.Attributes{edgardoc.AttrFilename: "../escape.htm"},
		Text:  "bad",
	})

	// When I write the archive
	err := fs.NewArchiveStore().WriteArchive(context.Background(), archive, dir)

	// Then it fails
	require.Error(t, err)

	// And neither the target nor the temp directory exists
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "target should not exist after failure")
	_, err = os.Stat(dir + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after failure")
}

func TestArchiveStore_RejectsInvalidArchive(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")

	err := fs.NewArchiveStore().WriteArchive(context.Background(), &edgardoc.Archive{
		Documents: newArchive().Documents,
	}, dir)

	assert.Equal(t, edgardoc.ENOHEADER, edgardoc.ErrorCode(err))
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestArchiveStore_WritesMarkdownRenditions(t *testing.T) {
	t.Parallel()

	// Given a store with a converter
	dir := filepath.Join(t.TempDir(), "out")
	var converted []string
	store := &fs.ArchiveStore{
		Converter: &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				converted = append(converted, html)
				return "# Report", nil
			},
		},
		Concurrency: 1,
	}

	// When I write an archive with one HTML document
	err := store.WriteArchive(context.Background(), newArchive(), dir)

	// Then only the HTML document is converted
	require.NoError(t, err)
	assert.Equal(t, []string{"<html><h1>Report</h1></html>"}, converted)

	got, err := os.ReadFile(filepath.Join(dir, "report.htm.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Report", string(got))

	// And the rendition is not listed in the metadata
	meta, err := fs.ReadMetadata(dir)
	require.NoError(t, err)
	assert.NotContains(t, meta.Documents, "report.htm.md")
}

func TestArchiveStore_ConverterFailureAbortsWrite(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	store := &fs.ArchiveStore{
		Converter: &mock.Converter{
			ConvertFn: func(string) (string, error) {
				return "", errors.New("boom")
			},
		},
	}

	err := store.WriteArchive(context.Background(), newArchive(), dir)

	require.Error(t, err)
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestArchiveStore_RespectsCancelledContext(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fs.NewArchiveStore().WriteArchive(ctx, newArchive(), dir)

	assert.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestArchiveStore_RejectsDocumentNamedLikeMetadata(t *testing.T) {
	t.Parallel()

	// Given an archive with a document that claims the metadata filename
	dir := filepath.Join(t.TempDir(), "out")
	archive := newArchive()
	archive.Documents = append(archive.Documents, &edgardoc.Document{
		Attrs: edgardoc.Attributes{edgardoc.AttrType: "EX-99", edgardoc.AttrFilename: edgardoc.MetadataFilename},
		Text:  `{"exhibit":true}`,
	})

	// When I write it
	err := fs.NewArchiveStore().WriteArchive(context.Background(), archive, dir)

	// Then the write fails instead of losing the document
	require.Error(t, err)
	assert.Equal(t, edgardoc.EINVALID, edgardoc.ErrorCode(err))
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestArchiveStore_MarkdownRenditionNeverReplacesDocument(t *testing.T) {
	t.Parallel()

	// Given an archive holding both report.htm and a document named report.htm.md
	dir := filepath.Join(t.TempDir(), "out")
	archive := newArchive()
	archive.Documents = append(archive.Documents, &edgardoc.Document{
		Attrs: edgardoc.Attributes{edgardoc.AttrType: "EX-99", edgardoc.AttrFilename: "report.htm.md"},
		Text:  "filed markdown",
	})
	store := &fs.ArchiveStore{
		Converter: &mock.Converter{
			ConvertFn: func(string) (string, error) {
				return "# Report", nil
			},
		},
	}

	// When I write it with Markdown renditions enabled
	err := store.WriteArchive(context.Background(), archive, dir)

	// Then the filed document keeps its content
	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join(dir, "report.htm.md"))
	require.NoError(t, err)
	assert.Equal(t, "filed markdown", string(got))
}

func TestArchiveStore_SkipsRenditionOfEmptyHTML(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	archive := newArchive()
	archive.Documents[0].Text = "\n  \n"
	store := &fs.ArchiveStore{
		Converter: &mock.Converter{
			ConvertFn: func(string) (string, error) {
				return "", edgardoc.Errorf(edgardoc.EINVALID, "html content is empty")
			},
		},
	}

	err := store.WriteArchive(context.Background(), archive, dir)

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "report.htm"))
	assert.NoFileExists(t, filepath.Join(dir, "report.htm.md"))
}
