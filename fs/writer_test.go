package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/edgardoc"
	"github.com/fwojciec/edgardoc/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveDocument(t *testing.T) {
	t.Parallel()

	t.Run("writes text payload under its filename", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		doc := &edgardoc.Document{
			Attrs: edgardoc.Attributes{edgardoc.AttrFilename: "aapl-20200926.htm"},
			Text:  "\n<html>report</html>\n",
		}

		err := fs.SaveDocument(dir, doc)

		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(dir, "aapl-20200926.htm"))
		require.NoError(t, err)
		assert.Equal(t, "\n<html>report</html>\n", string(got))
	})

	t.Run("writes decoded bytes for binary payload", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		doc := &edgardoc.Document{
			Attrs: edgardoc.Attributes{edgardoc.AttrFilename: "g1.gif"},
			Text:  "begin 644 g1.gif\n...\nend\n",
			Data:  []byte{0x47, 0x49, 0x46, 0x00},
		}

		err := fs.SaveDocument(dir, doc)

		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(dir, "g1.gif"))
		require.NoError(t, err)
		assert.Equal(t, []byte{0x47, 0x49, 0x46, 0x00}, got)
	})

	t.Run("names description documents", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		doc := &edgardoc.Document{
			Attrs: edgardoc.Attributes{
				edgardoc.AttrType:        "EX-21.1",
				edgardoc.AttrDescription: "Subsidiaries/Affiliates.",
			},
			Text: "list",
		}

		err := fs.SaveDocument(dir, doc)

		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "Subsidiaries-Affiliates.html"))
	})

	t.Run("rejects path traversal", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		doc := &edgardoc.Document{
			Attrs: edgardoc.Attributes{edgardoc.AttrFilename: "../../etc/passwd"},
			Text:  "bad content",
		}

		err := fs.SaveDocument(dir, doc)

		require.Error(t, err)
		assert.Equal(t, edgardoc.EINVALID, edgardoc.ErrorCode(err))
		assert.Contains(t, err.Error(), "path traversal")
	})

	t.Run("rejects the metadata filename", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		doc := &edgardoc.Document{
			Attrs: edgardoc.Attributes{edgardoc.AttrFilename: "META.JSON"},
			Text:  `{"exhibit":true}`,
		}

		err := fs.SaveDocument(dir, doc)

		require.Error(t, err)
		assert.Equal(t, edgardoc.EINVALID, edgardoc.ErrorCode(err))
		assert.NoFileExists(t, filepath.Join(dir, "META.JSON"))
	})
}

func TestMetadata_RoundTrip(t *testing.T) {
	t.Parallel()

	// Given metadata with a nested header
	dir := t.TempDir()
	meta := &edgardoc.Metadata{
		Header: edgardoc.Header{
			edgardoc.HeaderFiledAsOfDate: "20201030",
			"FILER": edgardoc.Header{
				"COMPANY DATA": edgardoc.Header{"CENTRAL INDEX KEY": "0000320193"},
			},
		},
		Documents: map[string]edgardoc.Attributes{
			"g1.gif": {edgardoc.AttrType: "GRAPHIC", edgardoc.AttrFilename: "g1.gif"},
		},
	}

	// When I write and read it back
	require.NoError(t, fs.WriteMetadata(dir, meta))
	got, err := fs.ReadMetadata(dir)

	// Then nested blocks come back as Headers
	require.NoError(t, err)
	assert.Equal(t, meta, got)
	assert.Equal(t, "0000320193", got.Header.Section("FILER").Section("COMPANY DATA").String("CENTRAL INDEX KEY"))
}

func TestWriteMetadata_UsesTopLevelKeys(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	err := fs.WriteMetadata(dir, &edgardoc.Metadata{
		Header:    edgardoc.Header{"A": "b"},
		Documents: map[string]edgardoc.Attributes{"x.htm": {"TYPE": "10-K"}},
	})
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(dir, edgardoc.MetadataFilename))
	require.NoError(t, err)
	assert.JSONEq(t, `{"header":{"A":"b"},"documents":{"x.htm":{"TYPE":"10-K"}}}`, string(b))
}

func TestReadMetadata(t *testing.T) {
	t.Parallel()

	t.Run("missing record", func(t *testing.T) {
		t.Parallel()

		_, err := fs.ReadMetadata(t.TempDir())

		assert.Equal(t, edgardoc.ENOTFOUND, edgardoc.ErrorCode(err))
	})

	t.Run("corrupt record", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, edgardoc.MetadataFilename), []byte("{"), 0644))

		_, err := fs.ReadMetadata(dir)

		assert.Equal(t, edgardoc.EINVALID, edgardoc.ErrorCode(err))
	})
}
