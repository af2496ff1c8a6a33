package edgardoc_test

import (
	"testing"

	"github.com/fwojciec/edgardoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchive_Metadata(t *testing.T) {
	t.Parallel()

	t.Run("maps filenames to attributes", func(t *testing.T) {
		t.Parallel()

		archive := &edgardoc.Archive{
			Header: edgardoc.Header{"FILED AS OF DATE": "20201030"},
			Documents: []*edgardoc.Document{
				{Attrs: edgardoc.Attributes{"TYPE": "10-K", "FILENAME": "aapl.htm"}, Text: "a"},
				{Attrs: edgardoc.Attributes{"TYPE": "EX-21", "SEQUENCE": "2"}, Text: "b"},
			},
		}

		meta := archive.Metadata()

		assert.Equal(t, archive.Header, meta.Header)
		assert.Equal(t, map[string]edgardoc.Attributes{
			"aapl.htm": {"TYPE": "10-K", "FILENAME": "aapl.htm"},
			"EX-21.2":  {"TYPE": "EX-21", "SEQUENCE": "2"},
		}, meta.Documents)
	})

	t.Run("last document wins on filename collision", func(t *testing.T) {
		t.Parallel()

		archive := &edgardoc.Archive{
			Header: edgardoc.Header{"FILED AS OF DATE": "20201030"},
			Documents: []*edgardoc.Document{
				{Attrs: edgardoc.Attributes{"FILENAME": "dup.htm", "SEQUENCE": "1"}, Text: "a"},
				{Attrs: edgardoc.Attributes{"FILENAME": "dup.htm", "SEQUENCE": "2"}, Text: "b"},
			},
		}

		meta := archive.Metadata()

		require.Len(t, meta.Documents, 1)
		assert.Equal(t, "2", meta.Documents["dup.htm"]["SEQUENCE"])
	})
}

func TestArchive_Validate(t *testing.T) {
	t.Parallel()

	doc := &edgardoc.Document{Attrs: edgardoc.Attributes{"TYPE": "10-K"}, Text: "a"}

	assert.NoError(t, (&edgardoc.Archive{Header: edgardoc.Header{"A": "b"}, Documents: []*edgardoc.Document{doc}}).Validate())
	assert.Equal(t, edgardoc.ENOHEADER, edgardoc.ErrorCode((&edgardoc.Archive{Documents: []*edgardoc.Document{doc}}).Validate()))
	assert.Equal(t, edgardoc.ENODOCUMENTS, edgardoc.ErrorCode((&edgardoc.Archive{Header: edgardoc.Header{"A": "b"}}).Validate()))
}

func TestFiling_TargetDir(t *testing.T) {
	t.Parallel()

	f := &edgardoc.Filing{Symbol: "AAPL", FormType: "10-K", Accession: "0000320193-20-000096"}

	require.NoError(t, f.Validate())
	assert.Equal(t, "out/AAPL/10-K/0000320193-20-000096", f.TargetDir("out"))
	assert.Equal(t, edgardoc.EINVALID, edgardoc.ErrorCode((&edgardoc.Filing{Symbol: "AAPL"}).Validate()))
}
