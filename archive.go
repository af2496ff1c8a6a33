package edgardoc

import "context"

// MetadataFilename is the name of the metadata record written next to the
// extracted documents of an archive.
const MetadataFilename = "meta.json"

// Archive is the in-memory representation of one parsed filing. It exists
// only for the duration of a single processing call.
type Archive struct {
	Header    Header
	Documents []*Document
}

// Validate returns an error if the archive cannot be persisted.
func (a *Archive) Validate() error {
	if len(a.Header) == 0 {
		return Errorf(ENOHEADER, "archive header required")
	}
	if len(a.Documents) == 0 {
		return Errorf(ENODOCUMENTS, "archive documents required")
	}
	for _, doc := range a.Documents {
		if err := doc.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Metadata returns the record persisted alongside the extracted documents.
// Documents sharing a filename collapse to the last one.
func (a *Archive) Metadata() *Metadata {
	docs := make(map[string]Attributes, len(a.Documents))
	for _, doc := range a.Documents {
		docs[doc.Filename()] = doc.Attrs
	}
	return &Metadata{
		Header:    a.Header,
		Documents: docs,
	}
}

// Metadata is the persisted description of an extracted archive.
type Metadata struct {
	Header    Header                `json:"header"`
	Documents map[string]Attributes `json:"documents"`
}

// ArchiveParser recovers an Archive from the raw text of a filing.
type ArchiveParser interface {
	// Parse extracts the header and every sub-document from raw.
	// Returns ENODOCUMENTS, ENOHEADER, EHEADERPARSE, EMISSINGPAYLOAD,
	// EMISSINGATTRS or EDECODE when the filing is malformed.
	Parse(ctx context.Context, raw string) (*Archive, error)
}

// ArchiveWriter persists an archive to a target directory.
type ArchiveWriter interface {
	// WriteArchive writes every document and the metadata record into dir.
	// An existing dir is replaced. On failure dir is left untouched.
	WriteArchive(ctx context.Context, archive *Archive, dir string) error
}
