package edgardoc

import (
	"path"
	"strings"
)

// Attribute names with special meaning to extraction and site generation.
const (
	AttrType        = "TYPE"
	AttrSequence    = "SEQUENCE"
	AttrFilename    = "FILENAME"
	AttrDescription = "DESCRIPTION"
)

// Attributes holds the tag-style attributes that precede a sub-document's
// text payload (e.g. <TYPE>10-K). Keys are uppercase.
type Attributes map[string]string

// Document represents one sub-document embedded in a filing: the main
// report body, an exhibit, a graphic and so on.
type Document struct {
	// Attrs are the document attributes. Never empty for a parsed document.
	Attrs Attributes

	// Text is the raw payload between the <TEXT> markers.
	Text string

	// Data holds the decoded bytes when the payload was uuencoded.
	// It is nil for plain text payloads.
	Data []byte
}

// Validate returns an error if the document cannot be persisted.
func (d *Document) Validate() error {
	if len(d.Attrs) == 0 {
		return Errorf(EMISSINGATTRS, "document attributes required")
	}
	if d.Text == "" {
		return Errorf(EMISSINGPAYLOAD, "document text required")
	}
	if d.Filename() == "" {
		return Errorf(EMISSINGATTRS, "document requires a FILENAME, DESCRIPTION or TYPE attribute")
	}
	return nil
}

// Filename returns the name the document is stored under.
//
// The FILENAME attribute wins when present. Otherwise the DESCRIPTION is
// used with surrounding dots removed, path separators replaced by "-" and an
// ".html" suffix. Otherwise the name is TYPE.SEQUENCE.
func (d *Document) Filename() string {
	if name := d.Attrs[AttrFilename]; name != "" {
		return name
	}
	if desc := d.Attrs[AttrDescription]; desc != "" {
		return descriptionReplacer.Replace(strings.Trim(desc, ".")) + ".html"
	}
	typ := d.Attrs[AttrType]
	if typ == "" {
		return ""
	}
	if seq := d.Attrs[AttrSequence]; seq != "" {
		return typ + "." + seq
	}
	return typ
}

var descriptionReplacer = strings.NewReplacer("/", "-", `\`, "-")

// Type returns the document TYPE attribute.
func (d *Document) Type() string {
	return d.Attrs[AttrType]
}

// Description returns the DESCRIPTION attribute, falling back to the TYPE
// and then to the filename.
func (d *Document) Description() string {
	if desc := d.Attrs[AttrDescription]; desc != "" {
		return desc
	}
	if typ := d.Attrs[AttrType]; typ != "" {
		return typ
	}
	return d.Filename()
}

// IsBinary reports whether the payload was uuencoded binary data.
func (d *Document) IsBinary() bool {
	return d.Data != nil
}

// IsHTML reports whether the document is stored under an HTML filename.
func (d *Document) IsHTML() bool {
	switch strings.ToLower(path.Ext(d.Filename())) {
	case ".htm", ".html":
		return !d.IsBinary()
	}
	return false
}

// Content returns the bytes written to disk for the document: the decoded
// data for binary payloads, the payload text otherwise.
func (d *Document) Content() []byte {
	if d.Data != nil {
		return d.Data
	}
	return []byte(d.Text)
}
