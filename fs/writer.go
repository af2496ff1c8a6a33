// Package fs provides file-based storage for raw filings and extracted
// archives.
package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/edgardoc"
)

// DocumentPath returns the path a document is written to inside dir.
// Filenames that would escape dir or replace the metadata record are
// rejected.
func DocumentPath(dir string, doc *edgardoc.Document) (string, error) {
	name := doc.Filename()
	if name == "" {
		return "", edgardoc.Errorf(edgardoc.EMISSINGATTRS, "document has no filename")
	}
	if !filepath.IsLocal(name) {
		return "", edgardoc.Errorf(edgardoc.EINVALID, "path traversal in filename %q", name)
	}
	if strings.EqualFold(name, edgardoc.MetadataFilename) {
		return "", edgardoc.Errorf(edgardoc.EINVALID, "filename %q is reserved for the metadata record", name)
	}
	return filepath.Join(dir, name), nil
}

// SaveDocument writes the document content to dir under its filename.
// Binary payloads are written as decoded bytes, text payloads verbatim.
func SaveDocument(dir string, doc *edgardoc.Document) error {
	path, err := DocumentPath(dir, doc)
	if err != nil {
		return err
	}
	return writeFile(path, doc.Content())
}

// WriteMetadata writes meta as the metadata record of the archive in dir.
func WriteMetadata(dir string, meta *edgardoc.Metadata) error {
	b, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	return writeFile(filepath.Join(dir, edgardoc.MetadataFilename), append(b, '\n'))
}

// ReadMetadata reads the metadata record of the archive in dir.
// Returns ENOTFOUND if dir holds no metadata record.
func ReadMetadata(dir string) (*edgardoc.Metadata, error) {
	path := filepath.Join(dir, edgardoc.MetadataFilename)
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, edgardoc.Errorf(edgardoc.ENOTFOUND, "no metadata in %s", dir)
	} else if err != nil {
		return nil, err
	}

	var meta edgardoc.Metadata
	if err := json.Unmarshal(b, &meta); err != nil {
		return nil, edgardoc.WrapError(edgardoc.EINVALID, err, "decode %s", path)
	}
	meta.Header = normalizeHeader(meta.Header)
	return &meta, nil
}

// normalizeHeader converts nested JSON objects back into Headers.
func normalizeHeader(h map[string]any) edgardoc.Header {
	if h == nil {
		return nil
	}
	out := make(edgardoc.Header, len(h))
	for k, v := range h {
		switch v := v.(type) {
		case map[string]any:
			out[k] = normalizeHeader(v)
		case string:
			out[k] = v
		case nil:
			out[k] = ""
		default:
			out[k] = fmt.Sprint(v)
		}
	}
	return out
}

func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}
