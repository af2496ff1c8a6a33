package sgml

import (
	"context"
	"fmt"

	"github.com/fwojciec/edgardoc"
)

// Ensure Parser implements edgardoc.ArchiveParser at compile time.
var _ edgardoc.ArchiveParser = (*Parser)(nil)

// Parser implements edgardoc.ArchiveParser over the raw submission text.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse extracts the header and every sub-document from raw.
func (p *Parser) Parse(ctx context.Context, raw string) (*edgardoc.Archive, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse extracts the header and every sub-document from a raw filing.
//
// Parsing is all-or-nothing: the first malformed document, a missing header
// or a header that cannot be parsed fails the whole archive. Nothing is
// written to disk.
func Parse(raw string) (*edgardoc.Archive, error) {
	fragments := FindDocuments(raw)
	if len(fragments) == 0 {
		return nil, edgardoc.Errorf(edgardoc.ENODOCUMENTS, "no documents found")
	}

	docs := make([]*edgardoc.Document, 0, len(fragments))
	for i, fragment := range fragments {
		doc, err := ParseDocument(fragment)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i+1, err)
		}
		docs = append(docs, doc)
	}

	fragment, ok := FindHeader(raw)
	if !ok {
		return nil, edgardoc.Errorf(edgardoc.ENOHEADER, "no header found")
	}
	header, err := ParseHeader(fragment)
	if err != nil {
		return nil, err
	}

	return &edgardoc.Archive{
		Header:    header,
		Documents: docs,
	}, nil
}
