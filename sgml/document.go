package sgml

import (
	"strings"

	"github.com/fwojciec/edgardoc"
)

// ParseDocument recovers a sub-document from the body of one <DOCUMENT>
// region.
//
// The <TEXT> region is the payload. It is cut out of the fragment before the
// remaining lines are scanned for <TAG>value attributes, so tags inside the
// payload are never mistaken for document attributes. Uuencoded payloads are
// decoded here, so a corrupt attachment fails the archive before anything is
// written.
func ParseDocument(fragment string) (*edgardoc.Document, error) {
	loc := textRE.FindStringSubmatchIndex(fragment)
	if loc == nil || loc[2] == loc[3] {
		return nil, edgardoc.Errorf(edgardoc.EMISSINGPAYLOAD, "document has no text payload")
	}
	text := fragment[loc[2]:loc[3]]

	attrs := parseAttributes(fragment[:loc[0]] + fragment[loc[1]:])
	if len(attrs) == 0 {
		return nil, edgardoc.Errorf(edgardoc.EMISSINGATTRS, "document has no attributes")
	}

	doc := &edgardoc.Document{
		Attrs: attrs,
		Text:  text,
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	if IsUUEncoded(text) {
		data, err := UUDecode(text)
		if err != nil {
			return nil, edgardoc.WrapError(edgardoc.EDECODE, err, "decode %s", doc.Filename())
		}
		doc.Data = data
	}

	return doc, nil
}

// parseAttributes collects <TAG>value lines. Tag names are uppercased and
// lines with an empty value are skipped; a repeated tag keeps its last value.
func parseAttributes(s string) edgardoc.Attributes {
	attrs := make(edgardoc.Attributes)
	for _, m := range attrRE.FindAllStringSubmatch(s, -1) {
		value := strings.TrimSpace(m[2])
		if value == "" {
			continue
		}
		attrs[strings.ToUpper(strings.TrimSpace(m[1]))] = value
	}
	return attrs
}
