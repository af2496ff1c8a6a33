// Package sgml recovers sub-documents and the filer header from EDGAR
// full-text submissions.
//
// The submission format looks like SGML but is not well-formed: many tags are
// never closed, casing varies between filers, and uuencoded attachments only
// survive if their whitespace is left alone. Markup parsers either reject the
// input or restructure it, so extraction here is done with line and region
// patterns that degrade gracefully.
package sgml

import (
	"regexp"
	"strings"
)

var (
	// A document region must contain a complete <TEXT> region. This skips
	// structural wrappers that are not real sub-documents.
	documentRE = regexp.MustCompile(`(?is)<document>(.*?<text>.+?</text>.*?)</document>`)

	textRE = regexp.MustCompile(`(?is)<text>(.*)</text>`)

	// <TAG>value on a single line.
	attrRE = regexp.MustCompile(`(?im)^<([^>\n]+)>(.+)$`)

	headerRE = regexp.MustCompile(`(?is)<sec-header>(.*)</sec-header>`)

	// KEY:<tabs>value, where leading tabs give the nesting depth. Anything
	// before the tabs is discarded.
	headerKeyLineRE = regexp.MustCompile(`^.*?(\t*)([^\t]*):\t*(.*)$`)

	// <TAG>value inside the header.
	headerTagLineRE = regexp.MustCompile(`^\s*<([^>]+)>(.*)$`)

	uuencodedRE = regexp.MustCompile(`(?sm)\A\s*begin \d+ [^\n]*\n.*^end\s*\z`)
)

// FindDocuments returns the body of every <DOCUMENT> region in raw, in order
// of appearance.
func FindDocuments(raw string) []string {
	matches := documentRE.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return nil
	}
	fragments := make([]string, 0, len(matches))
	for _, m := range matches {
		fragments = append(fragments, m[1])
	}
	return fragments
}

// FindHeader returns the body of the <SEC-HEADER> region in raw.
func FindHeader(raw string) (string, bool) {
	m := headerRE.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsUUEncoded reports whether the whole payload, ignoring surrounding
// whitespace, is a uuencoded block delimited by "begin <mode> <name>" and
// "end" lines.
func IsUUEncoded(payload string) bool {
	return uuencodedRE.MatchString(payload)
}

// headerLine is one normalized header entry.
type headerLine struct {
	Depth int
	Key   string
	Value string
}

// matchHeaderLine normalizes a header line in either the KEY: value or the
// <TAG>value form.
func matchHeaderLine(line string) (headerLine, bool) {
	line = strings.TrimRight(line, "\r")
	if m := headerTagLineRE.FindStringSubmatch(line); m != nil {
		return headerLine{
			Key:   strings.TrimSpace(m[1]),
			Value: strings.TrimSpace(m[2]),
		}, true
	}
	if m := headerKeyLineRE.FindStringSubmatch(line); m != nil {
		key := strings.TrimSpace(m[2])
		if key == "" {
			return headerLine{}, false
		}
		return headerLine{
			Depth: len(m[1]),
			Key:   key,
			Value: strings.TrimSpace(m[3]),
		}, true
	}
	return headerLine{}, false
}
