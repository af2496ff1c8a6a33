package sgml

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/edgardoc"
	"gopkg.in/yaml.v3"
)

// indentUnit is the YAML indentation emitted per header nesting level.
const indentUnit = "    "

// ParseHeader recovers the filer header tree from the body of a
// <SEC-HEADER> region.
//
// Each recognized line becomes a (depth, key, value) triple. The triples are
// rendered as a YAML mapping with every key and value double-quoted, so that
// values such as a numeric-looking ticker stay strings, and then parsed.
// Returns EHEADERPARSE if the rendered document is not valid YAML or yields
// no keys.
func ParseHeader(fragment string) (edgardoc.Header, error) {
	lines := headerLines(fragment)
	if len(lines) == 0 {
		return nil, edgardoc.Errorf(edgardoc.EHEADERPARSE, "header contains no key/value lines")
	}

	text := renderHeaderYAML(lines)

	var node yaml.Node
	if err := yaml.Unmarshal([]byte(text), &node); err != nil {
		return nil, edgardoc.WrapError(edgardoc.EHEADERPARSE, err, "header is not valid structured data")
	}

	v, err := decodeHeaderNode(&node)
	if err != nil {
		return nil, edgardoc.WrapError(edgardoc.EHEADERPARSE, err, "header is not a mapping")
	}
	header, ok := v.(edgardoc.Header)
	if !ok || len(header) == 0 {
		return nil, edgardoc.Errorf(edgardoc.EHEADERPARSE, "header yielded no keys")
	}
	return header, nil
}

func headerLines(fragment string) []headerLine {
	var lines []headerLine
	for _, raw := range strings.Split(fragment, "\n") {
		if l, ok := matchHeaderLine(raw); ok {
			lines = append(lines, l)
		}
	}
	return lines
}

func renderHeaderYAML(lines []headerLine) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(strings.Repeat(indentUnit, l.Depth))
		b.WriteString(quoteYAML(l.Key))
		b.WriteByte(':')
		if l.Value != "" {
			b.WriteByte(' ')
			b.WriteString(quoteYAML(l.Value))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// quoteYAML returns s as a YAML double-quoted scalar. Characters the YAML
// reader rejects outright are escaped.
func quoteYAML(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\t':
			b.WriteByte('\t')
		case r == utf8.RuneError && size == 1:
			b.WriteString(`\uFFFD`)
		case r < 0x20 || (r >= 0x7f && r < 0xa0) || r == 0xfeff:
			fmt.Fprintf(&b, `\u%04X`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// decodeHeaderNode converts a parsed YAML node into header values. Repeated
// keys keep the last value and empty values become empty strings.
func decodeHeaderNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return edgardoc.Header{}, nil
		}
		return decodeHeaderNode(n.Content[0])
	case yaml.MappingNode:
		h := make(edgardoc.Header, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := decodeHeaderNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			h[n.Content[i].Value] = v
		}
		return h, nil
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return "", nil
		}
		return n.Value, nil
	default:
		return nil, fmt.Errorf("line %d: unexpected YAML node kind %d", n.Line, n.Kind)
	}
}
