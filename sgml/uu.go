package sgml

import (
	"errors"
	"fmt"
	"strings"
)

// UUDecode decodes a uuencoded block consisting of a "begin <mode> <name>"
// line, encoded lines and an "end" line.
//
// Broken encoders are tolerated the way common decoders tolerate them:
// short lines are padded with zero bits and characters beyond a line's
// declared length are ignored.
func UUDecode(text string) ([]byte, error) {
	lines := strings.Split(text, "\n")

	i := 0
	for ; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "begin") {
			break
		}
	}
	if i == len(lines) {
		return nil, errors.New(`missing "begin" line`)
	}

	out := []byte{}
	for i++; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")
		if strings.TrimSpace(line) == "end" {
			return out, nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		decoded, err := uudecodeLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, decoded...)
	}
	return nil, errors.New(`missing "end" line`)
}

// uudecodeLine decodes a single encoded line. The first character encodes
// the number of bytes on the line; every following group of four characters
// carries three bytes.
func uudecodeLine(line string) ([]byte, error) {
	n := int(line[0]-' ') & 0x3f
	out := make([]byte, 0, n)

	for j := 1; len(out) < n; j += 4 {
		var c [4]byte
		for k := range c {
			if j+k >= len(line) {
				continue
			}
			ch := line[j+k]
			if ch < ' ' || ch > '`' {
				return nil, fmt.Errorf("illegal character %q", ch)
			}
			c[k] = (ch - ' ') & 0x3f
		}
		b := [3]byte{
			c[0]<<2 | c[1]>>4,
			c[1]<<4 | c[2]>>2,
			c[2]<<6 | c[3],
		}
		for _, v := range b {
			if len(out) == n {
				break
			}
			out = append(out, v)
		}
	}
	return out, nil
}
