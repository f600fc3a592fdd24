package filters

import (
	"bytes"
	"fmt"
)

// ASCIIHexDecode decodes hex-encoded stream data. Whitespace between
// digits is ignored, > ends the data, and an odd trailing digit is
// padded with zero.
func ASCIIHexDecode(data []byte) ([]byte, error) {
	var out bytes.Buffer
	var pending byte
	havePending := false

	for _, c := range data {
		if isFilterWhitespace(c) {
			continue
		}
		if c == '>' {
			break
		}
		v, ok := hexDigit(c)
		if !ok {
			return nil, fmt.Errorf("invalid hex digit %q", c)
		}
		if havePending {
			out.WriteByte(pending<<4 | v)
			havePending = false
		} else {
			pending = v
			havePending = true
		}
	}
	if havePending {
		out.WriteByte(pending << 4)
	}
	return out.Bytes(), nil
}

// ASCII85Decode decodes base-85 stream data. Groups of five characters
// in the range ! to u stand for four bytes; z abbreviates four zero
// bytes; ~> ends the data. A short final group is padded with u and
// truncated after decoding.
func ASCII85Decode(data []byte) ([]byte, error) {
	var out bytes.Buffer
	var group [5]byte
	n := 0

	flush := func() {
		produced := n - 1
		for i := n; i < 5; i++ {
			group[i] = 84 // pad with 'u'
		}
		var value uint32
		for _, d := range group {
			value = value*85 + uint32(d)
		}
		for i := 0; i < produced; i++ {
			out.WriteByte(byte(value >> (24 - i*8)))
		}
		n = 0
	}

	for i := 0; i < len(data); i++ {
		c := data[i]
		if isFilterWhitespace(c) {
			continue
		}
		if c == '~' && i+1 < len(data) && data[i+1] == '>' {
			break
		}
		if c == 'z' && n == 0 {
			out.Write([]byte{0, 0, 0, 0})
			continue
		}
		if c < '!' || c > 'u' {
			return nil, fmt.Errorf("invalid base-85 character %q", c)
		}
		group[n] = c - '!'
		n++
		if n == 5 {
			flush()
		}
	}
	if n == 1 {
		return nil, fmt.Errorf("dangling base-85 digit")
	}
	if n > 1 {
		flush()
	}
	return out.Bytes(), nil
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func isFilterWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}
