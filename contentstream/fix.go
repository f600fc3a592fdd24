package contentstream

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// FixStream rewrites every RTL-majority TJ array in a decoded content
// stream and returns the resulting bytes, plus whether anything changed.
// When nothing changes the input bytes are returned unmodified.
//
// The stream is interpreted as Latin-1 text: each byte is one code point,
// and the decode/encode round trip is lossless for every byte value, so
// regions outside rewritten arrays come back byte-identical.
func FixStream(data []byte) ([]byte, bool) {
	text, err := decodeLatin1(data)
	if err != nil {
		return data, false
	}

	fixed, changed := fixText(text)
	if !changed {
		return data, false
	}

	out, err := encodeLatin1(fixed)
	if err != nil {
		// Encoding what we decoded cannot fail; treat it as pass-through.
		return data, false
	}
	return out, true
}

// ContainsTextOperator reports whether data looks like a content stream
// with text-showing operators. It is a cheap probe used before attempting
// a full fix, and by the structure-agnostic adapter to distinguish likely
// content streams from image data.
func ContainsTextOperator(data []byte) bool {
	return bytes.Contains(data, []byte("TJ")) || bytes.Contains(data, []byte("Tj"))
}

// fixText scans the decoded stream for "[ ... ] TJ" spans and rewrites the
// RTL ones. Array bodies may span newlines; the closing bracket is the
// nearest "]" followed by optional whitespace and the TJ operator, found
// in a single forward pass with no backtracking.
func fixText(text string) (string, bool) {
	var sb strings.Builder
	changed := false
	pos := 0

	for pos < len(text) {
		open := strings.IndexByte(text[pos:], '[')
		if open < 0 {
			break
		}
		open += pos

		body, end, ok := matchTJArray(text, open)
		if !ok {
			sb.WriteString(text[pos : open+1])
			pos = open + 1
			continue
		}

		replacement, reversed := fixArrayBody(body)
		if reversed {
			sb.WriteString(text[pos:open])
			sb.WriteString(replacement)
			// Preserve whatever sat between "]" and "TJ".
			sb.WriteString(text[open+1+len(body)+1 : end])
			changed = true
		} else {
			sb.WriteString(text[pos:end])
		}
		pos = end
	}

	if !changed {
		return text, false
	}
	sb.WriteString(text[pos:])
	return sb.String(), true
}

// matchTJArray, given the position of "[", finds the span of a TJ array.
// It returns the array body (between the brackets), the position just past
// the TJ operator, and whether a TJ array starts here at all.
func matchTJArray(text string, open int) (body string, end int, ok bool) {
	for i := open + 1; i < len(text); i++ {
		if text[i] != ']' {
			continue
		}

		j := i + 1
		for j < len(text) && isWhitespace(text[j]) {
			j++
		}
		if j+1 < len(text) && text[j] == 'T' && text[j+1] == 'J' {
			return text[open+1 : i], j + 2, true
		}
		// A "]" not followed by TJ ends the candidate: TJ arrays are not
		// nested, so this "[" does not open one.
		return "", 0, false
	}
	return "", 0, false
}

// fixArrayBody tokenizes one array body and, when any glyph run is RTL,
// returns the reversed re-serialization. Bodies that fail to tokenize or
// hold no RTL run are reported unchanged so the caller keeps the original
// bytes exactly.
func fixArrayBody(body string) (string, bool) {
	tokens, err := Tokenize(body)
	if err != nil || len(tokens) == 0 {
		return "", false
	}

	if !hasRTLToken(tokens) {
		return "", false
	}

	reverseTokens(tokens)
	return serializeTokens(tokens), true
}

// decodeLatin1 maps raw stream bytes to text, one byte per code point.
func decodeLatin1(data []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// encodeLatin1 maps text back to raw bytes, reversing decodeLatin1.
func encodeLatin1(text string) ([]byte, error) {
	return charmap.ISO8859_1.NewEncoder().Bytes([]byte(text))
}
