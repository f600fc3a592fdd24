package contentstream

import (
	"fmt"
	"strings"

	"github.com/mosaeedv/persianOCR/rtl"
)

// TokenKind distinguishes the two element types of a TJ array.
type TokenKind int

const (
	// TokenHexString is a hex-encoded glyph run delimited by angle
	// brackets, e.g. <06410642>.
	TokenHexString TokenKind = iota
	// TokenNumber is a signed decimal spacing adjustment, e.g. -10 or 2.5.
	TokenNumber
)

// Token is one element of a TJ array. Raw holds the element exactly as it
// appeared in the stream, delimiters included, so re-serialization cannot
// alter glyph bytes or numeric formatting.
type Token struct {
	Kind TokenKind
	Raw  string
}

// HexDigits returns the hex content of a TokenHexString without its
// delimiters, or "" for other kinds.
func (t Token) HexDigits() string {
	if t.Kind != TokenHexString || len(t.Raw) < 2 {
		return ""
	}
	return t.Raw[1 : len(t.Raw)-1]
}

// Tokenize splits the body of a TJ array (the bytes between "[" and "]")
// into its ordered tokens. It is a two-state scanner: outside angle
// brackets it accepts whitespace, numbers, and "<"; inside it accepts only
// hex digits until ">". Anything else is an error, in which case the
// caller must leave the whole array untouched.
func Tokenize(body string) ([]Token, error) {
	var tokens []Token
	pos := 0

	for pos < len(body) {
		c := body[pos]

		switch {
		case isWhitespace(c):
			pos++

		case c == '<':
			start := pos
			pos++
			for pos < len(body) && isHexDigit(body[pos]) {
				pos++
			}
			if pos >= len(body) || body[pos] != '>' {
				return nil, fmt.Errorf("unterminated hex string at offset %d", start)
			}
			pos++
			tokens = append(tokens, Token{Kind: TokenHexString, Raw: body[start:pos]})

		case c == '-' || c == '+' || isDigit(c):
			start := pos
			if c == '-' || c == '+' {
				pos++
			}
			digits := 0
			for pos < len(body) && isDigit(body[pos]) {
				pos++
				digits++
			}
			if digits == 0 {
				return nil, fmt.Errorf("sign without digits at offset %d", start)
			}
			if pos < len(body) && body[pos] == '.' {
				pos++
				for pos < len(body) && isDigit(body[pos]) {
					pos++
				}
			}
			tokens = append(tokens, Token{Kind: TokenNumber, Raw: body[start:pos]})

		default:
			return nil, fmt.Errorf("unexpected byte %q at offset %d", c, pos)
		}
	}

	return tokens, nil
}

// IsRTLHex reports whether a hex glyph run is predominantly right-to-left.
// The digits are read as 16-bit code units, four hex digits each. Units
// above 0x007F count toward a non-ASCII total; units in the Arabic blocks
// (base, Supplement, Presentation Forms A and B) or the Hebrew base block
// count as RTL. The run is RTL when RTL units form a strict majority of
// the non-ASCII units. Runs shorter than one full code unit, and runs with
// no non-ASCII units at all, are never RTL.
func IsRTLHex(hexDigits string) bool {
	if len(hexDigits) < 4 {
		return false
	}

	rtlCount := 0
	total := 0

	for i := 0; i+4 <= len(hexDigits); i += 4 {
		code, ok := parseHex16(hexDigits[i : i+4])
		if !ok {
			continue
		}
		if code > 0x007F {
			total++
			if isRTLCodeUnit(rune(code)) {
				rtlCount++
			}
		}
	}

	if total == 0 {
		return false
	}
	return rtlCount*2 > total
}

// isRTLCodeUnit tests a 16-bit glyph code unit against the RTL blocks.
// Unlike the rune-level word test this excludes the Hebrew Presentation
// Forms block: glyph code units are fixed 16-bit values, and presentation
// forms there collide with ligature codes seen in Latin fonts.
func isRTLCodeUnit(r rune) bool {
	if r >= 0xFB00 && r <= 0xFB4F {
		return false
	}
	return rtl.IsRTLRune(r)
}

// parseHex16 parses exactly four hex digits into a 16-bit value.
func parseHex16(s string) (uint16, bool) {
	var v uint16
	for i := 0; i < len(s); i++ {
		d, ok := hexValue(s[i])
		if !ok {
			return 0, false
		}
		v = v<<4 | uint16(d)
	}
	return v, true
}

// serializeTokens renders tokens as a TJ array body joined by single
// spaces, bracketed.
func serializeTokens(tokens []Token) string {
	raws := make([]string, len(tokens))
	for i, tok := range tokens {
		raws[i] = tok.Raw
	}
	return "[" + strings.Join(raws, " ") + "]"
}

// reverseTokens reverses the token sequence in place.
func reverseTokens(tokens []Token) {
	for i, j := 0, len(tokens)-1; i < j; i, j = i+1, j-1 {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	}
}

// hasRTLToken reports whether any hex token in the array is individually
// RTL-majority. A single RTL run is enough to reverse the whole array:
// OCR engines emit one array per text line, so one RTL run means an RTL
// line.
func hasRTLToken(tokens []Token) bool {
	for _, tok := range tokens {
		if tok.Kind == TokenHexString && IsRTLHex(tok.HexDigits()) {
			return true
		}
	}
	return false
}

// isWhitespace reports whether c is a PDF whitespace character.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

// isDigit reports whether c is an ASCII decimal digit.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isHexDigit reports whether c is a hexadecimal digit.
func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// hexValue returns the numeric value of a hexadecimal digit.
func hexValue(c byte) (byte, bool) {
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
