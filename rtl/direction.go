package rtl

import (
	"unicode"
)

// Direction represents the writing direction of text.
type Direction int

const (
	// LTR (Left-to-Right) for Latin, Cyrillic, etc.
	LTR Direction = iota
	// RTL (Right-to-Left) for Arabic, Persian, Hebrew, etc.
	RTL
	// Neutral for numbers, punctuation, etc.
	Neutral
)

// String returns a string representation of the direction ("LTR", "RTL", or "Neutral").
func (d Direction) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	case Neutral:
		return "Neutral"
	default:
		return "Unknown"
	}
}

// IsRTLRune reports whether r belongs to one of the right-to-left Unicode
// blocks recognized by this package:
//   - Arabic: U+0600–U+06FF
//   - Arabic Supplement: U+0750–U+077F
//   - Hebrew: U+0590–U+05FF
//   - Hebrew Presentation Forms (Alphabetic Presentation Forms): U+FB00–U+FB4F
//   - Arabic Presentation Forms-A: U+FB50–U+FDFF
//   - Arabic Presentation Forms-B: U+FE70–U+FEFF
//
// The set is closed: scripts outside these blocks never count as RTL here,
// even ones that are right-to-left in the full Unicode sense.
func IsRTLRune(r rune) bool {
	return (r >= 0x0600 && r <= 0x06FF) ||
		(r >= 0x0750 && r <= 0x077F) ||
		(r >= 0x0590 && r <= 0x05FF) ||
		(r >= 0xFB00 && r <= 0xFB4F) ||
		(r >= 0xFB50 && r <= 0xFDFF) ||
		(r >= 0xFE70 && r <= 0xFEFF)
}

// IsRTLWord reports whether word is predominantly right-to-left.
// A word counts as RTL when its RTL runes form a strict majority of its
// non-whitespace runes. A word with no non-whitespace runes is never RTL.
func IsRTLWord(word string) bool {
	rtlCount := 0
	nonSpace := 0

	for _, r := range word {
		if unicode.IsSpace(r) {
			continue
		}
		nonSpace++
		if IsRTLRune(r) {
			rtlCount++
		}
	}

	if nonSpace == 0 {
		return false
	}
	return rtlCount*2 > nonSpace
}

// IsRTLLine reports whether a line is predominantly right-to-left.
// A line counts as RTL when its RTL words (per IsRTLWord) form a strict
// majority: 2 of 3 words is RTL, 2 of 4 is not. An empty line is never RTL.
func IsRTLLine(words []string) bool {
	if len(words) == 0 {
		return false
	}

	rtlCount := 0
	for _, w := range words {
		if IsRTLWord(w) {
			rtlCount++
		}
	}
	return rtlCount*2 > len(words)
}

// DetectDirection analyzes a string and returns its dominant text direction.
// It counts strong directional runes and returns the direction with the
// higher count, or Neutral if no strong directional runes are present.
// Unlike IsRTLWord, this is a general-purpose classification: any rune that
// is not RTL, a digit, punctuation, whitespace, or a symbol counts as LTR.
func DetectDirection(text string) Direction {
	if text == "" {
		return Neutral
	}

	ltrCount := 0
	rtlCount := 0

	for _, r := range text {
		switch RuneDirection(r) {
		case LTR:
			ltrCount++
		case RTL:
			rtlCount++
		}
	}

	if ltrCount == 0 && rtlCount == 0 {
		return Neutral
	}
	if rtlCount > ltrCount {
		return RTL
	}
	return LTR
}

// RuneDirection returns the inherent direction of a single rune. Digits,
// punctuation, whitespace, and symbols are Neutral; runes in the recognized
// RTL blocks return RTL; everything else returns LTR.
func RuneDirection(r rune) Direction {
	// Neutral classes first, before any block checks
	if unicode.IsDigit(r) || unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
		return Neutral
	}

	if IsRTLRune(r) {
		return RTL
	}
	return LTR
}
