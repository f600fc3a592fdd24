package reorder

import (
	"fmt"
	"strings"

	"github.com/mosaeedv/persianOCR/hocr"
	"github.com/mosaeedv/persianOCR/rtl"
)

// Page converts one page's extracted lines into corrected plain text.
// RTL-majority lines have their word order reversed; all lines are joined
// with single newlines, words within a line with single spaces. The
// returned PageStats records the page's counters but is not yet appended
// to any aggregate; callers add it to a Stats once the page is final.
func Page(lines []hocr.Line, pageNum int) (string, PageStats) {
	stats := PageStats{Page: pageNum}
	processed := make([]string, 0, len(lines))

	for _, line := range lines {
		words := line.Texts()

		for _, w := range words {
			stats.TotalWords++
			if rtl.IsRTLWord(w) {
				stats.RTLWords++
			}
		}

		if rtl.IsRTLLine(words) {
			reverse(words)
			stats.LinesReversed++
		}

		processed = append(processed, strings.Join(words, " "))
	}

	return strings.Join(processed, "\n"), stats
}

// Words reorders a single line's word slice in place when the line is
// RTL-majority, and reports whether it did.
func Words(words []string) bool {
	if !rtl.IsRTLLine(words) {
		return false
	}
	reverse(words)
	return true
}

// JoinPages joins per-page texts with the page-delimiting marker. Page
// numbers are 1-based and each page is preceded by its own marker, so a
// document always starts with the page 1 delimiter.
func JoinPages(pages []string) string {
	var sb strings.Builder
	for i, page := range pages {
		sb.WriteString(fmt.Sprintf("\n\n--- Page %d ---\n\n", i+1))
		sb.WriteString(page)
	}
	return sb.String()
}

// reverse reverses a word slice in place. Applying it twice restores the
// original order exactly.
func reverse(words []string) {
	for i, j := 0, len(words)-1; i < j; i, j = i+1, j-1 {
		words[i], words[j] = words[j], words[i]
	}
}
