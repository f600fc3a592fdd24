package reorder

import (
	"fmt"
	"math"
	"strings"
	"sync"
)

// PageStats holds one page's reordering counters. A PageStats is created
// while the page is processed and is immutable once appended to a Stats.
type PageStats struct {
	Page          int // 1-based page number
	TotalWords    int
	RTLWords      int
	LinesReversed int
}

// Stats accumulates per-page counters for a whole document. The zero value
// is ready to use. Appends are synchronized so pages may be processed
// concurrently.
type Stats struct {
	mu            sync.Mutex
	totalWords    int
	rtlWords      int
	linesReversed int
	pages         []PageStats
}

// Add appends one finished page's counters to the aggregate.
func (s *Stats) Add(ps PageStats) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pages = append(s.pages, ps)
	s.totalWords += ps.TotalWords
	s.rtlWords += ps.RTLWords
	s.linesReversed += ps.LinesReversed
}

// TotalWords returns the document-wide word count.
func (s *Stats) TotalWords() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalWords
}

// RTLWords returns the document-wide RTL word count.
func (s *Stats) RTLWords() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rtlWords
}

// LinesReversed returns the document-wide count of reversed lines.
func (s *Stats) LinesReversed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.linesReversed
}

// RTLPercentage returns the share of RTL words as a percentage rounded to
// one decimal place, or 0 when no words were processed.
func (s *Stats) RTLPercentage() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.totalWords == 0 {
		return 0
	}
	pct := 100 * float64(s.rtlWords) / float64(s.totalWords)
	return math.Round(pct*10) / 10
}

// Pages returns a copy of the per-page counters in append order.
func (s *Stats) Pages() []PageStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	pages := make([]PageStats, len(s.pages))
	copy(pages, s.pages)
	return pages
}

// Summary renders a human-readable report of the document's counters,
// suitable for writing to a log file alongside the corrected output.
func (s *Stats) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sb strings.Builder
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	fmt.Fprintf(&sb, "Total words processed: %d\n", s.totalWords)
	fmt.Fprintf(&sb, "RTL words detected: %d\n", s.rtlWords)
	fmt.Fprintf(&sb, "RTL lines reversed: %d\n", s.linesReversed)
	if s.totalWords > 0 {
		fmt.Fprintf(&sb, "RTL percentage: %.1f%%\n", 100*float64(s.rtlWords)/float64(s.totalWords))
	}
	sb.WriteString("\nPAGE DETAILS\n")
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	for _, ps := range s.pages {
		fmt.Fprintf(&sb, "Page %3d: %5d words, %5d RTL, %3d lines reversed\n",
			ps.Page, ps.TotalWords, ps.RTLWords, ps.LinesReversed)
	}
	return sb.String()
}
