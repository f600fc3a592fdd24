// Package persianocr corrects the reading order of right-to-left text
// produced by OCR pipelines.
//
// Tesseract and similar engines emit words for Persian, Arabic, and
// Hebrew lines in visual order, which reads backwards once the text is
// stored as a plain string. This package works on two artifacts of an
// OCR run: hOCR markup, whose lines are reordered into logical order,
// and searchable PDFs, whose content-stream text arrays are reversed in
// place. Both paths are best effort; malformed input degrades to
// pass-through rather than failure.
//
// Page-level entry points are CorrectPageText and CorrectPagePDF.
// CorrectDocument runs both over a whole document with a configurable
// number of workers and aggregates per-page statistics:
//
//	cfg := persianocr.DefaultConfig()
//	result := cfg.CorrectDocument(pages)
//	fmt.Println(result.Text)
//	fmt.Println(result.Stats.Summary())
package persianocr

import (
	"sync"

	"github.com/mosaeedv/persianOCR/hocr"
	"github.com/mosaeedv/persianOCR/pdffix"
	"github.com/mosaeedv/persianOCR/reorder"
)

// Page holds the OCR artifacts for one page of a document. Either
// field may be nil; the corresponding output is then empty.
type Page struct {
	// HOCR is the page's hOCR markup.
	HOCR []byte
	// PDF is the page's searchable PDF.
	PDF []byte
}

// DocumentResult is the outcome of correcting a whole document.
type DocumentResult struct {
	// Text is the corrected text of every page, joined with page
	// delimiters.
	Text string
	// PagePDFs holds the corrected PDF for each input page, index
	// aligned with the input. Pages without PDF data have nil entries.
	PagePDFs [][]byte
	// Reports describes what the PDF correction did per page.
	Reports []pdffix.Report
	// Stats aggregates word and line counts across pages.
	Stats *reorder.Stats
}

// CorrectPageText extracts the lines from a page's hOCR markup,
// reorders right-to-left lines into logical order, and returns the
// page text. Per-page counts are added to stats when it is non-nil.
// Malformed markup yields whatever could be extracted, down to the
// empty string.
func CorrectPageText(hocrData []byte, pageNum int, stats *reorder.Stats) string {
	lines := hocr.ParseBytes(hocrData)
	text, ps := reorder.Page(lines, pageNum)
	if stats != nil {
		stats.Add(ps)
	}
	return text
}

// CorrectPagePDF reverses right-to-left text arrays in a PDF's content
// streams. The call never fails: input that cannot be processed comes
// back unchanged.
func CorrectPagePDF(pdfData []byte) []byte {
	out, _ := pdffix.Fix(pdfData)
	return out
}

// CorrectDocument corrects every page of a document. The text and PDF
// paths are independent per page, so a page with broken markup still
// gets its PDF corrected and vice versa. Pages are processed by
// c.Workers goroutines; outputs keep the input page order.
func (c Config) CorrectDocument(pages []Page) DocumentResult {
	result := DocumentResult{
		PagePDFs: make([][]byte, len(pages)),
		Reports:  make([]pdffix.Report, len(pages)),
		Stats:    &reorder.Stats{},
	}
	texts := make([]string, len(pages))

	workers := c.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(pages) {
		workers = len(pages)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				page := pages[i]
				if page.HOCR != nil {
					texts[i] = CorrectPageText(page.HOCR, i+1, result.Stats)
				}
				if page.PDF != nil {
					result.PagePDFs[i], result.Reports[i] = pdffix.Fix(page.PDF)
				}
			}
		}()
	}
	for i := range pages {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	result.Text = reorder.JoinPages(texts)
	return result
}
