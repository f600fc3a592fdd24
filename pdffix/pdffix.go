package pdffix

import (
	"fmt"

	"github.com/mosaeedv/persianOCR/contentstream"
	"github.com/mosaeedv/persianOCR/pdf"
)

// Mode identifies which strategy produced a result.
type Mode int

const (
	// ModeStructured means the document was parsed and rewritten
	// through the page tree.
	ModeStructured Mode = iota
	// ModeRaw means stream blocks were patched in place without
	// parsing the document structure.
	ModeRaw
)

func (m Mode) String() string {
	switch m {
	case ModeStructured:
		return "structured"
	case ModeRaw:
		return "raw"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Report summarizes one correction pass over a document.
// StreamsFailed counts streams that could not be decoded or written
// back and were passed through; it distinguishes them from streams
// that were inspected and simply had nothing to fix.
type Report struct {
	Mode           Mode
	StreamsSeen    int
	StreamsChanged int
	StreamsFailed  int
}

// Fix corrects the reading order of right-to-left text in a PDF.
// It first attempts a structured rewrite; if the document cannot be
// parsed it falls back to a raw stream scan. The input is never
// modified and the call never fails: when nothing can be done the
// original bytes come back unchanged.
func Fix(data []byte) ([]byte, Report) {
	out, report, err := fixStructured(data)
	if err == nil {
		return out, report
	}
	return FixRaw(data)
}

// fixStructured parses the document, rewrites every page content
// stream that contains right-to-left text, and serializes the result.
// An unmodified document is returned as the original bytes.
func fixStructured(data []byte) ([]byte, Report, error) {
	report := Report{Mode: ModeStructured}

	doc, err := pdf.Parse(data)
	if err != nil {
		return nil, report, err
	}
	// Encrypted streams cannot be decoded or rewritten here; let the
	// raw scan leave them untouched.
	if doc.Trailer().Has("Encrypt") {
		return nil, report, fmt.Errorf("document is encrypted")
	}
	pages, err := doc.Pages()
	if err != nil {
		return nil, report, err
	}

	// Content streams can be shared between pages. Touch each one
	// once; fixing twice would reverse the arrays back.
	seen := make(map[*pdf.Stream]bool)

	for _, page := range pages {
		streams, err := page.ContentStreams()
		if err != nil {
			return nil, report, err
		}
		for _, stream := range streams {
			if seen[stream] {
				continue
			}
			seen[stream] = true
			report.StreamsSeen++

			decoded, err := stream.Decode()
			if err != nil {
				report.StreamsFailed++
				continue
			}
			if !contentstream.ContainsTextOperator(decoded) {
				continue
			}
			fixed, changed := contentstream.FixStream(decoded)
			if !changed {
				continue
			}
			if err := stream.SetDecodedData(fixed); err != nil {
				report.StreamsFailed++
				continue
			}
			report.StreamsChanged++
		}
	}

	if report.StreamsChanged == 0 {
		return data, report, nil
	}

	out, err := doc.Write()
	if err != nil {
		return nil, report, err
	}
	return out, report, nil
}
