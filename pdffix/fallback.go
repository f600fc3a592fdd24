package pdffix

import (
	"bytes"

	"github.com/mosaeedv/persianOCR/contentstream"
	"github.com/mosaeedv/persianOCR/internal/filters"
)

var (
	streamKeyword    = []byte("stream")
	endstreamKeyword = []byte("endstream")
)

// FixRaw patches a PDF without parsing its structure. It scans for
// stream blocks, tries Flate decompression, corrects right-to-left
// text arrays, and recompresses. Blocks that fail at any step are
// copied through unchanged.
//
// Stream Length entries are not updated when a block's compressed size
// changes, so the output relies on readers that locate endstream by
// scanning. Structured mode is preferred; this path exists for files
// whose cross-reference information is broken.
func FixRaw(data []byte) ([]byte, Report) {
	report := Report{Mode: ModeRaw}
	var out bytes.Buffer
	pos := 0

	for pos < len(data) {
		idx := indexStreamKeyword(data, pos)
		if idx < 0 {
			break
		}
		bodyStart := idx + len(streamKeyword)
		if bodyStart < len(data) && data[bodyStart] == '\r' {
			bodyStart++
		}
		if bodyStart < len(data) && data[bodyStart] == '\n' {
			bodyStart++
		}
		endIdx := bytes.Index(data[bodyStart:], endstreamKeyword)
		if endIdx < 0 {
			break
		}
		bodyEnd := bodyStart + endIdx
		// The writer's EOL before endstream is not stream data.
		trimmedEnd := bodyEnd
		if trimmedEnd > bodyStart && data[trimmedEnd-1] == '\n' {
			trimmedEnd--
		}
		if trimmedEnd > bodyStart && data[trimmedEnd-1] == '\r' {
			trimmedEnd--
		}

		report.StreamsSeen++
		block := data[bodyStart:trimmedEnd]
		patched, changed := patchBlock(block)
		if changed {
			report.StreamsChanged++
		}

		out.Write(data[pos:bodyStart])
		out.Write(patched)
		out.Write(data[trimmedEnd:bodyEnd])
		pos = bodyEnd
	}

	out.Write(data[pos:])
	if report.StreamsChanged == 0 {
		return data, report
	}
	return out.Bytes(), report
}

// indexStreamKeyword finds the next stream keyword at or after pos,
// skipping matches that are the tail of endstream.
func indexStreamKeyword(data []byte, pos int) int {
	for pos < len(data) {
		idx := bytes.Index(data[pos:], streamKeyword)
		if idx < 0 {
			return -1
		}
		abs := pos + idx
		if abs >= 3 && bytes.Equal(data[abs-3:abs], []byte("end")) {
			pos = abs + len(streamKeyword)
			continue
		}
		return abs
	}
	return -1
}

// patchBlock corrects one stream body. Compressed blocks are
// decompressed, fixed, and recompressed; blocks that do not
// decompress are treated as plain content.
func patchBlock(block []byte) ([]byte, bool) {
	if decoded, err := filters.FlateDecode(block, nil); err == nil {
		if !contentstream.ContainsTextOperator(decoded) {
			return block, false
		}
		fixed, changed := contentstream.FixStream(decoded)
		if !changed {
			return block, false
		}
		recompressed, err := filters.FlateEncode(fixed)
		if err != nil {
			return block, false
		}
		return recompressed, true
	}

	if !contentstream.ContainsTextOperator(block) {
		return block, false
	}
	return contentstream.FixStream(block)
}
