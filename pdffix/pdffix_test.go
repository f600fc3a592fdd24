package pdffix

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/mosaeedv/persianOCR/internal/filters"
	"github.com/mosaeedv/persianOCR/pdf"
)

const (
	rtlContent   = "BT /F1 12 Tf [<0641> -10 <0642> -5 <0643>] TJ ET"
	fixedContent = "BT /F1 12 Tf [<0643> -5 <0642> -10 <0641>] TJ ET"
	asciiContent = "BT /F1 12 Tf [(plain) -10 (text)] TJ ET"
)

// buildPDF assembles a one-page document whose single content stream
// holds the given bytes.
func buildPDF(content []byte, compress bool) []byte {
	if compress {
		compressed, err := filters.FlateEncode(content)
		if err != nil {
			panic(err)
		}
		dict := fmt.Sprintf("<</Length %d /Filter /FlateDecode>>", len(compressed))
		return buildPDFWithStream(dict, compressed)
	}
	return buildPDFWithStream(fmt.Sprintf("<</Length %d>>", len(content)), content)
}

// buildPDFWithStream assembles the document around an arbitrary
// content-stream dictionary and body.
func buildPDFWithStream(dict string, streamData []byte) []byte {
	var buf bytes.Buffer
	offsets := make([]int, 5)
	addObject := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	buf.WriteString("%PDF-1.7\n")
	addObject(1, "<</Type /Catalog /Pages 2 0 R>>")
	addObject(2, "<</Type /Pages /Kids [3 0 R] /Count 1>>")
	addObject(3, "<</Type /Page /Parent 2 0 R /Contents 4 0 R>>")
	offsets[4] = buf.Len()
	fmt.Fprintf(&buf, "4 0 obj\n%s\nstream\n", dict)
	buf.Write(streamData)
	buf.WriteString("\nendstream\nendobj\n")

	xref := buf.Len()
	buf.WriteString("xref\n0 5\n0000000000 65535 f \n")
	for num := 1; num < 5; num++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[num])
	}
	fmt.Fprintf(&buf, "trailer\n<</Size 5 /Root 1 0 R>>\nstartxref\n%d\n%%%%EOF\n", xref)
	return buf.Bytes()
}

// firstPageContent parses a document and decodes its first page's
// content stream.
func firstPageContent(t *testing.T, data []byte) []byte {
	t.Helper()
	doc, err := pdf.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	pages, err := doc.Pages()
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}
	streams, err := pages[0].ContentStreams()
	if err != nil {
		t.Fatalf("ContentStreams: %v", err)
	}
	decoded, err := streams[0].Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return decoded
}

func TestFixStructured(t *testing.T) {
	for _, compress := range []bool{false, true} {
		name := "plain"
		if compress {
			name = "flate"
		}
		t.Run(name, func(t *testing.T) {
			input := buildPDF([]byte(rtlContent), compress)
			out, report := Fix(input)

			if report.Mode != ModeStructured {
				t.Errorf("mode = %s, want structured", report.Mode)
			}
			if report.StreamsSeen != 1 || report.StreamsChanged != 1 {
				t.Errorf("report = %+v, want 1 seen, 1 changed", report)
			}
			if got := firstPageContent(t, out); string(got) != fixedContent {
				t.Errorf("content = %q, want %q", got, fixedContent)
			}
		})
	}
}

func TestFixLeavesLTRDocumentAlone(t *testing.T) {
	input := buildPDF([]byte(asciiContent), false)
	out, report := Fix(input)

	if report.Mode != ModeStructured {
		t.Errorf("mode = %s, want structured", report.Mode)
	}
	if report.StreamsChanged != 0 {
		t.Errorf("StreamsChanged = %d, want 0", report.StreamsChanged)
	}
	if !bytes.Equal(out, input) {
		t.Error("unchanged document was rewritten")
	}
}

func TestFixFallsBackToRaw(t *testing.T) {
	input := buildPDF([]byte(rtlContent), false)
	// Break the cross-reference lookup so structured parsing fails.
	broken := bytes.Replace(input, []byte("startxref"), []byte("startxrXf"), 1)

	out, report := Fix(broken)
	if report.Mode != ModeRaw {
		t.Fatalf("mode = %s, want raw", report.Mode)
	}
	if report.StreamsChanged != 1 {
		t.Errorf("StreamsChanged = %d, want 1", report.StreamsChanged)
	}
	if !bytes.Contains(out, []byte("[<0643> -5 <0642> -10 <0641>] TJ")) {
		t.Error("raw scan did not reverse the array")
	}
}

func TestFixEncryptedFallsBackToRaw(t *testing.T) {
	input := buildPDF([]byte(rtlContent), false)
	encrypted := bytes.Replace(input,
		[]byte("/Root 1 0 R>>"), []byte("/Root 1 0 R /Encrypt 9 0 R>>"), 1)

	out, report := Fix(encrypted)
	if report.Mode != ModeRaw {
		t.Fatalf("mode = %s, want raw", report.Mode)
	}
	if !bytes.Contains(out, []byte("[<0643> -5 <0642> -10 <0641>] TJ")) {
		t.Error("raw scan did not reverse the array")
	}
}

func TestFixReportsUndecodableStream(t *testing.T) {
	// The filter claims an encoding this module cannot decode, so the
	// stream must be passed through and counted as failed.
	dict := fmt.Sprintf("<</Length %d /Filter /LZWDecode>>", len(rtlContent))
	input := buildPDFWithStream(dict, []byte(rtlContent))

	out, report := Fix(input)
	if report.Mode != ModeStructured {
		t.Fatalf("mode = %s, want structured", report.Mode)
	}
	if report.StreamsSeen != 1 || report.StreamsChanged != 0 || report.StreamsFailed != 1 {
		t.Errorf("report = %+v, want 1 seen, 0 changed, 1 failed", report)
	}
	if !bytes.Equal(out, input) {
		t.Error("undecodable document was modified")
	}
}

func TestFixRawCompressedBlock(t *testing.T) {
	input := buildPDF([]byte(rtlContent), true)
	out, report := FixRaw(input)

	if report.StreamsSeen != 1 || report.StreamsChanged != 1 {
		t.Fatalf("report = %+v, want 1 seen, 1 changed", report)
	}

	// Locate the patched block and decompress it.
	start := bytes.Index(out, []byte("stream\n")) + len("stream\n")
	end := bytes.Index(out, []byte("\nendstream"))
	if start < 0 || end < 0 || end < start {
		t.Fatal("cannot locate stream block in output")
	}
	decoded, err := filters.FlateDecode(out[start:end], nil)
	if err != nil {
		t.Fatalf("decompress patched block: %v", err)
	}
	if string(decoded) != fixedContent {
		t.Errorf("content = %q, want %q", decoded, fixedContent)
	}
}

func TestFixRawUncompressedBlock(t *testing.T) {
	input := buildPDF([]byte(rtlContent), false)
	out, report := FixRaw(input)

	if report.StreamsChanged != 1 {
		t.Fatalf("StreamsChanged = %d, want 1", report.StreamsChanged)
	}
	if !bytes.Contains(out, []byte(fixedContent)) {
		t.Error("output does not contain the corrected content")
	}
}

func TestFixRawLeavesBrokenBlocksAlone(t *testing.T) {
	// A block that neither decompresses nor contains text operators.
	input := []byte("junk stream\n\x00\x01\x02\nendstream more")
	out, report := FixRaw(input)
	if report.StreamsChanged != 0 {
		t.Errorf("StreamsChanged = %d, want 0", report.StreamsChanged)
	}
	if !bytes.Equal(out, input) {
		t.Error("untouched input was modified")
	}
}

func TestFixNeverFails(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte("not a pdf at all"),
		[]byte("%PDF-1.7\ntruncated"),
		[]byte(strings.Repeat("stream endstream ", 3)),
	}
	for _, input := range inputs {
		out, _ := Fix(input)
		if out == nil && input != nil {
			t.Errorf("Fix(%q) returned nil", input)
		}
	}
}
