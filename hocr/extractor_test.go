package hocr

import (
	"strings"
	"testing"
)

const sampleHOCR = `<!DOCTYPE html>
<html>
<head><title></title></head>
<body>
<div class='ocr_page' id='page_1' title='image "page.png"; bbox 0 0 2480 3508'>
 <div class='ocr_carea'>
  <p class='ocr_par'>
   <span class='ocr_line' title='bbox 100 100 900 150; baseline 0 -3'>
    <span class='ocrx_word' title='bbox 100 100 300 150; x_wconf 96'>سلام</span>
    <span class='ocrx_word' title='bbox 320 100 500 150; x_wconf 93'>دنیا</span>
   </span>
   <span class='ocr_line' title='bbox 100 200 900 250'>
    <span class='ocrx_word' title='bbox 100 200 250 250'>Hello</span>
    <span class='ocrx_word' title='bbox 270 200 420 250'>World</span>
   </span>
  </p>
 </div>
</div>
</body>
</html>`

func TestParseBytes(t *testing.T) {
	lines := ParseBytes([]byte(sampleHOCR))

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	wantLine1 := []string{"سلام", "دنیا"}
	wantLine2 := []string{"Hello", "World"}

	if got := lines[0].Texts(); !equalStrings(got, wantLine1) {
		t.Errorf("line 1 = %v, want %v", got, wantLine1)
	}
	if got := lines[1].Texts(); !equalStrings(got, wantLine2) {
		t.Errorf("line 2 = %v, want %v", got, wantLine2)
	}
}

func TestParseBBoxes(t *testing.T) {
	lines := ParseBytes([]byte(sampleHOCR))
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	w := lines[0].Words[0]
	if !w.HasBBox {
		t.Fatal("first word missing bbox")
	}
	want := BBox{X0: 100, Y0: 100, X1: 300, Y1: 150}
	if w.BBox != want {
		t.Errorf("first word bbox = %+v, want %+v", w.BBox, want)
	}

	if lines[0].BBox != (BBox{X0: 100, Y0: 100, X1: 900, Y1: 150}) {
		t.Errorf("line bbox = %+v", lines[0].BBox)
	}
}

func TestParseOCRWordFallback(t *testing.T) {
	// Older engines emit class="ocr_word" instead of "ocrx_word".
	doc := `<html><body>
	<span class="ocr_line">
	 <span class="ocr_word">alpha</span>
	 <span class="ocr_word">beta</span>
	</span>
	</body></html>`

	lines := ParseBytes([]byte(doc))
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if got := lines[0].Texts(); !equalStrings(got, []string{"alpha", "beta"}) {
		t.Errorf("words = %v", got)
	}
}

func TestParseNamespacedMarkup(t *testing.T) {
	// Namespaced XHTML must extract the same structure as unqualified markup.
	namespaced := `<html xmlns:html="http://www.w3.org/1999/xhtml"><body>
	<html:span html:class="ocr_line">
	 <html:span html:class="ocrx_word">سلام</html:span>
	 <html:span html:class="ocrx_word">دنیا</html:span>
	</html:span>
	</body></html>`

	unqualified := `<html><body>
	<span class="ocr_line">
	 <span class="ocrx_word">سلام</span>
	 <span class="ocrx_word">دنیا</span>
	</span>
	</body></html>`

	a := ParseBytes([]byte(namespaced))
	b := ParseBytes([]byte(unqualified))

	if len(a) != len(b) {
		t.Fatalf("namespaced got %d lines, unqualified got %d", len(a), len(b))
	}
	for i := range a {
		if !equalStrings(a[i].Texts(), b[i].Texts()) {
			t.Errorf("line %d: namespaced %v != unqualified %v", i, a[i].Texts(), b[i].Texts())
		}
	}
}

func TestParseNestedTextContent(t *testing.T) {
	// Word text is the concatenation of all nested text, trimmed.
	doc := `<html><body>
	<span class="ocr_line">
	 <span class="ocrx_word"> <em>Hel</em>lo </span>
	</span>
	</body></html>`

	lines := ParseBytes([]byte(doc))
	if len(lines) != 1 || len(lines[0].Words) != 1 {
		t.Fatalf("unexpected structure: %v", lines)
	}
	if got := lines[0].Words[0].Text; got != "Hello" {
		t.Errorf("word text = %q, want %q", got, "Hello")
	}
}

func TestParseEmptyWordsDropped(t *testing.T) {
	doc := `<html><body>
	<span class="ocr_line">
	 <span class="ocrx_word">   </span>
	 <span class="ocrx_word">kept</span>
	</span>
	<span class="ocr_line">
	 <span class="ocrx_word"> </span>
	</span>
	</body></html>`

	lines := ParseBytes([]byte(doc))
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1 (all-empty line dropped)", len(lines))
	}
	if got := lines[0].Texts(); !equalStrings(got, []string{"kept"}) {
		t.Errorf("words = %v, want [kept]", got)
	}
}

func TestParseMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"not markup", "\x00\x01\x02 binary junk"},
		{"no classes", "<html><body><p>plain text</p></body></html>"},
		{"truncated", "<html><body><span class='ocr_line'><span class='ocrx_w"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Must not panic and must not invent content.
			lines := ParseBytes([]byte(tt.data))
			for _, line := range lines {
				for _, w := range line.Words {
					if strings.TrimSpace(w.Text) == "" {
						t.Errorf("empty word extracted from %q", tt.data)
					}
				}
			}
		})
	}
}

func TestWords(t *testing.T) {
	words := Words([]byte(sampleHOCR))
	want := []string{"سلام", "دنیا", "Hello", "World"}

	if len(words) != len(want) {
		t.Fatalf("got %d words, want %d", len(words), len(want))
	}
	for i, w := range words {
		if w.Text != want[i] {
			t.Errorf("word %d = %q, want %q", i, w.Text, want[i])
		}
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
