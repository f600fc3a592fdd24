package hocr

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// BBox is an hOCR bounding box in page pixel coordinates, parsed from a
// "bbox x0 y0 x1 y1" property in an element's title attribute.
type BBox struct {
	X0, Y0, X1, Y1 int
}

// Word is a single recognized word.
type Word struct {
	Text string
	BBox BBox
	// HasBBox reports whether the source element carried a bbox property.
	HasBBox bool
}

// Line is an ordered sequence of words as detected on the page, in the
// left-to-right visual order the OCR engine emitted them.
type Line struct {
	Words []Word
	BBox  BBox
}

// Texts returns the line's word texts in order.
func (l Line) Texts() []string {
	texts := make([]string, len(l.Words))
	for i, w := range l.Words {
		texts[i] = w.Text
	}
	return texts
}

// wordClasses are the word-element class names tried in order. Tesseract
// emits "ocrx_word"; some engine versions use "ocr_word".
var wordClasses = []string{"ocrx_word", "ocr_word"}

// lineClass marks hOCR line elements.
const lineClass = "ocr_line"

// Parse reads an hOCR document and returns its lines in document order.
// Malformed markup yields an empty slice, not an error; the returned error
// is only ever a read failure from r.
func Parse(r io.Reader) ([]Line, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing hOCR: %w", err)
	}
	return extractLines(doc), nil
}

// ParseBytes parses an in-memory hOCR document. It never fails: anything
// the parser cannot make sense of extracts as zero lines.
func ParseBytes(data []byte) []Line {
	lines, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return lines
}

// Words returns all words of the document flattened in reading order,
// ignoring line structure.
func Words(data []byte) []Word {
	var words []Word
	for _, line := range ParseBytes(data) {
		words = append(words, line.Words...)
	}
	return words
}

// extractLines walks the parsed tree collecting line elements and their
// nested words.
func extractLines(doc *html.Node) []Line {
	var lines []Line

	walk(doc, func(n *html.Node) {
		if !hasClass(n, lineClass) {
			return
		}

		line := Line{}
		if bbox, ok := parseBBox(attrValue(n, "title")); ok {
			line.BBox = bbox
		}

		// Word class variants are a fallback chain: the first class that
		// yields any words wins for this line.
		for _, class := range wordClasses {
			line.Words = collectWords(n, class)
			if len(line.Words) > 0 {
				break
			}
		}

		if len(line.Words) > 0 {
			lines = append(lines, line)
		}
	})

	return lines
}

// collectWords gathers words with the given class nested under line.
func collectWords(line *html.Node, class string) []Word {
	var words []Word

	for c := line.FirstChild; c != nil; c = c.NextSibling {
		walkFrom(c, func(n *html.Node) {
			if !hasClass(n, class) {
				return
			}
			text := strings.TrimSpace(textContent(n))
			if text == "" {
				return
			}
			w := Word{Text: text}
			if bbox, ok := parseBBox(attrValue(n, "title")); ok {
				w.BBox = bbox
				w.HasBBox = true
			}
			words = append(words, w)
		})
	}

	return words
}

// walk visits every element node in the tree rooted at n, in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// walkFrom is walk starting at an arbitrary subtree root, including it.
func walkFrom(n *html.Node, visit func(*html.Node)) {
	walk(n, visit)
}

// hasClass reports whether n carries the given value in its class attribute.
// The attribute key is matched by local name so that namespaced markup
// (e.g. html:class on an html:span) is treated the same as unqualified
// markup; the class value itself is matched as a whitespace-separated token.
func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		key := attr.Key
		if i := strings.LastIndex(key, ":"); i >= 0 {
			key = key[i+1:]
		}
		if key != "class" {
			continue
		}
		for _, token := range strings.Fields(attr.Val) {
			if token == class {
				return true
			}
		}
	}
	return false
}

// attrValue returns the value of the named attribute, matched by local name.
func attrValue(n *html.Node, name string) string {
	for _, attr := range n.Attr {
		key := attr.Key
		if i := strings.LastIndex(key, ":"); i >= 0 {
			key = key[i+1:]
		}
		if key == name {
			return attr.Val
		}
	}
	return ""
}

// textContent returns the concatenation of all text under n.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

// parseBBox extracts a bounding box from an hOCR title attribute, which
// holds semicolon-separated properties like "bbox 90 120 310 160; x_wconf 95".
func parseBBox(title string) (BBox, bool) {
	for _, prop := range strings.Split(title, ";") {
		fields := strings.Fields(strings.TrimSpace(prop))
		if len(fields) != 5 || fields[0] != "bbox" {
			continue
		}

		var coords [4]int
		ok := true
		for i, f := range fields[1:] {
			v, err := strconv.Atoi(f)
			if err != nil {
				ok = false
				break
			}
			coords[i] = v
		}
		if ok {
			return BBox{X0: coords[0], Y0: coords[1], X1: coords[2], Y1: coords[3]}, true
		}
	}
	return BBox{}, false
}
