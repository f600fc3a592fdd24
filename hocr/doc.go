// Package hocr extracts line and word structure from hOCR documents.
//
// hOCR is an HTML-based convention for representing OCR output: line
// elements carry class "ocr_line" and word elements nested inside them
// carry class "ocrx_word" (or "ocr_word" in some engine versions), with
// positional metadata in the title attribute.
//
// The extractor is deliberately tolerant. Real hOCR in the wild varies:
// some engines serve namespaced XHTML, some use the older word class, some
// omit classes entirely on damaged pages. Parsing tries an ordered list of
// selector strategies and settles on the first that yields content; a page
// that matches none of them parses to an empty result rather than an error.
// Callers must treat an empty result as "no text found", never as fatal.
package hocr
