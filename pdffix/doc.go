// Package pdffix rewrites the text-showing operators inside a PDF's
// content streams so that right-to-left runs read in logical order.
//
// Two strategies are tried in turn. Structured mode parses the file,
// walks the page tree, and rewrites each page's content streams through
// the document model, producing a clean full rewrite. When the file
// cannot be parsed, a raw scan patches stream blocks between the
// stream and endstream keywords directly, decompressing Flate data
// where possible. A block or document that cannot be processed is left
// exactly as it was; Fix never fails.
package pdffix
