// Package pdf provides an in-memory PDF object model for reading a
// document, patching its content streams, and writing the result back out.
//
// Unlike a general-purpose PDF library this package is scoped to what
// reading-order correction needs: parsing the eight PDF object types,
// locating objects through cross-reference tables (classic tables, xref
// streams, and object streams), walking the page tree to each page's
// content streams, and re-serializing the complete document after a
// stream's bytes have been replaced.
//
// # Reading
//
//	doc, err := pdf.Parse(pdfBytes)
//	pages, err := doc.Pages()
//	streams, err := pages[0].ContentStreams()
//	data, err := streams[0].Decode()
//
// # Writing back
//
// A stream's decoded bytes can be replaced with [Stream.SetDecodedData],
// which recompresses with Flate and updates the stream dictionary. The
// whole document is then rewritten:
//
//	out, err := doc.Write()
//
// Write produces a full rewrite with a classic cross-reference table:
// objects that lived inside object streams become ordinary indirect
// objects, so a patched stream of any length round-trips into a valid
// document.
package pdf
