// Package contentstream rewrites PDF content-stream text operators so that
// right-to-left text reads correctly.
//
// Searchable PDFs produced by OCR engines place glyphs with the TJ
// ("show text with individual positioning") operator: an array of
// hex-encoded glyph runs interleaved with numeric spacing adjustments,
// e.g.
//
//	[<0641> -10 <0642> -5 <0643>] TJ
//
// For RTL scripts the engine encodes the runs in left-to-right visual
// order, so the selectable text layer is backwards. [FixStream] locates
// every TJ array in a decoded content stream, and when an array contains
// an RTL-majority glyph run, reverses the whole token sequence. Each
// spacing adjustment is symmetric: it still sits between the same
// pair of runs after reversal, so plain sequence reversal is sufficient.
//
// Everything else in the stream passes through byte-identical: arrays
// without RTL content, arrays whose contents fail to tokenize, and all
// bytes outside TJ arrays. Stream bytes are interpreted as Latin-1 (one
// byte per code point, fully reversible) per PDF convention.
package contentstream
