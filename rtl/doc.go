// Package rtl provides right-to-left script classification for OCR
// post-processing.
//
// OCR engines emit words in visual left-to-right order regardless of the
// script being recognized, so Arabic, Persian, and Hebrew text comes out
// scrambled. The predicates in this package decide, at three granularities,
// whether a unit of text belongs to a right-to-left script:
//
//   - [IsRTLRune] - membership in a fixed set of RTL Unicode blocks
//   - [IsRTLWord] - strict majority of a word's non-whitespace runes
//   - [IsRTLLine] - strict majority of a line's words
//
// All three are pure functions over their inputs and never fail.
//
// The [Direction] type and [DetectDirection] provide a more general
// dominant-direction classification for callers that need to distinguish
// LTR, RTL, and direction-neutral text.
package rtl
