// Package reorder turns hOCR line/word structure into logically ordered
// plain text.
//
// OCR engines detect words left to right, so a right-to-left line arrives
// with its words backwards. For each line that is predominantly RTL the
// word order is reversed. The text itself is left untouched and no
// directional control characters are inserted, so joining the words
// left to right yields the correct reading order and text selection still
// behaves like ordinary LTR text.
//
// Per-page counters (total words, RTL words, lines reversed) accumulate
// into a [Stats] value, which is safe for concurrent appends when pages
// are processed in parallel.
package reorder
