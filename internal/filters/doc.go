// Package filters implements the PDF stream filters this module meets
// in OCR-produced documents: FlateDecode with its predictors,
// ASCIIHexDecode, ASCII85Decode, and CCITTFaxDecode for the bilevel
// page scans Tesseract embeds. FlateEncode covers the write-back
// direction when a corrected stream is stored again.
//
// Decode parameters arrive as a Params map mirroring the stream's
// DecodeParms dictionary:
//
//	decoded, err := filters.FlateDecode(data, filters.Params{
//	    "Predictor": 12,
//	    "Columns":   4,
//	})
package filters
