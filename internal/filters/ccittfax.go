package filters

import (
	"bytes"
	"io"

	"golang.org/x/image/ccitt"
)

// CCITTFaxDecode decodes Group 3/4 fax data, the encoding OCR tools
// use for bilevel page scans. The K parameter selects the group
// (negative means Group 4), Columns and Rows give the image size, and
// BlackIs1 flips the bit sense.
func CCITTFaxDecode(data []byte, params Params) ([]byte, error) {
	columns := params.intOr("Columns", 1728)
	rows := params.intOr("Rows", 0)
	if rows == 0 {
		rows = ccitt.AutoDetectHeight
	}

	sf := ccitt.Group3
	if params.intOr("K", 0) < 0 {
		sf = ccitt.Group4
	}
	opts := &ccitt.Options{Invert: params.boolOr("BlackIs1", false)}

	r := ccitt.NewReader(bytes.NewReader(data), ccitt.MSB, sf, columns, rows, opts)
	return io.ReadAll(r)
}
