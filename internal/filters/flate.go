package filters

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// FlateDecode decompresses zlib data and undoes any predictor named in
// params. Predictor 1 is identity, 2 is TIFF horizontal differencing,
// and 10 through 15 are the PNG row filters.
func FlateDecode(data []byte, params Params) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}

	predictor := params.intOr("Predictor", 1)
	switch {
	case predictor == 1:
		return out, nil
	case predictor == 2:
		return unpredictTIFF(out, params)
	case predictor >= 10 && predictor <= 15:
		return unpredictPNG(out, params)
	default:
		return nil, fmt.Errorf("unsupported predictor %d", predictor)
	}
}

// FlateEncode compresses data with zlib at the default level. It is
// the inverse of FlateDecode for streams without a predictor.
func FlateEncode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("zlib: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	return buf.Bytes(), nil
}

// unpredictTIFF undoes TIFF predictor 2: every sample was stored as
// the difference from the sample one pixel to its left.
func unpredictTIFF(data []byte, params Params) ([]byte, error) {
	columns := params.intOr("Columns", 1)
	colors := params.intOr("Colors", 1)
	if bpc := params.intOr("BitsPerComponent", 8); bpc != 8 {
		return nil, fmt.Errorf("TIFF predictor needs 8 bits per component, got %d", bpc)
	}
	rowSize := columns * colors
	if rowSize <= 0 || len(data)%rowSize != 0 {
		return nil, fmt.Errorf("data size %d does not divide into rows of %d", len(data), rowSize)
	}
	out := make([]byte, len(data))
	for rowStart := 0; rowStart < len(data); rowStart += rowSize {
		for i := 0; i < rowSize; i++ {
			idx := rowStart + i
			if i < colors {
				out[idx] = data[idx]
			} else {
				out[idx] = data[idx] + out[idx-colors]
			}
		}
	}
	return out, nil
}

// unpredictPNG undoes the PNG row filters. Each stored row begins with
// a filter byte (0 None, 1 Sub, 2 Up, 3 Average, 4 Paeth) that applies
// to the rest of the row.
func unpredictPNG(data []byte, params Params) ([]byte, error) {
	columns := params.intOr("Columns", 1)
	colors := params.intOr("Colors", 1)
	if bpc := params.intOr("BitsPerComponent", 8); bpc != 8 {
		return nil, fmt.Errorf("PNG predictor needs 8 bits per component, got %d", bpc)
	}

	rowLen := columns * colors
	stored := rowLen + 1 // leading filter byte
	if rowLen <= 0 || len(data)%stored != 0 {
		return nil, fmt.Errorf("data size %d does not divide into rows of %d", len(data), stored)
	}

	rows := len(data) / stored
	out := make([]byte, rows*rowLen)
	bpp := colors

	for row := 0; row < rows; row++ {
		filter := data[row*stored]
		src := data[row*stored+1 : (row+1)*stored]
		dst := out[row*rowLen : (row+1)*rowLen]
		var above []byte
		if row > 0 {
			above = out[(row-1)*rowLen : row*rowLen]
		}

		for i := 0; i < rowLen; i++ {
			var left, up, upLeft byte
			if i >= bpp {
				left = dst[i-bpp]
			}
			if above != nil {
				up = above[i]
				if i >= bpp {
					upLeft = above[i-bpp]
				}
			}

			var pred byte
			switch filter {
			case 0:
			case 1:
				pred = left
			case 2:
				pred = up
			case 3:
				pred = byte((int(left) + int(up)) / 2)
			case 4:
				pred = paeth(left, up, upLeft)
			default:
				return nil, fmt.Errorf("row %d has unknown PNG filter %d", row, filter)
			}
			dst[i] = src[i] + pred
		}
	}
	return out, nil
}

// paeth picks the neighbor closest to the linear estimate left+up-upLeft,
// as defined by the PNG specification.
func paeth(left, up, upLeft byte) byte {
	p := int(left) + int(up) - int(upLeft)
	pl := abs(p - int(left))
	pu := abs(p - int(up))
	pul := abs(p - int(upLeft))
	switch {
	case pl <= pu && pl <= pul:
		return left
	case pu <= pul:
		return up
	default:
		return upLeft
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
