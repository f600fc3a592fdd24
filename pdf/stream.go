package pdf

import (
	"fmt"

	"github.com/mosaeedv/persianOCR/internal/filters"
)

// Stream represents a PDF stream object: a dictionary followed by raw bytes.
type Stream struct {
	Dict Dict
	Data []byte
}

func (s *Stream) String() string {
	return fmt.Sprintf("%s stream(%d bytes)", s.Dict.String(), len(s.Data))
}

// Filters returns the stream's filter chain in application order.
// A single name and an array of names are both accepted.
func (s *Stream) Filters() []Name {
	switch f := s.Dict.Get("Filter").(type) {
	case Name:
		return []Name{f}
	case Array:
		names := make([]Name, 0, len(f))
		for _, obj := range f {
			if name, ok := obj.(Name); ok {
				names = append(names, name)
			}
		}
		return names
	}
	return nil
}

// decodeParms returns the DecodeParms entry aligned with the filter at
// the given index, or nil when absent.
func (s *Stream) decodeParms(index int) Dict {
	switch p := s.Dict.Get("DecodeParms").(type) {
	case Dict:
		if index == 0 {
			return p
		}
	case Array:
		if d, ok := p.Get(index).(Dict); ok {
			return d
		}
	}
	return nil
}

// Decode applies the stream's filter chain and returns the decoded bytes.
// Streams without a Filter entry are returned as-is.
func (s *Stream) Decode() ([]byte, error) {
	data := s.Data
	for i, filter := range s.Filters() {
		params := filterParams(s.decodeParms(i))

		var err error
		switch filter {
		case "FlateDecode", "Fl":
			data, err = filters.FlateDecode(data, params)
		case "ASCIIHexDecode", "AHx":
			data, err = filters.ASCIIHexDecode(data)
		case "ASCII85Decode", "A85":
			data, err = filters.ASCII85Decode(data)
		case "CCITTFaxDecode", "CCF":
			data, err = filters.CCITTFaxDecode(data, params)
		default:
			return nil, fmt.Errorf("unsupported filter: %s", filter)
		}
		if err != nil {
			return nil, fmt.Errorf("filter %s: %w", filter, err)
		}
	}
	return data, nil
}

// SetDecodedData replaces the stream's content with the given decoded
// bytes. The data is recompressed with FlateDecode and the stream
// dictionary is updated to match: Filter becomes FlateDecode, any
// DecodeParms entry is removed, and Length is set to the stored size.
func (s *Stream) SetDecodedData(data []byte) error {
	compressed, err := filters.FlateEncode(data)
	if err != nil {
		return err
	}
	s.Data = compressed
	s.Dict.Set("Filter", Name("FlateDecode"))
	s.Dict.Delete("DecodeParms")
	s.Dict.Set("Length", Int(len(compressed)))
	return nil
}

// filterParams converts a DecodeParms dictionary to the parameter map
// the filter implementations consume.
func filterParams(d Dict) filters.Params {
	if d == nil {
		return nil
	}
	params := make(filters.Params, len(d))
	for key, val := range d {
		switch v := val.(type) {
		case Int:
			params[key] = int(v)
		case Real:
			params[key] = float64(v)
		case Bool:
			params[key] = bool(v)
		case Name:
			params[key] = string(v)
		}
	}
	return params
}
