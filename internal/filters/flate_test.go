package filters

import (
	"bytes"
	"testing"
)

func compress(t *testing.T, data []byte) []byte {
	t.Helper()
	out, err := FlateEncode(data)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestFlateRoundTrip(t *testing.T) {
	original := []byte("stream data that should survive compression intact")
	decoded, err := FlateDecode(compress(t, original), nil)
	if err != nil {
		t.Fatalf("FlateDecode: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("round trip = %q, want %q", decoded, original)
	}
}

func TestFlateDecodePredictors(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		data   []byte
		want   []byte
	}{
		{
			name:   "identity predictor",
			params: Params{"Predictor": 1},
			data:   []byte{1, 2, 3},
			want:   []byte{1, 2, 3},
		},
		{
			name:   "tiff horizontal differences",
			params: Params{"Predictor": 2, "Columns": 3},
			data:   []byte{1, 1, 1, 5, 0, 0},
			want:   []byte{1, 2, 3, 5, 5, 5},
		},
		{
			name:   "png none",
			params: Params{"Predictor": 10, "Columns": 3},
			data:   []byte{0, 1, 2, 3, 0, 4, 5, 6},
			want:   []byte{1, 2, 3, 4, 5, 6},
		},
		{
			name:   "png sub",
			params: Params{"Predictor": 11, "Columns": 4},
			data:   []byte{1, 1, 1, 1, 1},
			want:   []byte{1, 2, 3, 4},
		},
		{
			name:   "png up",
			params: Params{"Predictor": 12, "Columns": 4},
			data:   []byte{0, 1, 2, 3, 4, 2, 1, 1, 1, 1},
			want:   []byte{1, 2, 3, 4, 2, 3, 4, 5},
		},
		{
			name:   "png average",
			params: Params{"Predictor": 13, "Columns": 2},
			data:   []byte{0, 2, 4, 3, 1, 1},
			want:   []byte{2, 4, 2, 4},
		},
		{
			name:   "png paeth first row acts like sub",
			params: Params{"Predictor": 14, "Columns": 3},
			data:   []byte{4, 1, 1, 1},
			want:   []byte{1, 2, 3},
		},
		{
			name:   "png multiple colors",
			params: Params{"Predictor": 11, "Columns": 2, "Colors": 2},
			data:   []byte{1, 10, 20, 5, 5},
			want:   []byte{10, 20, 15, 25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FlateDecode(compress(t, tt.data), tt.params)
			if err != nil {
				t.Fatalf("FlateDecode: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("decoded = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFlateDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		params Params
		raw    bool
	}{
		{name: "garbage input", data: []byte("not zlib"), raw: true},
		{name: "unsupported predictor", data: []byte{1, 2}, params: Params{"Predictor": 7}},
		{name: "ragged rows", data: []byte{1, 2, 3}, params: Params{"Predictor": 10, "Columns": 3}},
		{name: "unknown png filter", data: []byte{9, 1, 2, 3}, params: Params{"Predictor": 10, "Columns": 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.data
			if !tt.raw {
				data = compress(t, data)
			}
			if _, err := FlateDecode(data, tt.params); err == nil {
				t.Error("FlateDecode succeeded, want error")
			}
		})
	}
}

func TestPaeth(t *testing.T) {
	tests := []struct {
		left, up, upLeft, want byte
	}{
		{0, 0, 0, 0},
		{10, 0, 0, 10},
		{0, 10, 0, 10},
		{10, 20, 10, 20},
		{100, 50, 60, 100},
	}
	for _, tt := range tests {
		if got := paeth(tt.left, tt.up, tt.upLeft); got != tt.want {
			t.Errorf("paeth(%d, %d, %d) = %d, want %d",
				tt.left, tt.up, tt.upLeft, got, tt.want)
		}
	}
}
