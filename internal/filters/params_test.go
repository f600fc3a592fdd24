package filters

import "testing"

func TestParamsIntOr(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		key      string
		fallback int
		want     int
	}{
		{"nil params", nil, "Columns", 1728, 1728},
		{"missing key", Params{"Rows": 50}, "Columns", 1728, 1728},
		{"int value", Params{"Columns": 100}, "Columns", 1728, 100},
		{"int64 value", Params{"Columns": int64(200)}, "Columns", 1728, 200},
		{"float value", Params{"Columns": 300.0}, "Columns", 1728, 300},
		{"wrong type", Params{"Columns": "wide"}, "Columns", 1728, 1728},
		{"negative K", Params{"K": -1}, "K", 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.intOr(tt.key, tt.fallback); got != tt.want {
				t.Errorf("intOr(%q, %d) = %d, want %d", tt.key, tt.fallback, got, tt.want)
			}
		})
	}
}

func TestParamsBoolOr(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		fallback bool
		want     bool
	}{
		{"nil params", nil, false, false},
		{"true value", Params{"BlackIs1": true}, false, true},
		{"false value", Params{"BlackIs1": false}, true, false},
		{"wrong type", Params{"BlackIs1": "true"}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.boolOr("BlackIs1", tt.fallback); got != tt.want {
				t.Errorf("boolOr(BlackIs1, %v) = %v, want %v", tt.fallback, got, tt.want)
			}
		})
	}
}
