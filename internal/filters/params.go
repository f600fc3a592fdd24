package filters

// Params carries decode parameters from a stream's DecodeParms
// dictionary. Keys use the PDF names (Predictor, Columns, Colors,
// BitsPerComponent, K, Rows, BlackIs1).
type Params map[string]interface{}

func (p Params) intOr(key string, fallback int) int {
	if p == nil {
		return fallback
	}
	switch v := p[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return fallback
}

func (p Params) boolOr(key string, fallback bool) bool {
	if p == nil {
		return fallback
	}
	if v, ok := p[key].(bool); ok {
		return v
	}
	return fallback
}
