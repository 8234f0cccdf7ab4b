package provider

import (
	"encoding/json"
	"strconv"
)

// ExtractValue normalizes a stat value from a decoded provider row.
//
// stats.nba.com returns numbers, but some columns come back as numeric
// strings and json.Number shows up when the decoder runs with UseNumber.
//
// Returns the scalar float64 value, and ok=false if not extractable.
func ExtractValue(val interface{}) (float64, bool) {
	if val == nil {
		return 0, false
	}

	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// ExtractInt is ExtractValue truncated to an int.
func ExtractInt(val interface{}) (int, bool) {
	f, ok := ExtractValue(val)
	return int(f), ok
}

// ExtractString returns val as a string. Numbers are formatted without a
// trailing ".0"; nil yields "".
func ExtractString(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
