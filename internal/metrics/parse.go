package metrics

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseNumber coerces a loosely typed cell value to a float. Anything that
// does not parse or is not finite (empty strings, nil, booleans, NaN,
// "Infinity") becomes 0. Strings with a numeric prefix such as "12 units"
// yield the prefix.
func ParseNumber(v any) float64 {
	var f float64
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int32:
		f = float64(val)
	case int64:
		f = float64(val)
	case uint:
		f = float64(val)
	case uint32:
		f = float64(val)
	case uint64:
		f = float64(val)
	case json.Number:
		f = parseString(string(val))
	case string:
		f = parseString(val)
	case *float64:
		if val == nil {
			return 0
		}
		f = *val
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseInt coerces a cell to a whole number of units, truncating fractions.
func ParseInt(v any) int {
	return int(ParseNumber(v))
}

func parseString(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}

	prefix := leadingNumber.FindString(s)
	if prefix == "" {
		return 0
	}

	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0
	}
	return f
}
