package fields

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Record is a decoded object whose fields may appear under several names.
type Record map[string]any

// AsRecord reports whether value is an object and returns it as a Record.
func AsRecord(value any) (Record, bool) {
	switch v := value.(type) {
	case Record:
		return v, v != nil
	case map[string]any:
		return Record(v), v != nil
	default:
		return nil, false
	}
}

// Value returns the first non-nil value stored under any of the aliases.
func (r Record) Value(aliases ...string) (any, bool) {
	for _, alias := range aliases {
		if value, ok := r[alias]; ok && value != nil {
			return value, true
		}
	}
	return nil, false
}

// String returns the first alias holding a non-empty string or a finite number.
// Numbers are rendered without an exponent; integral values carry no decimal point.
func (r Record) String(aliases ...string) (string, bool) {
	for _, alias := range aliases {
		if s, ok := stringValue(r[alias]); ok {
			return s, true
		}
	}
	return "", false
}

// Number returns the first alias holding a finite number or a non-blank
// string that parses to one.
func (r Record) Number(aliases ...string) (float64, bool) {
	for _, alias := range aliases {
		if n, ok := numberValue(r[alias]); ok {
			return n, true
		}
	}
	return 0, false
}

// Int returns Number rounded half away from zero, so "120.5" yields 121.
func (r Record) Int(aliases ...string) (int, bool) {
	n, ok := r.Number(aliases...)
	if !ok {
		return 0, false
	}
	n = math.Round(n)
	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0, false
	}
	return int(n), true
}

// Object returns the first alias holding a nested object.
func (r Record) Object(aliases ...string) (Record, bool) {
	for _, alias := range aliases {
		if rec, ok := AsRecord(r[alias]); ok {
			return rec, true
		}
	}
	return nil, false
}

func stringValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	case json.Number:
		return numberString(v.Float64())
	case float64:
		return numberString(v, nil)
	case float32:
		return numberString(float64(v), nil)
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	default:
		return "", false
	}
}

func numberString(v float64, err error) (string, bool) {
	if err != nil || !finite(v) {
		return "", false
	}
	return strconv.FormatFloat(v, 'f', -1, 64), true
}

func numberValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, finite(v)
	case float32:
		return float64(v), finite(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		n, err := v.Float64()
		return n, err == nil && finite(n)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || !finite(n) {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
