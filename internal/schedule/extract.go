package schedule

import (
	"reflect"

	"kinomatch/internal/fields"
)

// ExtractShowArray locates the list of show records inside a decoded payload.
//
// A top-level array is returned as is. For objects, the direct keys are tried
// first: an array under one of them is returned immediately and a nested
// object is searched recursively. The broader nesting keys are tried next and
// the first non-empty result wins. Visited objects are tracked so cyclic
// structures terminate. Non-object elements are skipped and anything else
// yields an empty slice.
func ExtractShowArray(payload any) []fields.Record {
	return findRecords(payload, directShowKeys, nestedShowKeys, map[uintptr]struct{}{})
}

func findRecords(payload any, direct, nested []string, visited map[uintptr]struct{}) []fields.Record {
	if payload == nil {
		return nil
	}
	if list, ok := recordList(payload); ok {
		return list
	}

	record, ok := fields.AsRecord(payload)
	if !ok {
		return nil
	}
	id := reflect.ValueOf(map[string]any(record)).Pointer()
	if _, seen := visited[id]; seen {
		return nil
	}
	visited[id] = struct{}{}

	for _, key := range direct {
		value := record[key]
		if list, ok := recordList(value); ok {
			return list
		}
		if _, ok := fields.AsRecord(value); ok {
			if found := findRecords(value, direct, nested, visited); len(found) > 0 {
				return found
			}
		}
	}

	for _, key := range nested {
		value, ok := record[key]
		if !ok || value == nil {
			continue
		}
		if found := findRecords(value, direct, nested, visited); len(found) > 0 {
			return found
		}
	}
	return nil
}

// recordList reports whether value is an array and returns its object elements.
func recordList(value any) ([]fields.Record, bool) {
	switch v := value.(type) {
	case []any:
		out := make([]fields.Record, 0, len(v))
		for _, item := range v {
			if rec, ok := fields.AsRecord(item); ok {
				out = append(out, rec)
			}
		}
		return out, true
	case []map[string]any:
		out := make([]fields.Record, 0, len(v))
		for _, item := range v {
			if item != nil {
				out = append(out, fields.Record(item))
			}
		}
		return out, true
	case []fields.Record:
		out := make([]fields.Record, 0, len(v))
		for _, item := range v {
			if item != nil {
				out = append(out, item)
			}
		}
		return out, true
	default:
		return nil, false
	}
}
