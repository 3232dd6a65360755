package reconcile

import (
	"encoding/json"
	"strconv"
	"strings"

	"hotel_merge/internal/domain"
)

/********** tiny helpers over decoded supplier objects **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// optText returns the string at path, nil for absent or non-string values.
func optText(m map[string]any, path string) *string {
	if s, ok := lookupAny(m, path).(string); ok {
		return &s
	}
	return nil
}

// optNumber returns the floating-point number at path. Integer literals,
// strings, bools and objects are a type mismatch and read as absent.
func optNumber(m map[string]any, path string) *float64 {
	switch v := lookupAny(m, path).(type) {
	case json.Number:
		if !strings.ContainsAny(v.String(), ".eE") {
			return nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil
		}
		return &f
	}
	return nil
}

// keyText renders an identity-like value as text: strings as-is (including
// ""), numbers by their JSON literal. Missing and null values report false.
func keyText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	}
	return "", false
}

func optKey(m map[string]any, path string) *string {
	if s, ok := keyText(lookupAny(m, path)); ok {
		return &s
	}
	return nil
}

// optStrings reads a string array. ok is false when the value is absent or not
// an array; non-string entries are dropped.
func optStrings(m map[string]any, path string) (out []string, ok bool) {
	raw, isArr := lookupAny(m, path).([]any)
	if !isArr {
		return nil, false
	}
	out = make([]string, 0, len(raw))
	for _, it := range raw {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

// optImages maps an array of {linkKey, descKey} objects onto domain images.
func optImages(m map[string]any, path, linkKey, descKey string) []domain.Image {
	raw, ok := lookupAny(m, path).([]any)
	if !ok {
		return nil
	}
	out := make([]domain.Image, 0, len(raw))
	for _, it := range raw {
		obj, ok := it.(map[string]any)
		if !ok {
			continue
		}
		link, _ := obj[linkKey].(string)
		desc, _ := obj[descKey].(string)
		out = append(out, domain.Image{Link: link, Description: desc})
	}
	return out
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "bool"
	}
	return "unknown"
}
