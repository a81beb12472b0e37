package workflow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// accessor is one attempt at reading a string field out of a parameter map.
type accessor func(params map[string]any) (string, bool)

// firstOf returns the first accessor result that is a non-blank string.
func firstOf(params map[string]any, attempts ...accessor) *string {
	for _, attempt := range attempts {
		if s, ok := attempt(params); ok {
			return &s
		}
	}
	return nil
}

// at reads a non-blank string at a nested key path.
func at(keys ...string) accessor {
	return func(params map[string]any) (string, bool) {
		v, ok := lookup(params, keys...)
		if !ok {
			return "", false
		}
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return "", false
		}
		return s, true
	}
}

// valueAt reads the ".value" member of a resource locator object at the key path.
func valueAt(keys ...string) accessor {
	return at(append(append([]string(nil), keys...), "value")...)
}

// messageAt reads the content of the first message in an array of message objects whose role
// satisfies match.
func messageAt(match func(role string) bool, keys ...string) accessor {
	return func(params map[string]any) (string, bool) {
		v, ok := lookup(params, keys...)
		if !ok {
			return "", false
		}
		list, ok := v.([]any)
		if !ok {
			return "", false
		}
		for _, item := range list {
			msg, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if !match(strings.ToLower(stringValue(msg["role"]))) {
				continue
			}
			for _, key := range []string{"content", "text", "message"} {
				if s, ok := msg[key].(string); ok && strings.TrimSpace(s) != "" {
					return s, true
				}
			}
			return "", false
		}
		return "", false
	}
}

func lookup(params map[string]any, keys ...string) (any, bool) {
	var cur any = params
	for _, k := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[k]
		if !ok {
			return nil, false
		}
	}
	return cur, cur != nil
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func numberValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// prettyJSON encodes v with two space indentation and without HTML escaping.
func prettyJSON(v any) (string, bool) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", false
	}
	return strings.TrimRight(buf.String(), "\n"), true
}

// normalizeJSONText re-indents s when it holds valid JSON and returns it trimmed otherwise.
func normalizeJSONText(s string) string {
	trimmed := strings.TrimSpace(s)
	if !json.Valid([]byte(trimmed)) {
		return trimmed
	}
	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return trimmed
	}
	if out, ok := prettyJSON(v); ok {
		return out
	}
	return trimmed
}
