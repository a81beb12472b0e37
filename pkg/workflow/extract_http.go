package workflow

import (
	"net/http"
	"sort"
	"strings"
)

// NoURL is the URL reported for HTTP nodes without one.
const NoURL = "No URL specified"

// Header is a name/value pair of an HTTP request.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// HTTPConfig is the normalized configuration of an HTTP request node.
type HTTPConfig struct {
	StepRef
	Method          string   `json:"method"`
	URL             string   `json:"url"`
	Headers         []Header `json:"headers"`
	QueryParameters []Header `json:"queryParameters"`
	Body            *string  `json:"body"`
	Authentication  *string  `json:"authentication"`
	CurlCommand     string   `json:"curlCommand"`
}

var (
	methodFields = []accessor{at("method"), at("requestMethod"), at("httpMethod")}
	urlFields    = []accessor{at("url"), valueAt("url"), at("endpoint"), at("path")}
)

// ExtractHTTP reads method, URL, headers and body from an HTTP node and synthesizes the
// matching cURL command.
func ExtractHTTP(node Node) HTTPConfig {
	params := node.Parameters
	cfg := HTTPConfig{
		Method:          http.MethodGet,
		URL:             NoURL,
		Headers:         pairsFrom(params, "headerParameters", "headers"),
		QueryParameters: pairsFrom(params, "queryParameters", "qs"),
		Body:            httpBody(params),
		Authentication:  firstOf(params, at("authentication"), at("genericAuthType")),
	}
	if m := firstOf(params, methodFields...); m != nil {
		cfg.Method = strings.ToUpper(strings.TrimSpace(*m))
	}
	if u := firstOf(params, urlFields...); u != nil {
		cfg.URL = strings.TrimSpace(*u)
	}
	cfg.CurlCommand = BuildCurlCommand(cfg.Method, cfg.URL, cfg.Headers, cfg.Body)
	return cfg
}

// pairsFrom collects name/value pairs from the first key that yields any. Each key may hold
// a flat array of {name, value}, an object with a nested parameters array, or a plain object.
func pairsFrom(params map[string]any, keys ...string) []Header {
	for _, key := range keys {
		v, ok := params[key]
		if !ok {
			continue
		}
		if pairs := toPairs(v); len(pairs) > 0 {
			return pairs
		}
	}
	return []Header{}
}

func toPairs(v any) []Header {
	switch t := v.(type) {
	case []any:
		var out []Header
		for _, item := range t {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			name := strings.TrimSpace(stringValue(m["name"]))
			if name == "" {
				continue
			}
			out = append(out, Header{Name: name, Value: stringValue(m["value"])})
		}
		return out
	case map[string]any:
		if nested, ok := t["parameters"].([]any); ok {
			return toPairs(nested)
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var out []Header
		for _, k := range keys {
			if _, isObj := t[k].(map[string]any); isObj {
				continue
			}
			if _, isArr := t[k].([]any); isArr {
				continue
			}
			out = append(out, Header{Name: k, Value: stringValue(t[k])})
		}
		return out
	}
	return nil
}

// httpBody resolves the request body from, in order: the raw JSON body, the generic body
// field, or structured body parameters.
func httpBody(params map[string]any) *string {
	for _, key := range []string{"jsonBody", "body"} {
		v, ok := params[key]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if s := normalizeJSONText(t); s != "" {
				return &s
			}
		case map[string]any, []any:
			if s, ok := prettyJSON(t); ok {
				return &s
			}
		}
	}

	if v, ok := params["bodyParameters"]; ok {
		var obj map[string]any
		switch t := v.(type) {
		case map[string]any:
			if nested, ok := t["parameters"].([]any); ok {
				obj = pairsToObject(nested)
			} else {
				obj = t
			}
		case []any:
			obj = pairsToObject(t)
		}
		if len(obj) > 0 {
			if s, ok := prettyJSON(obj); ok {
				return &s
			}
		}
	}
	return nil
}

func pairsToObject(list []any) map[string]any {
	obj := map[string]any{}
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name := strings.TrimSpace(stringValue(m["name"]))
		if name == "" {
			continue
		}
		obj[name] = m["value"]
	}
	return obj
}
