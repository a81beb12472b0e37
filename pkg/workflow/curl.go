package workflow

import (
	"net/http"
	"strings"
)

// BuildCurlCommand renders a cURL command for a request. One -H flag is emitted per header;
// the body is only sent (-d) for POST, PUT and PATCH. Output is a pure function of the input.
func BuildCurlCommand(method, url string, headers []Header, body *string) string {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = http.MethodGet
	}

	var b strings.Builder
	b.WriteString("curl -X ")
	b.WriteString(method)
	b.WriteString(" ")
	b.WriteString(shellQuote(url))
	for _, h := range headers {
		b.WriteString(" \\\n  -H ")
		b.WriteString(shellQuote(h.Name + ": " + h.Value))
	}
	if body != nil && *body != "" && carriesBody(method) {
		b.WriteString(" \\\n  -d ")
		b.WriteString(shellQuote(*body))
	}
	return b.String()
}

func carriesBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// shellQuote wraps s in single quotes for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
