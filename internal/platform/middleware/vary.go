package middleware

import (
	"net/http"
	"strings"
)

// Vary returns middleware that adds Accept to the Vary header on all responses.
// Responses are negotiated between JSON and CBOR (RFC 9110 section 12.5.5).
// The CORS middleware adds Origin on its own.
func Vary() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			AddVary(w.Header(), "Accept")
			next.ServeHTTP(w, r)
		})
	}
}

// AddVary appends tokens to the Vary header, skipping any already listed
// (case-insensitively) in existing Vary values.
func AddVary(h http.Header, tokens ...string) {
	seen := make(map[string]struct{})
	for _, v := range h.Values("Vary") {
		for part := range strings.SplitSeq(v, ",") {
			seen[strings.ToLower(strings.TrimSpace(part))] = struct{}{}
		}
	}
	for _, token := range tokens {
		key := strings.ToLower(strings.TrimSpace(token))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		h.Add("Vary", token)
	}
}
