package endpoint

import (
	"net/url"
	"strings"

	"vendoradapter/backend/services/vendor-adapter/internal/schema"
)

// Endpoint is a fully qualified vendor URL plus HTTP method. It is immutable.
type Endpoint struct {
	url    string
	method string
}

// URL returns the absolute endpoint URL.
func (e Endpoint) URL() string { return e.url }

// Method returns the HTTP verb.
func (e Endpoint) Method() string { return e.method }

// Build appends each non-empty segment to baseURL as exactly one path element.
// Segments that are dot-segments or contain a slash are rejected.
func Build(baseURL, method string, segments ...string) (Endpoint, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return Endpoint{}, schema.Invalid("request", "base_url", "url")
	}

	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s == "" {
			continue
		}
		if !ValidSegment(s) {
			return Endpoint{}, schema.Invalid("request", "path", "segment")
		}
		parts = append(parts, s)
	}
	return Endpoint{url: base.JoinPath(parts...).String(), method: method}, nil
}

// ValidSegment reports whether s can stand as a single path element.
func ValidSegment(s string) bool {
	return s != "." && s != ".." && !strings.ContainsAny(s, "/\\")
}
