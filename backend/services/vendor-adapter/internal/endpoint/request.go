package endpoint

import (
	"net/http"
	"net/url"
)

// Request is everything the vendor caller needs for one HTTP call.
// GET sends Params as the query string, other methods as a form body.
type Request struct {
	Endpoint Endpoint
	Params   url.Values
	Header   http.Header
}
