package models

import (
	"encoding/json"
	"net/http"
)

// Canonical status codes carried in an Envelope.
const (
	StatusOK                 = http.StatusOK
	StatusServiceUnavailable = http.StatusServiceUnavailable
	StatusInternalError      = http.StatusInternalServerError
)

// EmptyData is the `{}` payload used when no vendor data is available.
var EmptyData = json.RawMessage(`{}`)

// Envelope is the uniform result returned to every caller of the adapter.
type Envelope struct {
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

// OK reports whether the envelope carries a successful vendor result.
func (e Envelope) OK() bool {
	return e.StatusCode == StatusOK
}
