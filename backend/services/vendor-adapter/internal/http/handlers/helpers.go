package handlers

import (
	"encoding/json"
	"net/http"

	"vendoradapter/backend/services/vendor-adapter/internal/models"
	"vendoradapter/backend/services/vendor-adapter/internal/schema"
)

// errorBody is the response for requests that never reached a vendor.
type errorBody struct {
	Error   string              `json:"error"`
	Section string              `json:"section,omitempty"`
	Fields  []schema.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeEnvelope answers with env, using its status code as the HTTP status.
func writeEnvelope(w http.ResponseWriter, env models.Envelope) {
	if len(env.Data) == 0 {
		env.Data = models.EmptyData
	}
	writeJSON(w, env.StatusCode, env)
}

func writeValidation(w http.ResponseWriter, status int, verr *schema.ValidationError) {
	writeJSON(w, status, errorBody{Error: "invalid request", Section: verr.Section, Fields: verr.Fields})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}
