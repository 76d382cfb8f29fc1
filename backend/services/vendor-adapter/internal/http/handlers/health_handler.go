package handlers

import (
	"net/http"
)

type healthBody struct {
	Status  string   `json:"status"`
	Vendors []string `json:"vendors"`
	Catalog string   `json:"catalog"`
}

// NewHealthHandler returns GET /health handler listing the vendors the
// adapter can dispatch to and the catalog driver it writes through.
func NewHealthHandler(vendors []string, catalogDriver string) http.HandlerFunc {
	body := healthBody{Status: "ok", Vendors: append([]string{}, vendors...), Catalog: catalogDriver}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, body)
	}
}
