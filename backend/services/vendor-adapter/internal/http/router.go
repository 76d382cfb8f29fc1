package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"vendoradapter/backend/services/vendor-adapter/internal/http/handlers"
)

// RouterDeps collects handler dependencies.
type RouterDeps struct {
	ActionsHandler *handlers.ActionsHandler
	HealthHandler  http.HandlerFunc
}

// NewRouter wires HTTP routes; action routes sit behind authMiddleware.
func NewRouter(deps RouterDeps, authMiddleware func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", deps.HealthHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/actions", deps.ActionsHandler.Dispatch)
	})

	return r
}
