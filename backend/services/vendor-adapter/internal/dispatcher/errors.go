package dispatcher

import (
	"errors"
	"net/http"

	"vendoradapter/backend/services/vendor-adapter/internal/models"
	"vendoradapter/backend/services/vendor-adapter/internal/schema"
)

// StatusOf maps a Dispatch error to the status reported to the caller.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, schema.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnmatchedAction):
		return http.StatusNotFound
	case errors.Is(err, ErrNormalization), errors.Is(err, ErrCatalogWrite):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorEnvelope renders a Dispatch error for transports that always answer with an envelope.
func ErrorEnvelope(err error) models.Envelope {
	return models.Envelope{StatusCode: StatusOf(err), Message: err.Error(), Data: models.EmptyData}
}
