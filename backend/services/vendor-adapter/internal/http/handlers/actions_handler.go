package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"vendoradapter/backend/services/vendor-adapter/internal/dispatcher"
	"vendoradapter/backend/services/vendor-adapter/internal/http/middleware"
	"vendoradapter/backend/services/vendor-adapter/internal/models"
	"vendoradapter/backend/services/vendor-adapter/internal/schema"
)

const maxBodyBytes = 1 << 20

// Dispatcher runs one action request.
type Dispatcher interface {
	Dispatch(ctx context.Context, req models.ActionRequest) (models.Envelope, error)
}

// ActionsHandler exposes the dispatcher over HTTP.
type ActionsHandler struct {
	dispatcher Dispatcher
	logger     *zap.Logger
}

// NewActionsHandler returns handler.
func NewActionsHandler(d Dispatcher, logger *zap.Logger) *ActionsHandler {
	return &ActionsHandler{dispatcher: d, logger: logger}
}

// Dispatch handles POST /api/v1/actions. The response status mirrors the envelope status code.
func (h *ActionsHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req models.ActionRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	caller, _ := middleware.CallerFromContext(r.Context())
	h.logger.Debug("action request received",
		zap.String("caller", caller),
		zap.String("vendor_id", req.VendorID),
		zap.String("action", req.Action),
	)

	env, err := h.dispatcher.Dispatch(r.Context(), req)
	if err != nil {
		h.writeDispatchError(w, err)
		return
	}
	writeEnvelope(w, env)
}

func (h *ActionsHandler) writeDispatchError(w http.ResponseWriter, err error) {
	status := dispatcher.StatusOf(err)

	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		writeValidation(w, status, verr)
		return
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("dispatch failed", zap.Error(err))
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}
