package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vendoradapter/backend/services/vendor-adapter/internal/app"
	"vendoradapter/backend/services/vendor-adapter/internal/config"
	"vendoradapter/backend/services/vendor-adapter/internal/models"
	"vendoradapter/backend/services/vendor-adapter/internal/schema"
)

func TestHandleSNSWrappedRequest(t *testing.T) {
	vendor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chargemod/charging-activities", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":false,"message":"No activity","data":[]}`))
	}))
	defer vendor.Close()

	request, err := json.Marshal(map[string]interface{}{
		"vendor_id": "chargemod",
		"action":    "activities",
		"base_url":  vendor.URL,
		"params":    map[string]string{},
		"header":    map[string]string{"Accept": "application/json", "key": "k", "Authorization": "Bearer t"},
	})
	require.NoError(t, err)
	event, err := json.Marshal(map[string]interface{}{
		"Records": []map[string]interface{}{{"Sns": map[string]string{"Message": string(request)}}},
	})
	require.NoError(t, err)

	h := &handler{dispatcher: app.NewDispatcher(&config.Config{}, nil, zap.NewNop()), logger: zap.NewNop()}
	env, err := h.handle(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, models.StatusServiceUnavailable, env.StatusCode)
	assert.Equal(t, "No activity", env.Message)
}

func TestHandleRejectsIncompleteEvent(t *testing.T) {
	h := &handler{dispatcher: app.NewDispatcher(&config.Config{}, nil, zap.NewNop()), logger: zap.NewNop()}
	_, err := h.handle(context.Background(), json.RawMessage(`{"vendor_id":"chargemod"}`))
	assert.True(t, errors.Is(err, schema.ErrInvalidRequest))
}
