package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vendoradapter/backend/services/vendor-adapter/internal/dispatcher"
	"vendoradapter/backend/services/vendor-adapter/internal/http/handlers"
	"vendoradapter/backend/services/vendor-adapter/internal/http/middleware"
	"vendoradapter/backend/services/vendor-adapter/internal/models"
	"vendoradapter/backend/services/vendor-adapter/internal/schema"
)

const secret = "test-secret"

type stubDispatcher struct {
	env   models.Envelope
	err   error
	calls int
}

func (s *stubDispatcher) Dispatch(_ context.Context, _ models.ActionRequest) (models.Envelope, error) {
	s.calls++
	return s.env, s.err
}

func signed(t *testing.T, method jwt.SigningMethod, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(method, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func newTestRouter(d *stubDispatcher) http.Handler {
	logger := zap.NewNop()
	router := NewRouter(RouterDeps{
		ActionsHandler: handlers.NewActionsHandler(d, logger),
		HealthHandler:  handlers.NewHealthHandler([]string{"chargemod"}, "http"),
	}, middleware.AuthMiddleware(secret))
	return middleware.RecoveryMiddleware(logger)(middleware.LoggingMiddleware(logger)(router))
}

func postAction(t *testing.T, h http.Handler, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/actions", strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const body = `{"vendor_id":"chargemod","action":"stop_charge","base_url":"https://vendor.test","params":{"reference_transaction_id":"1"},"header":{}}`

func TestHealthIsOpen(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&stubDispatcher{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","vendors":["chargemod"],"catalog":"http"}`, rec.Body.String())
}

func TestActionsRequireValidToken(t *testing.T) {
	d := &stubDispatcher{}
	h := newTestRouter(d)

	cases := map[string]string{
		"missing":    "",
		"garbage":    "not-a-jwt",
		"no subject": signed(t, jwt.SigningMethodHS256, ""),
		"wrong alg":  signed(t, jwt.SigningMethodHS512, "svc"),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			rec := postAction(t, h, token, body)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
	assert.Equal(t, 0, d.calls)
}

func TestActionStatusMirrorsEnvelope(t *testing.T) {
	d := &stubDispatcher{env: models.Envelope{StatusCode: http.StatusServiceUnavailable, Message: "Relay busy", Data: json.RawMessage(`[]`)}}
	rec := postAction(t, newTestRouter(d), signed(t, jwt.SigningMethodHS256, "svc"), body)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status_code":503,"message":"Relay busy","data":[]}`, rec.Body.String())
	assert.Equal(t, 1, d.calls)
}

func TestActionErrors(t *testing.T) {
	cases := map[string]struct {
		err  error
		want int
	}{
		"validation":    {err: schema.Invalid("params", "q", "required"), want: http.StatusBadRequest},
		"unmatched":     {err: fmt.Errorf("%w: x/y", dispatcher.ErrUnmatchedAction), want: http.StatusNotFound},
		"normalization": {err: dispatcher.ErrNormalization, want: http.StatusBadGateway},
		"catalog":       {err: dispatcher.ErrCatalogWrite, want: http.StatusBadGateway},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := postAction(t, newTestRouter(&stubDispatcher{err: tc.err}), signed(t, jwt.SigningMethodHS256, "svc"), body)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestValidationErrorListsFields(t *testing.T) {
	d := &stubDispatcher{err: schema.Invalid("params", "q", "required")}
	rec := postAction(t, newTestRouter(d), signed(t, jwt.SigningMethodHS256, "svc"), body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid request","section":"params","fields":[{"field":"q","rule":"required"}]}`, rec.Body.String())
}

func TestActionRejectsBadJSON(t *testing.T) {
	d := &stubDispatcher{}
	rec := postAction(t, newTestRouter(d), signed(t, jwt.SigningMethodHS256, "svc"), `{"vendor_id":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, d.calls)
}
