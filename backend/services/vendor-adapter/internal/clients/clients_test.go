package clients

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vendoradapter/backend/services/vendor-adapter/internal/endpoint"
)

func vendorRequest(t *testing.T, base, method string, params url.Values) endpoint.Request {
	t.Helper()
	ep, err := endpoint.Build(base, method, "chargemod", "verb")
	require.NoError(t, err)
	h := http.Header{}
	h.Set("key", "k1")
	return endpoint.Request{Endpoint: ep, Params: params, Header: h}
}

func TestVendorClientGetSendsQuery(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":[]}`))
	}))
	defer srv.Close()

	c := NewVendorClient(NewVendorHTTPClient(time.Second, false), zap.NewNop())
	reply := c.Call(context.Background(), vendorRequest(t, srv.URL, http.MethodGet, url.Values{"q": {"BB"}}))

	require.NotNil(t, reply)
	assert.Equal(t, http.StatusOK, reply.StatusCode)
	data, ok := reply.Field("data")
	assert.True(t, ok)
	assert.JSONEq(t, `[]`, string(data))

	require.NotNil(t, got)
	assert.Equal(t, "/chargemod/verb", got.URL.Path)
	assert.Equal(t, "BB", got.URL.Query().Get("q"))
	assert.Equal(t, "k1", got.Header.Get("key"))
}

func TestVendorClientPostSendsForm(t *testing.T) {
	var form url.Values
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		_, _ = w.Write([]byte(`{"success":false,"message":"busy","data":{}}`))
	}))
	defer srv.Close()

	c := NewVendorClient(srv.Client(), zap.NewNop())
	reply := c.Call(context.Background(), vendorRequest(t, srv.URL, http.MethodPost, url.Values{"reference_transaction_id": {"3"}}))

	require.NotNil(t, reply)
	assert.Equal(t, "application/x-www-form-urlencoded", contentType)
	assert.Equal(t, "3", form.Get("reference_transaction_id"))
}

func TestVendorClientNoResponse(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"html body": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>bad gateway</html>`))
		},
		"json array": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[1,2,3]`))
		},
		"empty object": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		},
		"empty body": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()
			c := NewVendorClient(srv.Client(), zap.NewNop())
			assert.Nil(t, c.Call(context.Background(), vendorRequest(t, srv.URL, http.MethodGet, nil)))
		})
	}
}

func TestVendorClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewVendorClient(NewVendorHTTPClient(200*time.Millisecond, false), zap.NewNop())
	assert.Nil(t, c.Call(context.Background(), vendorRequest(t, base, http.MethodGet, nil)))
}

func TestVendorClientErrorBodyIsStillAReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Unauthenticated."}`))
	}))
	defer srv.Close()

	c := NewVendorClient(srv.Client(), zap.NewNop())
	reply := c.Call(context.Background(), vendorRequest(t, srv.URL, http.MethodGet, nil))
	require.NotNil(t, reply)
	assert.Equal(t, http.StatusUnauthorized, reply.StatusCode)
	_, ok := reply.Field("data")
	assert.False(t, ok)
}

func TestNewVendorHTTPClientInsecureFlag(t *testing.T) {
	secure := NewVendorHTTPClient(time.Second, false)
	assert.Nil(t, secure.Transport.(*http.Transport).TLSClientConfig)

	insecure := NewVendorHTTPClient(time.Second, true)
	assert.True(t, insecure.Transport.(*http.Transport).TLSClientConfig.InsecureSkipVerify)
	assert.Equal(t, time.Second, insecure.Timeout)
}

func TestCatalogClientWriteStations(t *testing.T) {
	var batch CatalogBatch
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &batch))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewCatalogClient(srv.URL, srv.Client(), zap.NewNop())
	err := c.WriteStations(context.Background(), []json.RawMessage{json.RawMessage(`{"station_id":"1"}`)})
	require.NoError(t, err)
	assert.True(t, batch.WriteVendorDataToLocationTable)
	require.Len(t, batch.DataToWrite, 1)
	assert.JSONEq(t, `{"station_id":"1"}`, string(batch.DataToWrite[0]))
}

func TestCatalogClientNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewCatalogClient(srv.URL, srv.Client(), zap.NewNop())
	assert.Error(t, c.WriteStations(context.Background(), nil))
}
