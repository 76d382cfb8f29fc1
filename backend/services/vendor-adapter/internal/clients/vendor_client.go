package clients

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"vendoradapter/backend/services/vendor-adapter/internal/endpoint"
)

const maxVendorBody = 8 << 20

// HTTPDoer defines http.Client interface subset.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// VendorReply is a decoded vendor response body.
type VendorReply struct {
	StatusCode int
	Fields     map[string]json.RawMessage
}

// Field returns a top-level field of the reply and whether it was present.
func (r *VendorReply) Field(name string) (json.RawMessage, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// VendorClient executes exactly one vendor call per request. It never retries.
type VendorClient struct {
	client HTTPDoer
	logger *zap.Logger
}

// NewVendorClient wraps client.
func NewVendorClient(client HTTPDoer, logger *zap.Logger) *VendorClient {
	return &VendorClient{client: client, logger: logger}
}

// NewVendorHTTPClient returns an *http.Client with the given timeout.
// insecureSkipVerify disables TLS certificate checks and must only be set for
// vendors whose certificates cannot be verified.
func NewVendorHTTPClient(timeout time.Duration, insecureSkipVerify bool) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in per vendor config
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

// Call performs req and returns the decoded reply, or nil when the vendor
// could not be reached or answered with something other than a JSON object.
func (c *VendorClient) Call(ctx context.Context, req endpoint.Request) *VendorReply {
	httpReq, err := c.build(ctx, req)
	if err != nil {
		c.logger.Warn("vendor request build failed", zap.Error(err))
		return nil
	}

	c.logger.Info("calling vendor", zap.String("method", httpReq.Method), zap.String("url", req.Endpoint.URL()))
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Warn("vendor request failed", zap.String("url", req.Endpoint.URL()), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxVendorBody))
	if err != nil {
		c.logger.Warn("vendor body read failed", zap.Int("status", resp.StatusCode), zap.Error(err))
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		c.logger.Warn("vendor returned non-object body", zap.Int("status", resp.StatusCode), zap.Int("bytes", len(body)))
		return nil
	}
	c.logger.Info("vendor replied", zap.Int("status", resp.StatusCode))
	return &VendorReply{StatusCode: resp.StatusCode, Fields: fields}
}

func (c *VendorClient) build(ctx context.Context, req endpoint.Request) (*http.Request, error) {
	target := req.Endpoint.URL()
	method := req.Endpoint.Method()

	var body io.Reader
	encoded := req.Params.Encode()
	if method == http.MethodGet {
		if encoded != "" {
			sep := "?"
			if strings.Contains(target, "?") {
				sep = "&"
			}
			target += sep + encoded
		}
	} else if encoded != "" {
		body = bytes.NewBufferString(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	for k, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(k, v)
		}
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return httpReq, nil
}
