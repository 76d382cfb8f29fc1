package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// CatalogBatch is the body the catalog service accepts for station writes.
type CatalogBatch struct {
	WriteVendorDataToLocationTable bool              `json:"write_vendor_data_to_location_table"`
	DataToWrite                    []json.RawMessage `json:"data_to_write"`
}

// CatalogClient hands canonical station batches to the catalog service.
type CatalogClient struct {
	url    string
	client HTTPDoer
	logger *zap.Logger
}

// NewCatalogClient returns HTTP client wrapper for the catalog endpoint.
func NewCatalogClient(url string, client HTTPDoer, logger *zap.Logger) *CatalogClient {
	return &CatalogClient{url: url, client: client, logger: logger}
}

// WriteStations posts the whole batch in one request. Non-2xx is an error.
func (c *CatalogClient) WriteStations(ctx context.Context, stations []json.RawMessage) error {
	data, err := json.Marshal(CatalogBatch{WriteVendorDataToLocationTable: true, DataToWrite: stations})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("catalog request failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		c.logger.Warn("catalog returned non-success", zap.Int("status", resp.StatusCode))
		return fmt.Errorf("catalog: non-success status %d", resp.StatusCode)
	}
	c.logger.Info("catalog batch written", zap.Int("stations", len(stations)))
	return nil
}

// NewDefaultHTTPClient returns *http.Client with timeout.
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
