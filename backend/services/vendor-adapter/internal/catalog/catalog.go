// Package catalog persists canonical station batches. Every Writer is
// all-or-nothing: either the whole batch lands or none of it does.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Supported catalog drivers.
const (
	DriverHTTP     = "http"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// ErrInvalidRecord is returned when a serialized station lacks its keys.
var ErrInvalidRecord = errors.New("catalog: record missing station_id or vendor_id")

// Writer accepts one batch of serialized canonical stations.
type Writer interface {
	WriteStations(ctx context.Context, stations []json.RawMessage) error
}

// recordKey identifies a station across vendors.
type recordKey struct {
	StationID string `json:"station_id"`
	VendorID  string `json:"vendor_id"`
}

func keysOf(stations []json.RawMessage) ([]recordKey, error) {
	keys := make([]recordKey, 0, len(stations))
	for i, raw := range stations {
		var k recordKey
		if err := json.Unmarshal(raw, &k); err != nil {
			return nil, fmt.Errorf("catalog: record %d: %w", i, err)
		}
		if k.StationID == "" || k.VendorID == "" {
			return nil, fmt.Errorf("record %d: %w", i, ErrInvalidRecord)
		}
		keys = append(keys, k)
	}
	return keys, nil
}
