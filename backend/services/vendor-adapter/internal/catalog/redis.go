package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisWriter keeps the latest canonical snapshot of every station in redis.
type RedisWriter struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisWriter returns a redis-backed writer. ttl of zero keeps keys forever.
func NewRedisWriter(client redis.Cmdable, ttl time.Duration, logger *zap.Logger) *RedisWriter {
	return &RedisWriter{client: client, ttl: ttl, logger: logger}
}

// StationKey is the redis key holding one station snapshot.
func StationKey(vendorID, stationID string) string {
	return fmt.Sprintf("stations:%s:%s", vendorID, stationID)
}

// VendorIndexKey is the redis set listing every station id of a vendor.
func VendorIndexKey(vendorID string) string {
	return fmt.Sprintf("stations:%s:index", vendorID)
}

// WriteStations stores the batch inside a single MULTI/EXEC.
func (w *RedisWriter) WriteStations(ctx context.Context, stations []json.RawMessage) error {
	keys, err := keysOf(stations)
	if err != nil {
		return err
	}

	_, err = w.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, k := range keys {
			pipe.Set(ctx, StationKey(k.VendorID, k.StationID), []byte(stations[i]), w.ttl)
			pipe.SAdd(ctx, VendorIndexKey(k.VendorID), k.StationID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("catalog: redis write: %w", err)
	}
	w.logger.Info("stations cached", zap.Int("stations", len(keys)))
	return nil
}
