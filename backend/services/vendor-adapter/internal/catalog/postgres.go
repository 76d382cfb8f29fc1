package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const upsertStationSQL = `
	INSERT INTO vendor_stations (vendor_id, station_id, payload, updated_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (vendor_id, station_id) DO UPDATE SET
		payload = EXCLUDED.payload,
		updated_at = NOW()
`

// TxBeginner is the pgx pool subset the writer needs.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresWriter upserts station batches into vendor_stations in one transaction.
type PostgresWriter struct {
	db     TxBeginner
	logger *zap.Logger
}

// NewPostgresWriter returns writer backed by db.
func NewPostgresWriter(db TxBeginner, logger *zap.Logger) *PostgresWriter {
	return &PostgresWriter{db: db, logger: logger}
}

// WriteStations upserts every station or none.
func (w *PostgresWriter) WriteStations(ctx context.Context, stations []json.RawMessage) error {
	keys, err := keysOf(stations)
	if err != nil {
		return err
	}

	tx, err := w.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("catalog: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for i, k := range keys {
		batch.Queue(upsertStationSQL, k.VendorID, k.StationID, []byte(stations[i]))
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("catalog: upsert stations: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("catalog: commit: %w", err)
	}
	w.logger.Info("stations upserted", zap.Int("stations", len(keys)))
	return nil
}
