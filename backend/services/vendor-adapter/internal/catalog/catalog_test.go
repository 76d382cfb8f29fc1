package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKeysOf(t *testing.T) {
	keys, err := keysOf([]json.RawMessage{
		json.RawMessage(`{"station_id":"110","vendor_id":"chargemod","name":"x"}`),
		json.RawMessage(`{"station_id":"111","vendor_id":"chargemod"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, []recordKey{{"110", "chargemod"}, {"111", "chargemod"}}, keys)
}

func TestKeysOfRejectsIncompleteRecord(t *testing.T) {
	_, err := keysOf([]json.RawMessage{
		json.RawMessage(`{"station_id":"110","vendor_id":"chargemod"}`),
		json.RawMessage(`{"station_id":"111"}`),
	})
	assert.True(t, errors.Is(err, ErrInvalidRecord))

	_, err = keysOf([]json.RawMessage{json.RawMessage(`[]`)})
	assert.Error(t, err)
}

func TestRedisKeys(t *testing.T) {
	assert.Equal(t, "stations:chargemod:110", StationKey("chargemod", "110"))
	assert.Equal(t, "stations:chargemod:index", VendorIndexKey("chargemod"))
}

type failingBeginner struct{ called bool }

func (f *failingBeginner) Begin(context.Context) (pgx.Tx, error) {
	f.called = true
	return nil, errors.New("connection refused")
}

func TestPostgresWriterValidatesBeforeBegin(t *testing.T) {
	db := &failingBeginner{}
	w := NewPostgresWriter(db, zap.NewNop())

	err := w.WriteStations(context.Background(), []json.RawMessage{json.RawMessage(`{"vendor_id":"chargemod"}`)})
	assert.True(t, errors.Is(err, ErrInvalidRecord))
	assert.False(t, db.called)

	err = w.WriteStations(context.Background(), []json.RawMessage{json.RawMessage(`{"station_id":"1","vendor_id":"chargemod"}`)})
	require.Error(t, err)
	assert.True(t, db.called)
	assert.Contains(t, err.Error(), "catalog: begin")
}
