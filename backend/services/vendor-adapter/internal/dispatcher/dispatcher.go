package dispatcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vendoradapter/backend/services/vendor-adapter/internal/catalog"
	"vendoradapter/backend/services/vendor-adapter/internal/classifier"
	"vendoradapter/backend/services/vendor-adapter/internal/clients"
	"vendoradapter/backend/services/vendor-adapter/internal/endpoint"
	"vendoradapter/backend/services/vendor-adapter/internal/models"
	"vendoradapter/backend/services/vendor-adapter/internal/schema"
)

var (
	// ErrUnmatchedAction is returned when no adapter handles the vendor/action pair.
	ErrUnmatchedAction = models.ErrUnmatchedAction
	// ErrNormalization aborts a location write when any station cannot be normalized.
	ErrNormalization = errors.New("dispatcher: station normalization failed")
	// ErrCatalogWrite is returned when the catalog rejects the batch.
	ErrCatalogWrite = errors.New("dispatcher: catalog write failed")
)

// VendorAdapter translates abstract requests for one vendor.
type VendorAdapter interface {
	Vendor() models.Vendor
	Prepare(action models.Action, req models.ActionRequest) (endpoint.Request, error)
	NormalizeStation(raw json.RawMessage, vendorID string) (models.CanonicalStation, error)
}

// Caller executes one vendor request; nil means no usable response.
type Caller interface {
	Call(ctx context.Context, req endpoint.Request) *clients.VendorReply
}

// Dispatcher routes action requests through validation, the vendor call,
// classification and, for location writes, normalization and the catalog.
type Dispatcher struct {
	adapters map[models.Vendor]VendorAdapter
	caller   Caller
	catalog  catalog.Writer
	logger   *zap.Logger
}

// New builds a Dispatcher with no vendors registered.
func New(caller Caller, writer catalog.Writer, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		adapters: make(map[models.Vendor]VendorAdapter),
		caller:   caller,
		catalog:  writer,
		logger:   logger,
	}
}

// Register attaches adapter to its vendor.
func (d *Dispatcher) Register(adapter VendorAdapter) {
	d.adapters[adapter.Vendor()] = adapter
}

// Vendors lists the registered vendor ids in sorted order.
func (d *Dispatcher) Vendors() []string {
	out := make([]string, 0, len(d.adapters))
	for v := range d.adapters {
		out = append(out, string(v))
	}
	sort.Strings(out)
	return out
}

// Dispatch runs one action request to completion. Errors are returned for
// invalid requests, unmatched vendor/action pairs and failed location writes;
// every vendor outcome is reported through the envelope.
func (d *Dispatcher) Dispatch(ctx context.Context, req models.ActionRequest) (models.Envelope, error) {
	log := d.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("vendor_id", req.VendorID),
		zap.String("action", req.Action),
	)

	if err := schema.Struct("request", req); err != nil {
		log.Warn("action request rejected", zap.Error(err))
		return models.Envelope{}, err
	}

	vendor, vendorOK := models.ParseVendor(req.VendorID)
	action, actionOK := models.ParseAction(req.Action)
	adapter, registered := d.adapters[vendor]
	if !vendorOK || !actionOK || !registered {
		log.Warn("no match for action request",
			zap.String("base_url", req.BaseURL),
			zap.Strings("params", paramNames(req.Params)),
			zap.Bool("write", req.Write),
		)
		return models.Envelope{}, fmt.Errorf("%w: %s/%s", ErrUnmatchedAction, req.VendorID, req.Action)
	}

	prepared, err := adapter.Prepare(action, req)
	if err != nil {
		log.Warn("action request rejected", zap.Error(err))
		return models.Envelope{}, err
	}

	env := classifier.Classify(d.caller.Call(ctx, prepared))
	log.Info("vendor call classified", zap.Int("status_code", env.StatusCode), zap.String("message", env.Message))

	if action != models.ActionLocation || !req.Write || !env.OK() {
		return env, nil
	}
	return d.writeStations(ctx, log, adapter, vendor, env)
}

// writeStations normalizes every station in env and writes them as one batch.
// Any failure aborts before the catalog is touched.
func (d *Dispatcher) writeStations(ctx context.Context, log *zap.Logger, adapter VendorAdapter, vendor models.Vendor, env models.Envelope) (models.Envelope, error) {
	var stations []json.RawMessage
	if trimmed := bytes.TrimSpace(env.Data); len(trimmed) == 0 || trimmed[0] != '[' {
		log.Error("location data is not a list")
		return models.Envelope{}, fmt.Errorf("%w: data is not a list", ErrNormalization)
	}
	if err := json.Unmarshal(env.Data, &stations); err != nil {
		log.Error("location data is not a list", zap.Error(err))
		return models.Envelope{}, fmt.Errorf("%w: data is not a list: %v", ErrNormalization, err)
	}

	batch := make([]json.RawMessage, 0, len(stations))
	for i, raw := range stations {
		station, err := adapter.NormalizeStation(raw, string(vendor))
		if err != nil {
			log.Error("station normalization failed", zap.Int("index", i), zap.Error(err))
			return models.Envelope{}, fmt.Errorf("%w: station %d: %v", ErrNormalization, i, err)
		}
		encoded, err := json.Marshal(station)
		if err != nil {
			return models.Envelope{}, fmt.Errorf("%w: station %d: %v", ErrNormalization, i, err)
		}
		batch = append(batch, encoded)
	}

	if d.catalog == nil {
		return models.Envelope{}, fmt.Errorf("%w: no catalog configured", ErrCatalogWrite)
	}
	if err := d.catalog.WriteStations(ctx, batch); err != nil {
		log.Error("catalog write failed", zap.Int("stations", len(batch)), zap.Error(err))
		return models.Envelope{}, fmt.Errorf("%w: %v", ErrCatalogWrite, err)
	}
	log.Info("stations written to catalog", zap.Int("stations", len(batch)))

	data, err := json.Marshal(batch)
	if err != nil {
		return models.Envelope{}, err
	}
	return models.Envelope{StatusCode: models.StatusOK, Message: env.Message, Data: data}, nil
}

func paramNames(params map[string]json.RawMessage) []string {
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
