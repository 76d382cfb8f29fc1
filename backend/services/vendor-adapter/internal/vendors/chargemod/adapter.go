package chargemod

import (
	"encoding/json"
	"fmt"
	"net/url"

	"vendoradapter/backend/services/vendor-adapter/internal/endpoint"
	"vendoradapter/backend/services/vendor-adapter/internal/models"
	"vendoradapter/backend/services/vendor-adapter/internal/schema"
)

// Adapter translates abstract actions into chargemod HTTP calls.
type Adapter struct{}

// NewAdapter returns the chargemod adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Vendor reports the vendor handled by the adapter.
func (a *Adapter) Vendor() models.Vendor {
	return models.VendorChargeMod
}

// Prepare validates req for action and builds the vendor request.
func (a *Adapter) Prepare(action models.Action, req models.ActionRequest) (endpoint.Request, error) {
	var header Header
	if err := schema.Decode("header", req.Header, &header); err != nil {
		return endpoint.Request{}, err
	}

	params, extra, err := decodeParams(action, req.Params)
	if err != nil {
		return endpoint.Request{}, err
	}

	r := routes[action]
	ep, err := endpoint.Build(req.BaseURL, r.method, VendorSegment, r.verb, extra)
	if err != nil {
		return endpoint.Request{}, err
	}
	return endpoint.Request{Endpoint: ep, Params: params, Header: header.HTTPHeader()}, nil
}

// decodeParams returns the encoded params and the optional extra path segment.
func decodeParams(action models.Action, raw map[string]json.RawMessage) (url.Values, string, error) {
	switch action {
	case models.ActionLocation:
		p := defaultLocationParams()
		if err := schema.Decode("params", raw, &p); err != nil {
			return nil, "", err
		}
		return schema.Values(&p), "", nil
	case models.ActionStartCharge:
		var p StartChargeParams
		if err := schema.Decode("params", raw, &p); err != nil {
			return nil, "", err
		}
		return withDescriptive(schema.Values(&p), p.descriptive), "", nil
	case models.ActionStopCharge:
		var p StopChargeParams
		if err := schema.Decode("params", raw, &p); err != nil {
			return nil, "", err
		}
		return withDescriptive(schema.Values(&p), p.descriptive), "", nil
	case models.ActionActivities:
		var p ActivityParams
		if err := schema.Decode("params", raw, &p); err != nil {
			return nil, "", err
		}
		if p.ID != "" && !endpoint.ValidSegment(p.ID) {
			return nil, "", schema.Invalid("params", "id", "segment")
		}
		return url.Values{}, p.ID, nil
	default:
		return nil, "", fmt.Errorf("chargemod %q: %w", action, models.ErrUnmatchedAction)
	}
}

func withDescriptive(v url.Values, d descriptive) url.Values {
	for key, values := range schema.Values(&d) {
		v[key] = values
	}
	return v
}
