package models

import (
	"encoding/json"
	"strings"
)

// Vendor identifies a supported charging hardware provider.
type Vendor string

// Supported vendors.
const (
	VendorChargeMod Vendor = "chargemod"
)

// Action is the abstract operation requested of a vendor.
type Action string

// Supported actions.
const (
	ActionLocation    Action = "location"
	ActionStartCharge Action = "start_charge"
	ActionStopCharge  Action = "stop_charge"
	ActionActivities  Action = "activities"
)

// ParseVendor matches raw case-insensitively against known vendors.
func ParseVendor(raw string) (Vendor, bool) {
	switch v := Vendor(strings.ToLower(strings.TrimSpace(raw))); v {
	case VendorChargeMod:
		return v, true
	default:
		return "", false
	}
}

// ParseAction matches raw case-insensitively against known actions.
func ParseAction(raw string) (Action, bool) {
	switch a := Action(strings.ToLower(strings.TrimSpace(raw))); a {
	case ActionLocation, ActionStartCharge, ActionStopCharge, ActionActivities:
		return a, true
	default:
		return "", false
	}
}

// ActionRequest is the inbound, vendor-agnostic request.
// Params and Header stay loosely typed until a vendor schema validates them.
type ActionRequest struct {
	VendorID string                     `json:"vendor_id" validate:"required"`
	Action   string                     `json:"action" validate:"required"`
	BaseURL  string                     `json:"base_url" validate:"required"`
	Params   map[string]json.RawMessage `json:"params" validate:"required"`
	Header   map[string]json.RawMessage `json:"header" validate:"required"`
	Write    bool                       `json:"write"`
}
