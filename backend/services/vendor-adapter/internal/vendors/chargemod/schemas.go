package chargemod

import (
	"net/http"

	"vendoradapter/backend/services/vendor-adapter/internal/models"
)

// Fixed path segments of the chargemod API.
const (
	VendorSegment      = "chargemod"
	LocationVerb       = "stations"
	StartChargeVerb    = "start-charging"
	StopChargeVerb     = "stop-charging"
	ChargeActivityVerb = "charging-activities"
)

// route is the fixed verb and method for one action.
type route struct {
	verb   string
	method string
}

var routes = map[models.Action]route{
	models.ActionLocation:    {verb: LocationVerb, method: http.MethodGet},
	models.ActionStartCharge: {verb: StartChargeVerb, method: http.MethodPost},
	models.ActionStopCharge:  {verb: StopChargeVerb, method: http.MethodPost},
	models.ActionActivities:  {verb: ChargeActivityVerb, method: http.MethodGet},
}

// Header carries the chargemod credentials. Every field is mandatory.
type Header struct {
	Accept        string `json:"Accept" validate:"required"`
	Key           string `json:"key" validate:"required"`
	Authorization string `json:"Authorization" validate:"required"`
}

// HTTPHeader renders h for the outgoing request.
func (h Header) HTTPHeader() http.Header {
	out := http.Header{}
	out.Set("Accept", h.Accept)
	out.Set("key", h.Key)
	out.Set("Authorization", h.Authorization)
	return out
}

// descriptive holds the optional free-text fields every charge action accepts.
type descriptive struct {
	Name         string `json:"name"`
	Model        string `json:"model"`
	Rate         string `json:"rate"`
	Image        string `json:"image"`
	Timings      string `json:"timings"`
	Sockets      string `json:"sockets"`
	VehicleTypes string `json:"vehicle_types"`
	Address      string `json:"address"`
}

// LocationParams filters the station listing.
type LocationParams struct {
	Q            string `json:"q" validate:"required"`
	FilterStatus string `json:"filter_status"`
	Name         string `json:"name"`
	Model        string `json:"model"`
	Rate         string `json:"rate"`
	Image        string `json:"image"`
	Timings      string `json:"timings"`
	Sockets      string `json:"sockets"`
	VehicleTypes string `json:"vehicle_types"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Zip          string `json:"zip"`
	State        string `json:"state"`
	DeviceStatus string `json:"device_status" validate:"omitempty,oneof=Healthy Faulty"`
	StationID    string `json:"station_id"`
}

func defaultLocationParams() LocationParams {
	return LocationParams{FilterStatus: "Available"}
}

// StartChargeParams starts a session on one relay of a station.
type StartChargeParams struct {
	StationID              string `json:"station_id" validate:"required"`
	ReferenceTransactionID string `json:"reference_transaction_id" validate:"required"`
	UserID                 string `json:"user_id" validate:"required"`
	RelaySwitchNumber      string `json:"relay_switch_number" validate:"required"`
	MaxEnergyConsumption   string `json:"max_energy_consumption"`
	descriptive
}

// StopChargeParams stops a running session.
type StopChargeParams struct {
	ReferenceTransactionID string `json:"reference_transaction_id" validate:"required"`
	ID                     string `json:"id"`
	descriptive
}

// ActivityParams optionally narrows the activity history to one id.
type ActivityParams struct {
	ID string `json:"id"`
}
