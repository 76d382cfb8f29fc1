package chargemod

import (
	"bytes"
	"encoding/json"
)

// flexString accepts either a JSON string or a JSON number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// RawStation is one element of the chargemod location listing. Required
// fields must be present and non-null; empty strings are accepted.
type RawStation struct {
	ID           flexString        `json:"id" validate:"required"`
	Name         *string           `json:"name" validate:"required"`
	Street1      *string           `json:"street1" validate:"required"`
	City         *string           `json:"city" validate:"required"`
	State        *string           `json:"state" validate:"required"`
	Zip          *flexString       `json:"zip" validate:"required"`
	Latitude     json.Number       `json:"latitude" validate:"required"`
	Longitude    json.Number       `json:"longitude" validate:"required"`
	Country      *string           `json:"country" validate:"required"`
	QRCode       *string           `json:"qr_code"`
	Image        *string           `json:"image"`
	DeviceStatus *string           `json:"device_status" validate:"required"`
	ChargingPins []RawChargerPoint `json:"charging_pins" validate:"required,dive"`
}

// RawChargerPoint is one charger point entry; the same id repeats once per pivot.
type RawChargerPoint struct {
	ID      *int64      `json:"id" validate:"required"`
	Type    *string     `json:"type" validate:"required"`
	Battery *string     `json:"battery" validate:"required"`
	Status  *statusCode `json:"status" validate:"required"`
	Pivot   *RawPivot   `json:"pivot" validate:"required"`
}

// RawPivot is the connector a charger point entry describes.
type RawPivot struct {
	ChargingPinID     *int64      `json:"charging_pin_id" validate:"required"`
	RelaySwitchNumber *int64      `json:"relay_switch_number" validate:"required"`
	Status            *statusCode `json:"status" validate:"required"`
}

// statusCode is a vendor availability code. Only the number 1 means
// available; any other value, including non-numeric ones, decodes to a
// code that is not.
type statusCode int

const unknownStatusCode statusCode = -1

func (c *statusCode) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	var n json.Number
	if len(b) == 0 || b[0] == '"' {
		*c = unknownStatusCode
		return nil
	}
	if err := json.Unmarshal(b, &n); err != nil {
		*c = unknownStatusCode
		return nil
	}
	f, err := n.Float64()
	if err != nil || f != float64(int64(f)) {
		*c = unknownStatusCode
		return nil
	}
	*c = statusCode(int64(f))
	return nil
}
