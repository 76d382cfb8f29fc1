package chargemod

import (
	"encoding/json"
	"errors"
	"fmt"

	"vendoradapter/backend/services/vendor-adapter/internal/models"
	"vendoradapter/backend/services/vendor-adapter/internal/schema"
)

// Tariff is the flat tariff chargemod connectors are listed with.
const Tariff = 125

// ErrInvalidStation marks a raw station that cannot be normalized.
var ErrInvalidStation = errors.New("chargemod: invalid station")

var defaultStationTime = models.StationTime{StartTime: "12:00 AM", EndTime: "11:59 PM"}

// NormalizeStation converts one raw chargemod station into the canonical record.
func (a *Adapter) NormalizeStation(raw json.RawMessage, vendorID string) (models.CanonicalStation, error) {
	return NormalizeStation(raw, vendorID)
}

// NormalizeStation converts one raw chargemod station into the canonical record.
// Any missing required field rejects the whole station.
func NormalizeStation(raw json.RawMessage, vendorID string) (models.CanonicalStation, error) {
	var st RawStation
	if err := json.Unmarshal(raw, &st); err != nil {
		return models.CanonicalStation{}, fmt.Errorf("%w: decode: %v", ErrInvalidStation, err)
	}
	if err := schema.Struct("station", &st); err != nil {
		return models.CanonicalStation{}, fmt.Errorf("%w: %v", ErrInvalidStation, err)
	}

	grouped := groupChargerPoints(st.ChargingPins)
	return models.CanonicalStation{
		StationID:                string(st.ID),
		VendorID:                 vendorID,
		Name:                     *st.Name,
		AddressLine:              *st.Street1,
		Town:                     *st.City,
		State:                    *st.State,
		PostalCode:               string(*st.Zip),
		Latitude:                 st.Latitude,
		Longitude:                st.Longitude,
		Country:                  *st.Country,
		QRCode:                   st.QRCode,
		TotalConnectorsAvailable: len(grouped),
		StationStatus:            models.ParseStationStatus(*st.DeviceStatus),
		StationTime:              defaultStationTime,
		GeoAddress:               []json.Number{st.Latitude, st.Longitude},
		Image:                    st.Image,
		TotalChargerData:         grouped,
		ExpandedTotalChargerData: expandChargerPoints(st.ChargingPins),
	}, nil
}

// groupChargerPoints merges entries sharing an id into one charger point,
// keeping connectors in encounter order.
func groupChargerPoints(pins []RawChargerPoint) []models.CanonicalChargerPoint {
	out := make([]models.CanonicalChargerPoint, 0, len(pins))
	index := make(map[int64]int, len(pins))
	for _, pin := range pins {
		conn := connectorOf(pin)
		if i, ok := index[*pin.ID]; ok {
			out[i].Connectors = append(out[i].Connectors, conn)
			continue
		}
		index[*pin.ID] = len(out)
		out = append(out, models.CanonicalChargerPoint{
			ChargerPointID:     *pin.ID,
			ChargerPointType:   *pin.Type,
			PowerCapacity:      *pin.Battery,
			ChargerPointStatus: models.ChargerStatusFromCode(int(*pin.Status)),
			Connectors:         []models.CanonicalConnector{conn},
		})
	}
	return out
}

func expandChargerPoints(pins []RawChargerPoint) []models.ExpandedChargerPoint {
	out := make([]models.ExpandedChargerPoint, 0, len(pins))
	for _, pin := range pins {
		out = append(out, models.ExpandedChargerPoint{
			ChargerPointID:     *pin.ID,
			ChargerPointType:   *pin.Type,
			PowerCapacity:      *pin.Battery,
			ChargerPointStatus: models.ChargerStatusFromCode(int(*pin.Status)),
			ConnectorPointID:   *pin.Pivot.ChargingPinID,
			RelayNumber:        *pin.Pivot.RelaySwitchNumber,
			ConnectorStatus:    models.ChargerStatusFromCode(int(*pin.Pivot.Status)),
			Tariff:             Tariff,
		})
	}
	return out
}

func connectorOf(pin RawChargerPoint) models.CanonicalConnector {
	return models.CanonicalConnector{
		ConnectorPointID: *pin.Pivot.ChargingPinID,
		RelayNumber:      *pin.Pivot.RelaySwitchNumber,
		Status:           models.ChargerStatusFromCode(int(*pin.Pivot.Status)),
		Tariff:           Tariff,
	}
}
