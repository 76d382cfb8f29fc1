package models

import (
	"encoding/json"
	"strings"
)

// ChargerStatus is the canonical availability of a charger point or connector.
type ChargerStatus string

const (
	ChargerAvailable ChargerStatus = "AVAILABLE"
	ChargerBusy      ChargerStatus = "BUSY"
)

// ChargerStatusFromCode maps a vendor numeric status: 1 is available, anything else busy.
func ChargerStatusFromCode(code int) ChargerStatus {
	if code == 1 {
		return ChargerAvailable
	}
	return ChargerBusy
}

// StationStatus is the closed set of station health states.
type StationStatus string

const (
	StationHealthy StationStatus = "healthy"
	StationFaulty  StationStatus = "faulty"
	StationUnknown StationStatus = "unknown"
)

// ParseStationStatus folds a vendor device status string into StationStatus.
// Unrecognized values become StationUnknown.
func ParseStationStatus(raw string) StationStatus {
	switch s := StationStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case StationHealthy, StationFaulty:
		return s
	default:
		return StationUnknown
	}
}

// StationTime is the daily operating window of a station.
type StationTime struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Rating is the zeroed rating block the catalog expects on new stations.
type Rating struct {
	AvgRating float64 `json:"avg_rating"`
	Five      int     `json:"5"`
	Four      int     `json:"4"`
	Three     int     `json:"3"`
	Two       int     `json:"2"`
	One       int     `json:"1"`
}

// CanonicalConnector is a single plug on a charger point.
type CanonicalConnector struct {
	ConnectorPointID int64         `json:"connector_point_id"`
	RelayNumber      int64         `json:"relay_number"`
	Status           ChargerStatus `json:"status"`
	Tariff           int           `json:"tariff"`
}

// CanonicalChargerPoint groups all connectors reported under one charger point id.
type CanonicalChargerPoint struct {
	ChargerPointID     int64                `json:"charger_point_id"`
	ChargerPointType   string               `json:"charger_point_type"`
	PowerCapacity      string               `json:"power_capacity"`
	ChargerPointStatus ChargerStatus        `json:"charger_point_status"`
	Connectors         []CanonicalConnector `json:"connectors"`
}

// ExpandedChargerPoint is one flat row per vendor charger entry.
type ExpandedChargerPoint struct {
	ChargerPointID     int64         `json:"charger_point_id"`
	ChargerPointType   string        `json:"charger_point_type"`
	PowerCapacity      string        `json:"power_capacity"`
	ChargerPointStatus ChargerStatus `json:"charger_point_status"`
	ConnectorPointID   int64         `json:"connector_point_id"`
	RelayNumber        int64         `json:"relay_number"`
	ConnectorStatus    ChargerStatus `json:"connector_status"`
	Tariff             int           `json:"tariff"`
}

// CanonicalStation is the vendor-agnostic record handed to the catalog.
type CanonicalStation struct {
	StationID                string                  `json:"station_id"`
	VendorID                 string                  `json:"vendor_id"`
	Name                     string                  `json:"name"`
	AddressLine              string                  `json:"address_line"`
	Town                     string                  `json:"town"`
	State                    string                  `json:"state"`
	PostalCode               string                  `json:"postal_code"`
	Latitude                 json.Number             `json:"latitude"`
	Longitude                json.Number             `json:"longitude"`
	Country                  string                  `json:"country"`
	QRCode                   *string                 `json:"qr_code"`
	TotalConnectorsAvailable int                     `json:"total_connectors_available"`
	StationStatus            StationStatus           `json:"station_status"`
	StationTime              StationTime             `json:"station_time"`
	DistanceUnit             *int                    `json:"distance_unit"`
	IsOCPP                   bool                    `json:"is_ocpp"`
	GeoAddress               []json.Number           `json:"geo_address"`
	Image                    *string                 `json:"image"`
	UID                      *string                 `json:"uid"`
	Rating                   Rating                  `json:"rating"`
	TotalChargerData         []CanonicalChargerPoint `json:"total_charger_data"`
	ExpandedTotalChargerData []ExpandedChargerPoint  `json:"expanded_total_charger_data"`
}
