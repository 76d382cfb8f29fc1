// Package classifier folds a raw vendor reply into the canonical envelope.
package classifier

import (
	"encoding/json"

	"vendoradapter/backend/services/vendor-adapter/internal/clients"
	"vendoradapter/backend/services/vendor-adapter/internal/models"
)

// Messages used when the vendor did not supply one.
const (
	MessageNoResponse  = "No response from station"
	MessageMissingData = "Vendor response missing data"
)

// Classify maps a vendor reply to exactly one of four envelopes:
// no reply, reply without data, successful reply, failed reply.
func Classify(reply *clients.VendorReply) models.Envelope {
	if reply == nil {
		return models.Envelope{StatusCode: models.StatusInternalError, Message: MessageNoResponse, Data: models.EmptyData}
	}

	message := stringField(reply, "message")
	data, ok := reply.Field("data")
	if !ok {
		if message == "" {
			message = MessageMissingData
		}
		return models.Envelope{StatusCode: models.StatusInternalError, Message: message, Data: models.EmptyData}
	}

	if boolField(reply, "success") {
		return models.Envelope{StatusCode: models.StatusOK, Message: message, Data: data}
	}
	return models.Envelope{StatusCode: models.StatusServiceUnavailable, Message: message, Data: data}
}

func stringField(reply *clients.VendorReply, name string) string {
	raw, ok := reply.Field(name)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// boolField is false unless the field is the JSON literal true.
func boolField(reply *clients.VendorReply, name string) bool {
	raw, ok := reply.Field(name)
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false
	}
	return b
}
