package ingest

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/events"

	"vendoradapter/backend/services/vendor-adapter/internal/models"
	"vendoradapter/backend/services/vendor-adapter/internal/schema"
)

// ErrMalformedEvent is returned when a payload is neither an action request nor an SNS event carrying one.
var ErrMalformedEvent = errors.New("ingest: malformed event")

// Decode extracts the action request from raw. Two shapes are accepted: the
// request object itself, or an SNS notification whose first record carries
// the request as its message string.
func Decode(raw []byte) (models.ActionRequest, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return models.ActionRequest{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	if _, direct := probe["vendor_id"]; direct {
		return decodeRequest(raw)
	}
	if _, ok := probe["Records"]; !ok {
		return decodeRequest(raw)
	}

	var event events.SNSEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return models.ActionRequest{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if len(event.Records) == 0 {
		return models.ActionRequest{}, fmt.Errorf("%w: no records", ErrMalformedEvent)
	}
	return decodeRequest([]byte(event.Records[0].SNS.Message))
}

func decodeRequest(raw []byte) (models.ActionRequest, error) {
	var req models.ActionRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return models.ActionRequest{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if err := schema.Struct("request", req); err != nil {
		return models.ActionRequest{}, err
	}
	return req, nil
}
