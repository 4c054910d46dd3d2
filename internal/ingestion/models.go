package ingestion

import (
	"encoding/json"
	"time"
)

// StatusUpdateMessage is a driver status report arriving from the mobile
// app over MQTT. It carries the same payload as the HTTP status update
// endpoint plus the identities that HTTP derives from the token and path.
type StatusUpdateMessage struct {
	ShipmentID string    `json:"shipment_id"`
	DriverID   string    `json:"driver_id"`
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`

	Note     string  `json:"note"`
	PhotoURL *string `json:"photo_url"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	AccuracyM *int     `json:"location_accuracy_m"`
}

// ParseStatusUpdate parses a JSON payload into a StatusUpdateMessage.
func ParseStatusUpdate(payload []byte) (*StatusUpdateMessage, error) {
	var msg StatusUpdateMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, err
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	return &msg, nil
}
