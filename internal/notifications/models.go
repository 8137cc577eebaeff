package notifications

import (
	"context"
	"encoding/json"
	"time"
)

// Lifecycle event types published to the requests topic.
const (
	TypeRequestSubmitted = "seat_request.submitted"
	TypeRequestDecided   = "seat_request.decided"
)

// RequestLifecycleMessage is the wire format for seat request lifecycle
// events. Consumers key notification delivery off Type and Status.
type RequestLifecycleMessage struct {
	Type         string    `json:"type"`
	RequestID    string    `json:"requestId"`
	EventID      string    `json:"eventId"`
	Status       string    `json:"status"`
	SeatIDs      []string  `json:"seatIds"`
	CustomerName string    `json:"customerName"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// ToJSON serializes the message for the Kafka payload.
func (m *RequestLifecycleMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON deserializes a Kafka payload into a lifecycle message.
func FromJSON(data []byte) (*RequestLifecycleMessage, error) {
	var msg RequestLifecycleMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// PartitionKey routes all messages for one event to the same partition so
// consumers see a request's lifecycle in order.
func (m *RequestLifecycleMessage) PartitionKey() string {
	return m.EventID
}

// Producer publishes request lifecycle events.
type Producer interface {
	PublishRequestLifecycle(ctx context.Context, msg RequestLifecycleMessage) error
	Close() error
}
