package events

import (
	"context"
	"encoding/json"
	"time"

	"cargo-dispatch/internal/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// StatusChanged is published after a shipment status transition commits.
type StatusChanged struct {
	ShipmentID string    `json:"shipment_id"`
	DriverID   string    `json:"driver_id,omitempty"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Timestamp  time.Time `json:"timestamp"`
}

// Writer abstracts the kafka writer so tests can capture messages.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes shipment events to a Kafka topic, keyed by shipment ID
// so events for the same shipment land on the same partition.
type Producer struct {
	writer Writer
}

// NewProducer connects a producer to the given broker and topic.
func NewProducer(brokerURL, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokerURL),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// NewProducerWithWriter builds a producer over an existing writer.
func NewProducerWithWriter(w Writer) *Producer {
	return &Producer{writer: w}
}

// PublishStatusChanged sends one status event.
func (p *Producer) PublishStatusChanged(ctx context.Context, evt StatusChanged) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(evt.ShipmentID),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Warn("Failed to publish status event",
			zap.String("shipment_id", evt.ShipmentID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Close shuts down the underlying writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
