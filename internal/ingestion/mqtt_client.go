package ingestion

import (
	"errors"
	"fmt"
	"sync"

	"cargo-dispatch/internal/logger"
	pkgmqtt "cargo-dispatch/pkg/mqtt"

	"go.uber.org/zap"
)

// MQTTIngestionConfig describes the topic and MQTT connection parameters.
type MQTTIngestionConfig struct {
	ClientConfig *pkgmqtt.Config
	StatusTopic  string
	QoS          byte
}

// MQTTIngestionClient wires MQTT messages into the ingestion processor.
type MQTTIngestionClient struct {
	cfg       *MQTTIngestionConfig
	client    *pkgmqtt.Client
	processor *Processor

	mu      sync.Mutex
	started bool
}

// NewMQTTIngestionClient builds a new MQTT client for ingestion.
func NewMQTTIngestionClient(cfg *MQTTIngestionConfig, processor *Processor) (*MQTTIngestionClient, error) {
	if cfg == nil || cfg.ClientConfig == nil {
		return nil, errors.New("mqtt ingestion config is not configured")
	}
	if processor == nil {
		return nil, errors.New("processor is required")
	}

	client := pkgmqtt.NewClient(cfg.ClientConfig)
	return &MQTTIngestionClient{
		cfg:       cfg,
		client:    client,
		processor: processor,
	}, nil
}

// Start establishes the MQTT connection and subscribes to the status topic.
func (c *MQTTIngestionClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}

	if err := c.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	if err := c.client.Subscribe(c.cfg.StatusTopic, c.cfg.QoS, c.handleStatusMessage); err != nil {
		c.client.Disconnect()
		return err
	}

	c.started = true
	return nil
}

// Stop unsubscribes and disconnects.
func (c *MQTTIngestionClient) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return
	}

	if err := c.client.Unsubscribe(c.cfg.StatusTopic); err != nil {
		logger.Warn("Failed to unsubscribe from status topic", zap.Error(err))
	}
	c.client.Disconnect()
	c.started = false
}

func (c *MQTTIngestionClient) handleStatusMessage(topic string, payload []byte) {
	msg, err := ParseStatusUpdate(payload)
	if err != nil {
		logger.Warn("Malformed status update payload",
			zap.String("topic", topic),
			zap.Error(err),
		)
		return
	}
	c.processor.Enqueue(msg)
}
