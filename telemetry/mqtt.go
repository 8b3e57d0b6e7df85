package telemetry

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// MQTTPublisher publishes snapshots to an MQTT broker.
type MQTTPublisher struct {
	client paho.Client
	topic  string
	logger *zap.Logger
}

// NewMQTTPublisher creates a publisher connected to the given broker.
// An empty topic means Topic; a nil logger means no logging.
func NewMQTTPublisher(broker, clientID, topic string, logger *zap.Logger) (*MQTTPublisher, error) {
	if topic == "" {
		topic = Topic
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(paho.Client) {
			logger.Info("mqtt connected", zap.String("broker", broker))
		}).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			logger.Warn("mqtt connection lost", zap.Error(err))
		})

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return &MQTTPublisher{
		client: client,
		topic:  topic,
		logger: logger,
	}, nil
}

// Publish sends a snapshot to the MQTT broker.
func (p *MQTTPublisher) Publish(s Snapshot) error {
	payload, err := FormatPayload(s)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	// QoS 0 (at-most-once), not retained: snapshots are periodic, the
	// next one supersedes a lost one.
	token := p.client.Publish(p.topic, 0, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	return nil
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}
