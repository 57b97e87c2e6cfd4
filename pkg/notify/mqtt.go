package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	mqttConnectTimeout = 10 * time.Second
	mqttPublishTimeout = 5 * time.Second
)

// mqttSink publishes notices to an MQTT topic for push-style consumers.
type mqttSink struct {
	id     string
	topic  string
	qos    byte
	client mqtt.Client
	log    Logger
}

func newMQTTSink(_ context.Context, cfg SinkConfig, log Logger) (Sink, error) {
	if cfg.MQTT == nil {
		return nil, fmt.Errorf("notifier %q missing mqtt configuration", cfg.ID)
	}

	clientID := cfg.MQTT.ClientID
	if clientID == "" {
		clientID = "lumeo-notify-" + cfg.ID
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTT.BrokerURL).
		SetClientID(clientID).
		SetConnectTimeout(mqttConnectTimeout).
		SetAutoReconnect(true)
	if cfg.MQTT.Username != "" {
		opts.SetUsername(cfg.MQTT.Username)
		opts.SetPassword(cfg.MQTT.Password)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		return nil, fmt.Errorf("mqtt connect to %q timed out", cfg.MQTT.BrokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}

	return &mqttSink{
		id:     cfg.ID,
		topic:  cfg.MQTT.Topic,
		qos:    byte(cfg.MQTT.QoS),
		client: client,
		log:    ensureLogger(log),
	}, nil
}

func (s *mqttSink) ID() string   { return s.id }
func (s *mqttSink) Type() string { return TypeMQTT }

// Send publishes the notice to the configured topic.
func (s *mqttSink) Send(_ context.Context, n Notice) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}

	token := s.client.Publish(s.topic, s.qos, false, payload)
	if !token.WaitTimeout(mqttPublishTimeout) {
		return fmt.Errorf("mqtt publish to %q timed out", s.topic)
	}
	if err := token.Error(); err != nil {
		s.log.ErrorObj("mqtt sink publish failed", "sink_mqtt_error", map[string]any{
			"sink_id": s.id,
			"error":   err.Error(),
		})
		return fmt.Errorf("publish to mqtt: %w", err)
	}
	return nil
}
