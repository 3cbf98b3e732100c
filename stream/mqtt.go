package stream

import (
	"errors"
	"fmt"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

var errPublishTimeout = errors.New("publish timed out")

// MqttSender publishes each universe to "<topic>/<index>".
type MqttSender struct {
	client  mqtt.Client
	topic   string
	qos     byte
	timeout time.Duration
}

// NewMqttSender wraps an already connected client.
func NewMqttSender(client mqtt.Client, cfg MqttConfig) *MqttSender {
	s := new(MqttSender)
	s.client = client
	s.topic = cfg.Topic
	s.qos = cfg.QoS
	s.timeout = cfg.Timeout
	if s.timeout <= 0 {
		s.timeout = 5 * time.Second
	}
	return s
}

// DialMqtt connects to the configured broker using ClientID as the source
// identity.
func DialMqtt(cfg MqttConfig) (*MqttSender, error) {
	options := mqtt.NewClientOptions().
		AddBroker(cfg.URL).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(func(mqtt.Client) {
			log.Info().Str("broker", cfg.URL).Str("client_id", cfg.ClientID).Msg("mqtt connected")
		})
	client := mqtt.NewClient(options)

	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		client.Disconnect(0)
		return nil, fmt.Errorf("connect %s: timed out", cfg.URL)
	}
	if err := token.Error(); err != nil {
		client.Disconnect(0)
		return nil, fmt.Errorf("connect %s: %w", cfg.URL, err)
	}
	return NewMqttSender(client, cfg), nil
}

// Send publishes payload to the universe topic.
func (s *MqttSender) Send(universe uint16, payload []byte) error {
	return s.publish("send", universe, false, payload)
}

// Terminate publishes an empty retained message so late subscribers see
// the universe as blank.
func (s *MqttSender) Terminate(universe uint16) error {
	return s.publish("terminate", universe, true, []byte{})
}

func (s *MqttSender) publish(op string, universe uint16, retained bool, payload []byte) error {
	// The packer reuses payload on the next frame; paho may still be writing it.
	data := make([]byte, len(payload))
	copy(data, payload)
	token := s.client.Publish(fmt.Sprintf("%s/%d", s.topic, universe), s.qos, retained, data)
	if !token.WaitTimeout(s.timeout) {
		return &SendError{Universe: universe, Op: op, Err: errPublishTimeout}
	}
	if err := token.Error(); err != nil {
		return &SendError{Universe: universe, Op: op, Err: err}
	}
	return nil
}

// Close disconnects from the broker.
func (s *MqttSender) Close() error {
	s.client.Disconnect(250)
	return nil
}
