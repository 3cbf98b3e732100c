package stream

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// SendPolicy decides what the Streamer does when a universe fails to send.
type SendPolicy string

const (
	// AbortOnError stops the run and returns the SendError.
	AbortOnError SendPolicy = "abort"
	// SkipOnError logs the failure and carries on with the next universe.
	SkipOnError SendPolicy = "skip"
)

// Transports selectable with the config "transport" key.
const (
	TransportLog  = "log"
	TransportMqtt = "mqtt"
)

// MqttConfig holds the broker connection and the universe topic prefix.
type MqttConfig struct {
	URL      string        `yaml:"url"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	ClientID string        `yaml:"clientId"`
	Topic    string        `yaml:"topic"`
	QoS      byte          `yaml:"qos"`
	Timeout  time.Duration `yaml:"timeout"`
}

// AnimationConfig tunes ramp generation, packing and loop timing.
type AnimationConfig struct {
	MaxBrightness    uint8         `yaml:"maxBrightness"`
	UniverseCapacity int           `yaml:"universeCapacity"`
	Sleep            time.Duration `yaml:"sleep"`
	// RunFor bounds the run; zero runs until cancelled.
	RunFor      time.Duration `yaml:"runFor"`
	SoftStart   time.Duration `yaml:"softStart"`
	OnSendError SendPolicy    `yaml:"onSendError"`
}

// ApiConfig enables the status API when Addr is set.
type ApiConfig struct {
	Addr string `yaml:"addr"`
}

// Config is the full installation config, usually read from YAML.
type Config struct {
	Transport string          `yaml:"transport"`
	Mqtt      MqttConfig      `yaml:"mqtt"`
	Animation AnimationConfig `yaml:"animation"`
	Zones     Topology        `yaml:"zones"`
	Api       ApiConfig       `yaml:"api"`
}

// DefaultConfig returns the settings of the original installation.
func DefaultConfig() Config {
	return Config{
		Transport: TransportLog,
		Mqtt: MqttConfig{
			ClientID: "houselights",
			Topic:    "home/houselights/universe",
			Timeout:  5 * time.Second,
		},
		Animation: AnimationConfig{
			MaxBrightness:    150,
			UniverseCapacity: DefaultUniverseCapacity,
			Sleep:            200 * time.Millisecond,
			OnSendError:      AbortOnError,
		},
		Zones: DefaultTopology(),
	}
}

// LoadConfig reads path over the defaults. An empty path returns the
// defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.SetStrict(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// Validate checks everything that would otherwise fail mid-run.
func (c Config) Validate() error {
	switch c.Transport {
	case TransportLog:
	case TransportMqtt:
		if c.Mqtt.URL == "" {
			return fmt.Errorf("%w: mqtt.url is required for the mqtt transport", ErrInvalidConfig)
		}
		if c.Mqtt.Topic == "" {
			return fmt.Errorf("%w: mqtt.topic is required for the mqtt transport", ErrInvalidConfig)
		}
		if c.Mqtt.QoS > 2 {
			return fmt.Errorf("%w: mqtt.qos %d", ErrInvalidConfig, c.Mqtt.QoS)
		}
	default:
		return fmt.Errorf("%w: unknown transport %q", ErrInvalidConfig, c.Transport)
	}

	a := c.Animation
	if a.MaxBrightness == 0 {
		return fmt.Errorf("%w: animation.maxBrightness must be positive", ErrInvalidConfig)
	}
	if a.UniverseCapacity < 1 || a.UniverseCapacity > MaxUniverseCapacity {
		return fmt.Errorf("%w: animation.universeCapacity %d outside 1..%d", ErrInvalidConfig, a.UniverseCapacity, MaxUniverseCapacity)
	}
	if a.Sleep <= 0 {
		return fmt.Errorf("%w: animation.sleep must be positive", ErrInvalidConfig)
	}
	if a.RunFor < 0 || a.SoftStart < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidConfig)
	}
	switch a.OnSendError {
	case AbortOnError, SkipOnError:
	default:
		return fmt.Errorf("%w: animation.onSendError %q", ErrInvalidConfig, a.OnSendError)
	}

	return c.Zones.Validate()
}
