package stream

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTopology is returned when the zones describe no usable ramp.
	ErrInvalidTopology = errors.New("invalid topology")
	// ErrTopologyMismatch is returned when a colour buffer does not fit the zones.
	ErrTopologyMismatch = errors.New("topology mismatch")
	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid config")
)

// SendError wraps a transport failure for a single universe.
type SendError struct {
	Universe uint16
	Op       string
	Err      error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("%s universe %d: %v", e.Op, e.Universe, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}
