package stream

import (
	"encoding/hex"

	"github.com/rs/zerolog/log"
)

// Sender emits universes on the wire. The Streamer owns its Sender for the
// whole run and calls Terminate on each universe once it stops.
type Sender interface {
	Send(universe uint16, payload []byte) error
	Terminate(universe uint16) error
}

// LogSender is a dry-run Sender that only logs what it would transmit.
type LogSender struct {
	Source string
}

// Send logs the universe size and its first bytes.
func (s *LogSender) Send(universe uint16, payload []byte) error {
	log.Debug().
		Str("source", s.Source).
		Uint16("universe", universe).
		Int("len", len(payload)).
		Str("head", hex.EncodeToString(payload[:min(len(payload), 12)])).
		Msg("send")
	return nil
}

// Terminate logs the end of a universe stream.
func (s *LogSender) Terminate(universe uint16) error {
	log.Debug().Str("source", s.Source).Uint16("universe", universe).Msg("terminate")
	return nil
}

// Close is a no-op, LogSender holds no resources.
func (s *LogSender) Close() error {
	return nil
}
