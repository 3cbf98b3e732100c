package stream

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/matt-g-everett/houselights/util"
)

// FrameObserver receives every frame after it was handed to the Sender.
// Universes are only valid for the duration of the call.
type FrameObserver interface {
	Publish(tick uint64, universes []Universe)
}

// Streamer drives the rotating rainbow: pack, send, rotate, wait.
type Streamer struct {
	sender    Sender
	config    AnimationConfig
	ring      *Ring
	packer    *Packer
	dimmed    Ramp
	softStart []float64
	observers []FrameObserver
	tick      atomic.Uint64
}

// NewStreamer generates the ramp for cfg.Zones and prepares the packer.
// Topology problems are reported here, before anything is sent.
func NewStreamer(cfg Config, sender Sender) (*Streamer, error) {
	ramp, err := GenerateRamp(cfg.Zones, cfg.Animation.MaxBrightness)
	if err != nil {
		return nil, err
	}
	if err := cfg.Zones.Check(len(ramp)); err != nil {
		return nil, err
	}
	packer, err := NewPacker(cfg.Zones, cfg.Animation.UniverseCapacity)
	if err != nil {
		return nil, err
	}

	s := new(Streamer)
	s.sender = sender
	s.config = cfg.Animation
	s.ring = NewRing(ramp)
	s.packer = packer

	if cfg.Animation.SoftStart > 0 && cfg.Animation.Sleep > 0 {
		s.softStart = util.GenerateLut(int(cfg.Animation.SoftStart / cfg.Animation.Sleep))
		s.dimmed = make(Ramp, len(ramp))
	}

	if dropped := cfg.Zones.Live() - len(ramp); dropped > 0 {
		log.Warn().Int("dark_pixels", dropped).Msg("live pixels not divisible into ramp segments, trailing pixels stay dark")
	}
	log.Info().
		Int("zones", len(cfg.Zones)).
		Int("live", cfg.Zones.Live()).
		Int("pixels", cfg.Zones.Pixels()).
		Int("universes", packer.Universes()).
		Str("first", ramp[0].Hex()).
		Str("middle", ramp[len(ramp)/2].Hex()).
		Msg("ramp generated")

	return s, nil
}

// Observe registers o to receive every sent frame.
func (s *Streamer) Observe(o FrameObserver) {
	s.observers = append(s.observers, o)
}

// Tick returns the number of frames sent so far. Safe for concurrent use.
func (s *Streamer) Tick() uint64 {
	return s.tick.Load()
}

// Universes returns the number of universes in each frame.
func (s *Streamer) Universes() int {
	return s.packer.Universes()
}

// Frame returns the colours of the current frame, dimmed while the soft
// start is still running.
func (s *Streamer) Frame() Pixels {
	tick := s.tick.Load()
	if tick >= uint64(len(s.softStart)) {
		return s.ring
	}
	gain := s.softStart[tick]
	for i := range s.dimmed {
		s.dimmed[i] = s.ring.At(i).Scale(gain)
	}
	return s.dimmed
}

// SendFrame packs the current frame and sends every universe in ascending
// index order.
func (s *Streamer) SendFrame() error {
	universes := s.packer.Pack(s.Frame())
	for _, u := range universes {
		err := s.sender.Send(u.Index, u.Data)
		if err == nil {
			continue
		}
		var sendErr *SendError
		if !errors.As(err, &sendErr) {
			sendErr = &SendError{Universe: u.Index, Op: "send", Err: err}
		}
		if s.config.OnSendError != SkipOnError {
			return sendErr
		}
		log.Warn().Err(sendErr).Uint16("universe", u.Index).Msg("send failed, skipping universe")
	}

	tick := s.tick.Add(1)
	for _, o := range s.observers {
		o.Publish(tick, universes)
	}
	return nil
}

// Run streams frames until ctx is done, the configured run time elapses or
// a send fails under the abort policy. Every universe is terminated on the
// way out.
func (s *Streamer) Run(ctx context.Context) (err error) {
	if s.config.RunFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.RunFor)
		defer cancel()
	}
	defer func() {
		err = errors.Join(err, s.terminate())
		log.Info().Uint64("frames", s.Tick()).Err(err).Msg("streamer stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if err := s.SendFrame(); err != nil {
			return err
		}
		s.ring.Rotate(1)

		wait := time.NewTimer(s.config.Sleep)
		select {
		case <-ctx.Done():
			wait.Stop()
			return nil
		case <-wait.C:
		}
	}
}

func (s *Streamer) terminate() error {
	var errs []error
	for i := 1; i <= s.packer.Universes(); i++ {
		if err := s.sender.Terminate(uint16(i)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
