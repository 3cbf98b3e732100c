package stream

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

const (
	// MaxUniverseCapacity is the DMX512 slot count of a universe.
	MaxUniverseCapacity = 512
	// DefaultUniverseCapacity holds 170 whole RGB pixels.
	DefaultUniverseCapacity = 510

	bytesPerPixel = 3
)

// Pixels is an ordered source of lit pixel colours.
type Pixels interface {
	Len() int
	At(i int) Color
}

// Universe is one protocol frame of channel bytes. Index is 1-based and
// ascends with the position of Data in the padded stream.
type Universe struct {
	Index uint16
	Data  []byte
}

// Packer lays lit colours out over a Topology and slices the padded stream
// into universes.
type Packer struct {
	zones    Topology
	capacity int
	stream   []byte
	out      []Universe
}

// NewPacker validates capacity and zone counts and preallocates the stream
// for zones.
func NewPacker(zones Topology, capacity int) (*Packer, error) {
	if err := zones.checkCounts(); err != nil {
		return nil, err
	}
	if capacity < 1 || capacity > MaxUniverseCapacity {
		return nil, fmt.Errorf("%w: universe capacity %d outside 1..%d", ErrInvalidConfig, capacity, MaxUniverseCapacity)
	}
	size := zones.Pixels() * bytesPerPixel
	count := (size + capacity - 1) / capacity
	if count > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d universes exceed the addressable range", ErrInvalidTopology, count)
	}
	return &Packer{
		zones:    zones,
		capacity: capacity,
		stream:   make([]byte, size),
		out:      make([]Universe, count),
	}, nil
}

// Universes returns how many universes each Pack produces.
func (p *Packer) Universes() int {
	return len(p.out)
}

// Pack writes every zone as head padding, body colours and tail padding,
// then splits the result into universes of at most the packer capacity.
// Lit pixels with no colour left in pixels stay dark; colours past the
// last body are ignored, use Topology.Check to reject such buffers.
//
// The returned universes share the packer's buffer and are only valid
// until the next call.
func (p *Packer) Pack(pixels Pixels) []Universe {
	n := pixels.Len()
	pos, next := 0, 0
	for _, z := range p.zones {
		pos = p.fill(pos, z.Head)
		for i := 0; i < z.Body; i++ {
			var c Color
			if next < n {
				c = pixels.At(next)
				next++
			}
			p.stream[pos] = c.R
			p.stream[pos+1] = c.G
			p.stream[pos+2] = c.B
			pos += bytesPerPixel
		}
		pos = p.fill(pos, z.Tail)
	}

	for i := range p.out {
		lo := i * p.capacity
		hi := min(lo+p.capacity, len(p.stream))
		p.out[i] = Universe{Index: uint16(i + 1), Data: p.stream[lo:hi]}
	}
	return p.out
}

func (p *Packer) fill(pos, pixels int) int {
	end := pos + pixels*bytesPerPixel
	clear(p.stream[pos:end])
	return end
}

// Pack is a one-off packing of pixels. The universes own their data.
// Like Packer.Pack it leaves uncovered lit pixels dark and drops colours
// past the last body. A buffer that fails Topology.Check is logged at debug
// level.
func Pack(pixels Pixels, zones Topology, capacity int) ([]Universe, error) {
	p, err := NewPacker(zones, capacity)
	if err != nil {
		return nil, err
	}
	if err := zones.Check(pixels.Len()); err != nil {
		log.Debug().Err(err).Msg("packing mismatched colour buffer")
	}
	return p.Pack(pixels), nil
}

// Concat joins universes back into the padded stream.
func Concat(universes []Universe) []byte {
	size := 0
	for _, u := range universes {
		size += len(u.Data)
	}
	out := make([]byte, 0, size)
	for _, u := range universes {
		out = append(out, u.Data...)
	}
	return out
}
