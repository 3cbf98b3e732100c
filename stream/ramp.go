package stream

import (
	"fmt"
	"math"
)

// segments is the number of hue transitions in one cycle of the ramp.
const segments = 6

// Ramp is a flat sequence of lit pixel colours.
type Ramp []Color

// Len implements Pixels.
func (r Ramp) Len() int { return len(r) }

// At implements Pixels.
func (r Ramp) At(i int) Color { return r[i] }

const (
	red = iota
	green
	blue
)

// Each segment ramps one channel while another is held at the ceiling and
// the third at zero: red→yellow→green→cyan→blue→magenta→red.
var rampSegments = [segments]struct {
	channel int
	rising  bool
}{
	{green, true},
	{red, false},
	{blue, true},
	{green, false},
	{red, true},
	{blue, false},
}

// GenerateRamp builds one full rainbow cycle sized to the live pixels of
// zones. Channel values never exceed maxBrightness. Live pixels beyond the
// last whole segment are dropped, see Topology.RampLength.
func GenerateRamp(zones Topology, maxBrightness uint8) (Ramp, error) {
	if err := zones.Validate(); err != nil {
		return nil, err
	}

	live := zones.Live()
	segLen := live / segments
	step := int(math.Round(float64(maxBrightness) / (float64(live) / segments)))
	ceiling := int(maxBrightness)

	// Start at pure red.
	ch := [3]int{ceiling, 0, 0}
	ramp := make(Ramp, 0, segLen*segments)
	for _, seg := range rampSegments {
		for i := 0; i < segLen; i++ {
			ramp = append(ramp, Color{R: uint8(ch[red]), G: uint8(ch[green]), B: uint8(ch[blue])})
			if seg.rising {
				ch[seg.channel] = min(ch[seg.channel]+step, ceiling)
			} else {
				ch[seg.channel] = max(ch[seg.channel]-step, 0)
			}
		}
		// step rarely divides the ceiling, snap to the exact boundary.
		if seg.rising {
			ch[seg.channel] = ceiling
		} else {
			ch[seg.channel] = 0
		}
	}

	if len(ramp) != zones.RampLength() {
		return nil, fmt.Errorf("%w: generated %d colours, expected %d", ErrInvalidTopology, len(ramp), zones.RampLength())
	}
	return ramp, nil
}
