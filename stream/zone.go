package stream

import "fmt"

// Zone is a contiguous run of the strip. Head and Tail are unlit filler
// pixels, Body is the lit region. Name is only used in diagnostics.
type Zone struct {
	Name string `yaml:"name"`
	Head int    `yaml:"head"`
	Body int    `yaml:"body"`
	Tail int    `yaml:"tail"`
}

// Pixels returns the physical pixel count of the zone including padding.
func (z Zone) Pixels() int {
	return z.Head + z.Body + z.Tail
}

// Topology is the ordered zone layout of an installation. Order matches the
// physical wiring order of the output stream.
type Topology []Zone

// DefaultTopology is the layout of the original house installation.
func DefaultTopology() Topology {
	return Topology{
		{Name: "10", Head: 0, Body: 44, Tail: 3},
		{Name: "11a", Head: 2, Body: 91, Tail: 3},
		{Name: "11b", Head: 2, Body: 92, Tail: 2},
		{Name: "12a", Head: 2, Body: 90, Tail: 3},
		{Name: "12b", Head: 2, Body: 91, Tail: 3},
		{Name: "13", Head: 2, Body: 43, Tail: 0},
	}
}

// Live returns the number of lit pixels.
func (t Topology) Live() int {
	live := 0
	for _, z := range t {
		live += z.Body
	}
	return live
}

// Pixels returns the number of physical pixels including head and tail padding.
func (t Topology) Pixels() int {
	n := 0
	for _, z := range t {
		n += z.Pixels()
	}
	return n
}

// RampLength is the number of colours GenerateRamp produces for t. Lit
// pixels beyond the last whole segment are not part of the ramp.
func (t Topology) RampLength() int {
	return segments * (t.Live() / segments)
}

// Validate reports whether t can carry a ramp at all.
func (t Topology) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: no zones", ErrInvalidTopology)
	}
	if err := t.checkCounts(); err != nil {
		return err
	}
	if live := t.Live(); live < segments {
		return fmt.Errorf("%w: %d live pixels, need at least %d", ErrInvalidTopology, live, segments)
	}
	return nil
}

func (t Topology) checkCounts() error {
	for i, z := range t {
		if z.Head < 0 || z.Body < 0 || z.Tail < 0 {
			return fmt.Errorf("%w: zone %d (%q) has a negative count", ErrInvalidTopology, i, z.Name)
		}
	}
	return nil
}

// Check reports whether a colour buffer of n entries fits t.
func (t Topology) Check(n int) error {
	if n < t.RampLength() || n > t.Live() {
		return fmt.Errorf("%w: %d colours for %d live pixels (ramp %d)",
			ErrTopologyMismatch, n, t.Live(), t.RampLength())
	}
	return nil
}
