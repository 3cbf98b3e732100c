package stream

// Ring is a circular view over a fixed ramp. Rotation moves the logical
// start instead of the colours, so it costs the same for any strip length.
type Ring struct {
	colors Ramp
	start  int
}

// NewRing takes ownership of ramp.
func NewRing(ramp Ramp) *Ring {
	return &Ring{colors: ramp}
}

// Len implements Pixels.
func (r *Ring) Len() int { return len(r.colors) }

// At implements Pixels. i is the logical position from the front.
func (r *Ring) At(i int) Color {
	return r.colors[(r.start+i)%len(r.colors)]
}

// Rotate moves the last n colours to the front, keeping cyclic order.
// Negative n rotates towards the front.
func (r *Ring) Rotate(n int) {
	l := len(r.colors)
	if l == 0 {
		return
	}
	r.start = ((r.start-n)%l + l) % l
}

// Snapshot copies the colours out in logical order.
func (r *Ring) Snapshot() Ramp {
	out := make(Ramp, len(r.colors))
	for i := range out {
		out[i] = r.At(i)
	}
	return out
}
