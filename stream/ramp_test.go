package stream

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRampSegmentBoundaries(t *testing.T) {
	ramp, err := GenerateRamp(Topology{{Body: 36}}, 150)
	require.NoError(t, err)
	require.Len(t, ramp, 36)

	// step = round(150 / 6) = 25
	expect := []struct {
		index int
		color Color
	}{
		{0, Color{150, 0, 0}},
		{1, Color{150, 25, 0}},
		{5, Color{150, 125, 0}},
		{6, Color{150, 150, 0}},
		{12, Color{0, 150, 0}},
		{18, Color{0, 150, 150}},
		{24, Color{0, 0, 150}},
		{30, Color{150, 0, 150}},
		{35, Color{150, 0, 25}},
	}
	for _, e := range expect {
		assert.Equal(t, e.color, ramp[e.index], "index %d", e.index)
	}
}

func TestGenerateRampStaysWithinCeiling(t *testing.T) {
	for _, ceiling := range []uint8{1, 7, 100, 150, 200, 255} {
		for live := 6; live <= 600; live += 6 {
			t.Run(strconv.Itoa(int(ceiling))+"/"+strconv.Itoa(live), func(t *testing.T) {
				ramp, err := GenerateRamp(Topology{{Body: live}}, ceiling)
				require.NoError(t, err)
				require.Len(t, ramp, live)
				for i, c := range ramp {
					if c.R > ceiling || c.G > ceiling || c.B > ceiling {
						t.Fatalf("colour %d %+v exceeds %d", i, c, ceiling)
					}
				}
			})
		}
	}
}

func TestGenerateRampBoundariesAreExact(t *testing.T) {
	// 200 / (42/6) does not divide evenly, boundaries must still be exact.
	ramp, err := GenerateRamp(Topology{{Body: 42}}, 200)
	require.NoError(t, err)
	assert.Equal(t, Color{200, 200, 0}, ramp[7])
	assert.Equal(t, Color{0, 200, 0}, ramp[14])
	assert.Equal(t, Color{0, 200, 200}, ramp[21])
	assert.Equal(t, Color{0, 0, 200}, ramp[28])
	assert.Equal(t, Color{200, 0, 200}, ramp[35])
}

func TestGenerateRampDropsRemainder(t *testing.T) {
	ramp, err := GenerateRamp(DefaultTopology(), 150)
	require.NoError(t, err)
	assert.Len(t, ramp, 450)
}

func TestGenerateRampNoLivePixels(t *testing.T) {
	_, err := GenerateRamp(Topology{{Name: "dark", Head: 2, Tail: 2}}, 150)
	assert.ErrorIs(t, err, ErrInvalidTopology)
}

func TestGenerateRampDeterministic(t *testing.T) {
	a, err := GenerateRamp(DefaultTopology(), 150)
	require.NoError(t, err)
	b, err := GenerateRamp(DefaultTopology(), 150)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
