package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTopologyCounts(t *testing.T) {
	zones := DefaultTopology()
	assert.Equal(t, 451, zones.Live())
	assert.Equal(t, 450, zones.RampLength())
	assert.Equal(t, 451+10+14, zones.Pixels())
	assert.NoError(t, zones.Validate())
}

func TestTopologyValidate(t *testing.T) {
	cases := []struct {
		name  string
		zones Topology
	}{
		{"empty", Topology{}},
		{"no live pixels", Topology{{Name: "a", Head: 3, Body: 0, Tail: 2}}},
		{"too few live pixels", Topology{{Name: "a", Body: 5}}},
		{"negative head", Topology{{Name: "a", Head: -1, Body: 12}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.ErrorIs(t, c.zones.Validate(), ErrInvalidTopology)
		})
	}
}

func TestTopologyCheck(t *testing.T) {
	zones := Topology{{Body: 8}, {Head: 1, Body: 7, Tail: 1}}
	assert.Equal(t, 12, zones.RampLength())

	assert.NoError(t, zones.Check(12))
	assert.NoError(t, zones.Check(15))
	assert.ErrorIs(t, zones.Check(11), ErrTopologyMismatch)
	assert.ErrorIs(t, zones.Check(16), ErrTopologyMismatch)
}
