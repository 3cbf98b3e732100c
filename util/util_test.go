package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateLutRisesToOne(t *testing.T) {
	lut := GenerateLut(10)
	assert.Len(t, lut, 10)
	assert.Equal(t, 0.0, lut[0])
	assert.Equal(t, 1.0, lut[9])
	for i := 1; i < len(lut); i++ {
		assert.GreaterOrEqual(t, lut[i], lut[i-1], "index %d", i)
	}
}

func TestGenerateLutEdges(t *testing.T) {
	assert.Nil(t, GenerateLut(0))
	assert.Equal(t, []float64{1}, GenerateLut(1))
}
