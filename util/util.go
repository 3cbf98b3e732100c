package util

import (
	"github.com/fogleman/ease"
)

// GenerateLut returns length gains rising from 0 to 1 along an InOutQuad
// curve. The last entry is always exactly 1.
func GenerateLut(length int) []float64 {
	if length <= 0 {
		return nil
	}
	lut := make([]float64, length)
	if length == 1 {
		lut[0] = 1
		return lut
	}
	increment := 1.0 / float64(length-1)
	for i := range lut {
		lut[i] = ease.InOutQuad(float64(i) * increment)
	}
	lut[length-1] = 1
	return lut
}
