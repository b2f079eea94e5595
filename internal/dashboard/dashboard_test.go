package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDownsample(t *testing.T) {
	data := []float64{1, 3, 5, 7, 9, 11}

	assert.Equal(t, data, downsample(data, 0))
	assert.Equal(t, data, downsample(data, 6))
	assert.Equal(t, data, downsample(data, 10))

	assert.Equal(t, []float64{2, 6, 10}, downsample(data, 3))
	assert.Equal(t, []float64{3, 9}, downsample(data, 2))
	assert.Equal(t, []float64{6}, downsample(data, 1))
}

func TestDownsample_UnevenBins(t *testing.T) {
	data := []float64{0, 10, 20, 30, 40}
	out := downsample(data, 2)

	// Bins [0, 2) and [2, 5).
	assert.Equal(t, []float64{5, 30}, out)
}
