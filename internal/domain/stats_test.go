package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	t.Run("empty slice", func(t *testing.T) {
		assert.Equal(t, 0.0, Mean(nil))
	})

	t.Run("single value", func(t *testing.T) {
		assert.Equal(t, 7.5, Mean([]float64{7.5}))
	})

	t.Run("multiple values", func(t *testing.T) {
		assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-12)
	})

	t.Run("negative values", func(t *testing.T) {
		assert.InDelta(t, -1.5, Mean([]float64{-1, -2}), 1e-12)
	})
}

func TestSampleStdDev(t *testing.T) {
	t.Run("empty slice is zero", func(t *testing.T) {
		assert.Equal(t, 0.0, SampleStdDev(nil))
	})

	t.Run("single element is exactly zero", func(t *testing.T) {
		assert.Equal(t, 0.0, SampleStdDev([]float64{42.0}))
	})

	t.Run("two equal values is exactly zero", func(t *testing.T) {
		assert.Equal(t, 0.0, SampleStdDev([]float64{3.3, 3.3}))
	})

	t.Run("never NaN", func(t *testing.T) {
		for _, values := range [][]float64{nil, {0}, {1e308, 1e308}} {
			assert.False(t, math.IsNaN(SampleStdDev(values)))
		}
	})

	t.Run("bessel correction", func(t *testing.T) {
		// Variance of {2, 4, 4, 4, 5, 5, 7, 9} with n-1 denominator is 32/7.
		got := SampleStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
		assert.InDelta(t, math.Sqrt(32.0/7.0), got, 1e-12)
	})

	t.Run("known five year totals", func(t *testing.T) {
		got := SampleStdDev([]float64{100, 100, 100, 100, 500})
		assert.InDelta(t, 178.885, got, 0.001)
	})
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 1.12, roundTo(1.1151, 2))
	assert.Equal(t, 1.1, roundTo(1.115, 1))
	assert.Equal(t, 0.994, roundTo(0.99381, 3))
	assert.Equal(t, -2.5, roundTo(-2.456, 1))
}

func TestMinMax(t *testing.T) {
	minVal, maxVal := minMax([]float64{3, -1, 7, 0})
	assert.Equal(t, -1.0, minVal)
	assert.Equal(t, 7.0, maxVal)

	minVal, maxVal = minMax([]float64{5})
	assert.Equal(t, 5.0, minVal)
	assert.Equal(t, 5.0, maxVal)
}
