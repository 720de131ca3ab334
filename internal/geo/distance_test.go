package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm_SamePoint(t *testing.T) {
	points := [][2]float64{{0, 0}, {12.9716, 77.5946}, {-90, 180}, {55.75, 37.61}}
	for _, p := range points {
		assert.Equal(t, 0.0, DistanceKm(p[0], p[1], p[0], p[1]))
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	pairs := [][4]float64{
		{12.9716, 77.5946, 12.9717, 77.5946},
		{55.75, 37.61, 59.93, 30.31},
		{-33.86, 151.2, 51.5, -0.12},
		{0, 179.9, 0, -179.9},
	}
	for _, p := range pairs {
		ab := DistanceKm(p[0], p[1], p[2], p[3])
		ba := DistanceKm(p[2], p[3], p[0], p[1])
		assert.InDelta(t, ab, ba, 1e-9)
	}
}

func TestDistanceKm_OneDegreeOnEquator(t *testing.T) {
	assert.InDelta(t, 111.19, DistanceKm(0, 0, 0, 1), 0.01)
}

func TestDistanceKm_Monotonic(t *testing.T) {
	prev := 0.0
	for i := 1; i <= 10; i++ {
		d := DistanceKm(12.9716, 77.5946, 12.9716+float64(i)*0.0001, 77.5946)
		assert.Greater(t, d, prev)
		prev = d
	}
}

func TestDistanceKm_Antipodal(t *testing.T) {
	d := DistanceKm(0, 0, 0, 180)
	assert.False(t, math.IsNaN(d))
	assert.InDelta(t, math.Pi*earthRadiusKm, d, 1e-6)
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(0, 0))
	assert.True(t, ValidCoordinates(-90, -180))
	assert.True(t, ValidCoordinates(90, 180))
	assert.False(t, ValidCoordinates(90.0001, 0))
	assert.False(t, ValidCoordinates(0, -180.5))
	assert.False(t, ValidCoordinates(math.NaN(), 0))
}
