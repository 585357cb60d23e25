package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_Symmetry(t *testing.T) {
	a := &Point{Latitude: -6.2088, Longitude: 106.8456}
	b := &Point{Latitude: -7.7956, Longitude: 110.3695}

	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
}

func TestDistance_SamePointIsZero(t *testing.T) {
	p := &Point{Latitude: 12.9716, Longitude: 77.5946}

	assert.Equal(t, 0.0, Distance(p, p))
}

func TestDistance_NilOrInvalidPointIsZero(t *testing.T) {
	p := &Point{Latitude: 12.9716, Longitude: 77.5946}

	assert.Equal(t, 0.0, Distance(nil, p))
	assert.Equal(t, 0.0, Distance(p, nil))
	assert.Equal(t, 0.0, Distance(nil, nil))
	assert.Equal(t, 0.0, Distance(&Point{Latitude: 91, Longitude: 0}, p))
	assert.Equal(t, 0.0, Distance(p, &Point{Latitude: 0, Longitude: 181}))
}

func TestDistance_OneDegreeLatitude(t *testing.T) {
	a := &Point{Latitude: 0, Longitude: 0}
	b := &Point{Latitude: 1, Longitude: 0}

	got := Distance(a, b)
	want := 111194.9

	// Within 0.1% of one degree of latitude along a meridian.
	assert.Less(t, math.Abs(got-want)/want, 0.001)
}

func TestWithinRadius_BoundaryInclusive(t *testing.T) {
	assert.True(t, WithinRadius(100, 100))
	assert.True(t, WithinRadius(99.99, 100))
	assert.False(t, WithinRadius(100.01, 100))
	assert.True(t, WithinRadius(0, 0))
}
