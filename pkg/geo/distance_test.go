package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var chicago = orb.Point{-87.62, 41.88}

func TestDistanceIdenticalPointsFloorsAtHundredth(t *testing.T) {
	points := []orb.Point{chicago, {0, 0}, {-122.42, 37.77}}
	for _, p := range points {
		assert.Equal(t, 0.01, Distance(p, p), "identical points must never yield zero")
	}
}

func TestDistanceIsSymmetric(t *testing.T) {
	a := chicago
	b := orb.Point{-90.20, 38.63} // St. Louis
	assert.Equal(t, Distance(a, b), Distance(b, a))
}

func TestDistanceOneDegreeOfLatitude(t *testing.T) {
	// One degree of latitude on the matching sphere is ~69.2 miles.
	a := orb.Point{-87.62, 41.0}
	b := orb.Point{-87.62, 42.0}
	assert.Equal(t, 69.0, Distance(a, b))
}

func TestDistanceRoundsToWholeMiles(t *testing.T) {
	d := Distance(chicago, orb.Point{-90.20, 38.63})
	assert.Equal(t, d, float64(int(d)))
	assert.Greater(t, d, 200.0)
	assert.Less(t, d, 350.0)
}

func TestLatitudeDeltaBands(t *testing.T) {
	cases := []struct {
		lat        float64
		multiplier float64
	}{
		{10, 0.016073},
		{27, 0.016873},
		{32, 0.017897},
		{37, 0.019204},
		{41.88, 0.02088},
		{47, 0.023045},
		{55, 0.02467},
		{-41.88, 0.02088}, // southern hemisphere uses the same band
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.multiplier*100, LatitudeDelta(tc.lat, 100), 1e-9, "lat %v", tc.lat)
	}
}

func TestBoundingBoxEnclosesRadius(t *testing.T) {
	box := BoundingBox(chicago, 150)

	require.True(t, box.Min.Lat() < chicago.Lat())
	require.True(t, box.Max.Lat() > chicago.Lat())
	require.True(t, box.Min.Lon() < chicago.Lon())
	require.True(t, box.Max.Lon() > chicago.Lon())

	assert.InDelta(t, 0.02088*150, box.Max.Lat()-chicago.Lat(), 1e-9)
	assert.InDelta(t, 0.014457*150, box.Max.Lon()-chicago.Lon(), 1e-9)

	// A point 100 miles due north must fall inside a 150-mile box.
	north := orb.Point{chicago.Lon(), chicago.Lat() + 100.0/69.0}
	assert.True(t, box.Contains(north))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.88, Round2(1.8770778748276025))
	assert.Equal(t, 2.5, Round2(2.499999999999999))
	assert.Equal(t, 0.0, Round2(0))
}
