// Package geo provides the distance math behind load matching: a haversine
// great-circle distance in statute miles and a cheap, index-friendly
// bounding-box approximation used to pre-filter postings before exact
// distances are computed.
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// earthRadiusMiles converts the spherical earth radius from meters to
// kilometers to statute miles (~3963.75 mi).
const earthRadiusMiles = 6378100.0 / 1000.0 / 1.609344

// degPerMileLongitude is a single fixed longitude-degrees-per-mile
// multiplier. Longitude degrees actually shrink toward the poles; the
// box filter stays over-inclusive and the exact pass corrects it.
const degPerMileLongitude = 0.014457

// Distance returns the great-circle distance between two points in miles,
// rounded to the nearest whole mile. Identical points yield 0.01 rather
// than 0 so per-mile figures downstream never divide by zero.
func Distance(a, b orb.Point) float64 {
	if a == b {
		return 0.01
	}

	dLat := toRadians(b.Lat() - a.Lat())
	dLon := toRadians(b.Lon() - a.Lon())
	latA := toRadians(a.Lat())
	latB := toRadians(b.Lat())

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(latA)*math.Cos(latB)
	c := 2 * math.Asin(math.Sqrt(h))

	return math.Round(earthRadiusMiles * c)
}

// LatitudeDelta approximates the latitude span in degrees that covers
// radiusMiles at the given latitude. The multipliers are banded because a
// degree of latitude covers slightly more ground the further it is from
// the equator.
func LatitudeDelta(latitude, radiusMiles float64) float64 {
	lat := math.Abs(latitude)

	switch {
	case lat < 25:
		return 0.016073 * radiusMiles
	case lat < 30:
		return 0.016873 * radiusMiles
	case lat < 35:
		return 0.017897 * radiusMiles
	case lat < 40:
		return 0.019204 * radiusMiles
	case lat < 45:
		return 0.02088 * radiusMiles
	case lat < 50:
		return 0.023045 * radiusMiles
	default:
		return 0.02467 * radiusMiles
	}
}

// LongitudeDelta approximates the longitude span in degrees covering
// radiusMiles, independent of latitude.
func LongitudeDelta(radiusMiles float64) float64 {
	return degPerMileLongitude * radiusMiles
}

// BoundingBox builds the rectangle around center that encloses a circle of
// radiusMiles under the delta approximations above. It is intentionally
// over-inclusive; callers must re-check survivors with Distance.
func BoundingBox(center orb.Point, radiusMiles float64) orb.Bound {
	latDelta := LatitudeDelta(center.Lat(), radiusMiles)
	lonDelta := LongitudeDelta(radiusMiles)

	return orb.Bound{
		Min: orb.Point{center.Lon() - lonDelta, center.Lat() - latDelta},
		Max: orb.Point{center.Lon() + lonDelta, center.Lat() + latDelta},
	}
}

// Round2 rounds a currency amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func toRadians(angle float64) float64 {
	return math.Pi * angle / 180.0
}
