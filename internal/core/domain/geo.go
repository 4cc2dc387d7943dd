package domain

import "math"

// EarthRadiusMiles is the mean Earth radius used by both the bounding box
// and the distance calculation.
const EarthRadiusMiles = 3958.8

// Point is a WGS84 coordinate.
type Point struct {
	Latitude  float64
	Longitude float64
}

// BoundingBox is a rectangular latitude/longitude window.
type BoundingBox struct {
	LatMin float64
	LatMax float64
	LonMin float64
	LonMax float64
}

// NewBoundingBox returns the equirectangular box around origin for a radius
// in miles. The box is a pre-filter: it contains the whole circle plus its corners.
func NewBoundingBox(origin Point, radiusMiles float64) BoundingBox {
	latDelta := radiusMiles / EarthRadiusMiles * 180 / math.Pi
	lonDelta := latDelta / math.Cos(origin.Latitude*math.Pi/180)

	return BoundingBox{
		LatMin: origin.Latitude - latDelta,
		LatMax: origin.Latitude + latDelta,
		LonMin: origin.Longitude - lonDelta,
		LonMax: origin.Longitude + lonDelta,
	}
}

// Contains uses inclusive bounds, matching SQL BETWEEN.
func (b BoundingBox) Contains(p Point) bool {
	return p.Latitude >= b.LatMin && p.Latitude <= b.LatMax &&
		p.Longitude >= b.LonMin && p.Longitude <= b.LonMax
}

// Distance is the Haversine great-circle distance in miles.
// ok is false when either point is missing.
func Distance(a, b *Point) (miles float64, ok bool) {
	if a == nil || b == nil {
		return 0, false
	}

	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	if h > 1 {
		h = 1
	}

	return 2 * EarthRadiusMiles * math.Asin(math.Sqrt(h)), true
}
