package domain

import (
	"math"
	"testing"
)

var w1a = Point{Latitude: 51.518561, Longitude: -0.143799}

func TestDistance_ZeroAndSymmetric(t *testing.T) {
	manchester := Point{Latitude: 53.4808, Longitude: -2.2426}

	if d, ok := Distance(&w1a, &w1a); !ok || d != 0 {
		t.Errorf("Distance(p, p) = %v, %v; want 0, true", d, ok)
	}

	ab, _ := Distance(&w1a, &manchester)
	ba, _ := Distance(&manchester, &w1a)
	if ab != ba {
		t.Errorf("Distance is not symmetric: %v != %v", ab, ba)
	}
	// London to Manchester is roughly 163 miles as the crow flies.
	if ab < 155 || ab > 170 {
		t.Errorf("London-Manchester distance = %.1f, want about 163 miles", ab)
	}
}

func TestDistance_MissingPoint(t *testing.T) {
	if _, ok := Distance(nil, &w1a); ok {
		t.Error("expected ok=false with a nil origin")
	}
	if _, ok := Distance(&w1a, nil); ok {
		t.Error("expected ok=false with a nil target")
	}
}

func TestBoundingBox_W1AScenario(t *testing.T) {
	box := NewBoundingBox(w1a, 0.5)

	if !box.Contains(w1a) {
		t.Error("a listing at the origin must be inside the box")
	}

	// One degree of latitude is about 69 miles, so 50 miles north is ~0.7234 degrees.
	farAway := Point{Latitude: w1a.Latitude + 50/EarthRadiusMiles*180/math.Pi, Longitude: w1a.Longitude}
	if d, _ := Distance(&w1a, &farAway); math.Abs(d-50) > 0.01 {
		t.Fatalf("test point is %.3f miles away, want 50", d)
	}
	if box.Contains(farAway) {
		t.Error("a listing 50 miles away must be outside a 0.5 mile box")
	}
}

func TestBoundingBox_ContainsCircle(t *testing.T) {
	const radius = 2.0
	box := NewBoundingBox(w1a, radius)

	// Points on the circle in the four compass directions lie on or inside the box.
	latDelta := radius / EarthRadiusMiles * 180 / math.Pi
	lonDelta := latDelta / math.Cos(w1a.Latitude*math.Pi/180)
	for _, p := range []Point{
		{w1a.Latitude + latDelta*0.999, w1a.Longitude},
		{w1a.Latitude - latDelta*0.999, w1a.Longitude},
		{w1a.Latitude, w1a.Longitude + lonDelta*0.999},
		{w1a.Latitude, w1a.Longitude - lonDelta*0.999},
	} {
		if !box.Contains(p) {
			t.Errorf("box %+v should contain %+v", box, p)
		}
	}

	if box.LatMin >= box.LatMax || box.LonMin >= box.LonMax {
		t.Errorf("degenerate box %+v", box)
	}
}

func TestBoundingBox_ZeroRadius(t *testing.T) {
	box := NewBoundingBox(w1a, 0)
	if !box.Contains(w1a) {
		t.Error("a zero radius box still contains its origin")
	}
	if box.Contains(Point{Latitude: w1a.Latitude + 0.0001, Longitude: w1a.Longitude}) {
		t.Error("a zero radius box contains nothing else")
	}
}
