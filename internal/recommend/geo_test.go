package recommend_test

import (
	"math"
	"testing"

	"travelassist/internal/recommend"
)

func TestDistanceKm_Symmetry(t *testing.T) {
	pairs := [][4]float64{
		{28.6139, 77.2090, 28.7041, 77.1025},
		{0, 0, 10, 10},
		{-33.8688, 151.2093, 51.5074, -0.1278},
	}
	for _, p := range pairs {
		ab := recommend.DistanceKm(p[0], p[1], p[2], p[3])
		ba := recommend.DistanceKm(p[2], p[3], p[0], p[1])
		if math.Abs(ab-ba) > 1e-9 {
			t.Fatalf("asymmetric: %f vs %f for %v", ab, ba, p)
		}
	}
}

func TestDistanceKm_ZeroForIdenticalPoints(t *testing.T) {
	if d := recommend.DistanceKm(28.6139, 77.2090, 28.6139, 77.2090); d != 0 {
		t.Fatalf("expected 0, got %f", d)
	}
}

// Two fixed points in Delhi pin the 6371 km sphere radius; the
// great-circle distance for this pair is 14.44 km.
func TestDistanceKm_KnownDistance(t *testing.T) {
	d := recommend.DistanceKm(28.6139, 77.2090, 28.7041, 77.1025)
	if d < 13.94 || d > 14.94 {
		t.Fatalf("expected ~14.44 km, got %f", d)
	}
}

func TestDistanceKm_Antipodal(t *testing.T) {
	// Half the circumference of a 6371 km sphere, and still finite.
	d := recommend.DistanceKm(0, 0, 0, 180)
	want := math.Pi * 6371.0
	if math.Abs(d-want) > 1.0 {
		t.Fatalf("expected ~%f, got %f", want, d)
	}
}
