package geo

import (
	"math"
	"math/rand"
	"testing"
)

func TestNewPoint_Valid(t *testing.T) {
	p, err := NewPoint(16.047, 108.206)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Lat() != 16.047 || p.Lon() != 108.206 {
		t.Errorf("got (%g, %g)", p.Lat(), p.Lon())
	}
}

func TestNewPoint_Invalid(t *testing.T) {
	cases := []struct {
		name     string
		lat, lon float64
	}{
		{"lat_too_high", 91, 0},
		{"lat_too_low", -91, 0},
		{"lon_too_high", 0, 181},
		{"lon_too_low", 0, -181},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewPoint(tc.lat, tc.lon); err == nil {
				t.Errorf("expected error for (%g, %g)", tc.lat, tc.lon)
			}
		})
	}
}

func TestHaversineKm_SamePointIsZero(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		p := MustPoint(rng.Float64()*180-90, rng.Float64()*360-180)
		if d := HaversineKm(p, p); d != 0 {
			t.Fatalf("distance(p, p) = %g, want 0", d)
		}
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		a := MustPoint(rng.Float64()*180-90, rng.Float64()*360-180)
		b := MustPoint(rng.Float64()*180-90, rng.Float64()*360-180)
		if d1, d2 := HaversineKm(a, b), HaversineKm(b, a); d1 != d2 {
			t.Fatalf("asymmetric: %g vs %g", d1, d2)
		}
	}
}

func TestHaversineKm_KnownDistance(t *testing.T) {
	// Da Nang to Hanoi is roughly 630 km.
	daNang := MustPoint(16.0544, 108.2022)
	hanoi := MustPoint(21.0285, 105.8542)

	d := HaversineKm(daNang, hanoi)
	if math.Abs(d-608) > 30 {
		t.Errorf("Da Nang-Hanoi = %g km, outside expected range", d)
	}
}
