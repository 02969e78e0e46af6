package restaurant

import (
	"testing"

	"github.com/vietbites/discovery/internal/domain/geo"
)

func ptr(f float64) *float64 { return &f }

func TestNew_Valid(t *testing.T) {
	loc := geo.MustPoint(16.05, 108.2)
	cuisine, _ := NewTerm("c1", "Pizza")
	tag, _ := NewTerm("t1", "Family")

	r, err := New("r1", "Banh Mi Corner", "street food", &loc,
		[]Term{cuisine}, []Term{tag}, ptr(20000), ptr(80000), 4.5, 12, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ID() != "r1" || r.Name() != "Banh Mi Corner" {
		t.Errorf("unexpected identity: %q %q", r.ID(), r.Name())
	}
	if r.Rating() != 4.5 || r.ReviewCount() != 12 {
		t.Errorf("rating = %g, reviews = %d", r.Rating(), r.ReviewCount())
	}
	if r.Location() == nil {
		t.Error("expected location")
	}
}

func TestNew_Invalid(t *testing.T) {
	cases := []struct {
		name string
		fn   func() (Restaurant, error)
	}{
		{"missing_id", func() (Restaurant, error) {
			return New("", "x", "", nil, nil, nil, nil, nil, 0, 0, nil)
		}},
		{"missing_name", func() (Restaurant, error) {
			return New("r1", "", "", nil, nil, nil, nil, nil, 0, 0, nil)
		}},
		{"price_bounds_inverted", func() (Restaurant, error) {
			return New("r1", "x", "", nil, nil, nil, ptr(100), ptr(50), 0, 0, nil)
		}},
		{"rating_out_of_range", func() (Restaurant, error) {
			return New("r1", "x", "", nil, nil, nil, nil, nil, 5.5, 3, nil)
		}},
		{"negative_reviews", func() (Restaurant, error) {
			return New("r1", "x", "", nil, nil, nil, nil, nil, 4, -1, nil)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.fn(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNew_ZeroReviewsNormalizesRating(t *testing.T) {
	r, err := New("r1", "x", "", nil, nil, nil, nil, nil, 4.8, 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Rating() != 0 {
		t.Errorf("rating with zero reviews = %g, want 0", r.Rating())
	}
}

func TestHasCuisineAny(t *testing.T) {
	c1, _ := NewTerm("c1", "Pizza")
	c2, _ := NewTerm("c2", "Pho")
	r, _ := New("r1", "x", "", nil, []Term{c1, c2}, nil, nil, nil, 0, 0, nil)

	if !r.HasCuisineAny(nil) {
		t.Error("empty query set must impose no constraint")
	}
	if !r.HasCuisineAny([]string{"c2", "c9"}) {
		t.Error("expected intersection on c2")
	}
	if r.HasCuisineAny([]string{"c9"}) {
		t.Error("expected no intersection")
	}
}
