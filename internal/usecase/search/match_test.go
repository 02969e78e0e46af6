package search

import (
	"testing"

	"github.com/vietbites/discovery/internal/domain/restaurant"
)

func TestMatchesText(t *testing.T) {
	pho := term(t, "vietnamese", "Vietnamese")
	veg := term(t, "vegan-options", "Vegan Options")
	rec := build(t, "r1", "Phở Thìn", "Hanoi-style beef noodle soup",
		nil, []restaurant.Term{pho}, 4.0, 10)
	rec2, err := restaurant.New("r2", "Chay Garden", "", nil, nil,
		[]restaurant.Term{veg}, nil, nil, 4.0, 10, nil)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		r    *restaurant.Restaurant
		text string
		want bool
	}{
		{"empty text matches", &rec, "", true},
		{"name substring case-insensitive", &rec, "phở", true},
		{"description match", &rec, "noodle", true},
		{"cuisine display name", &rec, "vietnamese", true},
		{"tag display name", &rec2, "vegan", true},
		{"diacritics are not folded", &rec, "pho", false},
		{"no match", &rec, "sushi", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := matchesText(tc.r, tc.text); got != tc.want {
				t.Errorf("matchesText(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}
