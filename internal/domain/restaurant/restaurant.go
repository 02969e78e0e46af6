package restaurant

import (
	"fmt"

	"github.com/vietbites/discovery/internal/domain/geo"
)

// Term is a controlled-vocabulary reference (cuisine type or tag) with its
// display name, so text matching can run against what users actually see.
type Term struct {
	id   string
	name string
}

// NewTerm creates a vocabulary term.
func NewTerm(id, name string) (Term, error) {
	if id == "" {
		return Term{}, fmt.Errorf("term id is required")
	}
	return Term{id: id, name: name}, nil
}

// ID returns the vocabulary identifier.
func (t Term) ID() string { return t.id }

// Name returns the display name.
func (t Term) Name() string { return t.name }

// Restaurant is the read-only catalog projection consumed by the search engine.
type Restaurant struct {
	id          string
	name        string
	description string
	location    *geo.Point
	cuisines    []Term
	tags        []Term
	minPrice    *float64
	maxPrice    *float64
	rating      float64
	reviewCount int
	hours       Hours
}

// New validates and creates a Restaurant.
// A rating with zero reviews carries no signal and is normalized to 0.
func New(
	id, name, description string,
	location *geo.Point,
	cuisines, tags []Term,
	minPrice, maxPrice *float64,
	rating float64,
	reviewCount int,
	hours Hours,
) (Restaurant, error) {
	if id == "" {
		return Restaurant{}, fmt.Errorf("restaurant id is required")
	}
	if name == "" {
		return Restaurant{}, fmt.Errorf("restaurant name is required")
	}
	if minPrice != nil && maxPrice != nil && *minPrice > *maxPrice {
		return Restaurant{}, fmt.Errorf("min price %g exceeds max price %g", *minPrice, *maxPrice)
	}
	if rating < 0 || rating > 5 {
		return Restaurant{}, fmt.Errorf("rating %g out of range [0,5]", rating)
	}
	if reviewCount < 0 {
		return Restaurant{}, fmt.Errorf("review count must be non-negative")
	}
	if reviewCount == 0 {
		rating = 0
	}
	return Restaurant{
		id:          id,
		name:        name,
		description: description,
		location:    location,
		cuisines:    cuisines,
		tags:        tags,
		minPrice:    minPrice,
		maxPrice:    maxPrice,
		rating:      rating,
		reviewCount: reviewCount,
		hours:       hours,
	}, nil
}

// ID returns the opaque unique identifier.
func (r *Restaurant) ID() string { return r.id }

// Name returns the display name.
func (r *Restaurant) Name() string { return r.name }

// Description returns the free-text description.
func (r *Restaurant) Description() string { return r.description }

// Location returns the coordinates, or nil when the entry has none.
func (r *Restaurant) Location() *geo.Point { return r.location }

// Cuisines returns the cuisine-type terms.
func (r *Restaurant) Cuisines() []Term { return r.cuisines }

// Tags returns the tag terms.
func (r *Restaurant) Tags() []Term { return r.tags }

// MinPrice returns the lower bound of typical spend, or nil.
func (r *Restaurant) MinPrice() *float64 { return r.minPrice }

// MaxPrice returns the upper bound of typical spend, or nil.
func (r *Restaurant) MaxPrice() *float64 { return r.maxPrice }

// Rating returns the average rating in [0,5]; 0 when there are no reviews.
func (r *Restaurant) Rating() float64 { return r.rating }

// ReviewCount returns the number of reviews.
func (r *Restaurant) ReviewCount() int { return r.reviewCount }

// Hours returns the per-weekday operating intervals.
func (r *Restaurant) Hours() Hours { return r.hours }

// HasCuisineAny reports whether any of the given cuisine ids is present.
// An empty query set imposes no constraint.
func (r *Restaurant) HasCuisineAny(ids []string) bool {
	return termsIntersect(r.cuisines, ids)
}

// HasTagAny reports whether any of the given tag ids is present.
// An empty query set imposes no constraint.
func (r *Restaurant) HasTagAny(ids []string) bool {
	return termsIntersect(r.tags, ids)
}

func termsIntersect(terms []Term, ids []string) bool {
	if len(ids) == 0 {
		return true
	}
	for _, t := range terms {
		for _, id := range ids {
			if t.id == id {
				return true
			}
		}
	}
	return false
}
