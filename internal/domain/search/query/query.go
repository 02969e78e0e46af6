package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/vietbites/discovery/internal/domain"
	"github.com/vietbites/discovery/internal/domain/geo"
	"github.com/vietbites/discovery/internal/domain/search/sortby"
)

// Search parameter limits and defaults.
const (
	// MinTextLength rejects one- and two-character scans outright.
	MinTextLength   = 3
	DefaultRadiusKm = 5.0
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxTextLength   = 256
)

// Params carries raw, unvalidated search input.
type Params struct {
	Text         string
	LocationText string
	Latitude     *float64
	Longitude    *float64
	RadiusKm     float64
	CuisineIDs   []string
	TagIDs       []string
	MinPrice     *float64
	MaxPrice     *float64
	MinRating    *float64
	OpenNow      bool
	Now          time.Time
	Sort         sortby.Strategy
	Page         int
	PageSize     int
}

// Query is a validated, immutable search request.
type Query struct {
	text         string
	locationText string
	point        *geo.Point
	radiusKm     float64
	cuisineIDs   []string
	tagIDs       []string
	minPrice     *float64
	maxPrice     *float64
	minRating    *float64
	openNow      bool
	now          time.Time
	sort         sortby.Strategy
	page         int
	pageSize     int
}

// New validates and normalizes search parameters.
// Defaults: radius 5 km, sort relevance, page 1, pageSize 20 (capped at 100).
// Explicit coordinates take precedence over location text.
func New(p Params) (Query, error) {
	return NewWithLimits(p, DefaultPageSize, MaxPageSize)
}

// NewWithLimits is New with configurable page-size default and cap.
// Non-positive limits fall back to the package defaults.
func NewWithLimits(p Params, defaultPageSize, maxPageSize int) (Query, error) {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	if maxPageSize <= 0 {
		maxPageSize = MaxPageSize
	}
	text := strings.TrimSpace(p.Text)
	if len(text) > MaxTextLength {
		return Query{}, fmt.Errorf("%w: text too long (max %d chars)", domain.ErrValidation, MaxTextLength)
	}

	if (p.Latitude == nil) != (p.Longitude == nil) {
		return Query{}, fmt.Errorf("%w: latitude and longitude must be supplied together", domain.ErrValidation)
	}

	var point *geo.Point
	if p.Latitude != nil {
		pt, err := geo.NewPoint(*p.Latitude, *p.Longitude)
		if err != nil {
			return Query{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		point = &pt
	}

	radius := p.RadiusKm
	if radius <= 0 {
		radius = DefaultRadiusKm
	}

	if p.MinPrice != nil && p.MaxPrice != nil && *p.MinPrice > *p.MaxPrice {
		return Query{}, fmt.Errorf("%w: min price exceeds max price", domain.ErrValidation)
	}
	if p.MinRating != nil && (*p.MinRating < 0 || *p.MinRating > 5) {
		return Query{}, fmt.Errorf("%w: min rating must be in [0,5]", domain.ErrValidation)
	}
	if p.OpenNow && p.Now.IsZero() {
		return Query{}, fmt.Errorf("%w: open-now filter requires a reference time", domain.ErrValidation)
	}

	s := p.Sort
	if s == "" {
		s = sortby.Relevance
	}
	if !s.IsValid() {
		return Query{}, fmt.Errorf("%w: unknown sort %q", domain.ErrValidation, p.Sort)
	}

	page := p.Page
	if page < 1 {
		page = DefaultPage
	}
	pageSize := p.PageSize
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize < 0 {
		return Query{}, fmt.Errorf("%w: page size must be positive", domain.ErrValidation)
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	locationText := strings.TrimSpace(p.LocationText)
	if point != nil {
		locationText = ""
	}

	return Query{
		text:         text,
		locationText: locationText,
		point:        point,
		radiusKm:     radius,
		cuisineIDs:   p.CuisineIDs,
		tagIDs:       p.TagIDs,
		minPrice:     p.MinPrice,
		maxPrice:     p.MaxPrice,
		minRating:    p.MinRating,
		openNow:      p.OpenNow,
		now:          p.Now,
		sort:         s,
		page:         page,
		pageSize:     pageSize,
	}, nil
}

// Text returns the trimmed free-text query.
func (q *Query) Text() string { return q.text }

// HasText reports whether a free-text query is present.
func (q *Query) HasText() bool { return q.text != "" }

// TextTooShort reports whether a present text is below the minimum length.
// The pipeline short-circuits such queries to an empty result.
func (q *Query) TextTooShort() bool {
	return q.text != "" && len([]rune(q.text)) < MinTextLength
}

// LocationText returns the free-form location, empty when coordinates were given.
func (q *Query) LocationText() string { return q.locationText }

// Point returns the caller-supplied coordinates, or nil.
func (q *Query) Point() *geo.Point { return q.point }

// RadiusKm returns the spatial filter radius.
func (q *Query) RadiusKm() float64 { return q.radiusKm }

// CuisineIDs returns the cuisine facet; empty means no constraint.
func (q *Query) CuisineIDs() []string { return q.cuisineIDs }

// TagIDs returns the tag facet; empty means no constraint.
func (q *Query) TagIDs() []string { return q.tagIDs }

// MinPrice returns the lower price bound, or nil.
func (q *Query) MinPrice() *float64 { return q.minPrice }

// MaxPrice returns the upper price bound, or nil.
func (q *Query) MaxPrice() *float64 { return q.maxPrice }

// MinRating returns the minimum rating bound, or nil.
func (q *Query) MinRating() *float64 { return q.minRating }

// OpenNow reports whether the open-now facet is requested.
func (q *Query) OpenNow() bool { return q.openNow }

// Now returns the caller-supplied reference time for open-now evaluation.
func (q *Query) Now() time.Time { return q.now }

// Sort returns the requested ordering strategy.
func (q *Query) Sort() sortby.Strategy { return q.sort }

// Page returns the 1-based page number.
func (q *Query) Page() int { return q.page }

// PageSize returns the page size.
func (q *Query) PageSize() int { return q.pageSize }

// Facets returns the discrete predicates the catalog source can pre-apply.
func (q *Query) Facets() Facets {
	return Facets{
		CuisineIDs: q.cuisineIDs,
		TagIDs:     q.tagIDs,
		MinPrice:   q.minPrice,
		MaxPrice:   q.maxPrice,
		MinRating:  q.minRating,
	}
}

// Facets is the catalog-side pre-filter: AND across categories, OR within.
// Open-now and text matching stay in the engine; the catalog cannot evaluate
// a caller-supplied clock or substring semantics.
type Facets struct {
	CuisineIDs []string
	TagIDs     []string
	MinPrice   *float64
	MaxPrice   *float64
	MinRating  *float64
}
