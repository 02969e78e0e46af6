// Package search is the ranking pipeline: resolve location, filter by text,
// facets, and distance, then rank and paginate. All stages past the catalog
// fetch run in memory on the candidate set.
package search

import (
	"context"
	"fmt"

	"github.com/vietbites/discovery/internal/domain/geo"
	"github.com/vietbites/discovery/internal/domain/geocode"
	"github.com/vietbites/discovery/internal/domain/restaurant"
	"github.com/vietbites/discovery/internal/domain/search/query"
	"github.com/vietbites/discovery/internal/domain/search/result"
)

// Service orchestrates the search pipeline.
type Service struct {
	catalog  Catalog
	resolver Resolver
}

// New creates a search service.
func New(catalog Catalog, resolver Resolver) *Service {
	return &Service{catalog: catalog, resolver: resolver}
}

// Search runs one query through the pipeline. The returned resolution is nil
// when no location text was resolved (caller gave coordinates, or the query
// had no location at all). "No results" is an empty page, never an error.
func (s *Service) Search(ctx context.Context, q *query.Query) (result.Page, *geocode.Resolution, error) {
	if q.TextTooShort() {
		return result.Empty(q.Page(), q.PageSize()), nil, nil
	}

	point, resolution := s.anchor(ctx, q)

	candidates, err := s.catalog.Find(ctx, q.Facets())
	if err != nil {
		return result.Page{}, nil, fmt.Errorf("fetch candidates: %w", err)
	}

	matched := candidates[:0:0]
	for i := range candidates {
		r := &candidates[i]
		if !matchesText(r, q.Text()) {
			continue
		}
		if !matchesFacets(r, q) {
			continue
		}
		matched = append(matched, candidates[i])
	}

	items := applySpatial(matched, point, q.RadiusKm())

	rank(items, q.Sort(), point != nil)

	return paginate(items, q.Page(), q.PageSize()), resolution, nil
}

// anchor determines the query point. Caller-supplied coordinates win; location
// text goes through the resolver; otherwise the search is non-spatial.
func (s *Service) anchor(ctx context.Context, q *query.Query) (*geo.Point, *geocode.Resolution) {
	if q.Point() != nil {
		return q.Point(), nil
	}
	if q.LocationText() == "" {
		return nil, nil
	}
	res := s.resolver.Resolve(ctx, q.LocationText())
	p := res.Point()
	return &p, &res
}

func matchesFacets(r *restaurant.Restaurant, q *query.Query) bool {
	if !r.HasCuisineAny(q.CuisineIDs()) {
		return false
	}
	if !r.HasTagAny(q.TagIDs()) {
		return false
	}
	if q.MinPrice() != nil {
		if r.MinPrice() == nil || *r.MinPrice() < *q.MinPrice() {
			return false
		}
	}
	if q.MaxPrice() != nil {
		if r.MaxPrice() == nil || *r.MaxPrice() > *q.MaxPrice() {
			return false
		}
	}
	if q.MinRating() != nil && r.Rating() < *q.MinRating() {
		return false
	}
	if q.OpenNow() && !r.Hours().OpenAt(q.Now()) {
		return false
	}
	return true
}
