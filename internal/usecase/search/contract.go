package search

import (
	"context"

	"github.com/vietbites/discovery/internal/domain/geocode"
	"github.com/vietbites/discovery/internal/domain/restaurant"
	"github.com/vietbites/discovery/internal/domain/search/query"
)

// Catalog is the read-only candidate source. The facet pre-filter trims what
// the catalog ships back; the pipeline's own stages stay authoritative.
type Catalog interface {
	Find(ctx context.Context, facets query.Facets) ([]restaurant.Restaurant, error)
}

// Resolver turns free-form location text into coordinates.
// Resolution is total; failures degrade to a fallback instead of erroring.
type Resolver interface {
	Resolve(ctx context.Context, locationText string) geocode.Resolution
}
