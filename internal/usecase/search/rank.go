package search

import (
	"sort"

	"github.com/vietbites/discovery/internal/domain/search/result"
	"github.com/vietbites/discovery/internal/domain/search/sortby"
)

// Composite score weights. Rating carries most of the signal so that raw
// popularity cannot overcome poor ratings.
const (
	ratingWeight = 0.7
	reviewWeight = 0.3
)

func compositeScore(it *result.Item) float64 {
	r := it.Restaurant()
	return r.Rating()*ratingWeight + float64(r.ReviewCount())*reviewWeight
}

// rank orders items in place. Every comparator breaks ties on restaurant id,
// so a fixed candidate set always yields identical ordering. A distance sort
// without a query point silently degrades to relevance.
func rank(items []result.Item, strategy sortby.Strategy, hasPoint bool) {
	if strategy == sortby.Distance && !hasPoint {
		strategy = sortby.Relevance
	}

	var less func(a, b *result.Item) bool
	switch strategy {
	case sortby.Rating:
		less = func(a, b *result.Item) bool {
			ra, rb := a.Restaurant().Rating(), b.Restaurant().Rating()
			if ra != rb {
				return ra > rb
			}
			return a.Restaurant().ID() < b.Restaurant().ID()
		}
	case sortby.Distance:
		less = func(a, b *result.Item) bool {
			da, db := a.DistanceKm(), b.DistanceKm()
			if da != nil && db != nil && *da != *db {
				return *da < *db
			}
			return a.Restaurant().ID() < b.Restaurant().ID()
		}
	case sortby.Name:
		less = func(a, b *result.Item) bool {
			na, nb := a.Restaurant().Name(), b.Restaurant().Name()
			if na != nb {
				return na < nb
			}
			return a.Restaurant().ID() < b.Restaurant().ID()
		}
	default: // relevance
		less = func(a, b *result.Item) bool {
			sa, sb := compositeScore(a), compositeScore(b)
			if sa != sb {
				return sa > sb
			}
			return a.Restaurant().ID() < b.Restaurant().ID()
		}
	}

	sort.Slice(items, func(i, j int) bool { return less(&items[i], &items[j]) })
}
