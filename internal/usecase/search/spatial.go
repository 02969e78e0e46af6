package search

import (
	"github.com/vietbites/discovery/internal/domain/geo"
	"github.com/vietbites/discovery/internal/domain/restaurant"
	"github.com/vietbites/discovery/internal/domain/search/result"
)

// applySpatial converts survivors to result items. With a query point, each
// item carries its distance and entries outside the radius or without a
// location are dropped. Without a point, every entry passes with nil distance.
func applySpatial(matched []restaurant.Restaurant, point *geo.Point, radiusKm float64) []result.Item {
	items := make([]result.Item, 0, len(matched))

	if point == nil {
		for _, r := range matched {
			items = append(items, result.NewItem(r, nil))
		}
		return items
	}

	for _, r := range matched {
		loc := r.Location()
		if loc == nil {
			continue
		}
		d := geo.HaversineKm(*point, *loc)
		if d > radiusKm {
			continue
		}
		items = append(items, result.NewItem(r, &d))
	}
	return items
}
