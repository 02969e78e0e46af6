package result

import "github.com/vietbites/discovery/internal/domain/restaurant"

// Item is a single search hit: a restaurant plus its distance from the query
// point when spatial filtering was active.
type Item struct {
	restaurant restaurant.Restaurant
	distanceKm *float64
}

// NewItem creates a search hit.
func NewItem(r restaurant.Restaurant, distanceKm *float64) Item {
	return Item{restaurant: r, distanceKm: distanceKm}
}

// Restaurant returns the matched catalog entry.
func (it *Item) Restaurant() *restaurant.Restaurant { return &it.restaurant }

// DistanceKm returns the computed distance, or nil for non-geo searches.
func (it *Item) DistanceKm() *float64 { return it.distanceKm }

// Page is one slice of the ranked result set.
type Page struct {
	items    []Item
	total    int
	page     int
	pageSize int
}

// NewPage creates a result page. Total is the post-filter, pre-pagination count.
func NewPage(items []Item, total, page, pageSize int) Page {
	return Page{items: items, total: total, page: page, pageSize: pageSize}
}

// Empty returns an empty page preserving the requested page geometry.
func Empty(page, pageSize int) Page {
	return Page{total: 0, page: page, pageSize: pageSize}
}

// Items returns the hits on this page, in rank order.
func (p *Page) Items() []Item { return p.items }

// Total returns the number of hits across all pages.
func (p *Page) Total() int { return p.total }

// Page returns the 1-based page number.
func (p *Page) Page() int { return p.page }

// PageSize returns the page size.
func (p *Page) PageSize() int { return p.pageSize }
