package chi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vietbites/discovery/internal/domain/geo"
	"github.com/vietbites/discovery/internal/domain/geocode"
	"github.com/vietbites/discovery/internal/domain/restaurant"
	"github.com/vietbites/discovery/internal/domain/search/result"
)

// termPayload is a cuisine or tag term on the wire.
type termPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type locationPayload struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// intervalPayload is one operating interval as wall-clock times ("18:00").
// Close earlier than open means the interval runs past midnight.
type intervalPayload struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// restaurantPayload is the ingest request body.
type restaurantPayload struct {
	Name        string                       `json:"name"`
	Description string                       `json:"description,omitempty"`
	Location    *locationPayload             `json:"location,omitempty"`
	Cuisines    []termPayload                `json:"cuisines,omitempty"`
	Tags        []termPayload                `json:"tags,omitempty"`
	MinPrice    *float64                     `json:"min_price,omitempty"`
	MaxPrice    *float64                     `json:"max_price,omitempty"`
	Rating      float64                      `json:"rating"`
	ReviewCount int                          `json:"review_count"`
	Hours       map[string][]intervalPayload `json:"hours,omitempty"`
}

// batchPayload is the batch ingest request body.
type batchPayload struct {
	Restaurants map[string]restaurantPayload `json:"restaurants"`
}

// resultItemPayload is one search hit on the wire.
type resultItemPayload struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Location    *locationPayload `json:"location,omitempty"`
	Cuisines    []termPayload    `json:"cuisines,omitempty"`
	Tags        []termPayload    `json:"tags,omitempty"`
	MinPrice    *float64         `json:"min_price,omitempty"`
	MaxPrice    *float64         `json:"max_price,omitempty"`
	Rating      float64          `json:"rating"`
	ReviewCount int              `json:"review_count"`
	DistanceKm  *float64         `json:"distance_km,omitempty"`
}

// resolvedLocationPayload reports how location text was resolved.
type resolvedLocationPayload struct {
	Place  string  `json:"place,omitempty"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Source string  `json:"source"`
}

// searchResponsePayload is the search response body.
type searchResponsePayload struct {
	Items            []resultItemPayload      `json:"items"`
	Total            int                      `json:"total"`
	Page             int                      `json:"page"`
	PageSize         int                      `json:"page_size"`
	ResolvedLocation *resolvedLocationPayload `json:"resolved_location,omitempty"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// parseClock parses "HH:MM" into minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

func hoursFromPayload(p map[string][]intervalPayload) (restaurant.Hours, error) {
	if len(p) == 0 {
		return nil, nil
	}
	hours := make(restaurant.Hours, len(p))
	for dayName, intervals := range p {
		day, ok := weekdayNames[strings.ToLower(dayName)]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", dayName)
		}
		ivs := make([]restaurant.Interval, 0, len(intervals))
		for _, ip := range intervals {
			open, err := parseClock(ip.Open)
			if err != nil {
				return nil, err
			}
			cl, err := parseClock(ip.Close)
			if err != nil {
				return nil, err
			}
			iv, err := restaurant.NewInterval(open, cl)
			if err != nil {
				return nil, err
			}
			ivs = append(ivs, iv)
		}
		hours[day] = ivs
	}
	return hours, nil
}

func termsFromPayload(ps []termPayload) ([]restaurant.Term, error) {
	if len(ps) == 0 {
		return nil, nil
	}
	terms := make([]restaurant.Term, 0, len(ps))
	for _, p := range ps {
		t, err := restaurant.NewTerm(p.ID, p.Name)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, nil
}

// restaurantFromPayload builds the domain record from an ingest body.
func restaurantFromPayload(id string, p restaurantPayload) (restaurant.Restaurant, error) {
	var location *geo.Point
	if p.Location != nil {
		pt, err := geo.NewPoint(p.Location.Lat, p.Location.Lon)
		if err != nil {
			return restaurant.Restaurant{}, err
		}
		location = &pt
	}

	cuisines, err := termsFromPayload(p.Cuisines)
	if err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("cuisines: %w", err)
	}
	tags, err := termsFromPayload(p.Tags)
	if err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("tags: %w", err)
	}

	hours, err := hoursFromPayload(p.Hours)
	if err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("hours: %w", err)
	}

	return restaurant.New(
		id, p.Name, p.Description, location,
		cuisines, tags, p.MinPrice, p.MaxPrice, p.Rating, p.ReviewCount, hours,
	)
}

func termsToPayload(terms []restaurant.Term) []termPayload {
	if len(terms) == 0 {
		return nil
	}
	out := make([]termPayload, len(terms))
	for i, t := range terms {
		out[i] = termPayload{ID: t.ID(), Name: t.Name()}
	}
	return out
}

func itemToPayload(it *result.Item) resultItemPayload {
	r := it.Restaurant()
	p := resultItemPayload{
		ID:          r.ID(),
		Name:        r.Name(),
		Description: r.Description(),
		Cuisines:    termsToPayload(r.Cuisines()),
		Tags:        termsToPayload(r.Tags()),
		MinPrice:    r.MinPrice(),
		MaxPrice:    r.MaxPrice(),
		Rating:      r.Rating(),
		ReviewCount: r.ReviewCount(),
		DistanceKm:  it.DistanceKm(),
	}
	if loc := r.Location(); loc != nil {
		p.Location = &locationPayload{Lat: loc.Lat(), Lon: loc.Lon()}
	}
	return p
}

func pageToPayload(page *result.Page, res *geocode.Resolution) searchResponsePayload {
	items := make([]resultItemPayload, len(page.Items()))
	for i := range page.Items() {
		items[i] = itemToPayload(&page.Items()[i])
	}
	payload := searchResponsePayload{
		Items:    items,
		Total:    page.Total(),
		Page:     page.Page(),
		PageSize: page.PageSize(),
	}
	if res != nil {
		payload.ResolvedLocation = &resolvedLocationPayload{
			Place:  res.Place(),
			Lat:    res.Point().Lat(),
			Lon:    res.Point().Lon(),
			Source: string(res.Source()),
		}
	}
	return payload
}
