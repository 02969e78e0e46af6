package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vietbites/discovery/internal/domain/geo"
	"github.com/vietbites/discovery/internal/domain/restaurant"
)

// termRow is the JSON-serializable representation of a vocabulary term.
type termRow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// hoursRow maps weekday number (0 = Sunday) to [open, close] minute pairs.
type hoursRow map[string][][2]int

// restaurantToHash converts a domain Restaurant to a flat map for HSET.
// The *_ids fields mirror the JSON terms so the FT index can TAG-filter them.
func restaurantToHash(r *restaurant.Restaurant) (map[string]string, error) {
	m := map[string]string{
		"name":         r.Name(),
		"description":  r.Description(),
		"cuisine_ids":  strings.Join(termIDs(r.Cuisines()), ","),
		"tag_ids":      strings.Join(termIDs(r.Tags()), ","),
		"rating":       strconv.FormatFloat(r.Rating(), 'f', -1, 64),
		"review_count": strconv.Itoa(r.ReviewCount()),
	}

	cuisinesJSON, err := json.Marshal(termRows(r.Cuisines()))
	if err != nil {
		return nil, fmt.Errorf("marshal cuisines: %w", err)
	}
	m["cuisines_json"] = string(cuisinesJSON)

	tagsJSON, err := json.Marshal(termRows(r.Tags()))
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}
	m["tags_json"] = string(tagsJSON)

	if loc := r.Location(); loc != nil {
		m["lat"] = strconv.FormatFloat(loc.Lat(), 'f', -1, 64)
		m["lon"] = strconv.FormatFloat(loc.Lon(), 'f', -1, 64)
	}
	if p := r.MinPrice(); p != nil {
		m["min_price"] = strconv.FormatFloat(*p, 'f', -1, 64)
	}
	if p := r.MaxPrice(); p != nil {
		m["max_price"] = strconv.FormatFloat(*p, 'f', -1, 64)
	}

	if len(r.Hours()) > 0 {
		row := make(hoursRow, len(r.Hours()))
		for day, ivs := range r.Hours() {
			pairs := make([][2]int, len(ivs))
			for i, iv := range ivs {
				pairs[i] = [2]int{iv.Open(), iv.Close()}
			}
			row[strconv.Itoa(int(day))] = pairs
		}
		hoursJSON, err := json.Marshal(row)
		if err != nil {
			return nil, fmt.Errorf("marshal hours: %w", err)
		}
		m["hours_json"] = string(hoursJSON)
	}

	return m, nil
}

// restaurantFromHash hydrates a domain Restaurant from an HGETALL/FT.SEARCH
// field map.
func restaurantFromHash(id string, m map[string]string) (restaurant.Restaurant, error) {
	var location *geo.Point
	if latStr, ok := m["lat"]; ok && latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return restaurant.Restaurant{}, fmt.Errorf("invalid lat: %w", err)
		}
		lon, err := strconv.ParseFloat(m["lon"], 64)
		if err != nil {
			return restaurant.Restaurant{}, fmt.Errorf("invalid lon: %w", err)
		}
		p, err := geo.NewPoint(lat, lon)
		if err != nil {
			return restaurant.Restaurant{}, err
		}
		location = &p
	}

	cuisines, err := termsFromJSON(m["cuisines_json"])
	if err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("cuisines: %w", err)
	}
	tags, err := termsFromJSON(m["tags_json"])
	if err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("tags: %w", err)
	}

	minPrice, err := optFloat(m, "min_price")
	if err != nil {
		return restaurant.Restaurant{}, err
	}
	maxPrice, err := optFloat(m, "max_price")
	if err != nil {
		return restaurant.Restaurant{}, err
	}

	rating := 0.0
	if s, ok := m["rating"]; ok && s != "" {
		if rating, err = strconv.ParseFloat(s, 64); err != nil {
			return restaurant.Restaurant{}, fmt.Errorf("invalid rating: %w", err)
		}
	}
	reviewCount := 0
	if s, ok := m["review_count"]; ok && s != "" {
		if reviewCount, err = strconv.Atoi(s); err != nil {
			return restaurant.Restaurant{}, fmt.Errorf("invalid review_count: %w", err)
		}
	}

	hours, err := hoursFromJSON(m["hours_json"])
	if err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("hours: %w", err)
	}

	return restaurant.New(
		id, m["name"], m["description"], location,
		cuisines, tags, minPrice, maxPrice, rating, reviewCount, hours,
	)
}

func termIDs(terms []restaurant.Term) []string {
	ids := make([]string, len(terms))
	for i, t := range terms {
		ids[i] = t.ID()
	}
	return ids
}

func termRows(terms []restaurant.Term) []termRow {
	rows := make([]termRow, len(terms))
	for i, t := range terms {
		rows[i] = termRow{ID: t.ID(), Name: t.Name()}
	}
	return rows
}

func termsFromJSON(s string) ([]restaurant.Term, error) {
	if s == "" {
		return nil, nil
	}
	var rows []termRow
	if err := json.Unmarshal([]byte(s), &rows); err != nil {
		return nil, err
	}
	terms := make([]restaurant.Term, 0, len(rows))
	for _, row := range rows {
		t, err := restaurant.NewTerm(row.ID, row.Name)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, nil
}

func hoursFromJSON(s string) (restaurant.Hours, error) {
	if s == "" {
		return nil, nil
	}
	var row hoursRow
	if err := json.Unmarshal([]byte(s), &row); err != nil {
		return nil, err
	}
	hours := make(restaurant.Hours, len(row))
	for dayStr, pairs := range row {
		day, err := strconv.Atoi(dayStr)
		if err != nil || day < 0 || day > 6 {
			return nil, fmt.Errorf("invalid weekday %q", dayStr)
		}
		ivs := make([]restaurant.Interval, 0, len(pairs))
		for _, pair := range pairs {
			iv, err := restaurant.NewInterval(pair[0], pair[1])
			if err != nil {
				return nil, err
			}
			ivs = append(ivs, iv)
		}
		hours[time.Weekday(day)] = ivs
	}
	return hours, nil
}

func optFloat(m map[string]string, key string) (*float64, error) {
	s, ok := m[key]
	if !ok || s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &f, nil
}
