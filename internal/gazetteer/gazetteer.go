// Package gazetteer provides the first-tier geocoding path: a static table of
// known city names and aliases resolved locally, with no network call.
package gazetteer

import (
	"strings"

	"github.com/vietbites/discovery/internal/domain/geo"
)

// Entry is one gazetteer city with its coordinate and name aliases.
// Aliases cover diacritic and ASCII spellings of the same place.
type Entry struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
	Lat     float64  `yaml:"lat"`
	Lon     float64  `yaml:"lon"`
}

type city struct {
	canonical string
	names     []string // lowercased canonical + aliases
	point     geo.Point
}

// Gazetteer resolves place names against a fixed city table.
// Immutable after construction, safe for concurrent use.
type Gazetteer struct {
	cities []city
}

// New builds a gazetteer from entries. Entries with invalid coordinates are
// skipped rather than failing construction.
func New(entries []Entry) *Gazetteer {
	g := &Gazetteer{cities: make([]city, 0, len(entries))}
	for _, e := range entries {
		p, err := geo.NewPoint(e.Lat, e.Lon)
		if err != nil {
			continue
		}
		names := make([]string, 0, len(e.Aliases)+1)
		names = append(names, strings.ToLower(strings.TrimSpace(e.Name)))
		for _, a := range e.Aliases {
			names = append(names, strings.ToLower(strings.TrimSpace(a)))
		}
		g.cities = append(g.cities, city{canonical: e.Name, names: names, point: p})
	}
	return g
}

// Lookup resolves text against the table: exact match first, then
// prefix/suffix, then substring. Returns the coordinate, the canonical city
// name, and whether a tier matched.
func (g *Gazetteer) Lookup(text string) (geo.Point, string, bool) {
	norm := strings.ToLower(strings.TrimSpace(text))
	if norm == "" {
		return geo.Point{}, "", false
	}

	for _, c := range g.cities {
		for _, n := range c.names {
			if norm == n {
				return c.point, c.canonical, true
			}
		}
	}

	for _, c := range g.cities {
		for _, n := range c.names {
			if strings.HasPrefix(norm, n) || strings.HasSuffix(norm, n) {
				return c.point, c.canonical, true
			}
		}
	}

	for _, c := range g.cities {
		for _, n := range c.names {
			if strings.Contains(norm, n) || strings.Contains(n, norm) {
				return c.point, c.canonical, true
			}
		}
	}

	return geo.Point{}, "", false
}

// AliasIn returns the first known alias appearing in both candidate and input,
// used to pick among provider suggestions.
func (g *Gazetteer) AliasIn(candidate, input string) (string, bool) {
	cand := strings.ToLower(candidate)
	in := strings.ToLower(input)
	for _, c := range g.cities {
		for _, n := range c.names {
			if strings.Contains(cand, n) && strings.Contains(in, n) {
				return n, true
			}
		}
	}
	return "", false
}

// Default returns the built-in table for the operating region: major
// Vietnamese cities with diacritic and ASCII aliases.
func Default() []Entry {
	return []Entry{
		{Name: "Đà Nẵng", Aliases: []string{"Da Nang", "Danang"}, Lat: 16.0544, Lon: 108.2022},
		{Name: "Hà Nội", Aliases: []string{"Hanoi", "Ha Noi"}, Lat: 21.0285, Lon: 105.8542},
		{Name: "TP. Hồ Chí Minh", Aliases: []string{"Ho Chi Minh City", "Ho Chi Minh", "Sài Gòn", "Saigon", "HCMC"}, Lat: 10.7769, Lon: 106.7009},
		{Name: "Huế", Aliases: []string{"Hue"}, Lat: 16.4637, Lon: 107.5909},
		{Name: "Hội An", Aliases: []string{"Hoi An"}, Lat: 15.8801, Lon: 108.3380},
		{Name: "Nha Trang", Aliases: []string{}, Lat: 12.2388, Lon: 109.1967},
		{Name: "Cần Thơ", Aliases: []string{"Can Tho"}, Lat: 10.0452, Lon: 105.7469},
		{Name: "Hải Phòng", Aliases: []string{"Hai Phong", "Haiphong"}, Lat: 20.8449, Lon: 106.6881},
		{Name: "Đà Lạt", Aliases: []string{"Da Lat", "Dalat"}, Lat: 11.9404, Lon: 108.4583},
		{Name: "Vũng Tàu", Aliases: []string{"Vung Tau"}, Lat: 10.3460, Lon: 107.0843},
	}
}
