package discovery

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SearchParams are the search request parameters. Zero values are omitted.
type SearchParams struct {
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
	At           time.Time
	Sort         string
	Page         int
	PageSize     int
}

// Term is a cuisine or tag attached to a restaurant.
type Term struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Location is a WGS84 coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Restaurant is one search hit.
type Restaurant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Location    *Location `json:"location,omitempty"`
	Cuisines    []Term    `json:"cuisines,omitempty"`
	Tags        []Term    `json:"tags,omitempty"`
	MinPrice    *float64  `json:"min_price,omitempty"`
	MaxPrice    *float64  `json:"max_price,omitempty"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	DistanceKm  *float64  `json:"distance_km,omitempty"`
}

// ResolvedLocation reports how free-form location text was resolved.
type ResolvedLocation struct {
	Place  string  `json:"place,omitempty"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Source string  `json:"source"` // gazetteer, provider, or fallback
}

// SearchResult is one page of ranked search hits.
type SearchResult struct {
	Items            []Restaurant      `json:"items"`
	Total            int               `json:"total"`
	Page             int               `json:"page"`
	PageSize         int               `json:"page_size"`
	ResolvedLocation *ResolvedLocation `json:"resolved_location,omitempty"`
}

// Search runs a restaurant search.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	var result SearchResult
	if err := c.do(ctx, http.MethodGet, "/api/v1/search?"+params.encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p SearchParams) encode() string {
	vals := url.Values{}
	if p.Text != "" {
		vals.Set("q", p.Text)
	}
	if p.LocationText != "" {
		vals.Set("location", p.LocationText)
	}
	if p.Latitude != nil {
		vals.Set("lat", formatFloat(*p.Latitude))
	}
	if p.Longitude != nil {
		vals.Set("lon", formatFloat(*p.Longitude))
	}
	if p.RadiusKm > 0 {
		vals.Set("radius_km", formatFloat(p.RadiusKm))
	}
	if len(p.CuisineIDs) > 0 {
		vals.Set("cuisines", strings.Join(p.CuisineIDs, ","))
	}
	if len(p.TagIDs) > 0 {
		vals.Set("tags", strings.Join(p.TagIDs, ","))
	}
	if p.MinPrice != nil {
		vals.Set("min_price", formatFloat(*p.MinPrice))
	}
	if p.MaxPrice != nil {
		vals.Set("max_price", formatFloat(*p.MaxPrice))
	}
	if p.MinRating != nil {
		vals.Set("min_rating", formatFloat(*p.MinRating))
	}
	if p.OpenNow {
		vals.Set("open_now", "true")
		if !p.At.IsZero() {
			vals.Set("at", p.At.Format(time.RFC3339))
		}
	}
	if p.Sort != "" {
		vals.Set("sort", p.Sort)
	}
	if p.Page > 0 {
		vals.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		vals.Set("page_size", strconv.Itoa(p.PageSize))
	}
	return vals.Encode()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
