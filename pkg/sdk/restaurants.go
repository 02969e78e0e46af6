package discovery

import (
	"context"
	"net/http"
	"net/url"
)

// Interval is one operating window as wall-clock times ("18:00"). A close
// time earlier than open means the window runs past midnight.
type Interval struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// RestaurantUpsert is the payload for creating or replacing a restaurant.
// Hours keys are lowercase English weekday names.
type RestaurantUpsert struct {
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Location    *Location             `json:"location,omitempty"`
	Cuisines    []Term                `json:"cuisines,omitempty"`
	Tags        []Term                `json:"tags,omitempty"`
	MinPrice    *float64              `json:"min_price,omitempty"`
	MaxPrice    *float64              `json:"max_price,omitempty"`
	Rating      float64               `json:"rating"`
	ReviewCount int                   `json:"review_count"`
	Hours       map[string][]Interval `json:"hours,omitempty"`
}

// UpsertRestaurant creates or replaces one restaurant.
func (c *Client) UpsertRestaurant(ctx context.Context, id string, r RestaurantUpsert) error {
	return c.do(ctx, http.MethodPut, "/api/v1/restaurants/"+url.PathEscape(id), r, nil)
}

// UpsertRestaurants creates or replaces a batch of restaurants keyed by id.
func (c *Client) UpsertRestaurants(ctx context.Context, restaurants map[string]RestaurantUpsert) error {
	body := struct {
		Restaurants map[string]RestaurantUpsert `json:"restaurants"`
	}{Restaurants: restaurants}
	return c.do(ctx, http.MethodPost, "/api/v1/restaurants/batch", body, nil)
}

// DeleteRestaurant removes one restaurant from the catalog.
func (c *Client) DeleteRestaurant(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/restaurants/"+url.PathEscape(id), nil, nil)
}
