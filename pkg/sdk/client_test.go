package discovery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatal("expected error without base URL")
	}
}

func TestSearchEncodesParamsAndDecodesResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/search" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sdk-key" {
			t.Errorf("auth = %q", r.Header.Get("Authorization"))
		}
		q := r.URL.Query()
		if q.Get("q") != "banh mi" || q.Get("location") != "da nang" {
			t.Errorf("q/location = %q/%q", q.Get("q"), q.Get("location"))
		}
		if q.Get("cuisines") != "vietnamese,street-food" {
			t.Errorf("cuisines = %q", q.Get("cuisines"))
		}
		if q.Get("radius_km") != "2.5" {
			t.Errorf("radius_km = %q", q.Get("radius_km"))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SearchResult{
			Items: []Restaurant{
				{ID: "r1", Name: "Banh Mi Phuong", Rating: 4.7, ReviewCount: 1200},
			},
			Total:    1,
			Page:     1,
			PageSize: 20,
			ResolvedLocation: &ResolvedLocation{
				Place: "Đà Nẵng", Lat: 16.0544, Lon: 108.2022, Source: "gazetteer",
			},
		})
	}))
	defer server.Close()

	client, err := New(WithBaseURL(server.URL), WithAPIKey("sdk-key"))
	if err != nil {
		t.Fatal(err)
	}

	res, err := client.Search(context.Background(), SearchParams{
		Text:         "banh mi",
		LocationText: "da nang",
		RadiusKm:     2.5,
		CuisineIDs:   []string{"vietnamese", "street-food"},
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if res.Total != 1 || res.Items[0].ID != "r1" {
		t.Errorf("result = %+v", res)
	}
	if res.ResolvedLocation == nil || res.ResolvedLocation.Source != "gazetteer" {
		t.Errorf("resolved location = %+v", res.ResolvedLocation)
	}
}

func TestUpsertRestaurant(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/v1/restaurants/r1" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var body RestaurantUpsert
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Name != "Pho Bac Hai" {
			t.Errorf("name = %q", body.Name)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, err := New(WithBaseURL(server.URL))
	if err != nil {
		t.Fatal(err)
	}

	err = client.UpsertRestaurant(context.Background(), "r1", RestaurantUpsert{
		Name:   "Pho Bac Hai",
		Rating: 4.6, ReviewCount: 212,
		Hours: map[string][]Interval{"friday": {{Open: "18:00", Close: "02:00"}}},
	})
	if err != nil {
		t.Fatalf("UpsertRestaurant() error = %v", err)
	}
}

func TestAPIErrorParsing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code": "not_found", "message": "not found"}`))
	}))
	defer server.Close()

	client, err := New(WithBaseURL(server.URL))
	if err != nil {
		t.Fatal(err)
	}

	err = client.DeleteRestaurant(context.Background(), "ghost")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound = false for %v", err)
	}
	apiErr, ok := err.(*APIError)
	if !ok || apiErr.Code != "not_found" {
		t.Errorf("err = %#v", err)
	}
}
