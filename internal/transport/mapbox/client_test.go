package mapbox

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/vietbites/discovery/internal/domain"
	"github.com/vietbites/discovery/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterGeocodingMetrics()
	os.Exit(m.Run())
}

func testClient(searchURL, geocodeURL string) *Client {
	return NewClient(&Config{
		SearchBaseURL:  searchURL,
		GeocodeBaseURL: geocodeURL,
		AccessToken:    "test-token",
		Country:        "vn",
		Language:       "vi",
		BBox:           "102.14,8.18,109.46,23.39",
		Limit:          5,
		Timeout:        2 * time.Second,
		Logger:         zap.NewNop(),
	})
}

func TestClient_Suggest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/suggest" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "da nang" {
			t.Errorf("q = %q", q.Get("q"))
		}
		if q.Get("access_token") != "test-token" {
			t.Errorf("access_token = %q", q.Get("access_token"))
		}
		if q.Get("session_token") != "sess-1" {
			t.Errorf("session_token = %q", q.Get("session_token"))
		}
		if q.Get("country") != "vn" || q.Get("language") != "vi" {
			t.Errorf("country/language = %q/%q", q.Get("country"), q.Get("language"))
		}
		if q.Get("bbox") != "102.14,8.18,109.46,23.39" {
			t.Errorf("bbox = %q", q.Get("bbox"))
		}
		if q.Get("types") == "" {
			t.Error("types parameter missing")
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"suggestions": [
				{
					"mapbox_id": "place.1",
					"name": "Da Nang",
					"place_formatted": "Da Nang, Vietnam",
					"context": {"country": {"country_code": "VN"}}
				},
				{
					"mapbox_id": "place.2",
					"name": "Danang Beach",
					"place_formatted": "Son Tra, Da Nang",
					"context": {"country": {"country_code": "VN"}}
				}
			]
		}`))
	}))
	defer server.Close()

	c := testClient(server.URL, server.URL)

	got, err := c.Suggest(context.Background(), "da nang", "sess-1")
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(got))
	}
	if got[0].ID != "place.1" || got[0].Name != "Da Nang" {
		t.Errorf("first suggestion = %+v", got[0])
	}
	if got[0].CountryCode != "vn" {
		t.Errorf("country code = %q, want lowercase vn", got[0].CountryCode)
	}
}

func TestClient_Retrieve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/retrieve/place.1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"features": [
				{
					"geometry": {"type": "Point", "coordinates": [108.2022, 16.0544]},
					"properties": {"name": "Da Nang"}
				}
			]
		}`))
	}))
	defer server.Close()

	c := testClient(server.URL, server.URL)

	got, err := c.Retrieve(context.Background(), "place.1", "sess-1")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	// GeoJSON coordinates are [lon, lat]; make sure they did not get swapped.
	if got.Lat != 16.0544 || got.Lon != 108.2022 {
		t.Errorf("got lat=%g lon=%g, want lat=16.0544 lon=108.2022", got.Lat, got.Lon)
	}
	if got.Text != "Da Nang" {
		t.Errorf("text = %q", got.Text)
	}
}

func TestClient_RetrieveEmptyFeatures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"features": []}`))
	}))
	defer server.Close()

	c := testClient(server.URL, server.URL)

	_, err := c.Retrieve(context.Background(), "place.9", "sess-1")
	if !errors.Is(err, domain.ErrGeocodingProviderError) {
		t.Errorf("error = %v, want ErrGeocodingProviderError", err)
	}
}

func TestClient_Forward(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Hoi An.json" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"features": [
				{
					"place_type": ["place"],
					"text": "Hoi An",
					"center": [108.3380, 15.8801]
				},
				{
					"place_type": ["poi"],
					"text": "Hoi An Market",
					"center": []
				}
			]
		}`))
	}))
	defer server.Close()

	c := testClient(server.URL, server.URL)

	got, err := c.Forward(context.Background(), "Hoi An")
	if err != nil {
		t.Fatalf("Forward() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d features, want 1 (malformed center dropped)", len(got))
	}
	if got[0].Text != "Hoi An" || got[0].Lat != 15.8801 {
		t.Errorf("feature = %+v", got[0])
	}
	if len(got[0].PlaceType) != 1 || got[0].PlaceType[0] != "place" {
		t.Errorf("place_type = %v", got[0].PlaceType)
	}
}

func TestClient_ProviderErrors(t *testing.T) {
	t.Run("http status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message": "invalid token"}`))
		}))
		defer server.Close()

		c := testClient(server.URL, server.URL)
		_, err := c.Suggest(context.Background(), "hue", "sess-1")
		if !errors.Is(err, domain.ErrGeocodingProviderError) {
			t.Errorf("error = %v, want ErrGeocodingProviderError", err)
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		c := testClient("http://127.0.0.1:1", "http://127.0.0.1:1")
		_, err := c.Forward(context.Background(), "hue")
		if !errors.Is(err, domain.ErrGeocodingProviderError) {
			t.Errorf("error = %v, want ErrGeocodingProviderError", err)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer server.Close()

		c := testClient(server.URL, server.URL)
		_, err := c.Forward(context.Background(), "hue")
		if !errors.Is(err, domain.ErrGeocodingProviderError) {
			t.Errorf("error = %v, want ErrGeocodingProviderError", err)
		}
	})
}
