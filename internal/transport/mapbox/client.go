// Package mapbox implements the geocoding provider contract against a
// Mapbox-shaped HTTP API: session-scoped suggest/retrieve plus plain
// forward geocoding.
package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vietbites/discovery/internal/domain"
	"github.com/vietbites/discovery/internal/metrics"
	"github.com/vietbites/discovery/internal/usecase/geocode"
)

// suggestTypes limits suggest candidates to place-like features; POIs and
// categories are noise for area resolution.
const suggestTypes = "region,district,place,locality,neighborhood,address"

// Client talks to a Mapbox-shaped geocoding API.
type Client struct {
	httpClient     *http.Client
	searchBaseURL  string
	geocodeBaseURL string
	accessToken    string
	country        string
	language       string
	bbox           string
	limit          int
	logger         *zap.Logger
}

// Config holds the geocoding provider settings.
type Config struct {
	SearchBaseURL  string
	GeocodeBaseURL string
	AccessToken    string
	Country        string
	Language       string
	BBox           string // "west,south,east,north", empty to skip
	Limit          int
	Timeout        time.Duration
	Logger         *zap.Logger
}

// NewClient creates a geocoding provider client.
func NewClient(cfg *Config) *Client {
	limit := cfg.Limit
	if limit <= 0 {
		limit = 5
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient:     &http.Client{Timeout: timeout},
		searchBaseURL:  strings.TrimRight(cfg.SearchBaseURL, "/"),
		geocodeBaseURL: strings.TrimRight(cfg.GeocodeBaseURL, "/"),
		accessToken:    cfg.AccessToken,
		country:        cfg.Country,
		language:       cfg.Language,
		bbox:           cfg.BBox,
		limit:          limit,
		logger:         logger,
	}
}

type suggestResponse struct {
	Suggestions []struct {
		MapboxID       string `json:"mapbox_id"`
		Name           string `json:"name"`
		PlaceFormatted string `json:"place_formatted"`
		Context        struct {
			Country struct {
				CountryCode string `json:"country_code"`
			} `json:"country"`
		} `json:"context"`
	} `json:"suggestions"`
}

type retrieveResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
		Properties struct {
			Name string `json:"name"`
		} `json:"properties"`
	} `json:"features"`
}

type forwardResponse struct {
	Features []struct {
		PlaceType []string  `json:"place_type"`
		Text      string    `json:"text"`
		Center    []float64 `json:"center"` // [lon, lat]
	} `json:"features"`
}

// Suggest implements geocode.CoordinateProvider.
func (c *Client) Suggest(ctx context.Context, query, sessionToken string) ([]geocode.Suggestion, error) {
	params := c.commonParams()
	params.Set("q", query)
	params.Set("session_token", sessionToken)
	params.Set("types", suggestTypes)

	var resp suggestResponse
	if err := c.get(ctx, "suggest", c.searchBaseURL+"/suggest?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	out := make([]geocode.Suggestion, 0, len(resp.Suggestions))
	for _, s := range resp.Suggestions {
		out = append(out, geocode.Suggestion{
			ID:             s.MapboxID,
			Name:           s.Name,
			PlaceFormatted: s.PlaceFormatted,
			CountryCode:    strings.ToLower(s.Context.Country.CountryCode),
		})
	}
	return out, nil
}

// Retrieve implements geocode.CoordinateProvider.
func (c *Client) Retrieve(ctx context.Context, id, sessionToken string) (geocode.Feature, error) {
	params := url.Values{}
	params.Set("access_token", c.accessToken)
	params.Set("session_token", sessionToken)

	endpoint := c.searchBaseURL + "/retrieve/" + url.PathEscape(id) + "?" + params.Encode()

	var resp retrieveResponse
	if err := c.get(ctx, "retrieve", endpoint, &resp); err != nil {
		return geocode.Feature{}, err
	}
	if len(resp.Features) == 0 {
		return geocode.Feature{}, fmt.Errorf("retrieve %s: empty feature set: %w", id, domain.ErrGeocodingProviderError)
	}

	coords := resp.Features[0].Geometry.Coordinates
	if len(coords) < 2 {
		return geocode.Feature{}, fmt.Errorf("retrieve %s: malformed coordinates: %w", id, domain.ErrGeocodingProviderError)
	}
	// GeoJSON order is [lon, lat].
	return geocode.Feature{
		Text: resp.Features[0].Properties.Name,
		Lon:  coords[0],
		Lat:  coords[1],
	}, nil
}

// Forward implements geocode.CoordinateProvider.
func (c *Client) Forward(ctx context.Context, query string) ([]geocode.Feature, error) {
	params := c.commonParams()

	endpoint := c.geocodeBaseURL + "/" + url.PathEscape(query) + ".json?" + params.Encode()

	var resp forwardResponse
	if err := c.get(ctx, "forward", endpoint, &resp); err != nil {
		return nil, err
	}

	out := make([]geocode.Feature, 0, len(resp.Features))
	for _, f := range resp.Features {
		if len(f.Center) < 2 {
			continue
		}
		out = append(out, geocode.Feature{
			PlaceType: f.PlaceType,
			Text:      f.Text,
			Lon:       f.Center[0],
			Lat:       f.Center[1],
		})
	}
	return out, nil
}

func (c *Client) commonParams() url.Values {
	params := url.Values{}
	params.Set("access_token", c.accessToken)
	params.Set("limit", strconv.Itoa(c.limit))
	if c.country != "" {
		params.Set("country", c.country)
	}
	if c.language != "" {
		params.Set("language", c.language)
	}
	if c.bbox != "" {
		params.Set("bbox", c.bbox)
	}
	return params
}

// get performs an HTTP GET with transport-level metrics, decoding the JSON
// body into out. All failures are wrapped with domain.ErrGeocodingProviderError.
func (c *Client) get(ctx context.Context, endpoint, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, domain.ErrGeocodingProviderError)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		metrics.GeocodingRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		c.logger.Warn("geocoding request failed",
			zap.String("endpoint", endpoint), zap.Error(err))
		return fmt.Errorf("%s request: %v: %w", endpoint, err, domain.ErrGeocodingProviderError)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.GeocodingRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("geocoding request rejected",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return fmt.Errorf("%s request: status %d: %w", endpoint, resp.StatusCode, domain.ErrGeocodingProviderError)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.GeocodingRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("decode %s response: %v: %w", endpoint, err, domain.ErrGeocodingProviderError)
	}

	metrics.GeocodingRequestsTotal.WithLabelValues(endpoint, "success").Inc()
	metrics.GeocodingRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
	return nil
}
