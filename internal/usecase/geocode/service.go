// Package geocode resolves free-form location text to coordinates through a
// tiered strategy: local gazetteer first, then the remote provider, then a
// fixed fallback center. Resolution is total and never returns an error.
package geocode

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vietbites/discovery/internal/domain/geo"
	domgeo "github.com/vietbites/discovery/internal/domain/geocode"
	"github.com/vietbites/discovery/internal/gazetteer"
	"github.com/vietbites/discovery/internal/logger"
	"github.com/vietbites/discovery/internal/metrics"
)

// Resolver resolves location text to coordinates.
type Resolver struct {
	gaz           *gazetteer.Gazetteer
	provider      CoordinateProvider
	defaultCenter geo.Point
	defaultPlace  string
}

// NewResolver creates a resolver. provider may be nil, in which case only the
// gazetteer and fallback tiers are available.
func NewResolver(gaz *gazetteer.Gazetteer, provider CoordinateProvider, defaultCenter geo.Point, defaultPlace string) *Resolver {
	return &Resolver{
		gaz:           gaz,
		provider:      provider,
		defaultCenter: defaultCenter,
		defaultPlace:  defaultPlace,
	}
}

// Resolve turns location text into coordinates. It walks the tiers in order
// and always returns a usable resolution; provider failures degrade to the
// next tier instead of surfacing.
func (r *Resolver) Resolve(ctx context.Context, locationText string) domgeo.Resolution {
	log := logger.FromContext(ctx)
	text := strings.TrimSpace(locationText)
	if text == "" {
		return r.fallback(log, "empty location text")
	}

	if point, place, ok := r.gaz.Lookup(text); ok {
		metrics.GeocodingResolutionsTotal.WithLabelValues(string(domgeo.SourceGazetteer)).Inc()
		return domgeo.New(point, domgeo.SourceGazetteer, place)
	}

	if r.provider == nil {
		return r.fallback(log, "no provider configured")
	}

	if res, ok := r.resolveViaSuggest(ctx, text); ok {
		metrics.GeocodingResolutionsTotal.WithLabelValues(string(domgeo.SourceProvider)).Inc()
		return res
	}

	if res, ok := r.resolveViaForward(ctx, text); ok {
		metrics.GeocodingResolutionsTotal.WithLabelValues(string(domgeo.SourceProvider)).Inc()
		return res
	}

	return r.fallback(log, "all provider tiers failed", zap.String("location", text))
}

// ResolveArea is the cheaper variant used when the caller only needs an area
// centroid: it skips the suggest/retrieve session and goes straight to
// forward geocoding.
func (r *Resolver) ResolveArea(ctx context.Context, locationText string) domgeo.Resolution {
	log := logger.FromContext(ctx)
	text := strings.TrimSpace(locationText)
	if text == "" {
		return r.fallback(log, "empty location text")
	}

	if point, place, ok := r.gaz.Lookup(text); ok {
		metrics.GeocodingResolutionsTotal.WithLabelValues(string(domgeo.SourceGazetteer)).Inc()
		return domgeo.New(point, domgeo.SourceGazetteer, place)
	}

	if r.provider != nil {
		if res, ok := r.resolveViaForward(ctx, text); ok {
			metrics.GeocodingResolutionsTotal.WithLabelValues(string(domgeo.SourceProvider)).Inc()
			return res
		}
	}

	return r.fallback(log, "area resolution failed", zap.String("location", text))
}

// resolveViaSuggest runs a suggest+retrieve session against the provider and
// picks the best candidate.
func (r *Resolver) resolveViaSuggest(ctx context.Context, text string) (domgeo.Resolution, bool) {
	log := logger.FromContext(ctx)
	sessionToken := uuid.NewString()

	suggestions, err := r.provider.Suggest(ctx, text, sessionToken)
	if err != nil {
		log.Warn("suggest tier failed", zap.Error(err))
		return domgeo.Resolution{}, false
	}
	if len(suggestions) == 0 {
		return domgeo.Resolution{}, false
	}

	best := r.pickSuggestion(suggestions, text)

	feature, err := r.provider.Retrieve(ctx, best.ID, sessionToken)
	if err != nil {
		log.Warn("retrieve tier failed", zap.String("id", best.ID), zap.Error(err))
		return domgeo.Resolution{}, false
	}

	point, err := geo.NewPoint(feature.Lat, feature.Lon)
	if err != nil {
		log.Warn("retrieve returned invalid coordinates",
			zap.Float64("lat", feature.Lat), zap.Float64("lon", feature.Lon))
		return domgeo.Resolution{}, false
	}
	return domgeo.New(point, domgeo.SourceProvider, best.Name), true
}

// pickSuggestion chooses among provider candidates. Exact name match wins;
// then a shared gazetteer alias; then formatted-place overlap with the input;
// then the operating country; otherwise the provider's top result stands.
func (r *Resolver) pickSuggestion(suggestions []Suggestion, input string) Suggestion {
	in := strings.ToLower(input)

	for _, s := range suggestions {
		if strings.EqualFold(s.Name, input) {
			return s
		}
	}
	for _, s := range suggestions {
		if _, ok := r.gaz.AliasIn(s.Name, input); ok {
			return s
		}
	}
	for _, s := range suggestions {
		if s.PlaceFormatted == "" {
			continue
		}
		pf := strings.ToLower(s.PlaceFormatted)
		if strings.Contains(in, pf) || strings.Contains(pf, in) {
			return s
		}
	}
	for _, s := range suggestions {
		if s.CountryCode != "" && strings.Contains(in, s.CountryCode) {
			return s
		}
	}
	return suggestions[0]
}

// resolveViaForward runs plain forward geocoding, preferring city-level
// ("place") features whose name appears in the input.
func (r *Resolver) resolveViaForward(ctx context.Context, text string) (domgeo.Resolution, bool) {
	log := logger.FromContext(ctx)

	features, err := r.provider.Forward(ctx, text)
	if err != nil {
		log.Warn("forward tier failed", zap.Error(err))
		return domgeo.Resolution{}, false
	}
	if len(features) == 0 {
		return domgeo.Resolution{}, false
	}

	best := pickFeature(features, text)

	point, err := geo.NewPoint(best.Lat, best.Lon)
	if err != nil {
		log.Warn("forward returned invalid coordinates",
			zap.Float64("lat", best.Lat), zap.Float64("lon", best.Lon))
		return domgeo.Resolution{}, false
	}
	return domgeo.New(point, domgeo.SourceProvider, best.Text), true
}

func pickFeature(features []Feature, input string) Feature {
	in := strings.ToLower(input)

	for _, f := range features {
		if !isPlace(f) {
			continue
		}
		name := strings.ToLower(f.Text)
		if name == in || strings.Contains(in, name) {
			return f
		}
	}
	for _, f := range features {
		if isPlace(f) {
			return f
		}
	}
	return features[0]
}

func isPlace(f Feature) bool {
	for _, t := range f.PlaceType {
		if t == "place" || t == "locality" {
			return true
		}
	}
	return false
}

func (r *Resolver) fallback(log *zap.Logger, reason string, fields ...zap.Field) domgeo.Resolution {
	metrics.GeocodingResolutionsTotal.WithLabelValues(string(domgeo.SourceFallback)).Inc()
	log.Debug("location resolution fell back to default center",
		append([]zap.Field{zap.String("reason", reason)}, fields...)...)
	return domgeo.New(r.defaultCenter, domgeo.SourceFallback, r.defaultPlace)
}
