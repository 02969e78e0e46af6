package geocode

import "github.com/vietbites/discovery/internal/domain/geo"

// Source tags how a resolution was obtained, so callers and logs can tell
// "resolved precisely" apart from "guessed".
type Source string

// Resolution sources.
const (
	// SourceGazetteer means a local static city-table hit, no network call.
	SourceGazetteer Source = "gazetteer"
	// SourceProvider means the external geocoding provider resolved the text.
	SourceProvider Source = "provider"
	// SourceFallback means resolution failed and the default center was used.
	SourceFallback Source = "fallback"
)

// Resolution is the outcome of resolving free-form location text.
// The resolver is total: it always yields usable coordinates.
type Resolution struct {
	point  geo.Point
	source Source
	place  string
}

// New creates a resolution.
func New(point geo.Point, source Source, place string) Resolution {
	return Resolution{point: point, source: source, place: place}
}

// Point returns the resolved coordinates.
func (r Resolution) Point() geo.Point { return r.point }

// Source returns how the coordinates were obtained.
func (r Resolution) Source() Source { return r.source }

// Place returns the matched place name, when one is known.
func (r Resolution) Place() string { return r.place }

// Precise reports whether the resolution is better than a blind fallback.
func (r Resolution) Precise() bool { return r.source != SourceFallback }
