package geocode

import "context"

// Suggestion is one candidate returned by the provider's suggest endpoint.
// Suggestions carry no coordinates; a retrieve call is needed to get them.
type Suggestion struct {
	ID             string
	Name           string
	PlaceFormatted string
	CountryCode    string
}

// Feature is one geocoded result with coordinates attached.
type Feature struct {
	PlaceType []string
	Text      string
	Lat       float64
	Lon       float64
}

// CoordinateProvider is the remote geocoding contract. Implementations talk
// to a Mapbox-shaped API.
type CoordinateProvider interface {
	// Suggest returns ranked place candidates for a free-text query.
	// sessionToken groups suggest and retrieve calls for provider billing.
	Suggest(ctx context.Context, query, sessionToken string) ([]Suggestion, error)

	// Retrieve fetches the coordinates for a suggestion by its ID.
	Retrieve(ctx context.Context, id, sessionToken string) (Feature, error)

	// Forward geocodes a free-text query directly, without a session.
	Forward(ctx context.Context, query string) ([]Feature, error)
}
