package domain

import "errors"

var (
	// ErrValidation signals a rejected request (bad input).
	ErrValidation = errors.New("validation failed")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrCatalogUnavailable signals a catalog store failure.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrGeocodingProviderError signals a geocoding provider failure.
	// Absorbed inside the resolver; surfaced only in logs and metrics.
	ErrGeocodingProviderError = errors.New("geocoding provider error")
)
