// Package geocode resolves city names to coordinates.
//
// The only implementation today is [MapsCo], backed by the free
// geocode.maps.co API. The [Provider] interface keeps callers decoupled so
// tests inject fakes and another backend can slot in later.
package geocode

import (
	"context"
	"errors"

	"github.com/fiberarts/fiberfind/pkg/geo"
)

// Provider resolves a city name to geographic coordinates.
type Provider interface {
	Geocode(ctx context.Context, city string) (geo.Point, error)
}

// Common errors returned by providers.
var (
	// ErrNoMatch means the service answered but knows no such city.
	ErrNoMatch = errors.New("no match for city")
	// ErrBadResponse means the service answered with something unusable.
	ErrBadResponse = errors.New("unusable geocoding response")
)
