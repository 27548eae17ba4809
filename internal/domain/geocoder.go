package domain

import "context"

// Coordinates is a resolved latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Geocoder resolves a town and US state code to coordinates.
//
// Implementations return ErrLocationNotFound when the provider has no match
// and wrap ErrExternalService for transport or non-200 failures.
type Geocoder interface {
	Resolve(ctx context.Context, town, state string) (Coordinates, error)
}
