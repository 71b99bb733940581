package kernel

import (
	"tracking/internal/pkg/errs"
)

// Geographic coordinate bounds in decimal degrees.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// GeoPoint is a value object representing a geographic position reported at a
// checkpoint. Coordinates are decimal degrees (WGS 84).
//
// The zero value is invalid; construct through NewGeoPoint. GeoPoint is
// immutable and safe for concurrent use.
type GeoPoint struct {
	latitude  float64
	longitude float64

	isConstructed bool
}

// NewGeoPoint creates a GeoPoint, validating that latitude lies within
// [-90, 90] and longitude within [-180, 180].
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	if latitude < MinLatitude || latitude > MaxLatitude {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}
	if longitude < MinLongitude || longitude > MaxLongitude {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}

	return GeoPoint{
		latitude:      latitude,
		longitude:     longitude,
		isConstructed: true,
	}, nil
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// IsEqual reports whether two points have identical coordinates.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.latitude == other.latitude && p.longitude == other.longitude
}

// Validate ensures the point was created through NewGeoPoint.
func (p GeoPoint) Validate() error {
	if !p.isConstructed {
		return errs.NewValueIsRequiredError("GeoPoint must be created via NewGeoPoint")
	}
	return nil
}
