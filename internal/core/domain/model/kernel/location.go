package kernel

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	// LocationMinLatitude is the minimum valid latitude in degrees.
	LocationMinLatitude float64 = -90
	// LocationMaxLatitude is the maximum valid latitude in degrees.
	LocationMaxLatitude float64 = 90
	// LocationMinLongitude is the minimum valid longitude in degrees.
	LocationMinLongitude float64 = -180
	// LocationMaxLongitude is the maximum valid longitude in degrees.
	LocationMaxLongitude float64 = 180
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly
// initialized Location. Locations must be created via NewLocation.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location represents a geographic point with validated coordinates.
// It is an immutable value object used for pickup and delivery positions of
// orders and for the current position reported by couriers.
//
// The zero value of Location is invalid and will fail validation - use the
// constructor to create instances.
//
// Example:
//
//	loc, err := kernel.NewLocation(40.7128, -74.0060)
//	if err != nil {
//	    // Handle validation error
//	}
type Location struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewLocation creates a new Location with the specified coordinates.
// Latitude must be within [-90, 90] and longitude within [-180, 180].
// Returns an error if either coordinate is outside those bounds.
func NewLocation(latitude float64, longitude float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate checks if the Location was properly constructed using the constructor.
// The zero value of Location is invalid and will fail this validation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Latitude returns the latitude in degrees.
func (l Location) Latitude() float64 {
	return l.latitude
}

// Longitude returns the longitude in degrees.
func (l Location) Longitude() float64 {
	return l.longitude
}

// IsEqual compares two locations by their coordinates.
func (l Location) IsEqual(other Location) bool {
	return l.latitude == other.latitude && l.longitude == other.longitude
}

// String returns a human-readable representation of the location.
func (l Location) String() string {
	return fmt.Sprintf("Location(%.6f,%.6f)", l.latitude, l.longitude)
}

func (l *Location) setLatitude(latitude float64) error {
	if latitude < LocationMinLatitude || latitude > LocationMaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LocationMinLatitude, LocationMaxLatitude)
	}
	l.latitude = latitude
	return nil
}

func (l *Location) setLongitude(longitude float64) error {
	if longitude < LocationMinLongitude || longitude > LocationMaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LocationMinLongitude, LocationMaxLongitude)
	}
	l.longitude = longitude
	return nil
}
