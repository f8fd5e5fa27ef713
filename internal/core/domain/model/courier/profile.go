package courier

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	// RatingMin is the lowest rating a client can give.
	RatingMin = 1
	// RatingMax is the highest rating a client can give.
	RatingMax = 5
)

// Domain errors for courier profile operations.
var (
	// ErrProfileIsNotConstructed is returned when using an improperly initialized Profile.
	ErrProfileIsNotConstructed = errors.New("Profile must be created via NewProfile constructor")
	// ErrVehicleTypeIsRequired is returned when attempting to create a profile without a vehicle type.
	ErrVehicleTypeIsRequired = errs.NewValueIsRequiredError("vehicleType")
)

// Profile is the courier-side extension of a user with the courier role.
// It is an aggregate root owning vehicle metadata, the running reputation
// average, and delivery statistics.
//
// The rating is a running (not windowed) average: old ratings are never
// decayed or removed. Until the first review both the rating and its count
// are absent. The read-modify-write in ApplyRating relies on the per-record
// serialization provided by the unit of work; it is not safe to call
// concurrently for the same courier outside a transaction.
type Profile struct {
	id              kernel.UUID
	vehicleType     string
	vehiclePlate    string
	rating          *float64
	ratingCount     int
	location        *kernel.Location
	totalDeliveries int

	guard guard.ConstructorGuard
}

// NewProfile creates a courier profile for the user identified by id.
// The profile starts unrated with no recorded deliveries.
func NewProfile(id kernel.UUID, vehicleType string, vehiclePlate string) (*Profile, error) {
	p := &Profile{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setVehicleType(vehicleType),
	); err != nil {
		return nil, err
	}

	p.vehiclePlate = vehiclePlate
	return p, nil
}

// RestoreProfile reconstructs a courier profile from persistent storage.
func RestoreProfile(
	id kernel.UUID,
	vehicleType string,
	vehiclePlate string,
	rating *float64,
	ratingCount int,
	location *kernel.Location,
	totalDeliveries int,
) (*Profile, error) {
	p := &Profile{
		vehiclePlate:    vehiclePlate,
		location:        location,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setVehicleType(vehicleType),
		p.setRatingState(rating, ratingCount),
		p.setTotalDeliveries(totalDeliveries),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the Profile instance was properly constructed.
func (p *Profile) Validate() error {
	if p == nil {
		return ErrProfileIsNotConstructed
	}
	return p.guard.Validate(ErrProfileIsNotConstructed)
}

// ID returns the profile's identifier, which equals the owning user's ID.
func (p *Profile) ID() kernel.UUID {
	return p.id
}

// VehicleType returns the courier's vehicle type.
func (p *Profile) VehicleType() string {
	return p.vehicleType
}

// VehiclePlate returns the courier's vehicle plate, if any.
func (p *Profile) VehiclePlate() string {
	return p.vehiclePlate
}

// Rating returns the running average rating.
// Returns nil until the first review is applied.
func (p *Profile) Rating() *float64 {
	return p.rating
}

// RatingCount returns the number of reviews aggregated into the rating.
func (p *Profile) RatingCount() int {
	return p.ratingCount
}

// Location returns the courier's last reported position, if any.
func (p *Profile) Location() *kernel.Location {
	return p.location
}

// TotalDeliveries returns the number of completed deliveries.
func (p *Profile) TotalDeliveries() int {
	return p.totalDeliveries
}

// ApplyRating folds a new review into the running average.
// An absent rating is treated as (0, 0), so the first review becomes the
// average verbatim. The rating must be within [RatingMin, RatingMax].
func (p *Profile) ApplyRating(rating int) error {
	if rating < RatingMin || rating > RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", rating, RatingMin, RatingMax)
	}

	var current float64
	if p.rating != nil {
		current = *p.rating
	}

	updated := (current*float64(p.ratingCount) + float64(rating)) / float64(p.ratingCount+1)
	p.rating = &updated
	p.ratingCount++
	return nil
}

// RecordDelivery increments the completed-delivery counter.
func (p *Profile) RecordDelivery() {
	p.totalDeliveries++
}

// ChangeVehicle replaces the courier's vehicle details.
func (p *Profile) ChangeVehicle(vehicleType string, vehiclePlate string) error {
	if err := p.setVehicleType(vehicleType); err != nil {
		return err
	}
	p.vehiclePlate = vehiclePlate
	return nil
}

// MoveTo updates the courier's last reported position.
func (p *Profile) MoveTo(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	p.location = &location
	return nil
}

func (p *Profile) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Profile) setVehicleType(vehicleType string) error {
	if vehicleType == "" {
		return ErrVehicleTypeIsRequired
	}
	p.vehicleType = vehicleType
	return nil
}

func (p *Profile) setRatingState(rating *float64, ratingCount int) error {
	if ratingCount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("ratingCount",
			fmt.Errorf("%d is negative", ratingCount))
	}
	if rating != nil && (*rating < 0 || *rating > RatingMax) {
		return errs.NewValueIsOutOfRangeError("rating", *rating, 0, RatingMax)
	}
	if rating == nil && ratingCount > 0 {
		return errs.NewValueIsRequiredError("rating")
	}
	p.rating = rating
	p.ratingCount = ratingCount
	return nil
}

func (p *Profile) setTotalDeliveries(totalDeliveries int) error {
	if totalDeliveries < 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalDeliveries",
			fmt.Errorf("%d is negative", totalDeliveries))
	}
	p.totalDeliveries = totalDeliveries
	return nil
}
