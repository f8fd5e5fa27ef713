// Package courierrepo provides data transfer objects and mapping functions for
// courier profile persistence. A profile shares its primary key with the
// courier's user row, keeping the relationship strictly one to one.
package courierrepo

import (
	"github.com/google/uuid"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
)

// ProfileDTO represents the database structure for persisting courier profiles.
// Rating is null until the first delivery rating arrives; location is null
// until the courier first reports a position.
type ProfileDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	VehicleType     string    `gorm:"type:varchar(64);not null"`
	VehiclePlate    string    `gorm:"type:varchar(32)"`
	Rating          *float64
	RatingCount     int `gorm:"not null;default:0"`
	Latitude        *float64
	Longitude       *float64
	TotalDeliveries int `gorm:"not null;default:0"`
}

// TableName specifies the database table name for courier profiles.
func (ProfileDTO) TableName() string {
	return "courier_profiles"
}

// fromDomain converts a courier profile to its database representation.
func fromDomain(profile *courier.Profile) ProfileDTO {
	dto := ProfileDTO{
		ID:              profile.ID().Bytes(),
		VehicleType:     profile.VehicleType(),
		VehiclePlate:    profile.VehiclePlate(),
		Rating:          profile.Rating(),
		RatingCount:     profile.RatingCount(),
		TotalDeliveries: profile.TotalDeliveries(),
	}

	if loc := profile.Location(); loc != nil {
		lat, lng := loc.Latitude(), loc.Longitude()
		dto.Latitude, dto.Longitude = &lat, &lng
	}

	return dto
}

// toDomain converts a database DTO to a courier profile using RestoreProfile.
func toDomain(dto ProfileDTO) (*courier.Profile, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.Location
	if dto.Latitude != nil && dto.Longitude != nil {
		loc, locErr := kernel.NewLocation(*dto.Latitude, *dto.Longitude)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	return courier.RestoreProfile(
		id,
		dto.VehicleType,
		dto.VehiclePlate,
		dto.Rating,
		dto.RatingCount,
		location,
		dto.TotalDeliveries,
	)
}
