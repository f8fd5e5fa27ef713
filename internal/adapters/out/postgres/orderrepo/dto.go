// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored in its string form so rows stay readable and the
// compare-and-set guard can match against it directly.
type OrderDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber       string     `gorm:"type:varchar(32);not null;uniqueIndex"`
	UserID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	CourierID         *uuid.UUID `gorm:"type:uuid;index"`
	Item              string     `gorm:"type:varchar(255);not null"`
	PickupAddress     string     `gorm:"type:varchar(512);not null"`
	DeliveryAddress   string     `gorm:"type:varchar(512);not null"`
	PickupLatitude    *float64
	PickupLongitude   *float64
	DeliveryLatitude  *float64
	DeliveryLongitude *float64
	TotalAmount       float64 `gorm:"not null"`
	DeliveryFee       float64 `gorm:"not null"`
	Rating            *int
	Status            string    `gorm:"type:varchar(32);not null;index"`
	CreatedAt         time.Time `gorm:"not null"`
	AcceptedAt        *time.Time
	DeliveredAt       *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	dto := OrderDTO{
		ID:              aggregate.ID().Bytes(),
		OrderNumber:     aggregate.OrderNumber(),
		UserID:          aggregate.UserID().Bytes(),
		CourierID:       courierID,
		Item:            aggregate.Item(),
		PickupAddress:   aggregate.PickupAddress(),
		DeliveryAddress: aggregate.DeliveryAddress(),
		TotalAmount:     aggregate.TotalAmount(),
		DeliveryFee:     aggregate.DeliveryFee(),
		Rating:          aggregate.Rating(),
		Status:          aggregate.Status().String(),
		CreatedAt:       aggregate.CreatedAt(),
		AcceptedAt:      aggregate.AcceptedAt(),
		DeliveredAt:     aggregate.DeliveredAt(),
	}

	if loc := aggregate.PickupLocation(); loc != nil {
		lat, lng := loc.Latitude(), loc.Longitude()
		dto.PickupLatitude, dto.PickupLongitude = &lat, &lng
	}
	if loc := aggregate.DeliveryLocation(); loc != nil {
		lat, lng := loc.Latitude(), loc.Longitude()
		dto.DeliveryLatitude, dto.DeliveryLongitude = &lat, &lng
	}

	return dto
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	pickupLoc, err := locationFromColumns(dto.PickupLatitude, dto.PickupLongitude)
	if err != nil {
		return nil, err
	}
	deliveryLoc, err := locationFromColumns(dto.DeliveryLatitude, dto.DeliveryLongitude)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		userID,
		courierID,
		dto.Item,
		dto.PickupAddress,
		dto.DeliveryAddress,
		pickupLoc,
		deliveryLoc,
		dto.TotalAmount,
		dto.DeliveryFee,
		dto.Rating,
		status,
		dto.CreatedAt,
		dto.AcceptedAt,
		dto.DeliveredAt,
	)
}

func locationFromColumns(lat *float64, lng *float64) (*kernel.Location, error) {
	if lat == nil || lng == nil {
		return nil, nil
	}

	loc, err := kernel.NewLocation(*lat, *lng)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}
