// Package notificationrepo provides data transfer objects and mapping
// functions for notification persistence. The typed payload union is
// flattened into nullable columns; the notification type decides which
// columns are read back.
package notificationrepo

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/pkg/errs"
)

// NotificationDTO represents the database structure for persisting notifications.
type NotificationDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type          string     `gorm:"type:varchar(32);not null"`
	Title         string     `gorm:"type:varchar(255);not null"`
	Message       string     `gorm:"type:varchar(1024);not null"`
	OrderID       *uuid.UUID `gorm:"type:uuid;index"`
	CourierID     *uuid.UUID `gorm:"type:uuid"`
	Rating        *int
	TransactionID *uuid.UUID `gorm:"type:uuid"`
	Amount        *float64
	Read          bool       `gorm:"not null;default:false;index"`
	CreatedAt     time.Time  `gorm:"not null;index"`
}

// TableName specifies the database table name for notification entities.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// fromDomain converts a notification to its database representation.
func fromDomain(entity *notification.Notification) NotificationDTO {
	dto := NotificationDTO{
		ID:        entity.ID().Bytes(),
		UserID:    entity.UserID().Bytes(),
		Type:      entity.Type().String(),
		Title:     entity.Title(),
		Message:   entity.Message(),
		Read:      entity.IsRead(),
		CreatedAt: entity.CreatedAt(),
	}

	switch payload := entity.Payload().(type) {
	case notification.OrderPayload:
		orderID := payload.OrderID.Bytes()
		dto.OrderID = &orderID
	case notification.AssignmentPayload:
		orderID := payload.OrderID.Bytes()
		courierID := payload.CourierID.Bytes()
		dto.OrderID = &orderID
		dto.CourierID = &courierID
	case notification.RatingPayload:
		orderID := payload.OrderID.Bytes()
		rating := payload.Rating
		dto.OrderID = &orderID
		dto.Rating = &rating
	case notification.DepositPayload:
		transactionID := payload.TransactionID.Bytes()
		amount := payload.Amount
		dto.TransactionID = &transactionID
		dto.Amount = &amount
	}

	return dto
}

// toDomain converts a database DTO to a notification using RestoreNotification.
func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	notType, err := notification.TypeFromString(dto.Type)
	if err != nil {
		return nil, err
	}

	payload, err := payloadFromColumns(notType, dto)
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(
		id,
		userID,
		notType,
		dto.Title,
		dto.Message,
		payload,
		dto.Read,
		dto.CreatedAt,
	)
}

// payloadFromColumns rebuilds the typed payload the notification type demands.
func payloadFromColumns(notType notification.Type, dto NotificationDTO) (notification.Payload, error) {
	switch notType {
	case notification.TypeOrderCreated,
		notification.TypeOrderAvailable,
		notification.TypeOrderCancelled,
		notification.TypeOrderDelivered:
		orderID, err := requiredUUID("order_id", dto.OrderID)
		if err != nil {
			return nil, err
		}
		return notification.OrderPayload{OrderID: orderID}, nil

	case notification.TypeOrderAccepted:
		orderID, err := requiredUUID("order_id", dto.OrderID)
		if err != nil {
			return nil, err
		}
		courierID, err := requiredUUID("courier_id", dto.CourierID)
		if err != nil {
			return nil, err
		}
		return notification.AssignmentPayload{OrderID: orderID, CourierID: courierID}, nil

	case notification.TypeCourierRated:
		orderID, err := requiredUUID("order_id", dto.OrderID)
		if err != nil {
			return nil, err
		}
		if dto.Rating == nil {
			return nil, errs.NewValueIsRequiredError("rating")
		}
		return notification.RatingPayload{OrderID: orderID, Rating: *dto.Rating}, nil

	case notification.TypeDepositRequested,
		notification.TypeDepositApproved,
		notification.TypeDepositRejected:
		transactionID, err := requiredUUID("transaction_id", dto.TransactionID)
		if err != nil {
			return nil, err
		}
		if dto.Amount == nil {
			return nil, errs.NewValueIsRequiredError("amount")
		}
		return notification.DepositPayload{TransactionID: transactionID, Amount: *dto.Amount}, nil
	}

	return nil, errs.NewValueIsInvalidErrorWithCause("type",
		fmt.Errorf("%s has no payload shape", notType))
}

func requiredUUID(column string, value *uuid.UUID) (kernel.UUID, error) {
	if value == nil {
		return kernel.UUID{}, errs.NewValueIsRequiredError(column)
	}
	return kernel.UUIDFromBytes((*value)[:])
}
