package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"marketplace/internal/core/application/access"
	"marketplace/internal/core/domain/model/kernel"
)

// GetUserNotificationsQueryHandler lists the caller's notifications, newest first.
type GetUserNotificationsQueryHandler struct {
	db    *gorm.DB
	guard access.Guard
}

// NewGetUserNotificationsQueryHandler creates a handler for the notification feed.
func NewGetUserNotificationsQueryHandler(db *gorm.DB, guard access.Guard) GetUserNotificationsQueryHandler {
	return GetUserNotificationsQueryHandler{db: db, guard: guard}
}

// Handle executes the feed query.
func (h GetUserNotificationsQueryHandler) Handle(ctx context.Context, limit int) ([]NotificationResponse, error) {
	caller, err := h.guard.RequireCaller(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			type,
			title,
			message,
			read,
			order_id,
			courier_id,
			rating,
			transaction_id,
			amount,
			created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, caller.ID().String(), clampLimit(limit)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]NotificationResponse, 0)
	for rows.Next() {
		resp, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}

func scanNotification(rows *sql.Rows) (NotificationResponse, error) {
	var (
		resp          NotificationResponse
		id            uuid.UUID
		orderID       uuid.NullUUID
		courierID     uuid.NullUUID
		rating        sql.NullInt64
		transactionID uuid.NullUUID
		amount        sql.NullFloat64
	)

	if err := rows.Scan(
		&id,
		&resp.Type,
		&resp.Title,
		&resp.Message,
		&resp.Read,
		&orderID,
		&courierID,
		&rating,
		&transactionID,
		&amount,
		&resp.CreatedAt,
	); err != nil {
		return NotificationResponse{}, err
	}

	notificationID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return NotificationResponse{}, err
	}
	resp.ID = notificationID

	resp.OrderID, err = nullableUUID(orderID)
	if err != nil {
		return NotificationResponse{}, err
	}
	resp.CourierID, err = nullableUUID(courierID)
	if err != nil {
		return NotificationResponse{}, err
	}
	resp.TransactionID, err = nullableUUID(transactionID)
	if err != nil {
		return NotificationResponse{}, err
	}

	if rating.Valid {
		r := int(rating.Int64)
		resp.Rating = &r
	}
	if amount.Valid {
		a := amount.Float64
		resp.Amount = &a
	}

	return resp, nil
}

func nullableUUID(value uuid.NullUUID) (*kernel.UUID, error) {
	if !value.Valid {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(value.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
