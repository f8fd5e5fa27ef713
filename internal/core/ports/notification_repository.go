package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notifications.
type NotificationRepository interface {
	// Add persists a new notification.
	Add(ctx context.Context, aggregate *notification.Notification) error

	// Update persists changes to an existing notification.
	Update(ctx context.Context, aggregate *notification.Notification) error

	// Get retrieves a notification by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// MarkAllRead marks up to limit unread notifications of userID as read
	// and reports how many rows were affected. Callers loop until a page
	// comes back smaller than the limit, keeping each statement bounded.
	MarkAllRead(ctx context.Context, userID kernel.UUID, limit int) (int64, error)

	// DeleteByOrder removes every notification whose payload references
	// orderID. A non-nil exceptUserID spares that recipient's copies.
	DeleteByOrder(ctx context.Context, orderID kernel.UUID, exceptUserID *kernel.UUID) error

	// DeleteReadOlderThan removes up to limit read notifications created
	// before cutoff and reports how many rows were deleted.
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time, limit int) (int64, error)
}
