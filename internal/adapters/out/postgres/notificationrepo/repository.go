package notificationrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/pkg/errs"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB, tracker aggregateTracker) *GormNotificationRepository {
	return &GormNotificationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new notification to the database.
func (r *GormNotificationRepository) Add(ctx context.Context, entity *notification.Notification) error {
	if err := entity.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entity)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(entity.ID(), entity)
	return nil
}

// Update saves an existing notification to the database.
func (r *GormNotificationRepository) Update(ctx context.Context, entity *notification.Notification) error {
	if err := entity.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entity)
	result := r.db.WithContext(ctx).Model(&NotificationDTO{}).Where("id = ?", dto.ID).
		Select("read").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(entity.ID(), entity)
	return nil
}

// Get retrieves a notification by ID.
func (r *GormNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// MarkAllRead marks up to limit unread notifications of userID as read and
// reports how many rows changed. Postgres has no LIMIT on UPDATE, so the
// batch is selected in a subquery.
func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, userID kernel.UUID, limit int) (int64, error) {
	if err := userID.Validate(); err != nil {
		return 0, err
	}
	if limit <= 0 {
		return 0, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE notifications SET read = TRUE
		WHERE id IN (
			SELECT id FROM notifications
			WHERE user_id = ? AND NOT read
			LIMIT ?
		)
	`, userID.Bytes(), limit)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// DeleteByOrder removes every notification referencing orderID, optionally
// sparing one recipient's rows so a final notice survives the prune.
func (r *GormNotificationRepository) DeleteByOrder(ctx context.Context, orderID kernel.UUID, exceptUserID *kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	query := r.db.WithContext(ctx).Where("order_id = ?", orderID.Bytes())
	if exceptUserID != nil {
		query = query.Where("user_id <> ?", exceptUserID.Bytes())
	}

	return query.Delete(&NotificationDTO{}).Error
}

// DeleteReadOlderThan removes up to limit read notifications created before
// cutoff and reports how many rows were deleted.
func (r *GormNotificationRepository) DeleteReadOlderThan(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	if limit <= 0 {
		return 0, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM notifications
		WHERE id IN (
			SELECT id FROM notifications
			WHERE read AND created_at < ?
			LIMIT ?
		)
	`, cutoff, limit)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
