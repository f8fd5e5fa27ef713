package courierrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// GormCourierRepository implements CourierRepository using GORM.
type GormCourierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCourierRepository creates a new GORM courier profile repository.
func NewGormCourierRepository(db *gorm.DB, tracker aggregateTracker) *GormCourierRepository {
	return &GormCourierRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new courier profile to the database.
func (r *GormCourierRepository) Add(ctx context.Context, profile *courier.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	dto := fromDomain(profile)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(profile.ID(), profile)
	return nil
}

// Update saves an existing courier profile to the database.
func (r *GormCourierRepository) Update(ctx context.Context, profile *courier.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	dto := fromDomain(profile)
	result := r.db.WithContext(ctx).Model(&ProfileDTO{}).Where("id = ?", dto.ID).
		Select("vehicle_type", "vehicle_plate", "rating", "rating_count",
			"latitude", "longitude", "total_deliveries").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(profile.ID(), profile)
	return nil
}

// Get retrieves a courier profile by the courier's user ID.
func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Profile, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProfileDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier profile", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
