package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"moments/internal/models/db_models"
)

// ActivityRepositoryInterface is the storage contract every backend satisfies.
// Missing ids surface as gorm.ErrRecordNotFound, whatever the backend.
type ActivityRepositoryInterface interface {
	CreateActivity(ctx context.Context, activity *db_models.Activity) error
	ListActivities(ctx context.Context) ([]db_models.Activity, error)
	GetActivityByID(ctx context.Context, id uint) (*db_models.Activity, error)
	UpdateActivity(ctx context.Context, activity *db_models.Activity) error
	DeleteActivity(ctx context.Context, id uint) error
}

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepositoryInterface {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) CreateActivity(ctx context.Context, activity *db_models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *ActivityRepository) ListActivities(ctx context.Context) ([]db_models.Activity, error) {
	var activities []db_models.Activity
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&activities).Error
	return activities, err
}

func (r *ActivityRepository) GetActivityByID(ctx context.Context, id uint) (*db_models.Activity, error) {
	var activity db_models.Activity
	if err := r.db.WithContext(ctx).First(&activity, id).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

// UpdateActivity overwrites every mutable column of the row matching
// activity.ID, then reloads it so the caller sees the stored record.
func (r *ActivityRepository) UpdateActivity(ctx context.Context, activity *db_models.Activity) error {
	res := r.db.WithContext(ctx).
		Model(&db_models.Activity{}).
		Where("id = ?", activity.ID).
		Updates(map[string]interface{}{
			"title":          activity.Title,
			"description":    activity.Description,
			"address":        activity.Address,
			"labels":         activity.Labels,
			"picture":        activity.Picture,
			"ayoub_rating":   activity.AyoubRating,
			"medina_rating":  activity.MedinaRating,
			"date":           activity.Date,
			"moment":         activity.Moment,
			"schema_version": activity.SchemaVersion,
			"updated_at":     time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return r.db.WithContext(ctx).First(activity, activity.ID).Error
}

func (r *ActivityRepository) DeleteActivity(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&db_models.Activity{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
