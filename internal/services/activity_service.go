package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"moments/internal/models/db_models"
	"moments/internal/models/request_models"
	"moments/internal/models/response_models"
	"moments/internal/repositories"
	"moments/pkg/logger"
	"moments/pkg/metrics"
	"moments/pkg/utils"
)

const (
	DefaultRating = 5
	MinRating     = 1
	MaxRating     = 10
)

type ActivityServiceInterface interface {
	ListActivities(ctx context.Context) ([]response_models.ActivityResponse, error)
	CreateActivity(ctx context.Context, req request_models.ActivityRequest) (*response_models.ActivityResponse, error)
	UpdateActivity(ctx context.Context, req request_models.ActivityRequest) (*response_models.ActivityResponse, error)
	DeleteActivity(ctx context.Context, id uint) error
}

// NotificationQueue accepts activities to announce without waiting on delivery.
type NotificationQueue interface {
	Enqueue(activity response_models.ActivityResponse) bool
}

type ActivityService struct {
	activityRepo   repositories.ActivityRepositoryInterface
	notifications  NotificationQueue
	notifyOnCreate bool
	log            *logger.Logger
	location       *time.Location
}

func NewActivityService(
	activityRepo repositories.ActivityRepositoryInterface,
	notifications NotificationQueue,
	notifyOnCreate bool,
	log *logger.Logger,
) ActivityServiceInterface {
	return &ActivityService{
		activityRepo:   activityRepo,
		notifications:  notifications,
		notifyOnCreate: notifyOnCreate,
		log:            log.With("service", "ActivityService"),
		location:       time.Local,
	}
}

func (s *ActivityService) ListActivities(ctx context.Context) ([]response_models.ActivityResponse, error) {
	activities, err := s.activityRepo.ListActivities(ctx)
	metrics.RecordActivityOperation("list", err)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	out := make([]response_models.ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		resp, err := toActivityResponse(activity)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *ActivityService) CreateActivity(ctx context.Context, req request_models.ActivityRequest) (*response_models.ActivityResponse, error) {
	activity, err := s.buildActivity(req)
	if err != nil {
		return nil, err
	}

	err = s.activityRepo.CreateActivity(ctx, activity)
	metrics.RecordActivityOperation("create", err)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp, err := toActivityResponse(*activity)
	if err != nil {
		return nil, err
	}
	s.log.Info("activity created", "id", resp.ID, "title", resp.Title, "date", resp.Date)

	if s.notifyOnCreate && s.notifications != nil {
		if !s.notifications.Enqueue(resp) {
			s.log.Warn("notification not queued", "id", resp.ID)
		}
	}
	return &resp, nil
}

func (s *ActivityService) UpdateActivity(ctx context.Context, req request_models.ActivityRequest) (*response_models.ActivityResponse, error) {
	if req.ID == 0 {
		return nil, fmt.Errorf("%w: id is required", utils.ErrInvalidInput)
	}

	activity, err := s.buildActivity(req)
	if err != nil {
		return nil, err
	}
	activity.ID = req.ID

	err = s.activityRepo.UpdateActivity(ctx, activity)
	metrics.RecordActivityOperation("update", err)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp, err := toActivityResponse(*activity)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *ActivityService) DeleteActivity(ctx context.Context, id uint) error {
	if id == 0 {
		return fmt.Errorf("%w: id is required", utils.ErrInvalidInput)
	}

	err := s.activityRepo.DeleteActivity(ctx, id)
	metrics.RecordActivityOperation("delete", err)
	if err != nil {
		return mapRepositoryError(err)
	}
	s.log.Info("activity deleted", "id", id)
	return nil
}

// buildActivity validates a request and turns it into a storable record.
func (s *ActivityService) buildActivity(req request_models.ActivityRequest) (*db_models.Activity, error) {
	req = UpgradeActivityRequest(req)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", utils.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Date) == "" {
		return nil, fmt.Errorf("%w: date is required", utils.ErrInvalidInput)
	}
	date, err := utils.ParseDate(req.Date, s.location)
	if err != nil {
		return nil, err
	}

	ayoub, err := ratingOrDefault("ayoubRating", req.AyoubRating)
	if err != nil {
		return nil, err
	}
	medina, err := ratingOrDefault("medinaRating", req.MedinaRating)
	if err != nil {
		return nil, err
	}

	labels, err := utils.EncodeLabels(req.Labels)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrInvalidInput, err)
	}

	return &db_models.Activity{
		Title:         title,
		Description:   req.Description,
		Address:       strings.TrimSpace(req.Address),
		Labels:        labels,
		Picture:       strings.TrimSpace(req.Picture),
		AyoubRating:   ayoub,
		MedinaRating:  medina,
		Date:          utils.FormatDate(date),
		Moment:        req.Moment,
		SchemaVersion: db_models.CurrentSchemaVersion,
	}, nil
}

// ratingOrDefault treats an absent or zero rating as "not rated yet".
func ratingOrDefault(field string, value *int) (int, error) {
	if value == nil || *value == 0 {
		return DefaultRating, nil
	}
	if *value < MinRating || *value > MaxRating {
		return 0, fmt.Errorf("%w: %s must be between %d and %d", utils.ErrInvalidInput, field, MinRating, MaxRating)
	}
	return *value, nil
}

func toActivityResponse(activity db_models.Activity) (response_models.ActivityResponse, error) {
	labels, err := utils.DecodeLabels(activity.Labels)
	if err != nil {
		return response_models.ActivityResponse{}, fmt.Errorf("%w: activity %d: %w", utils.ErrDatabaseError, activity.ID, err)
	}
	return response_models.ActivityResponse{
		ID:           activity.ID,
		Title:        activity.Title,
		Description:  activity.Description,
		Address:      activity.Address,
		Labels:       labels,
		Picture:      activity.Picture,
		AyoubRating:  activity.AyoubRating,
		MedinaRating: activity.MedinaRating,
		Date:         activity.Date,
		Moment:       activity.Moment,
		CreatedAt:    activity.CreatedAt,
		UpdatedAt:    activity.UpdatedAt,
	}, nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrActivityNotFound
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", utils.ErrDatabaseError, err)
}
