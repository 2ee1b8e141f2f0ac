package floor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/seatmap/internal/domain/activity"
	"github.com/rpggio/seatmap/internal/repository"
)

// Service handles floor settings.
type Service struct {
	repo       Repository
	activities ActivityLogger
	logger     *slog.Logger
}

// NewService creates a new floor settings service. activities may be nil.
func NewService(repo Repository, activities ActivityLogger, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, activities: activities, logger: logger}
}

// Get returns the stored settings for floorID, or defaults if none exist.
func (s *Service) Get(ctx context.Context, floorID string) (*Settings, error) {
	if floorID == "" {
		return nil, ErrMissingFloor
	}
	settings, err := s.repo.Get(ctx, floorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			d := Defaults(floorID)
			return &d, nil
		}
		return nil, fmt.Errorf("getting floor settings: %w", err)
	}
	return settings, nil
}

// Save validates and stores settings, replacing any previous version.
func (s *Service) Save(ctx context.Context, settings Settings) (*Settings, error) {
	settings.Normalize()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	settings.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, &settings); err != nil {
		return nil, fmt.Errorf("saving floor settings: %w", err)
	}

	if s.activities != nil {
		floorID := settings.FloorID
		entry := &activity.ActivityEntry{
			ActivityType: activity.TypeFloorSettingsSaved,
			Summary:      "saved settings for floor " + floorID,
		}
		if err := s.activities.LogActivity(ctx, entry); err != nil {
			s.logger.Warn("activity log failed", "floor_id", floorID, "error", err)
		}
	}
	return &settings, nil
}

// SaveCrop updates only the crop of floorID, keeping the other settings.
func (s *Service) SaveCrop(ctx context.Context, floorID string, crop Crop) (*Settings, error) {
	current, err := s.Get(ctx, floorID)
	if err != nil {
		return nil, err
	}
	next := *current
	next.Crop = crop
	return s.Save(ctx, next)
}
