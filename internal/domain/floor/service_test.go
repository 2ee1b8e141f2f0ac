package floor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/seatmap/internal/domain/activity"
	"github.com/rpggio/seatmap/internal/domain/floor"
	"github.com/rpggio/seatmap/internal/repository"
	"github.com/rpggio/seatmap/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFloorService_GetReturnsDefaultsWhenMissing(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.FloorRepository{}
	repo.On("Get", ctx, "2F").Return(nil, repository.ErrNotFound)

	svc := floor.NewService(repo, nil, nil)
	settings, err := svc.Get(ctx, "2F")
	require.NoError(t, err)
	require.Equal(t, "2F", settings.FloorID)
	require.Equal(t, floor.DefaultTitle, settings.Title)
	require.Equal(t, floor.DefaultLogo, settings.Logo)
	require.Equal(t, 1.0, settings.Zoom)
	repo.AssertExpectations(t)
}

func TestFloorService_GetWrapsStoreErrors(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.FloorRepository{}
	boom := errors.New("disk gone")
	repo.On("Get", ctx, "1F").Return(nil, boom)

	svc := floor.NewService(repo, nil, nil)
	_, err := svc.Get(ctx, "1F")
	require.ErrorIs(t, err, boom)

	_, err = svc.Get(ctx, "")
	require.ErrorIs(t, err, floor.ErrMissingFloor)
}

func TestFloorService_SaveNormalizesAndLogs(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.FloorRepository{}
	logger := &mocks.ActivityLogger{}

	repo.On("Save", ctx, mock.MatchedBy(func(s *floor.Settings) bool {
		return s.FloorID == "1F" && s.Title == floor.DefaultTitle && s.Zoom == 1 && !s.UpdatedAt.IsZero()
	})).Return(nil)
	logger.On("LogActivity", ctx, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeFloorSettingsSaved
	})).Return(nil)

	svc := floor.NewService(repo, logger, nil)
	saved, err := svc.Save(ctx, floor.Settings{FloorID: " 1F ", Rotation: 2, Crop: floor.Crop{Width: 800, Height: 600}})
	require.NoError(t, err)
	require.Equal(t, 2, saved.Rotation)
	repo.AssertExpectations(t)
	logger.AssertExpectations(t)
}

func TestFloorService_SaveRejectsInvalid(t *testing.T) {
	svc := floor.NewService(&mocks.FloorRepository{}, nil, nil)
	ctx := context.Background()

	_, err := svc.Save(ctx, floor.Settings{FloorID: "1F", Rotation: 4})
	require.ErrorIs(t, err, floor.ErrInvalidSettings)

	_, err = svc.Save(ctx, floor.Settings{FloorID: "1F", Zoom: -1})
	require.ErrorIs(t, err, floor.ErrInvalidSettings)

	_, err = svc.Save(ctx, floor.Settings{FloorID: "1F", Crop: floor.Crop{X: -3}})
	require.ErrorIs(t, err, floor.ErrInvalidSettings)

	_, err = svc.Save(ctx, floor.Settings{})
	require.ErrorIs(t, err, floor.ErrMissingFloor)
}

func TestFloorService_SaveCropKeepsOtherSettings(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.FloorRepository{}
	stored := &floor.Settings{FloorID: "1F", Zoom: 1.5, Rotation: 1, Title: "Patio", Logo: "/img/p.png", GridHidden: true}
	repo.On("Get", ctx, "1F").Return(stored, nil)
	repo.On("Save", ctx, mock.Anything).Return(nil)

	svc := floor.NewService(repo, nil, nil)
	saved, err := svc.SaveCrop(ctx, "1F", floor.Crop{X: 10, Y: 20, Width: 300, Height: 200})
	require.NoError(t, err)
	require.Equal(t, floor.Crop{X: 10, Y: 20, Width: 300, Height: 200}, saved.Crop)
	require.Equal(t, "Patio", saved.Title)
	require.Equal(t, 1.5, saved.Zoom)
	require.True(t, saved.GridHidden)
	require.Equal(t, floor.Crop{}, stored.Crop)
}
