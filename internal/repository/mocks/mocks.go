package mocks

import (
	"context"

	"github.com/rpggio/seatmap/internal/domain/activity"
	"github.com/rpggio/seatmap/internal/domain/floor"
	"github.com/rpggio/seatmap/internal/domain/furniture"
	"github.com/stretchr/testify/mock"
)

// FurnitureRepository is a mock for furniture.Repository.
type FurnitureRepository struct {
	mock.Mock
}

func (m *FurnitureRepository) LoadAll(ctx context.Context) ([]furniture.Furniture, error) {
	args := m.Called(ctx)
	if items, ok := args.Get(0).([]furniture.Furniture); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FurnitureRepository) SaveAll(ctx context.Context, items []furniture.Furniture) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *FurnitureRepository) RemoveOne(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *FurnitureRepository) UpsertOne(ctx context.Context, item furniture.Furniture) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// FloorRepository is a mock for floor.Repository.
type FloorRepository struct {
	mock.Mock
}

func (m *FloorRepository) Get(ctx context.Context, floorID string) (*floor.Settings, error) {
	args := m.Called(ctx, floorID)
	if settings, ok := args.Get(0).(*floor.Settings); ok {
		return settings, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FloorRepository) Save(ctx context.Context, settings *floor.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityLogger is a mock for the services' activity logging port.
type ActivityLogger struct {
	mock.Mock
}

func (m *ActivityLogger) LogActivity(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
