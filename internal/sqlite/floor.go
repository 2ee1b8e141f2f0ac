package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/seatmap/internal/domain/floor"
	"github.com/rpggio/seatmap/internal/repository"
)

// FloorRepository implements floor.Repository for SQLite
type FloorRepository struct {
	db *DB
}

// NewFloorRepository creates a new FloorRepository
func NewFloorRepository(db *DB) *FloorRepository {
	return &FloorRepository{db: db}
}

// Get retrieves the settings of one floor
func (r *FloorRepository) Get(ctx context.Context, floorID string) (*floor.Settings, error) {
	query := `
		SELECT
			floor_id, crop_x, crop_y, crop_width, crop_height, zoom, rotation,
			background_hidden, grid_hidden, show_seat_index, title, logo, updated_at
		FROM floor_settings
		WHERE floor_id = ?
	`

	var (
		s                               floor.Settings
		bgHidden, gridHidden, seatIndex int
	)
	err := r.db.QueryRowContext(ctx, query, floorID).Scan(
		&s.FloorID,
		&s.Crop.X,
		&s.Crop.Y,
		&s.Crop.Width,
		&s.Crop.Height,
		&s.Zoom,
		&s.Rotation,
		&bgHidden,
		&gridHidden,
		&seatIndex,
		&s.Title,
		&s.Logo,
		&s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get floor settings: %w", err)
	}

	s.BackgroundHidden = bgHidden != 0
	s.GridHidden = gridHidden != 0
	s.ShowSeatIndex = seatIndex != 0
	return &s, nil
}

// Save inserts or replaces the settings of one floor
func (r *FloorRepository) Save(ctx context.Context, s *floor.Settings) error {
	if s == nil || s.FloorID == "" {
		return repository.ErrInvalidInput
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO floor_settings (
			floor_id, crop_x, crop_y, crop_width, crop_height, zoom, rotation,
			background_hidden, grid_hidden, show_seat_index, title, logo, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(floor_id) DO UPDATE SET
			crop_x = excluded.crop_x,
			crop_y = excluded.crop_y,
			crop_width = excluded.crop_width,
			crop_height = excluded.crop_height,
			zoom = excluded.zoom,
			rotation = excluded.rotation,
			background_hidden = excluded.background_hidden,
			grid_hidden = excluded.grid_hidden,
			show_seat_index = excluded.show_seat_index,
			title = excluded.title,
			logo = excluded.logo,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		s.FloorID,
		s.Crop.X,
		s.Crop.Y,
		s.Crop.Width,
		s.Crop.Height,
		s.Zoom,
		s.Rotation,
		boolToInt(s.BackgroundHidden),
		boolToInt(s.GridHidden),
		boolToInt(s.ShowSeatIndex),
		s.Title,
		s.Logo,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save floor settings: %w", err)
	}
	return nil
}
