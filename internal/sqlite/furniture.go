package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rpggio/seatmap/internal/domain/furniture"
	"github.com/rpggio/seatmap/internal/repository"
)

// FurnitureRepository implements furniture.Repository for SQLite
type FurnitureRepository struct {
	db *DB
}

// NewFurnitureRepository creates a new FurnitureRepository
func NewFurnitureRepository(db *DB) *FurnitureRepository {
	return &FurnitureRepository{db: db}
}

// LoadAll returns every stored item ordered by floor and ordinal
func (r *FurnitureRepository) LoadAll(ctx context.Context) ([]furniture.Furniture, error) {
	query := `
		SELECT
			id, floor_id, seq_index, name, pos_x, pos_y, width, height,
			capacity, extra_seat_limit, occupied, tags, description,
			available, last_occupied_at
		FROM furniture
		ORDER BY floor_id, seq_index, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load furniture: %w", err)
	}
	defer rows.Close()

	var items []furniture.Furniture
	for rows.Next() {
		var (
			f            furniture.Furniture
			tags         string
			available    int
			lastOccupied sql.NullTime
		)
		if err := rows.Scan(
			&f.ID,
			&f.FloorID,
			&f.Index,
			&f.Name,
			&f.Position.X,
			&f.Position.Y,
			&f.Size.W,
			&f.Size.H,
			&f.Capacity,
			&f.ExtraSeatLimit,
			&f.Occupied,
			&tags,
			&f.Description,
			&available,
			&lastOccupied,
		); err != nil {
			return nil, fmt.Errorf("failed to scan furniture: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &f.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags of %s: %w", f.ID, err)
		}
		f.Available = available != 0
		if lastOccupied.Valid {
			ts := lastOccupied.Time.UTC()
			f.LastOccupiedAt = &ts
		}
		items = append(items, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating furniture rows: %w", err)
	}

	return items, nil
}

// SaveAll replaces the stored layout with items in one transaction
func (r *FurnitureRepository) SaveAll(ctx context.Context, items []furniture.Furniture) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM furniture`); err != nil {
		return fmt.Errorf("failed to clear furniture: %w", err)
	}
	for _, f := range items {
		if err := upsertFurniture(ctx, tx, f); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RemoveOne deletes a single item
func (r *FurnitureRepository) RemoveOne(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM furniture WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete furniture: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpsertOne inserts or replaces a single item
func (r *FurnitureRepository) UpsertOne(ctx context.Context, f furniture.Furniture) error {
	return upsertFurniture(ctx, r.db, f)
}

func upsertFurniture(ctx context.Context, db execer, f furniture.Furniture) error {
	if f.ID == "" {
		return repository.ErrInvalidInput
	}
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}
	encodedTags, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	var lastOccupied any
	if f.LastOccupiedAt != nil {
		lastOccupied = f.LastOccupiedAt.UTC()
	}

	query := `
		INSERT INTO furniture (
			id, floor_id, seq_index, name, pos_x, pos_y, width, height,
			capacity, extra_seat_limit, occupied, tags, description,
			available, last_occupied_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			floor_id = excluded.floor_id,
			seq_index = excluded.seq_index,
			name = excluded.name,
			pos_x = excluded.pos_x,
			pos_y = excluded.pos_y,
			width = excluded.width,
			height = excluded.height,
			capacity = excluded.capacity,
			extra_seat_limit = excluded.extra_seat_limit,
			occupied = excluded.occupied,
			tags = excluded.tags,
			description = excluded.description,
			available = excluded.available,
			last_occupied_at = excluded.last_occupied_at,
			updated_at = excluded.updated_at
	`

	_, err = db.ExecContext(ctx, query,
		f.ID,
		f.FloorID,
		f.Index,
		f.Name,
		f.Position.X,
		f.Position.Y,
		f.Size.W,
		f.Size.H,
		f.Capacity,
		f.ExtraSeatLimit,
		f.Occupied,
		string(encodedTags),
		f.Description,
		boolToInt(f.Available),
		lastOccupied,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert furniture %s: %w", f.ID, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
