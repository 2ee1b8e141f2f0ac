package mongostore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/seatmap/internal/domain/furniture"
	"github.com/rpggio/seatmap/internal/domain/geometry"
	"github.com/rpggio/seatmap/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestDocumentMapping(t *testing.T) {
	seen := time.Date(2025, 5, 4, 10, 0, 0, 0, time.UTC)
	f := furniture.Furniture{
		ID:             "1F_07",
		FloorID:        "1F",
		Index:          7,
		Name:           "G",
		Position:       geometry.Point{X: 42, Y: 12.5},
		Size:           geometry.Size{W: 2, H: 1},
		Capacity:       6,
		ExtraSeatLimit: 2,
		Occupied:       5,
		Description:    "round",
		Available:      true,
		LastOccupiedAt: &seen,
	}

	d := toDocument(f)
	require.Equal(t, "1F_07", d.TableID)
	require.Equal(t, 42.0, d.Left)
	require.Equal(t, 12.5, d.Top)
	require.Equal(t, 2, d.ExtraSeatLimit)
	require.Equal(t, []string{}, d.Tags)

	back := d.furniture()
	require.Nil(t, back.Tags)
	back.Tags = f.Tags
	require.Equal(t, f, back)
}

func TestFurnitureRepository_RoundTrip(t *testing.T) {
	uri := os.Getenv("SEATMAP_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("SEATMAP_TEST_MONGO_URI not set")
	}
	ctx := context.Background()

	client, err := Connect(ctx, uri)
	require.NoError(t, err)
	db := client.Database("seatmap_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	repo := NewFurnitureRepository(db.Collection(DefaultCollection))
	require.NoError(t, repo.EnsureIndexes(ctx))

	table := furniture.Furniture{ID: "1F_01", FloorID: "1F", Index: 1, Name: "A", Size: geometry.Size{W: 1, H: 1}, Capacity: 4, Available: true}
	require.NoError(t, repo.UpsertOne(ctx, table))
	table.Occupied = 2
	require.NoError(t, repo.UpsertOne(ctx, table))

	items, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 2, items[0].Occupied)

	require.NoError(t, repo.RemoveOne(ctx, "1F_01"))
	require.ErrorIs(t, repo.RemoveOne(ctx, "1F_01"), repository.ErrNotFound)

	second := table
	second.ID, second.Index = "1F_02", 2
	require.NoError(t, repo.SaveAll(ctx, []furniture.Furniture{second, table}))
	items, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "1F_01", items[0].ID)
}
