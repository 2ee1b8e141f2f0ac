package furniture

import (
	"math"
	"testing"
	"time"

	"github.com/rpggio/seatmap/internal/domain/geometry"
	"github.com/stretchr/testify/require"
)

func table(id string, floor string, index int, x, y float64) Furniture {
	return Furniture{
		ID:        id,
		FloorID:   floor,
		Index:     index,
		Name:      DefaultName(index),
		Position:  geometry.Point{X: x, Y: y},
		Size:      geometry.Size{W: 1, H: 1},
		Capacity:  4,
		Available: true,
	}
}

func TestIsSeat(t *testing.T) {
	require.True(t, Furniture{ID: "s_1F_01"}.IsSeat())
	require.True(t, Furniture{ID: "S2"}.IsSeat())
	require.False(t, Furniture{ID: "1F_01"}.IsSeat())
	require.False(t, Furniture{}.IsSeat())
}

func TestStatus(t *testing.T) {
	f := table("1F_01", "1F", 1, 10, 10)
	f.ExtraSeatLimit = 2
	require.Equal(t, StatusEmpty, f.Status())
	f.Occupied = 3
	require.Equal(t, StatusPartial, f.Status())
	f.Occupied = 6
	require.Equal(t, StatusFull, f.Status())
}

func TestIDsAndNames(t *testing.T) {
	require.Equal(t, "1F_01", MakeID("1F", 1))
	require.Equal(t, "2F_12", MakeID("2F", 12))
	require.Equal(t, "s_1F_03", SeatID("1F", 3))
	require.Equal(t, "A", DefaultName(1))
	require.Equal(t, "Z", DefaultName(26))
	require.Equal(t, "A", DefaultName(27))
	require.Equal(t, "A", DefaultName(0))
}

func TestCloneIsDeep(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	f := table("1F_01", "1F", 1, 10, 10)
	f.Tags = []string{"window"}
	f.LastOccupiedAt = &ts

	c := f.Clone()
	c.Tags[0] = "door"
	*c.LastOccupiedAt = ts.Add(time.Hour)

	require.Equal(t, "window", f.Tags[0])
	require.Equal(t, ts, *f.LastOccupiedAt)
}

func TestValidate(t *testing.T) {
	f := table("1F_01", "1F", 1, 10, 10)
	require.NoError(t, f.Validate())

	bad := f
	bad.ID = " "
	require.ErrorIs(t, bad.Validate(), ErrMissingID)

	bad = f
	bad.Position.X = 101
	require.ErrorIs(t, bad.Validate(), ErrOutOfCanvas)

	bad = f
	bad.Size.H = 0
	require.ErrorIs(t, bad.Validate(), ErrInvalidSize)

	bad = f
	bad.Occupied = 5
	require.ErrorIs(t, bad.Validate(), ErrInvalidOccupancy)
}

func TestNormalize(t *testing.T) {
	f := Furniture{
		ID:       " 1F_01 ",
		Position: geometry.Point{X: -3, Y: 140},
		Size:     geometry.Size{W: 0, H: -1},
		Capacity: 2,
		Occupied: 9,
		Tags:     []string{"b", " a", "b", ""},
	}
	f.Normalize()
	require.Equal(t, "1F_01", f.ID)
	require.Equal(t, DefaultFloor, f.FloorID)
	require.Equal(t, geometry.Point{X: 0, Y: 100}, f.Position)
	require.Equal(t, geometry.Size{W: DefaultSize, H: DefaultSize}, f.Size)
	require.Equal(t, 2, f.Occupied)
	require.Equal(t, []string{"a", "b"}, f.Tags)
	require.NoError(t, f.Validate())
}

func TestCollectionNextIndex(t *testing.T) {
	c := Collection{
		table("1F_01", "1F", 1, 10, 10),
		table("1F_03", "1F", 3, 30, 10),
		table("2F_01", "2F", 1, 10, 10),
	}
	require.Equal(t, 2, c.NextIndex("1F"))
	require.Equal(t, 2, c.NextIndex("2F"))
	require.Equal(t, 1, c.NextIndex("3F"))
}

func TestCollectionValidateDuplicate(t *testing.T) {
	c := Collection{table("1F_01", "1F", 1, 10, 10), table("1F_01", "1F", 1, 50, 50)}
	require.ErrorIs(t, c.Validate(), ErrDuplicateID)

	deduped, dropped := c.Dedupe()
	require.Len(t, deduped, 1)
	require.Equal(t, []string{"1F_01"}, dropped)
	require.Equal(t, 10.0, deduped[0].Position.X)
}

func TestCollectionSortedByIndex(t *testing.T) {
	c := Collection{
		table("2F_01", "2F", 1, 10, 10),
		table("1F_02", "1F", 2, 10, 10),
		table("1F_01", "1F", 1, 10, 10),
	}
	require.Equal(t, []string{"1F_01", "1F_02", "2F_01"}, c.SortedByIndex().IDs())
	require.Equal(t, []string{"2F_01", "1F_02", "1F_01"}, c.IDs(), "original order untouched")
}

func TestCollectionRotated(t *testing.T) {
	c := Collection{table("1F_01", "1F", 1, 20, 30)}
	c[0].Size = geometry.Size{W: 2, H: 1}
	r := c.Rotated()
	require.Equal(t, geometry.Point{X: 70, Y: 20}, r[0].Position)
	require.Equal(t, geometry.Size{W: 1, H: 2}, r[0].Size)
	require.Equal(t, geometry.Point{X: 20, Y: 30}, c[0].Position)
}

func TestSummarize(t *testing.T) {
	a := table("1F_01", "1F", 1, 10, 10)
	a.Occupied = 3
	b := table("1F_02", "1F", 2, 50, 10)
	b.ExtraSeatLimit = 2
	b.Occupied = 1
	c := table("1F_04", "1F", 4, 90, 10)
	c.Capacity = 2
	c.Occupied = 2
	d := table("1F_05", "1F", 5, 90, 90)
	seat := Furniture{ID: "s_1F_03", Occupied: 0}

	s := Summarize([]Furniture{a, b, c, d, seat})
	require.Equal(t, Stats{Tables: 4, Capacity: 16, Occupied: 6, OccupancyRate: 38, Empty: 1, Partial: 2, Full: 1}, s)
	require.Equal(t, Stats{}, Summarize(nil))
}

func TestAvailableTables(t *testing.T) {
	a := table("1F_01", "1F", 1, 10, 10)
	a.Name = "B"
	b := table("1F_02", "1F", 2, 50, 10)
	b.Name = "A"
	closed := table("1F_03", "1F", 3, 80, 10)
	closed.Available = false
	empty := table("1F_04", "1F", 4, 80, 80)
	empty.Capacity = 0
	seat := Furniture{ID: "s_1F_05", Capacity: 1, Available: true}

	got := AvailableTables([]Furniture{a, b, closed, empty, seat})
	require.Len(t, got, 2)
	require.Equal(t, "A", got[0].Name)
	require.Equal(t, "B", got[1].Name)
}

func TestRecordRoundTrip(t *testing.T) {
	ts := time.Date(2025, 3, 4, 5, 6, 7, 890, time.UTC)
	items := []Furniture{
		table("1F_01", "1F", 1, 22, 21.875),
		{
			ID:             "2F_07",
			FloorID:        "2F",
			Index:          7,
			Name:           "Booth",
			Position:       geometry.Point{X: 33.3, Y: 100},
			Size:           geometry.Size{W: 1.5, H: 0.75},
			Capacity:       6,
			ExtraSeatLimit: 2,
			Occupied:       7,
			Tags:           []string{"quiet", "window"},
			Description:    "corner booth",
			Available:      false,
			LastOccupiedAt: &ts,
		},
		{
			ID:       "s_1F_02",
			FloorID:  "1F",
			Index:    2,
			Name:     "2",
			Position: geometry.Point{X: 4, Y: 6.25},
			Size:     geometry.Size{W: 0.75, H: 0.75},
		},
	}
	for _, f := range items {
		require.NoError(t, f.Validate())
		require.Equal(t, f, FromRecord(ToRecord(f)), f.ID)
	}
}

func TestFromRecordCoercion(t *testing.T) {
	f := FromRecord(Record{
		TableID:   "1F_01",
		Index:     "x",
		Left:      "abc",
		Top:       "250",
		Width:     "",
		Height:    "NaN",
		Capacity:  "4",
		Occupied:  "abc",
		Available: " TRUE ",
		Tags:      "a,,b",
	})
	require.Equal(t, 0, f.Occupied)
	require.Equal(t, 0, f.Index)
	require.Equal(t, geometry.Point{X: 0, Y: 100}, f.Position)
	require.Equal(t, geometry.Size{W: DefaultSize, H: DefaultSize}, f.Size)
	require.True(t, f.Available)
	require.Equal(t, DefaultFloor, f.FloorID)
	require.Equal(t, []string{"a", "b"}, f.Tags)
	require.Nil(t, f.LastOccupiedAt)

	f = FromRecord(Record{TableID: "1F_02", Capacity: "2", ExtraSeatLimit: "1", Occupied: "7", Available: "yes", UpdateTime: "yesterday"})
	require.Equal(t, 3, f.Occupied)
	require.False(t, f.Available)
	require.Nil(t, f.LastOccupiedAt)

	tests := []struct {
		name     string
		rec      Record
		capacity int
		extra    int
		occupied int
	}{
		{"int64 capacity", Record{TableID: "1F_03", Capacity: "9223372036854775807", ExtraSeatLimit: "1", Occupied: "1"}, 0, 1, 1},
		{"int32 bound", Record{TableID: "1F_04", Capacity: "2147483647", ExtraSeatLimit: "2147483647", Occupied: "5"}, MaxSeats, MaxSeats, 5},
		{"negative overflow", Record{TableID: "1F_05", Capacity: "-9223372036854775808", Occupied: "1"}, 0, 0, 0},
		{"seat drops capacity", Record{TableID: "s_1F_06", Capacity: "4", ExtraSeatLimit: "2", Occupied: "3"}, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := FromRecord(tt.rec)
			require.Equal(t, tt.capacity, f.Capacity)
			require.Equal(t, tt.extra, f.ExtraSeatLimit)
			require.Equal(t, tt.occupied, f.Occupied)
			require.GreaterOrEqual(t, f.MaxOccupancy(), 0)
			require.NoError(t, f.Validate())
		})
	}
}

func TestNormalizeBoundsSeats(t *testing.T) {
	f := table("1F_01", "1F", 1, 10, 10)
	f.Capacity = math.MaxInt
	f.ExtraSeatLimit = math.MaxInt
	f.Occupied = 3
	f.Normalize()
	require.Equal(t, MaxSeats, f.Capacity)
	require.Equal(t, MaxSeats, f.ExtraSeatLimit)
	require.Equal(t, 3, f.Occupied)
	require.NoError(t, f.Validate())

	seat := Furniture{ID: "s_1F_02", Capacity: 5, ExtraSeatLimit: 1, Occupied: 2}
	seat.Normalize()
	require.Zero(t, seat.Capacity)
	require.Zero(t, seat.ExtraSeatLimit)
	require.Zero(t, seat.Occupied)
}

func TestRecordFromFields(t *testing.T) {
	header := []string{"name", "table_id", "unknown", "occupied"}
	r := RecordFromFields(header, []string{"A", "1F_01", "zzz"})
	require.Equal(t, "A", r.Name)
	require.Equal(t, "1F_01", r.TableID)
	require.Empty(t, r.Occupied)

	full := ToRecord(table("1F_01", "1F", 1, 10, 10))
	require.Equal(t, full, RecordFromFields(Header(), full.Fields()))
}
