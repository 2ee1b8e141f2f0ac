package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/seatmap/internal/domain/activity"
	"github.com/rpggio/seatmap/internal/domain/editor"
	"github.com/rpggio/seatmap/internal/domain/floor"
	"github.com/rpggio/seatmap/internal/domain/furniture"
	"github.com/rpggio/seatmap/internal/domain/geometry"
	"github.com/rpggio/seatmap/internal/domain/session"
	"github.com/rpggio/seatmap/internal/exchange"
	"github.com/rpggio/seatmap/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type floorStub struct {
	getFn      func(context.Context, string) (*floor.Settings, error)
	saveFn     func(context.Context, floor.Settings) (*floor.Settings, error)
	saveCropFn func(context.Context, string, floor.Crop) (*floor.Settings, error)
}

func (f floorStub) Get(ctx context.Context, floorID string) (*floor.Settings, error) {
	if f.getFn == nil {
		s := floor.Defaults(floorID)
		return &s, nil
	}
	return f.getFn(ctx, floorID)
}
func (f floorStub) Save(ctx context.Context, settings floor.Settings) (*floor.Settings, error) {
	return f.saveFn(ctx, settings)
}
func (f floorStub) SaveCrop(ctx context.Context, floorID string, crop floor.Crop) (*floor.Settings, error) {
	return f.saveCropFn(ctx, floorID, crop)
}

type activityStub struct {
	listFn func(context.Context, activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

func (a activityStub) GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	return a.listFn(ctx, opts)
}

// openLayout returns an opened session over a permissive mock store.
func openLayout(t *testing.T, items ...furniture.Furniture) (*session.Service, *mocks.FurnitureRepository) {
	t.Helper()
	repo := new(mocks.FurnitureRepository)
	repo.On("LoadAll", mock.Anything).Return(items, nil)
	repo.On("SaveAll", mock.Anything, mock.Anything).Return(nil).Maybe()
	repo.On("RemoveOne", mock.Anything, mock.Anything).Return(nil).Maybe()
	repo.On("UpsertOne", mock.Anything, mock.Anything).Return(nil).Maybe()
	logs := new(mocks.ActivityLogger)
	logs.On("LogActivity", mock.Anything, mock.Anything).Return(nil).Maybe()

	svc := session.NewService(editor.New(editor.Options{}), repo, logs, nil)
	_, err := svc.Open(context.Background())
	require.NoError(t, err)
	return svc, repo
}

func table(id string, index int, x, y float64) furniture.Furniture {
	return furniture.Furniture{
		ID:       id,
		FloorID:  furniture.DefaultFloor,
		Index:    index,
		Name:     furniture.DefaultName(index),
		Position: geometry.Point{X: x, Y: y},
		Size:     geometry.Size{W: 2, H: 2},
		Capacity: 4,
	}
}

func TestHandler_AddFlow(t *testing.T) {
	ctx := context.Background()
	layout, repo := openLayout(t)
	handler := NewHandler(layout, floorStub{}, activityStub{}, "")

	out, err := handler.Handle(ctx, "set_mode", mustJSON(t, SetModeParams{Mode: "edit"}))
	require.NoError(t, err)
	require.True(t, out.(*session.Result).Applied)

	out, err = handler.Handle(ctx, "start_add", mustJSON(t, StartAddParams{Kind: editor.KindTable}))
	require.NoError(t, err)
	res := out.(*session.Result)
	require.True(t, res.Applied)
	require.NotNil(t, res.Snapshot.Pending)
	require.True(t, res.Snapshot.CanConfirmAdd)

	out, err = handler.Handle(ctx, "confirm_add", nil)
	require.NoError(t, err)
	res = out.(*session.Result)
	require.True(t, res.Applied)
	require.Len(t, res.Snapshot.Items, 1)
	require.Equal(t, "1F_01", res.Snapshot.Items[0].ID)
	repo.AssertCalled(t, "UpsertOne", mock.Anything, mock.MatchedBy(func(f furniture.Furniture) bool {
		return f.ID == "1F_01"
	}))

	out, err = handler.Handle(ctx, "get_layout", nil)
	require.NoError(t, err)
	resp := out.(LayoutResponse)
	require.Equal(t, layout.SessionID(), resp.SessionID)
	require.Len(t, resp.Layout.Items, 1)
}

func TestHandler_IgnoredCommandReportsNotApplied(t *testing.T) {
	ctx := context.Background()
	layout, repo := openLayout(t, table("1F_01", 1, 20, 20))
	handler := NewHandler(layout, floorStub{}, activityStub{}, "")

	out, err := handler.Handle(ctx, "confirm_add", nil)
	require.NoError(t, err)
	require.False(t, out.(*session.Result).Applied)

	// Business mode is the starting mode; rotating needs edit mode.
	out, err = handler.Handle(ctx, "rotate_layout", nil)
	require.NoError(t, err)
	require.False(t, out.(*session.Result).Applied)

	repo.AssertNotCalled(t, "UpsertOne", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
}

func TestHandler_DragUsesViewport(t *testing.T) {
	ctx := context.Background()
	layout, _ := openLayout(t)
	handler := NewHandler(layout, floorStub{}, activityStub{}, "")

	_, err := handler.Handle(ctx, "set_mode", mustJSON(t, SetModeParams{Mode: "edit"}))
	require.NoError(t, err)
	out, err := handler.Handle(ctx, "start_add", mustJSON(t, StartAddParams{Kind: editor.KindTable}))
	require.NoError(t, err)
	pending := out.(*session.Result).Snapshot.Pending
	require.NotNil(t, pending)

	viewport := &geometry.Viewport{Left: 100, Top: 50, Width: 1000, Height: 800}
	_, err = handler.Handle(ctx, "pointer_down", mustJSON(t, PointerParams{
		ID:       pending.ID,
		ClientX:  600,
		ClientY:  450,
		Viewport: viewport,
	}))
	require.NoError(t, err)

	out, err = handler.Handle(ctx, "pointer_move", mustJSON(t, PointerParams{
		ClientX:  300,
		ClientY:  450,
		Viewport: viewport,
	}))
	require.NoError(t, err)
	res := out.(*session.Result)
	require.True(t, res.Applied)
	require.Equal(t, pending.ID, res.Snapshot.Dragging)
	require.InDelta(t, pending.Position.X-30, res.Snapshot.Pending.Position.X, 1)

	_, err = handler.Handle(ctx, "pointer_move", mustJSON(t, PointerParams{}))
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "INVALID_PARAMS", apiErr.Code)
}

func TestHandler_ImportCSVSavesCrop(t *testing.T) {
	ctx := context.Background()
	layout, repo := openLayout(t, table("1F_09", 9, 80, 80))

	var savedFloor string
	var savedCrop floor.Crop
	handler := NewHandler(layout, floorStub{
		saveCropFn: func(_ context.Context, floorID string, crop floor.Crop) (*floor.Settings, error) {
			savedFloor, savedCrop = floorID, crop
			s := floor.Defaults(floorID)
			s.Crop = crop
			return &s, nil
		},
	}, activityStub{}, "2F")

	var buf bytes.Buffer
	require.NoError(t, exchange.Write(&buf, exchange.File{
		Crop: &floor.Crop{X: 10, Y: 20, Width: 300, Height: 200},
		Records: []furniture.Record{
			{TableID: "1F_01", Index: "1", Name: "A", Left: "10", Top: "10", Width: "2", Height: "2", Capacity: "4", Available: "true", Floor: "1F"},
			{TableID: "1F_01", Index: "2", Name: "B", Left: "40", Top: "40", Width: "2", Height: "2", Capacity: "2", Floor: "1F"},
		},
	}))

	out, err := handler.Handle(ctx, "import_records", mustJSON(t, ImportRecordsParams{CSV: buf.String()}))
	require.NoError(t, err)
	resp := out.(ImportRecordsResponse)
	require.True(t, resp.Applied)
	require.Equal(t, 1, resp.Imported)
	require.Equal(t, 1, resp.Removed)
	require.Equal(t, []string{"1F_01"}, resp.Skipped)
	require.NotNil(t, resp.Crop)

	require.Equal(t, "2F", savedFloor)
	require.Equal(t, floor.Crop{X: 10, Y: 20, Width: 300, Height: 200}, savedCrop)
	repo.AssertCalled(t, "SaveAll", mock.Anything, mock.Anything)
}

func TestHandler_ImportRejectsBadFile(t *testing.T) {
	layout, _ := openLayout(t)
	handler := NewHandler(layout, floorStub{}, activityStub{}, "")

	_, err := handler.Handle(context.Background(), "import_records", mustJSON(t, ImportRecordsParams{CSV: "a,b\r\n1,2\r\n"}))
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "INVALID_FILE", apiErr.Code)
}

func TestHandler_ExportFormats(t *testing.T) {
	ctx := context.Background()
	layout, _ := openLayout(t, table("1F_02", 2, 50, 50), table("1F_01", 1, 10, 10))
	handler := NewHandler(layout, floorStub{
		getFn: func(_ context.Context, floorID string) (*floor.Settings, error) {
			s := floor.Defaults(floorID)
			s.Crop = floor.Crop{Width: 640, Height: 480}
			return &s, nil
		},
	}, activityStub{}, "")

	out, err := handler.Handle(ctx, "export_records", nil)
	require.NoError(t, err)
	records := out.(ExportRecordsResponse).Records
	require.Len(t, records, 2)
	require.Equal(t, "1F_01", records[0].TableID)

	out, err = handler.Handle(ctx, "export_records", mustJSON(t, ExportRecordsParams{Format: "csv"}))
	require.NoError(t, err)
	text := out.(ExportRecordsResponse).CSV
	file, err := exchange.Read(strings.NewReader(text))
	require.NoError(t, err)
	require.NotNil(t, file.Crop)
	require.Equal(t, 640, file.Crop.Width)
	require.Len(t, file.Records, 2)

	_, err = handler.Handle(ctx, "export_records", mustJSON(t, ExportRecordsParams{Format: "xml"}))
	require.Error(t, err)
}

func TestHandler_ReportingCommands(t *testing.T) {
	ctx := context.Background()
	open := table("1F_01", 1, 10, 10)
	open.Available = true
	closed := table("1F_02", 2, 50, 50)
	closed.Occupied = 4
	layout, _ := openLayout(t, open, closed)
	handler := NewHandler(layout, floorStub{}, activityStub{}, "")

	out, err := handler.Handle(ctx, "get_stats", nil)
	require.NoError(t, err)
	stats := out.(furniture.Stats)
	require.Equal(t, 2, stats.Tables)
	require.Equal(t, 8, stats.Capacity)

	out, err = handler.Handle(ctx, "list_available", mustJSON(t, FloorParams{FloorID: "1F"}))
	require.NoError(t, err)
	avail := out.(AvailableResponse)
	require.Equal(t, 1, avail.Count)
	require.Equal(t, "1F_01", avail.Tables[0].ID)

	out, err = handler.Handle(ctx, "list_available", mustJSON(t, FloorParams{FloorID: "9F"}))
	require.NoError(t, err)
	require.NotNil(t, out.(AvailableResponse).Tables)
}

func TestHandler_FloorSettings(t *testing.T) {
	ctx := context.Background()
	layout, _ := openLayout(t)

	var requested string
	var saved floor.Settings
	handler := NewHandler(layout, floorStub{
		getFn: func(_ context.Context, floorID string) (*floor.Settings, error) {
			requested = floorID
			s := floor.Defaults(floorID)
			return &s, nil
		},
		saveFn: func(_ context.Context, s floor.Settings) (*floor.Settings, error) {
			saved = s
			return &s, nil
		},
	}, activityStub{}, "")

	out, err := handler.Handle(ctx, "get_floor_settings", nil)
	require.NoError(t, err)
	require.Equal(t, furniture.DefaultFloor, requested)
	require.Equal(t, floor.DefaultTitle, out.(*floor.Settings).Title)

	_, err = handler.Handle(ctx, "save_floor_settings", mustJSON(t, SaveFloorSettingsParams{Zoom: 1.5, Rotation: 2, GridHidden: true}))
	require.NoError(t, err)
	require.Equal(t, furniture.DefaultFloor, saved.FloorID)
	require.Equal(t, 2, saved.Rotation)
	require.True(t, saved.GridHidden)
}

func TestHandler_RecentActivity(t *testing.T) {
	ctx := context.Background()
	layout, _ := openLayout(t)
	sessionID := "s1"
	furnitureID := "1F_01"
	now := time.Now()

	var got activity.ListActivityOptions
	handler := NewHandler(layout, floorStub{}, activityStub{listFn: func(_ context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
		got = opts
		return []activity.ActivityEntry{{
			SessionID:    &sessionID,
			FurnitureID:  &furnitureID,
			ActivityType: activity.TypeFurnitureAdded,
			Summary:      "Added table A",
			CreatedAt:    now,
		}}, nil
	}}, "")

	out, err := handler.Handle(ctx, "get_recent_activity", mustJSON(t, GetRecentActivityParams{FurnitureID: &furnitureID, Limit: 5}))
	require.NoError(t, err)
	require.Equal(t, 5, got.Limit)
	require.Equal(t, &furnitureID, got.FurnitureID)

	entries := out.([]ActivityEntryResponse)
	require.Len(t, entries, 1)
	require.Equal(t, "s1", entries[0].SessionID)
	require.Equal(t, activity.TypeFurnitureAdded, entries[0].Type)
}

func TestHandler_ErrorMapping(t *testing.T) {
	ctx := context.Background()

	repo := new(mocks.FurnitureRepository)
	closed := session.NewService(editor.New(editor.Options{}), repo, new(mocks.ActivityLogger), nil)
	handler := NewHandler(closed, floorStub{}, activityStub{}, "")

	_, err := handler.Handle(ctx, "get_layout", nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "LAYOUT_NOT_LOADED", apiErr.Code)

	layout, _ := openLayout(t)
	handler = NewHandler(layout, floorStub{
		saveFn: func(_ context.Context, _ floor.Settings) (*floor.Settings, error) {
			return nil, floor.ErrInvalidSettings
		},
	}, activityStub{}, "")

	_, err = handler.Handle(ctx, "set_mode", mustJSON(t, SetModeParams{Mode: "party"}))
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "UNKNOWN_MODE", apiErr.Code)

	_, err = handler.Handle(ctx, "save_floor_settings", mustJSON(t, SaveFloorSettingsParams{Rotation: 7}))
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "INVALID_FLOOR_SETTINGS", apiErr.Code)

	_, err = handler.Handle(ctx, "set_mode", json.RawMessage(`{"mode":`))
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "INVALID_PARAMS", apiErr.Code)

	_, err = handler.Handle(ctx, "fly_away", nil)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "UNKNOWN_METHOD", apiErr.Code)

	rejected := fmt.Errorf("%w: confirm_add: %w", session.ErrInvalidLayout, furniture.ErrInvalidOccupancy)
	require.Equal(t, "INVALID_LAYOUT", MapError(rejected).Code)
}

func TestServer_ToolsOverInMemoryTransport(t *testing.T) {
	ctx := context.Background()
	layout, _ := openLayout(t)

	server := NewServer(Config{
		Services:      Services{Layout: layout, Floors: floorStub{}, Activity: activityStub{}},
		TransportMode: "stdio",
	})
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	_, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer cs.Close()

	tools, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, len(buildToolCatalog()))

	res, err := cs.CallTool(ctx, &sdkmcp.CallToolParams{Name: "get_layout", Arguments: map[string]any{}})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Contains(t, textOf(t, res), layout.SessionID())

	res, err = cs.CallTool(ctx, &sdkmcp.CallToolParams{Name: "set_mode", Arguments: map[string]any{"mode": "party"}})
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Contains(t, textOf(t, res), "UNKNOWN_MODE")

	resources, err := cs.ListResources(ctx, nil)
	require.NoError(t, err)
	require.Len(t, resources.Resources, len(docResources))
}

func textOf(t *testing.T, res *sdkmcp.CallToolResult) string {
	t.Helper()
	var sb strings.Builder
	for _, content := range res.Content {
		if text, ok := content.(*sdkmcp.TextContent); ok {
			sb.WriteString(text.Text)
		}
	}
	return sb.String()
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}
