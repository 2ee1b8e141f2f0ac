package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rpggio/seatmap/internal/domain/activity"
	"github.com/rpggio/seatmap/internal/domain/editor"
	"github.com/rpggio/seatmap/internal/domain/floor"
	"github.com/rpggio/seatmap/internal/domain/furniture"
	"github.com/rpggio/seatmap/internal/domain/geometry"
	"github.com/rpggio/seatmap/internal/domain/session"
	"github.com/rpggio/seatmap/internal/exchange"
)

// LayoutService defines the edit session operations needed by MCP.
type LayoutService interface {
	SessionID() string
	Snapshot(ctx context.Context) (editor.Snapshot, error)
	SetMode(ctx context.Context, mode string) (*session.Result, error)
	StartAdd(ctx context.Context, d editor.Draft) (*session.Result, error)
	UpdatePending(ctx context.Context, p editor.Patch) (*session.Result, error)
	ConfirmAdd(ctx context.Context) (*session.Result, error)
	CancelAdd(ctx context.Context) (*session.Result, error)
	StartDelete(ctx context.Context) (*session.Result, error)
	TogglePick(ctx context.Context, id string) (*session.Result, error)
	ConfirmDelete(ctx context.Context) (*session.Result, error)
	CancelDelete(ctx context.Context) (*session.Result, error)
	StartMove(ctx context.Context) (*session.Result, error)
	SelectMover(ctx context.Context, id string) (*session.Result, error)
	ConfirmMove(ctx context.Context) (*session.Result, error)
	CancelMove(ctx context.Context) (*session.Result, error)
	PointerDown(ctx context.Context, id string, at geometry.Point) (*session.Result, error)
	PointerMove(ctx context.Context, at geometry.Point) (*session.Result, error)
	PointerUp(ctx context.Context) (*session.Result, error)
	Rotate(ctx context.Context) (*session.Result, error)
	AdjustOccupancy(ctx context.Context, id string, delta int) (*session.Result, error)
	SetAvailable(ctx context.Context, id string, available bool) (*session.Result, error)
	UpdateFurniture(ctx context.Context, id string, p editor.Patch) (*session.Result, error)
	Import(ctx context.Context, records []furniture.Record) (*session.ImportResult, error)
	Export(ctx context.Context) ([]furniture.Record, error)
	Stats(ctx context.Context, floor string) (furniture.Stats, error)
	Available(ctx context.Context, floor string) ([]furniture.Furniture, error)
}

// FloorService defines floor settings operations needed by MCP.
type FloorService interface {
	Get(ctx context.Context, floorID string) (*floor.Settings, error)
	Save(ctx context.Context, settings floor.Settings) (*floor.Settings, error)
	SaveCrop(ctx context.Context, floorID string, crop floor.Crop) (*floor.Settings, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Handler dispatches MCP commands.
type Handler struct {
	layout       LayoutService
	floors       FloorService
	activity     ActivityService
	defaultFloor string
}

// NewHandler creates a new MCP handler. defaultFloor receives the crop block
// of imported files.
func NewHandler(layout LayoutService, floors FloorService, activitySvc ActivityService, defaultFloor string) *Handler {
	if defaultFloor == "" {
		defaultFloor = furniture.DefaultFloor
	}
	return &Handler{
		layout:       layout,
		floors:       floors,
		activity:     activitySvc,
		defaultFloor: defaultFloor,
	}
}

// Handle dispatches MCP requests to domain services.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "get_layout":
		snap, err := h.layout.Snapshot(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		return LayoutResponse{SessionID: h.layout.SessionID(), Layout: snap}, nil
	case "set_mode":
		var req SetModeParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return result(h.layout.SetMode(ctx, req.Mode))
	case "start_add":
		var req StartAddParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return result(h.layout.StartAdd(ctx, req.draft()))
	case "update_pending":
		var req PatchParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return result(h.layout.UpdatePending(ctx, req.patch()))
	case "confirm_add":
		return result(h.layout.ConfirmAdd(ctx))
	case "cancel_add":
		return result(h.layout.CancelAdd(ctx))
	case "start_delete":
		return result(h.layout.StartDelete(ctx))
	case "toggle_delete_pick":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return result(h.layout.TogglePick(ctx, req.ID))
	case "confirm_delete":
		return result(h.layout.ConfirmDelete(ctx))
	case "cancel_delete":
		return result(h.layout.CancelDelete(ctx))
	case "start_move":
		return result(h.layout.StartMove(ctx))
	case "select_mover":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return result(h.layout.SelectMover(ctx, req.ID))
	case "confirm_move":
		return result(h.layout.ConfirmMove(ctx))
	case "cancel_move":
		return result(h.layout.CancelMove(ctx))
	case "pointer_down":
		var req PointerParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		at, err := req.point()
		if err != nil {
			return nil, err
		}
		return result(h.layout.PointerDown(ctx, req.ID, at))
	case "pointer_move":
		var req PointerParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		at, err := req.point()
		if err != nil {
			return nil, err
		}
		return result(h.layout.PointerMove(ctx, at))
	case "pointer_up":
		return result(h.layout.PointerUp(ctx))
	case "rotate_layout":
		return result(h.layout.Rotate(ctx))
	case "adjust_occupancy":
		var req AdjustOccupancyParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return result(h.layout.AdjustOccupancy(ctx, req.ID, req.Delta))
	case "set_available":
		var req SetAvailableParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return result(h.layout.SetAvailable(ctx, req.ID, req.Available))
	case "update_furniture":
		var req UpdateFurnitureParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return result(h.layout.UpdateFurniture(ctx, req.ID, req.patch()))
	case "import_records":
		var req ImportRecordsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.importRecords(ctx, req)
	case "export_records":
		var req ExportRecordsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.exportRecords(ctx, req)
	case "get_stats":
		var req FloorParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		stats, err := h.layout.Stats(ctx, req.FloorID)
		if err != nil {
			return nil, mapError(err)
		}
		return stats, nil
	case "list_available":
		var req FloorParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		tables, err := h.layout.Available(ctx, req.FloorID)
		if err != nil {
			return nil, mapError(err)
		}
		if tables == nil {
			tables = []furniture.Furniture{}
		}
		return AvailableResponse{Count: len(tables), Tables: tables}, nil
	case "get_floor_settings":
		var req FloorParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		floorID := req.FloorID
		if floorID == "" {
			floorID = h.defaultFloor
		}
		settings, err := h.floors.Get(ctx, floorID)
		if err != nil {
			return nil, mapError(err)
		}
		return settings, nil
	case "save_floor_settings":
		var req SaveFloorSettingsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if req.FloorID == "" {
			req.FloorID = h.defaultFloor
		}
		settings, err := h.floors.Save(ctx, req.settings())
		if err != nil {
			return nil, mapError(err)
		}
		return settings, nil
	case "get_recent_activity":
		var req GetRecentActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		entries, err := h.activity.GetRecentActivity(ctx, activity.ListActivityOptions{
			FurnitureID:  req.FurnitureID,
			SessionID:    req.SessionID,
			ActivityType: req.ActivityType,
			Limit:        req.Limit,
			Offset:       req.Offset,
		})
		if err != nil {
			return nil, mapError(err)
		}
		resp := make([]ActivityEntryResponse, 0, len(entries))
		for _, entry := range entries {
			resp = append(resp, ActivityEntryResponse{
				Timestamp:   entry.CreatedAt,
				Type:        entry.ActivityType,
				SessionID:   stringValue(entry.SessionID),
				FurnitureID: entry.FurnitureID,
				Summary:     entry.Summary,
				Details:     entry.Details,
			})
		}
		return resp, nil
	default:
		return nil, mapError(fmt.Errorf("%w: %s", ErrUnknownMethod, method))
	}
}

func (h *Handler) importRecords(ctx context.Context, req ImportRecordsParams) (any, error) {
	records := req.Records
	var crop *floor.Crop
	if strings.TrimSpace(req.CSV) != "" {
		file, err := exchange.Read(strings.NewReader(req.CSV))
		if err != nil {
			return nil, mapError(err)
		}
		records = append(records, file.Records...)
		crop = file.Crop
	}

	res, err := h.layout.Import(ctx, records)
	if err != nil {
		return nil, mapError(err)
	}

	resp := ImportRecordsResponse{
		Applied: res.Applied,
		Skipped: res.Skipped,
		Layout:  res.Snapshot,
	}
	if res.Change != nil {
		resp.Imported = len(res.Change.Upserted)
		resp.Removed = len(res.Change.Removed)
	}
	if res.Applied && crop != nil {
		if _, err := h.floors.SaveCrop(ctx, h.defaultFloor, *crop); err != nil {
			return nil, mapError(err)
		}
		resp.Crop = crop
	}
	return resp, nil
}

func (h *Handler) exportRecords(ctx context.Context, req ExportRecordsParams) (any, error) {
	records, err := h.layout.Export(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	switch req.Format {
	case "", "json":
		return ExportRecordsResponse{Records: records}, nil
	case "csv":
		settings, err := h.floors.Get(ctx, h.defaultFloor)
		if err != nil {
			return nil, mapError(err)
		}
		file := exchange.File{Records: records}
		if !settings.Crop.IsZero() {
			file.Crop = &settings.Crop
		}
		var buf bytes.Buffer
		if err := exchange.Write(&buf, file); err != nil {
			return nil, err
		}
		return ExportRecordsResponse{CSV: buf.String()}, nil
	default:
		return nil, &APIError{Code: "INVALID_PARAMS", Message: fmt.Sprintf("unknown export format %q", req.Format), RecoveryHint: "Use json or csv"}
	}
}

func (p PointerParams) point() (geometry.Point, error) {
	if p.X != nil && p.Y != nil {
		return geometry.Point{X: *p.X, Y: *p.Y}, nil
	}
	if p.Viewport != nil {
		return p.Viewport.ToCanvas(p.ClientX, p.ClientY), nil
	}
	return geometry.Point{}, &APIError{
		Code:         "INVALID_PARAMS",
		Message:      "pointer position is required",
		RecoveryHint: "Pass x and y in canvas percent, or client_x, client_y and viewport",
	}
}

func result(res *session.Result, err error) (any, error) {
	if err != nil {
		return nil, mapError(err)
	}
	return res, nil
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return &APIError{Code: "INVALID_PARAMS", Message: err.Error(), RecoveryHint: "Check the tool's input schema"}
	}
	return nil
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}

func stringValue(val *string) string {
	if val == nil {
		return ""
	}
	return *val
}
