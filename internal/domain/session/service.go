package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rpggio/seatmap/internal/domain/activity"
	"github.com/rpggio/seatmap/internal/domain/editor"
	"github.com/rpggio/seatmap/internal/domain/furniture"
	"github.com/rpggio/seatmap/internal/domain/geometry"
	"github.com/rpggio/seatmap/internal/repository"
)

// Service serializes access to one Editor and persists every commit
// before it becomes visible.
type Service struct {
	mu         sync.Mutex
	editor     *editor.Editor
	furniture  FurnitureRepository
	activities ActivityLogger
	logger     *slog.Logger
	sessionID  string
	open       bool
}

// NewService creates a new edit session service.
func NewService(
	ed *editor.Editor,
	furnitureRepo FurnitureRepository,
	activities ActivityLogger,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		editor:     ed,
		furniture:  furnitureRepo,
		activities: activities,
		logger:     logger,
	}
}

// OpenResult describes a layout load.
type OpenResult struct {
	SessionID string   `json:"session_id"`
	Loaded    int      `json:"loaded"`
	Dropped   []string `json:"dropped,omitempty"`
}

// Result is returned by every editing call.
type Result struct {
	Applied  bool            `json:"applied"`
	Change   *editor.Change  `json:"change,omitempty"`
	Snapshot editor.Snapshot `json:"snapshot"`
}

// ImportResult is returned by Import.
type ImportResult struct {
	Result
	Skipped []string `json:"skipped,omitempty"`
}

// Open loads the persisted layout and starts a new edit session.
func (s *Service) Open(ctx context.Context) (*OpenResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.furniture.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading layout: %w", err)
	}
	dropped, ok := s.editor.Load(items)
	if !ok {
		return nil, ErrEditInProgress
	}
	if len(dropped) > 0 {
		s.logger.Warn("dropped duplicate furniture on load", "ids", dropped)
	}

	s.sessionID = uuid.NewString()
	s.open = true
	s.logger.Info("layout loaded", "session_id", s.sessionID, "items", len(items)-len(dropped))

	return &OpenResult{
		SessionID: s.sessionID,
		Loaded:    len(items) - len(dropped),
		Dropped:   dropped,
	}, nil
}

// SessionID returns the id of the current edit session.
func (s *Service) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// Snapshot returns the current render state.
func (s *Service) Snapshot(_ context.Context) (editor.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return editor.Snapshot{}, ErrNotOpen
	}
	return s.editor.Snapshot(), nil
}

// SetMode switches between business, edit and view.
func (s *Service) SetMode(_ context.Context, mode string) (*Result, error) {
	m, err := editor.ParseMode(mode)
	if err != nil {
		return nil, err
	}
	return s.step("set_mode", func(ed *editor.Editor) bool { return ed.SetMode(m) })
}

// StartAdd begins an add flow.
func (s *Service) StartAdd(_ context.Context, d editor.Draft) (*Result, error) {
	return s.step("start_add", func(ed *editor.Editor) bool { return ed.StartAdd(d) })
}

// UpdatePending edits the pending item.
func (s *Service) UpdatePending(_ context.Context, p editor.Patch) (*Result, error) {
	return s.step("update_pending", func(ed *editor.Editor) bool { return ed.UpdatePending(p) })
}

// ConfirmAdd commits the pending item.
func (s *Service) ConfirmAdd(ctx context.Context) (*Result, error) {
	return s.commit(ctx, "confirm_add", func(ed *editor.Editor) (editor.Change, bool) { return ed.ConfirmAdd() })
}

// CancelAdd discards the pending item.
func (s *Service) CancelAdd(_ context.Context) (*Result, error) {
	return s.step("cancel_add", (*editor.Editor).CancelAdd)
}

// StartDelete begins a delete flow.
func (s *Service) StartDelete(_ context.Context) (*Result, error) {
	return s.step("start_delete", (*editor.Editor).StartDelete)
}

// TogglePick flips id on the delete pick list.
func (s *Service) TogglePick(_ context.Context, id string) (*Result, error) {
	return s.step("toggle_pick", func(ed *editor.Editor) bool { return ed.TogglePick(id) })
}

// ConfirmDelete removes every picked item.
func (s *Service) ConfirmDelete(ctx context.Context) (*Result, error) {
	return s.commit(ctx, "confirm_delete", func(ed *editor.Editor) (editor.Change, bool) { return ed.ConfirmDelete() })
}

// CancelDelete clears the pick list.
func (s *Service) CancelDelete(_ context.Context) (*Result, error) {
	return s.step("cancel_delete", (*editor.Editor).CancelDelete)
}

// StartMove begins a move flow.
func (s *Service) StartMove(_ context.Context) (*Result, error) {
	return s.step("start_move", (*editor.Editor).StartMove)
}

// SelectMover chooses the item to move.
func (s *Service) SelectMover(_ context.Context, id string) (*Result, error) {
	return s.step("select_mover", func(ed *editor.Editor) bool { return ed.SelectMover(id) })
}

// ConfirmMove keeps the moved positions.
func (s *Service) ConfirmMove(ctx context.Context) (*Result, error) {
	return s.commit(ctx, "confirm_move", func(ed *editor.Editor) (editor.Change, bool) { return ed.ConfirmMove() })
}

// CancelMove restores the pre-move layout.
func (s *Service) CancelMove(_ context.Context) (*Result, error) {
	return s.step("cancel_move", (*editor.Editor).CancelMove)
}

// PointerDown starts a drag.
func (s *Service) PointerDown(_ context.Context, id string, at geometry.Point) (*Result, error) {
	return s.step("pointer_down", func(ed *editor.Editor) bool { return ed.PointerDown(id, at) })
}

// PointerMove continues the active drag.
func (s *Service) PointerMove(_ context.Context, at geometry.Point) (*Result, error) {
	return s.step("pointer_move", func(ed *editor.Editor) bool { return ed.PointerMove(at) })
}

// PointerUp ends the active drag.
func (s *Service) PointerUp(_ context.Context) (*Result, error) {
	return s.step("pointer_up", (*editor.Editor).PointerUp)
}

// Rotate turns the layout a quarter.
func (s *Service) Rotate(ctx context.Context) (*Result, error) {
	return s.commit(ctx, "rotate", (*editor.Editor).Rotate)
}

// AdjustOccupancy seats or releases guests.
func (s *Service) AdjustOccupancy(ctx context.Context, id string, delta int) (*Result, error) {
	return s.commit(ctx, "adjust_occupancy", func(ed *editor.Editor) (editor.Change, bool) {
		return ed.AdjustOccupancy(id, delta)
	})
}

// SetAvailable opens or closes an item to walk-ins.
func (s *Service) SetAvailable(ctx context.Context, id string, available bool) (*Result, error) {
	return s.commit(ctx, "set_available", func(ed *editor.Editor) (editor.Change, bool) {
		return ed.SetAvailable(id, available)
	})
}

// UpdateFurniture commits edit-form changes.
func (s *Service) UpdateFurniture(ctx context.Context, id string, p editor.Patch) (*Result, error) {
	return s.commit(ctx, "update_furniture", func(ed *editor.Editor) (editor.Change, bool) {
		return ed.UpdateFurniture(id, p)
	})
}

// Import replaces the layout with records.
func (s *Service) Import(ctx context.Context, records []furniture.Record) (*ImportResult, error) {
	var skipped []string
	res, err := s.commit(ctx, "import", func(ed *editor.Editor) (editor.Change, bool) {
		r, ok := ed.Import(records)
		skipped = r.Skipped
		return r.Change, ok
	})
	if err != nil {
		return nil, err
	}
	return &ImportResult{Result: *res, Skipped: skipped}, nil
}

// Export returns the committed layout as records.
func (s *Service) Export(_ context.Context) ([]furniture.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return nil, ErrNotOpen
	}
	return s.editor.Export(), nil
}

// Stats summarizes occupancy, optionally for one floor.
func (s *Service) Stats(_ context.Context, floor string) (furniture.Stats, error) {
	items, err := s.items(floor)
	if err != nil {
		return furniture.Stats{}, err
	}
	return furniture.Summarize(items), nil
}

// Available lists tables open to walk-ins, optionally for one floor.
func (s *Service) Available(_ context.Context, floor string) ([]furniture.Furniture, error) {
	items, err := s.items(floor)
	if err != nil {
		return nil, err
	}
	return furniture.AvailableTables(items), nil
}

func (s *Service) items(floor string) (furniture.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return nil, ErrNotOpen
	}
	if floor = strings.TrimSpace(floor); floor != "" {
		return s.editor.Committed().OnFloor(floor), nil
	}
	return s.editor.Committed(), nil
}

func (s *Service) step(op string, fn func(*editor.Editor) bool) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return nil, ErrNotOpen
	}

	applied := fn(s.editor)
	if !applied {
		s.ignored(op)
	}
	return &Result{Applied: applied, Snapshot: s.editor.Snapshot()}, nil
}

// commit applies fn and persists the resulting change. If the store fails
// the editor is restored to its prior state, pending item included.
func (s *Service) commit(ctx context.Context, op string, fn func(*editor.Editor) (editor.Change, bool)) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return nil, ErrNotOpen
	}

	cp := s.editor.Checkpoint()
	change, applied := fn(s.editor)
	if !applied {
		s.ignored(op)
		return &Result{Applied: false, Snapshot: s.editor.Snapshot()}, nil
	}

	if err := validate(s.editor.Committed(), change); err != nil {
		s.editor.Restore(cp)
		s.logger.Error("invalid layout change, rolled back", "op", op, "error", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidLayout, op, err)
	}

	if err := s.persist(ctx, change); err != nil {
		s.editor.Restore(cp)
		s.logger.Error("persist failed, layout rolled back", "op", op, "error", err)
		if change.Replaced || len(change.Upserted)+len(change.Removed) > 1 {
			s.resync(ctx)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrPersistFailed, op, err)
	}

	s.record(ctx, change)
	return &Result{Applied: true, Change: &change, Snapshot: s.editor.Snapshot()}, nil
}

// validate checks the resulting layout and the rows about to be written.
func validate(layout furniture.Collection, change editor.Change) error {
	if err := layout.Validate(); err != nil {
		return err
	}
	return furniture.Collection(change.Upserted).Validate()
}

func (s *Service) persist(ctx context.Context, change editor.Change) error {
	if change.Replaced {
		return s.furniture.SaveAll(ctx, s.editor.Committed())
	}
	for _, id := range change.Removed {
		if err := s.furniture.RemoveOne(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("removing %s: %w", id, err)
		}
	}
	for _, f := range change.Upserted {
		if err := s.furniture.UpsertOne(ctx, f); err != nil {
			return fmt.Errorf("upserting %s: %w", f.ID, err)
		}
	}
	return nil
}

// resync writes the restored layout back after a partially applied
// multi-row change.
func (s *Service) resync(ctx context.Context) {
	if err := s.furniture.SaveAll(ctx, s.editor.Committed()); err != nil {
		s.logger.Warn("resync after failed commit", "error", err)
	}
}

func (s *Service) ignored(op string) {
	s.logger.Debug("operation ignored in current state",
		"op", op,
		"mode", s.editor.Mode(),
		"sub_state", s.editor.SubState(),
	)
}

var activityTypes = map[editor.ChangeKind]activity.ActivityType{
	editor.ChangeAdd:          activity.TypeFurnitureAdded,
	editor.ChangeDelete:       activity.TypeFurnitureRemoved,
	editor.ChangeMove:         activity.TypeLayoutMoved,
	editor.ChangeRotate:       activity.TypeLayoutRotated,
	editor.ChangeUpdate:       activity.TypeFurnitureUpdated,
	editor.ChangeOccupancy:    activity.TypeOccupancyChanged,
	editor.ChangeAvailability: activity.TypeAvailabilityChanged,
	editor.ChangeImport:       activity.TypeLayoutImported,
}

type changeDetails struct {
	Upserted []string `json:"upserted,omitempty"`
	Removed  []string `json:"removed,omitempty"`
}

// record logs an acknowledged change. The layout is already stored, so a
// logging failure is only reported.
func (s *Service) record(ctx context.Context, change editor.Change) {
	if s.activities == nil {
		return
	}
	upserted := furniture.Collection(change.Upserted).IDs()
	details, _ := json.Marshal(changeDetails{Upserted: upserted, Removed: change.Removed})

	sessionID := s.sessionID
	entry := &activity.ActivityEntry{
		SessionID:    &sessionID,
		ActivityType: activityTypes[change.Kind],
		Summary:      summarize(change, upserted),
		Details:      string(details),
	}
	if ids := append(slices.Clone(upserted), change.Removed...); len(ids) == 1 {
		entry.FurnitureID = &ids[0]
	}
	if err := s.activities.LogActivity(ctx, entry); err != nil {
		s.logger.Warn("activity log failed", "kind", change.Kind, "error", err)
	}
}

func summarize(change editor.Change, upserted []string) string {
	switch change.Kind {
	case editor.ChangeDelete:
		return fmt.Sprintf("removed %s", strings.Join(change.Removed, ", "))
	case editor.ChangeImport:
		return fmt.Sprintf("imported %d items, replaced %d", len(upserted), len(change.Removed))
	case editor.ChangeRotate:
		return fmt.Sprintf("rotated %d items", len(upserted))
	case editor.ChangeMove:
		return fmt.Sprintf("moved %s", strings.Join(upserted, ", "))
	default:
		return fmt.Sprintf("%s %s", change.Kind, strings.Join(upserted, ", "))
	}
}
