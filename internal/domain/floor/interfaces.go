package floor

import (
	"context"

	"github.com/rpggio/seatmap/internal/domain/activity"
)

// Repository stores floor settings keyed by floor id.
type Repository interface {
	Get(ctx context.Context, floorID string) (*Settings, error)
	Save(ctx context.Context, settings *Settings) error
}

// ActivityLogger records settings changes.
type ActivityLogger interface {
	LogActivity(ctx context.Context, entry *activity.ActivityEntry) error
}
