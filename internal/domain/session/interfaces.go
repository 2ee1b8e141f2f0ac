package session

import (
	"context"

	"github.com/rpggio/seatmap/internal/domain/activity"
	"github.com/rpggio/seatmap/internal/domain/furniture"
)

// FurnitureRepository persists the committed layout.
type FurnitureRepository interface {
	furniture.Repository
}

// ActivityLogger records acknowledged commits.
type ActivityLogger interface {
	LogActivity(ctx context.Context, entry *activity.ActivityEntry) error
}
