package session

import (
	"context"

	"github.com/rpggio/seatmap/internal/domain/editor"
)

// Commit runs fn through the same path as the public committing calls.
func (s *Service) Commit(ctx context.Context, fn func(*editor.Editor) (editor.Change, bool)) (*Result, error) {
	return s.commit(ctx, "test_commit", fn)
}
