package furniture

import "context"

// Repository persists the committed layout.
type Repository interface {
	LoadAll(ctx context.Context) ([]Furniture, error)
	SaveAll(ctx context.Context, items []Furniture) error
	RemoveOne(ctx context.Context, id string) error
	UpsertOne(ctx context.Context, item Furniture) error
}
