// Package mongostore keeps the furniture layout in a MongoDB collection, one
// document per item keyed by table_id.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/rpggio/seatmap/internal/domain/furniture"
	"github.com/rpggio/seatmap/internal/domain/geometry"
	"github.com/rpggio/seatmap/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultDatabase   = "seatmap"
	DefaultCollection = "tables"
)

// Config describes a MongoDB connection.
type Config struct {
	URI        string
	Database   string
	Collection string
}

// Connect opens a client and pings the primary.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

// document is the stored shape of one item.
type document struct {
	TableID        string     `bson:"table_id"`
	Floor          string     `bson:"floor"`
	Index          int        `bson:"index"`
	Name           string     `bson:"name"`
	Left           float64    `bson:"left"`
	Top            float64    `bson:"top"`
	Width          float64    `bson:"width"`
	Height         float64    `bson:"height"`
	Capacity       int        `bson:"capacity"`
	Occupied       int        `bson:"occupied"`
	ExtraSeatLimit int        `bson:"extraSeatLimit"`
	Tags           []string   `bson:"tags"`
	Description    string     `bson:"description"`
	UpdateTime     *time.Time `bson:"updateTime"`
	Available      bool       `bson:"available"`
}

func toDocument(f furniture.Furniture) document {
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}
	return document{
		TableID:        f.ID,
		Floor:          f.FloorID,
		Index:          f.Index,
		Name:           f.Name,
		Left:           f.Position.X,
		Top:            f.Position.Y,
		Width:          f.Size.W,
		Height:         f.Size.H,
		Capacity:       f.Capacity,
		Occupied:       f.Occupied,
		ExtraSeatLimit: f.ExtraSeatLimit,
		Tags:           tags,
		Description:    f.Description,
		UpdateTime:     f.LastOccupiedAt,
		Available:      f.Available,
	}
}

func (d document) furniture() furniture.Furniture {
	f := furniture.Furniture{
		ID:             d.TableID,
		FloorID:        d.Floor,
		Index:          d.Index,
		Name:           d.Name,
		Position:       geometry.Point{X: d.Left, Y: d.Top},
		Size:           geometry.Size{W: d.Width, H: d.Height},
		Capacity:       d.Capacity,
		Occupied:       d.Occupied,
		ExtraSeatLimit: d.ExtraSeatLimit,
		Tags:           furniture.NormalizeTags(d.Tags),
		Description:    d.Description,
		Available:      d.Available,
	}
	if d.UpdateTime != nil {
		ts := d.UpdateTime.UTC()
		f.LastOccupiedAt = &ts
	}
	return f
}

// FurnitureRepository implements furniture.Repository on MongoDB.
type FurnitureRepository struct {
	coll *mongo.Collection
}

// NewFurnitureRepository creates a repository over coll.
func NewFurnitureRepository(coll *mongo.Collection) *FurnitureRepository {
	return &FurnitureRepository{coll: coll}
}

// EnsureIndexes creates the unique table_id index.
func (r *FurnitureRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "table_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create table_id index: %w", err)
	}
	return nil
}

// LoadAll returns every stored item ordered by floor and ordinal.
func (r *FurnitureRepository) LoadAll(ctx context.Context) ([]furniture.Furniture, error) {
	opts := options.Find().SetSort(bson.D{{Key: "floor", Value: 1}, {Key: "index", Value: 1}, {Key: "table_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load furniture: %w", err)
	}

	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode furniture: %w", err)
	}

	items := make([]furniture.Furniture, len(docs))
	for i, d := range docs {
		items[i] = d.furniture()
	}
	return items, nil
}

// SaveAll replaces the whole collection with items.
func (r *FurnitureRepository) SaveAll(ctx context.Context, items []furniture.Furniture) error {
	docs := make([]any, len(items))
	for i, f := range items {
		if f.ID == "" {
			return repository.ErrInvalidInput
		}
		docs[i] = toDocument(f)
	}

	if _, err := r.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("failed to clear furniture: %w", err)
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert furniture: %w", err)
	}
	return nil
}

// RemoveOne deletes a single item.
func (r *FurnitureRepository) RemoveOne(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.D{{Key: "table_id", Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete furniture %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpsertOne inserts or replaces the document with the item's table_id.
func (r *FurnitureRepository) UpsertOne(ctx context.Context, f furniture.Furniture) error {
	if f.ID == "" {
		return repository.ErrInvalidInput
	}
	_, err := r.coll.ReplaceOne(ctx,
		bson.D{{Key: "table_id", Value: f.ID}},
		toDocument(f),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert furniture %s: %w", f.ID, err)
	}
	return nil
}
